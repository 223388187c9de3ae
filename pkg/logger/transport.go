package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Transport is an http.RoundTripper that logs every outgoing request with zap.
// Requests slower than SlowThreshold are logged as warnings.
type Transport struct {
	Base          http.RoundTripper
	ZapLogger     *zap.Logger
	SlowThreshold time.Duration
}

// NewTransport creates a logging transport around base.
// A nil base falls back to http.DefaultTransport.
func NewTransport(base http.RoundTripper, zapLogger *zap.Logger, slowSeconds float64) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		Base:          base,
		ZapLogger:     zapLogger,
		SlowThreshold: time.Duration(slowSeconds * float64(time.Second)),
	}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	begin := time.Now()
	resp, err := t.Base.RoundTrip(req)
	elapsed := time.Since(begin)

	// Get logger with context (includes request_id if available)
	logger := WithContext(req.Context(), t.ZapLogger)

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.Duration("elapsed", elapsed),
		zap.Float64("elapsed_ms", float64(elapsed.Nanoseconds())/1e6),
	}

	if err != nil {
		fields = append(fields, zap.Error(err))
		logger.Error("http request error", fields...)
		return nil, err
	}

	fields = append(fields, zap.Int("status", resp.StatusCode))

	if t.SlowThreshold != 0 && elapsed > t.SlowThreshold {
		fields = append(fields, zap.Duration("threshold", t.SlowThreshold))
		logger.Warn("http slow request", fields...)
		return resp, nil
	}

	logger.Debug("http request", fields...)
	return resp, nil
}

// CloseIdleConnections closes idle connections held by the wrapped transport.
func (t *Transport) CloseIdleConnections() {
	type closeIdler interface {
		CloseIdleConnections()
	}
	if c, ok := t.Base.(closeIdler); ok {
		c.CloseIdleConnections()
	}
}
