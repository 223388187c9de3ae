// Package fetch retrieves structured documents over HTTP.
//
// Each call opens its own session (an http.Client with a dedicated transport)
// and releases it, together with the response body, on every exit path.
// Callers that want to keep working while the request is in flight use Go and
// await the returned Future.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	apperrors "code-showcase/pkg/errors"
	"code-showcase/pkg/logger"
)

// DataPath is the relative path of the sample data document.
const DataPath = "/api/data"

// DefaultTimeout bounds a single fetch when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Options configures a Client.
type Options struct {
	BaseURL            string        // address relative paths are resolved against; may be empty
	Timeout            time.Duration // per-request timeout, DefaultTimeout when zero
	SlowRequestSeconds float64       // requests slower than this are logged as warnings
}

// Client fetches and decodes documents relative to a base URL.
type Client struct {
	base        *url.URL // nil when no base URL is configured
	timeout     time.Duration
	slowSeconds float64
	log         *zap.Logger
}

// New creates a Client. An empty BaseURL is accepted; Fetch then fails with ErrNoBaseURL.
func New(opts Options, log *zap.Logger) (*Client, error) {
	c := &Client{
		timeout:     opts.Timeout,
		slowSeconds: opts.SlowRequestSeconds,
		log:         log,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}

	if opts.BaseURL != "" {
		base, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
		}
		if base.Scheme == "" || base.Host == "" {
			return nil, apperrors.NewValidationError("BaseURL", "must be an absolute URL")
		}
		c.base = base
	}

	return c, nil
}

// Fetch issues a GET for path, resolved against the base URL, and returns the decoded body.
// Network errors, non-2xx statuses and malformed bodies are returned to the caller unchanged
// in kind; nothing is retried.
func (c *Client) Fetch(ctx context.Context, path string) (any, error) {
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	log := logger.WithContext(ctx, c.log).With(zap.String("url", target.Redacted()))
	log.Debug("fetching document")

	session := c.openSession()
	defer session.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	if id := logger.GetRequestID(ctx); id != "" {
		req.Header.Set(logger.RequestIDHeader, id)
	}

	// Transport failures are logged by the session transport
	resp, err := session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn("fetch returned non-success status", zap.Int("status", resp.StatusCode))
		return nil, apperrors.NewStatusError(resp.StatusCode, target.Redacted())
	}

	doc, err := decode(resp.Header.Get("Content-Type"), resp.Body)
	if err != nil {
		log.Warn("failed to decode document", zap.Error(err))
		return nil, err
	}
	return doc, nil
}

// FetchAll fetches every path concurrently and returns the documents in the order of paths.
// The first failure cancels the remaining requests.
func (c *Client) FetchAll(ctx context.Context, paths ...string) ([]any, error) {
	docs := make([]any, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			doc, err := c.Fetch(ctx, p)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// resolve joins path onto the base URL.
func (c *Client) resolve(path string) (*url.URL, error) {
	if c.base == nil {
		return nil, fmt.Errorf("cannot resolve %q: %w", path, apperrors.ErrNoBaseURL)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return nil, apperrors.NewValidationError("path", err.Error())
	}
	return c.base.ResolveReference(ref), nil
}

// openSession returns a client backed by a fresh transport owned by one fetch.
func (c *Client) openSession() *http.Client {
	var base http.RoundTripper = http.DefaultTransport
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		base = t.Clone()
	}
	return &http.Client{
		Timeout:   c.timeout,
		Transport: logger.NewTransport(base, c.log, c.slowSeconds),
	}
}

// decode parses body according to contentType. JSON is assumed when the type is
// missing or unrecognized.
func decode(contentType string, body io.Reader) (any, error) {
	mediaType := ""
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, apperrors.NewDecodeError(contentType, err)
		}
		mediaType = mt
	}

	var doc any
	if isYAML(mediaType) {
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, apperrors.NewDecodeError(mediaType, err)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, apperrors.NewDecodeError(mediaType, err)
		}
		if doc == nil {
			return nil, apperrors.NewDecodeError(mediaType, io.ErrUnexpectedEOF)
		}
		return doc, nil
	}

	dec := json.NewDecoder(body)
	if err := dec.Decode(&doc); err != nil {
		return nil, apperrors.NewDecodeError(mediaType, err)
	}
	if dec.More() {
		return nil, apperrors.NewDecodeError(mediaType, fmt.Errorf("unexpected data after document"))
	}
	return doc, nil
}

func isYAML(mediaType string) bool {
	switch strings.ToLower(mediaType) {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return false
}
