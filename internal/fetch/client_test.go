package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"code-showcase/internal/adapter/gin/handler"
	"code-showcase/internal/adapter/gin/router"
	"code-showcase/internal/usecase/showcase"
	apperrors "code-showcase/pkg/errors"
	"code-showcase/pkg/logger"
)

// setupDataServer starts the sample data server on a random port.
func setupDataServer(t *testing.T) *httptest.Server {
	log := zaptest.NewLogger(t)
	h := handler.NewDataHandler(showcase.New(log), log)
	srv := httptest.NewServer(router.SetupRouter(h, "code-showcase", log))
	t.Cleanup(srv.Close)
	return srv
}

func setupClient(t *testing.T, baseURL string) *Client {
	c, err := New(Options{BaseURL: baseURL, Timeout: 5 * time.Second}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return c
}

func TestFetch_JSONDocument(t *testing.T) {
	srv := setupDataServer(t)
	c := setupClient(t, srv.URL)

	doc, err := c.Fetch(context.Background(), DataPath)
	require.NoError(t, err)

	m, ok := doc.(map[string]any)
	require.True(t, ok, "expected object, got %T", doc)
	assert.Equal(t, "Hello, World!", m["greeting"])
	assert.Equal(t, map[string]any{"n": float64(10), "value": float64(55)}, m["fibonacci"])
	assert.Len(t, m["squares"], 10)
	assert.Len(t, m["even_squares"], 5)
}

func TestFetch_YAMLDocument(t *testing.T) {
	srv := setupDataServer(t)
	c := setupClient(t, srv.URL)

	doc, err := c.Fetch(context.Background(), DataPath+"?format=yaml")
	require.NoError(t, err)

	m, ok := doc.(map[string]any)
	require.True(t, ok, "expected object, got %T", doc)
	assert.Equal(t, "Hello, World!", m["greeting"])
	assert.Equal(t, map[string]any{"n": 10, "value": 55}, m["fibonacci"])
}

func TestFetch_ResolvesAgainstBasePath(t *testing.T) {
	gotPath := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath <- r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[1, 2, 3]`))
	}))
	defer srv.Close()

	c := setupClient(t, srv.URL+"/v1/")

	doc, err := c.Fetch(context.Background(), "api/data")
	require.NoError(t, err)

	assert.Equal(t, "/v1/api/data", <-gotPath)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, doc)
}

func TestFetch_NoBaseURL(t *testing.T) {
	c := setupClient(t, "")

	doc, err := c.Fetch(context.Background(), DataPath)

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, apperrors.ErrNoBaseURL)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := setupDataServer(t)
	c := setupClient(t, srv.URL)

	doc, err := c.Fetch(context.Background(), "/api/missing")

	assert.Nil(t, doc)
	var statusErr *apperrors.StatusError
	require.True(t, errors.As(err, &statusErr), "expected StatusError, got %v", err)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestFetch_MalformedBody(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{name: "truncated json", contentType: "application/json", body: `{"greeting":`},
		{name: "empty json", contentType: "application/json", body: ``},
		{name: "trailing data", contentType: "application/json", body: `{} {}`},
		{name: "broken yaml", contentType: "application/yaml", body: "a: [1, 2"},
		{name: "empty yaml", contentType: "text/yaml", body: ""},
		{name: "bad content type", contentType: "application/json; =", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := setupClient(t, srv.URL).Fetch(context.Background(), DataPath)

			var decodeErr *apperrors.DecodeError
			assert.True(t, errors.As(err, &decodeErr), "expected DecodeError, got %v", err)
		})
	}
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := setupClient(t, base).Fetch(context.Background(), DataPath)

	require.Error(t, err)
	var statusErr *apperrors.StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestFetch_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := setupClient(t, srv.URL).Fetch(ctx, DataPath)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetch_PropagatesRequestID(t *testing.T) {
	gotID := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID <- r.Header.Get(logger.RequestIDHeader)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx := logger.NewContext(context.Background(), "req-42")
	_, err := setupClient(t, srv.URL).Fetch(ctx, DataPath)
	require.NoError(t, err)

	assert.Equal(t, "req-42", <-gotID)
}

func TestFetchAll_KeepsOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			time.Sleep(30 * time.Millisecond)
		}
		_, _ = w.Write([]byte(`"` + r.URL.Path + `"`))
	}))
	defer srv.Close()

	docs, err := setupClient(t, srv.URL).FetchAll(context.Background(), "/slow", "/fast")
	require.NoError(t, err)

	assert.Equal(t, []any{"/slow", "/fast"}, docs)
}

func TestFetchAll_FirstErrorWins(t *testing.T) {
	srv := setupDataServer(t)

	docs, err := setupClient(t, srv.URL).FetchAll(context.Background(), DataPath, "/api/missing")

	assert.Nil(t, docs)
	var statusErr *apperrors.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "/api"}, zaptest.NewLogger(t))

	var vErr *apperrors.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestGo_DoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	f := setupClient(t, srv.URL).Go(context.Background(), DataPath)

	select {
	case <-f.Done():
		t.Fatal("fetch completed before the server answered")
	default:
	}

	close(release)
	doc, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, doc)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFuture_AwaitHonorsContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	fetchCtx, cancelFetch := context.WithCancel(context.Background())
	defer cancelFetch()
	f := setupClient(t, srv.URL).Go(fetchCtx, DataPath)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetch_FailureLoggedOnceBelowError(t *testing.T) {
	srv := setupDataServer(t)
	core, logs := observer.New(zapcore.DebugLevel)
	c, err := New(Options{BaseURL: srv.URL, Timeout: 5 * time.Second}, zap.New(core))
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), "/api/missing")
	require.Error(t, err)

	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, 1, logs.FilterMessage("fetch returned non-success status").Len())
}

func TestFetch_TransportFailureLoggedOnce(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	c, err := New(Options{BaseURL: base, Timeout: 5 * time.Second}, zap.New(core))
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), DataPath)
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
