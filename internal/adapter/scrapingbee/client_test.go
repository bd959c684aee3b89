package scrapingbee

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/stylegen-service/internal/repository"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		APIKey:       "test-key",
		BaseURL:      server.URL,
		RetryBackoff: time.Millisecond,
		HTTPClient:   server.Client(),
	})
	require.NoError(t, err)
	return client, server
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrConfiguration)
}

func TestFetchRenderedSuccess(t *testing.T) {
	var gotQuery atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>rendered</html>"))
	})

	page, err := client.FetchRendered(context.Background(), "https://acme.example.com/", true)
	require.NoError(t, err)
	assert.Equal(t, "<html>rendered</html>", page.HTML)
	assert.Equal(t, 0, page.Retries)

	query := gotQuery.Load().(url.Values)
	assert.Equal(t, "test-key", query["api_key"][0])
	assert.Equal(t, "https://acme.example.com/", query["url"][0])
	assert.Equal(t, "true", query["render_js"][0])
	assert.Equal(t, "true", query["premium_proxy"][0])
	assert.Equal(t, "us", query["country_code"][0])
	assert.NotEmpty(t, query["wait"])
}

func TestFetchRenderedOmitsWaitWithoutJS(t *testing.T) {
	var gotQuery atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Write([]byte("body { color: red; }"))
	})

	_, err := client.FetchRendered(context.Background(), "https://acme.example.com/site.css", false)
	require.NoError(t, err)

	query := gotQuery.Load().(url.Values)
	assert.Equal(t, "false", query["render_js"][0])
	assert.Empty(t, query["wait"])
}

func TestFetchRenderedRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("upstream hiccup"))
			return
		}
		w.Write([]byte("<html>eventually</html>"))
	})

	page, err := client.FetchRendered(context.Background(), "https://acme.example.com/", true)
	require.NoError(t, err)
	assert.Equal(t, "<html>eventually</html>", page.HTML)
	assert.Equal(t, 2, page.Retries)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchRenderedExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchRendered(context.Background(), "https://acme.example.com/", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrUpstream)
	assert.Equal(t, int32(3), calls.Load(), "one initial attempt plus two retries")
}

func TestFetchRenderedQuotaExhaustedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "API calls limit reached"}`))
	})

	_, err := client.FetchRendered(context.Background(), "https://acme.example.com/", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrQuotaExhausted)
	assert.Equal(t, int32(1), calls.Load(), "quota exhaustion must fail immediately")
}

func TestFetchRenderedRejectsRelativeURL(t *testing.T) {
	client, err := New(Config{APIKey: "test-key"})
	require.NoError(t, err)

	_, err = client.FetchRendered(context.Background(), "/relative/path", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestFetchRenderedContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchRendered(ctx, "https://acme.example.com/", true)
	require.Error(t, err)
}
