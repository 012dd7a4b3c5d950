package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TecMrDocs/whispertrend/pkg/logger"
	"github.com/TecMrDocs/whispertrend/pkg/metrics"
)

// promauto registers collectors on the default registry, so the whole test
// binary shares one instance.
var testMetrics = metrics.New()

func testLogger() *logger.Logger {
	return logger.New("error")
}

func newTestClient(url string) *HTTPTrendsClient {
	return NewHTTPTrendsClient(url, 2*time.Second, 0, time.Millisecond, 10, testLogger(), testMetrics)
}

func TestFetchTrends_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hashtags":["#Eco"],"sentence":"test","trends":{"data":{"instagram":[{"keyword":"#Eco","posts":[{"likes":10,"comments":2,"time":"2025-01-15T10:00:00Z"}]}],"reddit":[],"twitter":[]},"metadata":[]}}`))
	}))
	defer server.Close()

	doc, err := newTestClient(server.URL).FetchTrends(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"#Eco"}, doc.Hashtags)
	assert.Equal(t, "test", doc.Sentence)
	require.Len(t, doc.Trends.Data.Instagram, 1)
	assert.Equal(t, "#Eco", doc.Trends.Data.Instagram[0].Keyword)
}

func TestFetchTrends_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchTrends(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchTrends_EmptySnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hashtags":[],"sentence":""}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchTrends(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no hashtags")
}

func TestFetchTrends_MissingTrendsBlock(t *testing.T) {
	// Hashtags alone do not make a valid snapshot; without platform data or
	// metadata the calculators would only ever see placeholders.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hashtags":["#Eco"],"sentence":"x"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchTrends(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no trends data")
}

func TestFetchTrends_MetadataOnlyIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hashtags":["#Eco"],"sentence":"x","trends":{"data":{"instagram":[],"reddit":[],"twitter":[]},"metadata":[{"title":"noticia","description":"","url":"","keywords":[]}]}}`))
	}))
	defer server.Close()

	doc, err := newTestClient(server.URL).FetchTrends(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Trends.Metadata, 1)
}

func TestFetchTrends_NotConfigured(t *testing.T) {
	_, err := newTestClient("").FetchTrends(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestFetchTrends_RetriesTransientFailure(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"hashtags":["#Eco"],"sentence":"retry","trends":{"data":{"instagram":[{"keyword":"#Eco","posts":[{"likes":5,"comments":1,"time":"2025-01-15T10:00:00Z"}]}],"reddit":[],"twitter":[]},"metadata":[]}}`))
	}))
	defer server.Close()

	client := NewHTTPTrendsClient(server.URL, 2*time.Second, 2, time.Millisecond, 10, testLogger(), testMetrics)
	doc, err := client.FetchTrends(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "retry", doc.Sentence)
}
