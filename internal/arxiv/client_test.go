// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

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

	"github.com/pdiddy/review-bot/internal/httputil"
	"github.com/pdiddy/review-bot/pkg/types"
)

func init() {
	// Use a tiny base delay so retry tests finish quickly.
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func testSearchCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "review-bot-test/0.1",
		},
		// No pacing in tests.
		RequestInterval: 0,
		MaxRetries:      3,
	}
}

// withAPIBase points the package at a test server for the duration of
// one test.
func withAPIBase(t *testing.T, url string) {
	t.Helper()
	old := apiBase
	apiBase = url
	t.Cleanup(func() { apiBase = old })
}

func TestClientSearch(t *testing.T) {
	var gotQuery atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		assert.Equal(t, "review-bot-test/0.1", r.Header.Get("User-Agent"))
		w.Write([]byte(sampleFeed))
	}))
	defer ts.Close()
	withAPIBase(t, ts.URL)

	client := NewClient(testSearchCfg())
	res, err := client.Search(context.Background(), SearchRequest{
		Query:      "cat:cs.AI+OR+cat:cs.LG",
		Start:      0,
		MaxResults: 5,
		SortBy:     SortBySubmittedDate,
		SortOrder:  SortOrderDescending,
	})
	require.NoError(t, err)
	assert.Len(t, res.Records, 3)

	q := gotQuery.Load().(url.Values)
	assert.Equal(t, "cat:cs.AI OR cat:cs.LG", q.Get("search_query"))
	assert.Equal(t, "5", q.Get("max_results"))
	assert.Equal(t, "submittedDate", q.Get("sortBy"))
	assert.Equal(t, "descending", q.Get("sortOrder"))
	assert.Equal(t, "0", q.Get("start"))
}

func TestClientSearchInvalidRequest(t *testing.T) {
	// A request that fails validation never reaches the network.
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()
	withAPIBase(t, ts.URL)

	client := NewClient(testSearchCfg())
	_, err := client.Search(context.Background(), SearchRequest{
		Query:      "all:electron",
		Start:      -1,
		MaxResults: 10,
		SortBy:     SortByRelevance,
		SortOrder:  SortOrderDescending,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start must be >= 0")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestClientSearchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	withAPIBase(t, ts.URL)

	client := NewClient(testSearchCfg())
	_, err := client.Search(context.Background(), validRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestClientSearchRetriesRateLimit(t *testing.T) {
	// arXiv signals rate limiting with 503; the client retries and
	// succeeds once the server relents.
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(sampleFeed))
	}))
	defer ts.Close()
	withAPIBase(t, ts.URL)

	client := NewClient(testSearchCfg())
	res, err := client.Search(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Len(t, res.Records, 3)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClientSearchMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("this is not an atom feed"))
	}))
	defer ts.Close()
	withAPIBase(t, ts.URL)

	client := NewClient(testSearchCfg())
	res, err := client.Search(context.Background(), validRequest())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "parsing arXiv response")
}
