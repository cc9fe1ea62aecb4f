// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/pdiddy/review-bot/internal/httputil"
	"github.com/pdiddy/review-bot/pkg/types"
)

// apiBase is the arXiv search endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

// Client issues search requests against the arXiv API. The HTTP client
// is passed in explicitly and scoped to the Client; there is no
// package-level session.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxRetries int
	limiter    *rate.Limiter
}

// NewClient creates a search client from cfg. A zero RequestInterval
// disables pacing (tests); arXiv asks for at least 3 seconds between
// requests in normal use.
func NewClient(cfg types.SearchConfig) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}
	if cfg.RequestInterval > 0 {
		c.limiter = rate.NewLimiter(rate.Every(cfg.RequestInterval), 1)
	}
	return c
}

// Search validates req, issues the API call, and parses the response.
// A non-200 status after retries or an unparseable body is an error;
// no partial results are returned.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL(apiBase), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, httpReq, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	return ParseFeed(resp.Body)
}
