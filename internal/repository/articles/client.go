// Package articles fetches article cards from the headless CMS content API.
package articles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/gentledental/siteapi/internal/domain"
	"github.com/gentledental/siteapi/internal/domain/article"
	"github.com/gentledental/siteapi/internal/metrics"
)

// articlesQuery fetches every article card in one call; the feed is small
// enough that the content API exposes no pagination for it.
const articlesQuery = `query ArticleCards {
  articleCards {
    title
    description
    image
    ctaLink
    ctaText
  }
}`

// Client is a GraphQL-over-HTTP content API client.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds the content API settings.
type Config struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewClient creates a content API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

type graphqlRequest struct {
	Query string `json:"query"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type articlesResponse struct {
	Data struct {
		ArticleCards []article.Article `json:"articleCards"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// FetchAll retrieves every article card from the content API.
// All failures are wrapped with domain.ErrContentUnavailable so callers can
// treat them uniformly as a degraded (not fatal) condition.
func (c *Client) FetchAll(ctx context.Context) ([]article.Article, error) {
	body, err := json.Marshal(graphqlRequest{Query: articlesQuery})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.ContentRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("content api request: %v: %w", err, domain.ErrContentUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.ContentRequestsTotal.WithLabelValues("error").Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("content api status %d: %s: %w",
			resp.StatusCode, string(snippet), domain.ErrContentUnavailable)
	}

	var parsed articlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.ContentRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode content api response: %v: %w", err, domain.ErrContentUnavailable)
	}
	if len(parsed.Errors) > 0 {
		metrics.ContentRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("content api error: %s: %w",
			parsed.Errors[0].Message, domain.ErrContentUnavailable)
	}

	metrics.ContentRequestsTotal.WithLabelValues("success").Inc()
	metrics.ContentRequestDuration.Observe(duration.Seconds())

	return parsed.Data.ArticleCards, nil
}

// HealthCheck verifies content API reachability with a minimal fetch.
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.FetchAll(ctx); err != nil {
		return fmt.Errorf("content api health check: %w", err)
	}
	return nil
}
