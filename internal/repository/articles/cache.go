package articles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/gentledental/siteapi/internal/db"
	"github.com/gentledental/siteapi/internal/domain/article"
)

const cacheKey = "siteapi:articles:all"

// Fetcher retrieves the full article feed.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]article.Article, error)
}

// store is the consumer interface for the article cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CachedFetcher caches the article feed in a key-value store with a TTL.
type CachedFetcher struct {
	inner      Fetcher
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// NewCached creates a caching decorator over a Fetcher.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func NewCached(
	inner Fetcher,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedFetcher {
	return &CachedFetcher{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// FetchAll returns the cached article feed or fetches it from the content API.
// A stale-free miss path: fetch errors are never cached.
func (c *CachedFetcher) FetchAll(ctx context.Context) ([]article.Article, error) {
	if cards, ok := c.getFromCache(ctx); ok {
		c.incCache("hit")
		return cards, nil
	}

	c.incCache("miss")

	cards, err := c.inner.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch articles: %w", err)
	}

	c.putToCache(ctx, cards)
	return cards, nil
}

// Purge drops the cached feed. The next FetchAll goes to the content API.
func (c *CachedFetcher) Purge(ctx context.Context) error {
	if err := c.store.Del(ctx, cacheKey); err != nil {
		return fmt.Errorf("purge article cache: %w", err)
	}
	return nil
}

func (c *CachedFetcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedFetcher) getFromCache(ctx context.Context) ([]article.Article, bool) {
	data, err := c.store.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached articles", zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var cards []article.Article
	if err := json.Unmarshal(data, &cards); err != nil {
		c.logger.Warn("Failed to parse cached articles", zap.Error(err))
		return nil, false
	}
	return cards, true
}

func (c *CachedFetcher) putToCache(ctx context.Context, cards []article.Article) {
	data, err := json.Marshal(cards)
	if err != nil {
		c.logger.Warn("Failed to encode articles for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, cacheKey, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache articles", zap.Error(err))
	}
}
