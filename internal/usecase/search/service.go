// Package search implements the federated site search: one query fanned out
// to the office list, the content API, and the page registry, merged into a
// single ranked result list.
package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gentledental/siteapi/internal/domain/page"
	domsearch "github.com/gentledental/siteapi/internal/domain/search"
	"github.com/gentledental/siteapi/internal/metrics"
)

// Service aggregates search results across the three sources. It holds no
// mutable state and is safe for concurrent re-invocation.
type Service struct {
	offices    OfficeSource
	articles   ArticleFetcher
	pages      []page.Page
	maxResults int
	logger     *zap.Logger
}

// New creates a search service.
func New(offices OfficeSource, articles ArticleFetcher, logger *zap.Logger) *Service {
	return &Service{
		offices:    offices,
		articles:   articles,
		pages:      page.Registry(),
		maxResults: 20,
		logger:     logger,
	}
}

// WithMaxResults overrides the result cap.
func (s *Service) WithMaxResults(n int) *Service {
	if n > 0 {
		s.maxResults = n
	}
	return s
}

// Search runs one federated query. A trimmed-empty query returns nil without
// touching any source. The content source's failure is tolerated: it is
// logged, counted, and contributes zero results. Merge order is location,
// article, page, with no cross-source deduplication; ranking and the result
// cap are applied last.
func (s *Service) Search(ctx context.Context, query string) []domsearch.Result {
	query = strings.TrimSpace(query)
	if query == "" {
		metrics.SearchRequestsTotal.WithLabelValues("empty_query").Inc()
		return nil
	}

	var (
		locationHits []domsearch.Result
		articleHits  []domsearch.Result
		pageHits     []domsearch.Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		locationHits = s.locationResults(query)
		return nil
	})
	g.Go(func() error {
		articleHits = s.articleResults(gctx, query)
		return nil
	})
	g.Go(func() error {
		pageHits = s.pageResults(query)
		return nil
	})
	_ = g.Wait() // adapters never return errors; failures degrade to zero results

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.SearchSourceResultsTotal.WithLabelValues("location").Add(float64(len(locationHits)))
	metrics.SearchSourceResultsTotal.WithLabelValues("article").Add(float64(len(articleHits)))
	metrics.SearchSourceResultsTotal.WithLabelValues("page").Add(float64(len(pageHits)))

	merged := make([]domsearch.Result, 0, len(locationHits)+len(articleHits)+len(pageHits))
	merged = append(merged, locationHits...)
	merged = append(merged, articleHits...)
	merged = append(merged, pageHits...)

	rankResults(merged, query)

	if len(merged) > s.maxResults {
		merged = merged[:s.maxResults]
	}
	return merged
}

// locationResults matches the query against office name, address, and phone.
func (s *Service) locationResults(query string) []domsearch.Result {
	var out []domsearch.Result
	for _, o := range s.offices.All() {
		if !o.MatchesQuery(query) {
			continue
		}
		out = append(out, domsearch.Result{
			ID:          "location-" + o.ID,
			Type:        domsearch.TypeLocation,
			Title:       o.Name,
			Description: o.Address,
			URL:         "/dental-offices?p=" + url.QueryEscape(o.Name),
			Metadata: &domsearch.Metadata{
				Address: o.Address,
				Phone:   o.Phone,
			},
		})
	}
	return out
}

// articleResults fetches the article feed and matches title or stripped
// description. Result IDs derive from the fetched array index: they are
// unique within one response but not stable across feed reorderings.
func (s *Service) articleResults(ctx context.Context, query string) []domsearch.Result {
	cards, err := s.articles.FetchAll(ctx)
	if err != nil {
		metrics.SearchSourceErrorsTotal.WithLabelValues("article").Inc()
		s.logger.Warn("article source failed, continuing without it",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil
	}

	q := strings.ToLower(query)
	var out []domsearch.Result
	for i, a := range cards {
		plain := a.PlainDescription()
		if !strings.Contains(strings.ToLower(a.Title), q) &&
			!strings.Contains(strings.ToLower(plain), q) {
			continue
		}
		res := domsearch.Result{
			ID:          fmt.Sprintf("article-%d", i),
			Type:        domsearch.TypeArticle,
			Title:       a.Title,
			Description: a.Summary(),
			URL:         a.URL(),
		}
		if a.Image != "" {
			res.Metadata = &domsearch.Metadata{Image: a.Image}
		}
		out = append(out, res)
	}
	return out
}

// pageResults matches the query against the compiled-in page registry.
func (s *Service) pageResults(query string) []domsearch.Result {
	var out []domsearch.Result
	for _, p := range s.pages {
		if !p.Matches(query) {
			continue
		}
		out = append(out, domsearch.Result{
			ID:          "page-" + p.ID,
			Type:        domsearch.TypePage,
			Title:       p.Title,
			Description: p.Description,
			URL:         p.URL,
		})
	}
	return out
}
