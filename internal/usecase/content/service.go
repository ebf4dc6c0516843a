// Package content serves the paginated articles section from the CMS feed.
package content

import (
	"context"
	"fmt"

	"github.com/gentledental/siteapi/internal/domain"
	"github.com/gentledental/siteapi/internal/domain/article"
)

// Fetcher retrieves the full article feed.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]article.Article, error)
}

// Page is one page of the articles section.
type Page struct {
	Items      []article.Article `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

// Service paginates the article feed.
type Service struct {
	fetcher         Fetcher
	defaultPageSize int
	maxPageSize     int
}

// New creates a content service.
func New(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher, defaultPageSize: 9, maxPageSize: 50}
}

// WithPagination overrides page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// List returns one page of articles, 1-based. pageSize 0 takes the default;
// oversized requests are clamped to the maximum. A page past the end returns
// an empty item list with the totals intact.
func (s *Service) List(ctx context.Context, page, pageSize int) (Page, error) {
	if page < 1 {
		return Page{}, fmt.Errorf("page must be >= 1, got %d: %w", page, domain.ErrInvalidPage)
	}
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	cards, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("list articles: %w", err)
	}

	total := len(cards)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page{
		Items:      cards[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
