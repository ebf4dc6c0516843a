package search

import (
	"context"

	"github.com/gentledental/siteapi/internal/domain/article"
	"github.com/gentledental/siteapi/internal/domain/location"
)

// OfficeSource provides the static office records for the location adapter.
type OfficeSource interface {
	All() []location.Office
}

// ArticleFetcher retrieves the article feed for the content adapter.
type ArticleFetcher interface {
	FetchAll(ctx context.Context) ([]article.Article, error)
}
