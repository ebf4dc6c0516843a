package content

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gentledental/siteapi/internal/domain"
	"github.com/gentledental/siteapi/internal/domain/article"
)

type mockFetcher struct {
	cards []article.Article
	err   error
}

func (m *mockFetcher) FetchAll(_ context.Context) ([]article.Article, error) {
	return m.cards, m.err
}

func makeCards(n int) []article.Article {
	cards := make([]article.Article, n)
	for i := range cards {
		cards[i] = article.Article{Title: fmt.Sprintf("Article %02d", i)}
	}
	return cards
}

func TestList_FirstPage(t *testing.T) {
	svc := New(&mockFetcher{cards: makeCards(25)}).WithPagination(9, 50)

	p, err := svc.List(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(p.Items) != 9 {
		t.Errorf("items = %d, want default page size 9", len(p.Items))
	}
	if p.TotalItems != 25 || p.TotalPages != 3 {
		t.Errorf("totals = %d/%d, want 25/3", p.TotalItems, p.TotalPages)
	}
	if p.Items[0].Title != "Article 00" {
		t.Errorf("first item = %q", p.Items[0].Title)
	}
}

func TestList_LastPartialPage(t *testing.T) {
	svc := New(&mockFetcher{cards: makeCards(25)})

	p, err := svc.List(context.Background(), 3, 9)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(p.Items) != 7 {
		t.Errorf("items = %d, want trailing 7", len(p.Items))
	}
	if p.Items[0].Title != "Article 18" {
		t.Errorf("first item of page 3 = %q", p.Items[0].Title)
	}
}

func TestList_PagePastEnd(t *testing.T) {
	svc := New(&mockFetcher{cards: makeCards(5)})

	p, err := svc.List(context.Background(), 99, 9)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(p.Items) != 0 {
		t.Errorf("items = %d, want 0 past the end", len(p.Items))
	}
	if p.TotalItems != 5 {
		t.Errorf("totals lost on past-the-end page: %d", p.TotalItems)
	}
}

func TestList_InvalidPage(t *testing.T) {
	svc := New(&mockFetcher{cards: makeCards(5)})

	_, err := svc.List(context.Background(), 0, 9)
	if !errors.Is(err, domain.ErrInvalidPage) {
		t.Fatalf("error = %v, want ErrInvalidPage", err)
	}
}

func TestList_PageSizeClamped(t *testing.T) {
	svc := New(&mockFetcher{cards: makeCards(100)}).WithPagination(9, 20)

	p, err := svc.List(context.Background(), 1, 500)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(p.Items) != 20 {
		t.Errorf("items = %d, want clamped max 20", len(p.Items))
	}
}

func TestList_FetcherError(t *testing.T) {
	svc := New(&mockFetcher{err: domain.ErrContentUnavailable})

	_, err := svc.List(context.Background(), 1, 9)
	if !errors.Is(err, domain.ErrContentUnavailable) {
		t.Fatalf("error = %v, want ErrContentUnavailable", err)
	}
}
