package articles

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gentledental/siteapi/internal/db"
	"github.com/gentledental/siteapi/internal/domain/article"
)

type fakeStore struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeStore) Del(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.data, key)
	return nil
}

type fakeFetcher struct {
	cards []article.Article
	err   error
	calls int
}

func (f *fakeFetcher) FetchAll(_ context.Context) ([]article.Article, error) {
	f.calls++
	return f.cards, f.err
}

func TestCachedFetcher_MissThenHit(t *testing.T) {
	inner := &fakeFetcher{cards: []article.Article{{Title: "Flossing 101"}}}
	st := newFakeStore()
	c := NewCached(inner, st, time.Minute, nil, zap.NewNop())

	ctx := context.Background()

	cards, err := c.FetchAll(ctx)
	if err != nil {
		t.Fatalf("first FetchAll: %v", err)
	}
	if len(cards) != 1 || inner.calls != 1 {
		t.Fatalf("miss path: cards=%d calls=%d", len(cards), inner.calls)
	}

	cards, err = c.FetchAll(ctx)
	if err != nil {
		t.Fatalf("second FetchAll: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("hit path: got %d cards", len(cards))
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1 (second call should hit cache)", inner.calls)
	}
}

func TestCachedFetcher_FetchErrorNotCached(t *testing.T) {
	inner := &fakeFetcher{err: errors.New("cms down")}
	st := newFakeStore()
	c := NewCached(inner, st, time.Minute, nil, zap.NewNop())

	if _, err := c.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error from inner fetcher")
	}
	if len(st.data) != 0 {
		t.Error("error result was written to cache")
	}
}

func TestCachedFetcher_CorruptCacheFallsThrough(t *testing.T) {
	inner := &fakeFetcher{cards: []article.Article{{Title: "Whitening"}}}
	st := newFakeStore()
	st.data[cacheKey] = []byte("not json")
	c := NewCached(inner, st, time.Minute, nil, zap.NewNop())

	cards, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(cards) != 1 || inner.calls != 1 {
		t.Errorf("corrupt cache should fall through to inner: cards=%d calls=%d", len(cards), inner.calls)
	}
}

func TestCachedFetcher_Purge(t *testing.T) {
	inner := &fakeFetcher{cards: []article.Article{{Title: "Flossing 101"}}}
	st := newFakeStore()
	payload, _ := json.Marshal(inner.cards)
	st.data[cacheKey] = payload

	c := NewCached(inner, st, time.Minute, nil, zap.NewNop())
	if err := c.Purge(context.Background()); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if _, ok := st.data[cacheKey]; ok {
		t.Error("cache key still present after purge")
	}

	if _, err := c.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll after purge: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times after purge, want 1", inner.calls)
	}
}
