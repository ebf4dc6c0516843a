package articles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gentledental/siteapi/internal/domain"
)

func TestClient_FetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}

		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Query == "" {
			t.Error("empty graphql query")
		}

		_, _ = w.Write([]byte(`{"data":{"articleCards":[
			{"title":"Flossing 101","description":"<p>How to floss.</p>"},
			{"title":"Whitening","description":"Options for whiter teeth.","ctaLink":"/blog/whitening"}
		]}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Token: "test-token"})
	cards, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[0].Title != "Flossing 101" {
		t.Errorf("first card title = %q", cards[0].Title)
	}
	if cards[1].CTALink != "/blog/whitening" {
		t.Errorf("second card ctaLink = %q", cards[1].CTALink)
	}
}

func TestClient_FetchAll_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	_, err := c.FetchAll(context.Background())
	if !errors.Is(err, domain.ErrContentUnavailable) {
		t.Fatalf("error = %v, want ErrContentUnavailable", err)
	}
}

func TestClient_FetchAll_GraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"field not found"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	_, err := c.FetchAll(context.Background())
	if !errors.Is(err, domain.ErrContentUnavailable) {
		t.Fatalf("error = %v, want ErrContentUnavailable", err)
	}
}

func TestClient_FetchAll_ConnectionRefused(t *testing.T) {
	c := NewClient(Config{Endpoint: "http://127.0.0.1:1"})
	_, err := c.FetchAll(context.Background())
	if !errors.Is(err, domain.ErrContentUnavailable) {
		t.Fatalf("error = %v, want ErrContentUnavailable", err)
	}
}
