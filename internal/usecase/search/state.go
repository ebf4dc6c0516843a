package search

import (
	"sync"

	domsearch "github.com/gentledental/siteapi/internal/domain/search"
)

// Session is the per-UI-session search state container. The aggregator itself
// is stateless; a caller that debounces input and re-invokes Search while a
// prior call is outstanding uses a Session to commit only the newest result.
//
// Begin issues a monotonically increasing sequence number per initiated
// search; Commit applies a result set only when its sequence is still the
// latest issued, discarding out-of-order completions. Results are always
// replaced wholesale, never patched, so a mixed old/new view is impossible.
type Session struct {
	mu        sync.Mutex
	query     string
	results   []domsearch.Result
	searching bool
	open      bool
	latest    uint64
}

// NewSession creates an empty, closed session.
func NewSession() *Session {
	return &Session{}
}

// Begin records a newly initiated search and returns its sequence number.
func (s *Session) Begin(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	s.query = query
	s.searching = true
	s.open = true
	return s.latest
}

// Commit applies results for the search identified by seq. Stale completions
// (seq no longer the latest issued) are discarded and Commit reports false.
func (s *Session) Commit(seq uint64, results []domsearch.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.latest {
		return false
	}
	s.results = results
	s.searching = false
	return true
}

// Clear resets the session: empty query, no results, panel closed. Any
// in-flight search becomes stale and its later Commit is a no-op.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	s.query = ""
	s.results = nil
	s.searching = false
	s.open = false
}

// SetOpen toggles panel visibility without touching query or results.
func (s *Session) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

// Snapshot returns the current session state. The results slice is shared;
// callers must treat it as read-only.
func (s *Session) Snapshot() (query string, results []domsearch.Result, searching, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query, s.results, s.searching, s.open
}
