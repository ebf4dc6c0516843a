package search

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	domsearch "github.com/gentledental/siteapi/internal/domain/search"
)

// Relevance tiers, highest first.
const (
	tierExact  = 0 // title equals the query, case-insensitive
	tierPrefix = 1 // title starts with the query, case-insensitive
	tierOther  = 2 // everything else, ordered alphabetically by title
)

// rankResults orders merged results in place: exact title matches first, then
// prefix matches, then the rest alphabetically (locale-aware). The sort is
// stable, so within the exact and prefix tiers the merge order is preserved.
func rankResults(results []domsearch.Result, query string) {
	q := strings.ToLower(strings.TrimSpace(query))

	// Collators are not safe for concurrent use; build one per ranking pass.
	coll := collate.New(language.AmericanEnglish, collate.IgnoreCase)

	sort.SliceStable(results, func(i, j int) bool {
		ti, tj := tierOf(results[i].Title, q), tierOf(results[j].Title, q)
		if ti != tj {
			return ti < tj
		}
		if ti == tierOther {
			return coll.CompareString(results[i].Title, results[j].Title) < 0
		}
		return false
	})
}

func tierOf(title, lowerQuery string) int {
	t := strings.ToLower(title)
	switch {
	case t == lowerQuery:
		return tierExact
	case strings.HasPrefix(t, lowerQuery):
		return tierPrefix
	default:
		return tierOther
	}
}
