// Package location defines the static office records behind the locator.
package location

import (
	"strings"

	"github.com/gentledental/siteapi/internal/domain/geo"
)

// Office is one clinic in the chain. Records are loaded once at startup and
// never mutated afterwards.
type Office struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Address     string          `yaml:"address" json:"address"`
	Phone       string          `yaml:"phone" json:"phone"`
	Coordinates geo.Coordinates `yaml:"coordinates" json:"coordinates"`
}

// Ranked is an Office annotated with its distance from a query center.
// The distance is derived per query and never persisted.
type Ranked struct {
	Office
	DistanceMiles float64 `json:"distance_miles"`
}

// City returns the city token: the first comma-separated segment of the
// address, trimmed.
func (o Office) City() string {
	city, _, _ := strings.Cut(o.Address, ",")
	return strings.TrimSpace(city)
}

// State returns the state abbreviation encoded in the last comma-separated
// address segment. Addresses without one default to Massachusetts.
func (o Office) State() string {
	idx := strings.LastIndex(o.Address, ",")
	if idx < 0 {
		return "MA"
	}
	seg := strings.TrimSpace(o.Address[idx+1:])
	if seg == "" {
		return "MA"
	}
	// The segment may carry a zip ("NH 03103"); the abbreviation leads.
	if f := strings.Fields(seg); len(f) > 0 {
		return f[0]
	}
	return "MA"
}

// MatchesQuery reports whether q (already lowercased by the caller or not)
// appears case-insensitively in the office name, address, or phone.
func (o Office) MatchesQuery(q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(o.Name), q) ||
		strings.Contains(strings.ToLower(o.Address), q) ||
		strings.Contains(strings.ToLower(o.Phone), q)
}
