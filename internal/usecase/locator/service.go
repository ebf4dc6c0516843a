// Package locator implements the office locator: radius filtering over the
// static office list and query-to-center resolution shared with the search
// results URL contract.
package locator

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gentledental/siteapi/internal/domain/geo"
	"github.com/gentledental/siteapi/internal/domain/location"
)

// View is the locator page state for one query.
type View struct {
	Query       string            `json:"query"`
	RadiusMiles float64           `json:"radius_miles"`
	Resolved    bool              `json:"resolved"`
	Center      *geo.Coordinates  `json:"center,omitempty"`
	Offices     []location.Ranked `json:"offices"`
	Suggestions []string          `json:"suggestions,omitempty"`
}

// Service handles locator queries.
type Service struct {
	offices        OfficeSource
	geocoder       Geocoder
	defaultRadius  float64
	maxSuggestions int
	logger         *zap.Logger
}

// New creates a locator service. geocoder may be nil (fallback disabled).
func New(offices OfficeSource, geocoder Geocoder, defaultRadiusMiles float64, logger *zap.Logger) *Service {
	return &Service{
		offices:        offices,
		geocoder:       geocoder,
		defaultRadius:  defaultRadiusMiles,
		maxSuggestions: 3,
		logger:         logger,
	}
}

// WithMaxSuggestions overrides the "did you mean" suggestion cap.
func (s *Service) WithMaxSuggestions(n int) *Service {
	if n > 0 {
		s.maxSuggestions = n
	}
	return s
}

// Locate resolves a locator query to a filtered office view.
// Empty query: every office, dataset order. Resolved query: offices within the
// radius, nearest first. Unresolved query (record miss and geocoder miss or
// failure): the full unfiltered list plus up to maxSuggestions name
// suggestions — never an empty view.
func (s *Service) Locate(ctx context.Context, query string, radiusMiles float64) View {
	if radiusMiles <= 0 {
		radiusMiles = s.defaultRadius
	}
	all := s.offices.All()

	query = strings.TrimSpace(query)
	if query == "" {
		return View{RadiusMiles: radiusMiles, Offices: unranked(all)}
	}

	view := View{Query: query, RadiusMiles: radiusMiles}

	center, ok := ResolveQueryToCenter(query, all)
	if !ok && s.geocoder != nil {
		geocoded, err := s.geocoder.Geocode(ctx, query)
		if err != nil {
			s.logger.Info("geocode fallback failed",
				zap.String("query", query),
				zap.Error(err),
			)
		} else {
			center, ok = geocoded, true
		}
	}

	if !ok {
		view.Offices = unranked(all)
		view.Suggestions = s.suggest(query, all)
		return view
	}

	view.Resolved = true
	view.Center = &center
	view.Offices = FilterByRadius(center, radiusMiles, all)
	return view
}

// FilterByRadius returns every office within radiusMiles of center, annotated
// with distance and ordered nearest first. The sort is stable: offices at
// equal distance keep their dataset order. Pure function; inputs are not
// validated — garbage in yields an empty or meaningless, but non-crashing,
// result.
func FilterByRadius(center geo.Coordinates, radiusMiles float64, records []location.Office) []location.Ranked {
	out := make([]location.Ranked, 0, len(records))
	for _, o := range records {
		d := geo.HaversineMiles(center, o.Coordinates)
		if d <= radiusMiles {
			out = append(out, location.Ranked{Office: o, DistanceMiles: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceMiles < out[j].DistanceMiles
	})
	return out
}

// ResolveQueryToCenter maps a free-text query to the coordinates of the first
// matching office. Three strategies run in order; the first that matches any
// record wins, taking the earliest record in dataset order:
//  1. case-insensitive substring of the office name,
//  2. case-insensitive substring of the address,
//  3. bidirectional substring against the city token (first comma-separated
//     address segment).
func ResolveQueryToCenter(query string, records []location.Office) (geo.Coordinates, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return geo.Coordinates{}, false
	}

	for _, o := range records {
		if strings.Contains(strings.ToLower(o.Name), q) {
			return o.Coordinates, true
		}
	}
	for _, o := range records {
		if strings.Contains(strings.ToLower(o.Address), q) {
			return o.Coordinates, true
		}
	}
	for _, o := range records {
		city := strings.ToLower(o.City())
		if city == "" {
			continue
		}
		if strings.Contains(city, q) || strings.Contains(q, city) {
			return o.Coordinates, true
		}
	}
	return geo.Coordinates{}, false
}

// suggest collects up to maxSuggestions office names whose name or address
// shares a word (3+ chars) with the unresolved query.
func (s *Service) suggest(query string, records []location.Office) []string {
	words := make([]string, 0, 4)
	for _, w := range strings.Fields(strings.ToLower(query)) {
		w = strings.Trim(w, ",.")
		if len(w) >= 3 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil
	}

	var out []string
	for _, o := range records {
		name := strings.ToLower(o.Name)
		addr := strings.ToLower(o.Address)
		for _, w := range words {
			if strings.Contains(name, w) || strings.Contains(addr, w) {
				out = append(out, o.Name)
				break
			}
		}
		if len(out) == s.maxSuggestions {
			break
		}
	}
	return out
}

func unranked(records []location.Office) []location.Ranked {
	out := make([]location.Ranked, len(records))
	for i, o := range records {
		out[i] = location.Ranked{Office: o}
	}
	return out
}
