// Package page holds the compiled-in registry of site sections searched by
// the page adapter. The registry is fixed at build time.
package page

import "strings"

// Page describes one navigable site section.
type Page struct {
	ID          string
	Title       string
	Description string
	URL         string
	Keywords    []string
}

// Registry returns the site sections in display order.
func Registry() []Page {
	return registry
}

var registry = []Page{
	{
		ID:          "home",
		Title:       "Home",
		Description: "Gentle Dental: comprehensive dental care for the whole family across Massachusetts and New Hampshire.",
		URL:         "/",
		Keywords:    []string{"dental", "dentist", "home", "gentle dental", "family dentistry"},
	},
	{
		ID:          "offices",
		Title:       "Dental Offices",
		Description: "Find a Gentle Dental office near you with our office locator.",
		URL:         "/dental-offices",
		Keywords:    []string{"dental", "office", "locations", "locator", "near me", "map"},
	},
	{
		ID:          "schedule",
		Title:       "Schedule an Appointment",
		Description: "Book a dental appointment online in minutes.",
		URL:         "/schedule-appointment",
		Keywords:    []string{"appointment", "schedule", "booking", "dentist visit"},
	},
	{
		ID:          "articles",
		Title:       "Articles",
		Description: "Oral health tips, treatment guides, and dental news from our clinicians.",
		URL:         "/articles",
		Keywords:    []string{"articles", "blog", "oral health", "tips", "dental care"},
	},
	{
		ID:          "services",
		Title:       "Dental Services",
		Description: "Cleanings, fillings, crowns, bridges, implants, orthodontics, and emergency dental care.",
		URL:         "/services",
		Keywords:    []string{"services", "cleaning", "filling", "crown", "bridge", "implant", "braces", "emergency"},
	},
}

// Matches reports whether q appears case-insensitively in the page title,
// description, or any keyword.
func (p Page) Matches(q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, kw := range p.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}
