package page

import "testing"

func TestRegistry_NotEmpty(t *testing.T) {
	pages := Registry()
	if len(pages) == 0 {
		t.Fatal("registry is empty")
	}
	seen := make(map[string]bool, len(pages))
	for _, p := range pages {
		if p.ID == "" || p.Title == "" || p.URL == "" {
			t.Errorf("incomplete page entry: %+v", p)
		}
		if seen[p.ID] {
			t.Errorf("duplicate page id %q", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestPage_Matches(t *testing.T) {
	p := Page{
		Title:       "Dental Offices",
		Description: "Find an office near you.",
		Keywords:    []string{"locator", "map"},
	}

	tests := []struct {
		q    string
		want bool
	}{
		{"dental", true},
		{"OFFICE", true},
		{"near you", true},
		{"locator", true},
		{"map", true},
		{"insurance", false},
	}

	for _, tt := range tests {
		if got := p.Matches(tt.q); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestRegistry_DentalMatchesExist(t *testing.T) {
	// Several sections must match "dental" so federated search always has
	// page hits alongside office hits for that query.
	count := 0
	for _, p := range Registry() {
		if p.Matches("dental") {
			count++
		}
	}
	if count == 0 {
		t.Error("no registry pages match \"dental\"")
	}
}
