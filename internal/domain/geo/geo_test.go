package geo

import (
	"math"
	"testing"
)

func TestHaversineMiles_ZeroDistance(t *testing.T) {
	p := Coordinates{Lat: 42.3513, Lng: -71.0790}
	if d := HaversineMiles(p, p); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestHaversineMiles_KnownDistance(t *testing.T) {
	// Boston to Manchester NH is roughly 45 miles as the crow flies.
	boston := Coordinates{Lat: 42.3601, Lng: -71.0589}
	manchester := Coordinates{Lat: 42.9956, Lng: -71.4548}

	d := HaversineMiles(boston, manchester)
	if d < 43 || d > 49 {
		t.Errorf("Boston->Manchester = %v miles, want ~45", d)
	}
}

func TestHaversineMiles_Symmetric(t *testing.T) {
	a := Coordinates{Lat: 42.3601, Lng: -71.0589}
	b := Coordinates{Lat: 42.9956, Lng: -71.4548}

	if d1, d2 := HaversineMiles(a, b), HaversineMiles(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("asymmetric distance: %v vs %v", d1, d2)
	}
}

func TestCoordinates_Valid(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinates
		want bool
	}{
		{"boston", Coordinates{42.36, -71.06}, true},
		{"boundary", Coordinates{90, 180}, true},
		{"lat too high", Coordinates{90.1, 0}, false},
		{"lng too low", Coordinates{0, -180.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
