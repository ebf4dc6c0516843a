package locator

import (
	"context"

	"github.com/gentledental/siteapi/internal/domain/geo"
	"github.com/gentledental/siteapi/internal/domain/location"
)

// OfficeSource provides the static office records.
type OfficeSource interface {
	All() []location.Office
}

// Geocoder resolves free-text place queries that match no office record.
// Implementations return domain.ErrLocationNotResolved on a miss.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (geo.Coordinates, error)
}
