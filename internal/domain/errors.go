package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrLocationNotResolved signals that a locator query matched no office
	// and the geocoder fallback could not place it either.
	ErrLocationNotResolved = errors.New("location query not resolved")
	// ErrContentUnavailable signals a content API (CMS) failure.
	ErrContentUnavailable = errors.New("content api unavailable")
	// ErrGeocodeUnavailable signals a geocoder failure or missing configuration.
	ErrGeocodeUnavailable = errors.New("geocoder unavailable")
	// ErrWidgetTimeout signals that the scheduling widget never became ready
	// within its retry budget.
	ErrWidgetTimeout = errors.New("scheduler widget readiness timeout")
	// ErrInvalidPage signals an out-of-range pagination parameter.
	ErrInvalidPage = errors.New("invalid page parameter")
)
