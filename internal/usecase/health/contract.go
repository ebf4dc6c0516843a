package health

import "context"

// CachePinger checks cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// ContentChecker checks content API availability.
type ContentChecker interface {
	HealthCheck(ctx context.Context) error
}
