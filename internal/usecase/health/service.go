package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	cache   CachePinger
	content ContentChecker
}

// New creates a Service. Either collaborator can be nil (check skipped).
func New(cache CachePinger, content ContentChecker) *Service {
	return &Service{cache: cache, content: content}
}

// Check runs health checks against all configured components. The site stays
// up on a degraded report: both the cache and the content API are soft
// dependencies (search and the locator keep working without them).
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	if s.content != nil {
		if err := s.content.HealthCheck(ctx); err != nil {
			checks["content_api"] = CheckError
		} else {
			checks["content_api"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
