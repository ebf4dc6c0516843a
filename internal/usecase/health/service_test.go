package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockContent struct{ err error }

func (m *mockContent) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockContent{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %s, want ok", report.Status)
	}
	if report.Checks["cache"] != CheckOK || report.Checks["content_api"] != CheckOK {
		t.Errorf("checks = %v", report.Checks)
	}
}

func TestCheck_DegradedOnCacheFailure(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("refused")}, &mockContent{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want degraded", report.Status)
	}
	if report.Checks["cache"] != CheckError {
		t.Errorf("cache check = %s, want error", report.Checks["cache"])
	}
}

func TestCheck_DegradedOnContentFailure(t *testing.T) {
	svc := New(&mockPinger{}, &mockContent{err: errors.New("cms down")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want degraded", report.Status)
	}
}

func TestCheck_NilCollaboratorsSkipped(t *testing.T) {
	svc := New(nil, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %s, want ok with no checks", report.Status)
	}
	if len(report.Checks) != 0 {
		t.Errorf("checks = %v, want none", report.Checks)
	}
}
