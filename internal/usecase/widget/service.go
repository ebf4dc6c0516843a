// Package widget drives the third-party scheduling widget's readiness
// handshake: load the embed script, wait for its global constructor, wait for
// its custom element to mount, then force the element visible. The widget
// itself is an opaque collaborator behind the Probes contract.
package widget

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gentledental/siteapi/internal/domain"
)

// State is one phase of the readiness handshake.
type State string

const (
	// StateNotStarted is the initial state.
	StateNotStarted State = "not-started"
	// StateLoadingScript covers the embed script load.
	StateLoadingScript State = "loading-script"
	// StateAwaitingConstructor covers polling for the global constructor.
	StateAwaitingConstructor State = "awaiting-constructor"
	// StateAwaitingElement covers polling for the mounted custom element.
	StateAwaitingElement State = "awaiting-dom-element"
	// StateReady is terminal success.
	StateReady State = "ready"
	// StateFailed is terminal failure (a transition exhausted its budget).
	StateFailed State = "failed"
)

// Probes is the widget-side contract the state machine polls.
type Probes interface {
	// LoadScript injects the embed script. Called once per AwaitReady.
	LoadScript(ctx context.Context) error
	// ConstructorPresent reports whether the widget's global constructor exists.
	ConstructorPresent(ctx context.Context) bool
	// ElementMounted reports whether the widget's custom element is in the DOM.
	ElementMounted(ctx context.Context) bool
	// ForceVisible patches the mounted element's visibility.
	ForceVisible(ctx context.Context) error
}

// Service runs the readiness state machine. Each polling transition gets the
// same fixed budget: maxAttempts probes, interval apart, no backoff.
type Service struct {
	probes      Probes
	maxAttempts int
	interval    time.Duration
	logger      *zap.Logger

	mu    sync.Mutex
	state State
}

// New creates a widget readiness service with the default budget
// (20 attempts, 250ms apart, per transition).
func New(probes Probes, logger *zap.Logger) *Service {
	return &Service{
		probes:      probes,
		maxAttempts: 20,
		interval:    250 * time.Millisecond,
		logger:      logger,
		state:       StateNotStarted,
	}
}

// WithBudget overrides the per-transition retry budget.
func (s *Service) WithBudget(maxAttempts int, interval time.Duration) *Service {
	if maxAttempts > 0 {
		s.maxAttempts = maxAttempts
	}
	if interval > 0 {
		s.interval = interval
	}
	return s
}

// State returns the current state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Service) setState(next State) {
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	s.logger.Debug("widget state transition", zap.String("state", string(next)))
}

// AwaitReady runs the handshake to completion. It resolves nil once the
// widget is ready, or domain.ErrWidgetTimeout after a transition exhausts
// its retry budget. Context cancellation aborts immediately.
func (s *Service) AwaitReady(ctx context.Context) error {
	s.setState(StateLoadingScript)
	if err := s.probes.LoadScript(ctx); err != nil {
		s.setState(StateFailed)
		return fmt.Errorf("load widget script: %w", err)
	}

	s.setState(StateAwaitingConstructor)
	if err := s.poll(ctx, s.probes.ConstructorPresent); err != nil {
		s.setState(StateFailed)
		return fmt.Errorf("await widget constructor: %w", err)
	}

	s.setState(StateAwaitingElement)
	if err := s.poll(ctx, s.probes.ElementMounted); err != nil {
		s.setState(StateFailed)
		return fmt.Errorf("await widget element: %w", err)
	}

	if err := s.probes.ForceVisible(ctx); err != nil {
		s.setState(StateFailed)
		return fmt.Errorf("force widget visible: %w", err)
	}

	s.setState(StateReady)
	return nil
}

// poll probes the condition up to maxAttempts times, interval apart.
func (s *Service) poll(ctx context.Context, cond func(context.Context) bool) error {
	if cond(ctx) {
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for attempt := 1; attempt < s.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if cond(ctx) {
				return nil
			}
		}
	}
	return fmt.Errorf("%d attempts exhausted: %w", s.maxAttempts, domain.ErrWidgetTimeout)
}
