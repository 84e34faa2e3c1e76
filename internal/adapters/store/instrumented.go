// Package store decorates the todo persistence port with a circuit breaker
// and operation metrics. The concrete MongoDB implementation lives in the
// mongodb subpackage.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain"
	"github.com/jsamuelsen11/todo-mongo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-mongo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-mongo-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-mongo-service/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.TodoRepository = (*Instrumented)(nil)
	_ ports.HealthChecker  = (*Instrumented)(nil)
)

const breakerName = "todo-store"

// Operation result labels.
const (
	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultError    = "error"
	resultRejected = "rejected"
)

// Instrumented wraps a TodoRepository. Calls pass through a circuit breaker
// that opens after consecutive persistence failures, and every call records
// db.client.operation metrics.
type Instrumented struct {
	next    ports.TodoRepository
	breaker *gobreaker.CircuitBreaker[struct{}]
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// NewInstrumented wraps next. If metrics is nil, metric recording is skipped.
func NewInstrumented(
	next ports.TodoRepository,
	cfg *config.CircuitBreakerConfig,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *Instrumented {
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: toUint32(cfg.HalfOpenLimit),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.MaxFailures
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Instrumented{
		next:    next,
		breaker: cb,
		metrics: metrics,
		logger:  logger,
	}
}

// List delegates to the wrapped repository.
func (s *Instrumented) List(ctx context.Context) ([]todo.Todo, error) {
	var out []todo.Todo
	err := s.do(ctx, "list", func() error {
		var err error
		out, err = s.next.List(ctx)
		return err
	})
	return out, err
}

// Get delegates to the wrapped repository.
func (s *Instrumented) Get(ctx context.Context, id string) (*todo.Todo, error) {
	var out *todo.Todo
	err := s.do(ctx, "get", func() error {
		var err error
		out, err = s.next.Get(ctx, id)
		return err
	})
	return out, err
}

// Insert delegates to the wrapped repository.
func (s *Instrumented) Insert(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	var out *todo.Todo
	err := s.do(ctx, "insert", func() error {
		var err error
		out, err = s.next.Insert(ctx, t)
		return err
	})
	return out, err
}

// Replace delegates to the wrapped repository.
func (s *Instrumented) Replace(ctx context.Context, id string, t *todo.Todo) (*todo.Todo, error) {
	var out *todo.Todo
	err := s.do(ctx, "replace", func() error {
		var err error
		out, err = s.next.Replace(ctx, id, t)
		return err
	})
	return out, err
}

// Delete delegates to the wrapped repository.
func (s *Instrumented) Delete(ctx context.Context, id string) error {
	return s.do(ctx, "delete", func() error {
		return s.next.Delete(ctx, id)
	})
}

// Name returns the health checker identifier.
func (s *Instrumented) Name() string {
	return breakerName
}

// HealthCheck reports the store's availability from the circuit breaker
// state. No database call is made.
func (s *Instrumented) HealthCheck(_ context.Context) error {
	state := s.breaker.State()
	switch state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", breakerName)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", breakerName)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", breakerName, state)
	}
}

// State returns the current circuit breaker state.
func (s *Instrumented) State() gobreaker.State {
	return s.breaker.State()
}

func (s *Instrumented) do(ctx context.Context, op string, fn func() error) error {
	start := time.Now()

	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})

	result := resultSuccess
	switch {
	case err == nil:
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		result = resultRejected
		err = fmt.Errorf("%s %s: %w: %w", breakerName, op, domain.ErrPersistence, err)
	case errors.Is(err, domain.ErrNotFound):
		result = resultNotFound
	default:
		result = resultError
	}

	s.record(ctx, op, start, result)
	return err
}

func (s *Instrumented) record(ctx context.Context, op string, start time.Time, result string) {
	if s.metrics == nil {
		return
	}

	attrs := metric.WithAttributes(
		telemetry.AttrDBSystem.String("mongodb"),
		telemetry.AttrDBOperation.String(op),
		telemetry.AttrResult.String(result),
	)

	s.metrics.DBOperationDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	s.metrics.DBOperationTotal.Add(ctx, 1, attrs)
}

// countsAsSuccess reports whether err leaves the breaker's failure count
// untouched. Lookups of absent todos and caller cancellations are not store
// failures.
func countsAsSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, context.Canceled)
}

// toUint32 clamps an int to the uint32 range.
func toUint32(v int) uint32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
