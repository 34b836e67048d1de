// Package pipeline runs an ordered list of stages over one shared request
// context, stopping at the first stage that fails.
package pipeline

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/hackforge/hackathon-service/pkg/util/errorutil"
)

// Stage is one named step. Run mutates the shared context or returns an error.
type Stage[C any] struct {
	Name string
	Run  func(ctx context.Context, c *C) error
}

// FailureHook observes the stage that stopped a run.
type FailureHook[C any] func(ctx context.Context, c *C, stage string, err error)

// Executor runs stage lists for one pipeline kind.
type Executor[C any] struct {
	name      string
	tracer    trace.Tracer
	onFailure FailureHook[C]
}

// Option configures an Executor.
type Option[C any] func(*Executor[C])

// WithTracer overrides the global tracer.
func WithTracer[C any](t trace.Tracer) Option[C] {
	return func(e *Executor[C]) { e.tracer = t }
}

// WithFailureHook registers a callback invoked when a stage fails.
func WithFailureHook[C any](h FailureHook[C]) Option[C] {
	return func(e *Executor[C]) { e.onFailure = h }
}

// NewExecutor creates an executor. name prefixes stage span names.
func NewExecutor[C any](name string, opts ...Option[C]) *Executor[C] {
	e := &Executor[C]{name: name}
	for _, opt := range opts {
		opt(e)
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer("github.com/hackforge/hackathon-service/internal/pipeline")
	}
	return e
}

// Run executes stages in order. The first error is returned as-is; later
// stages never run.
func (e *Executor[C]) Run(ctx context.Context, c *C, stages ...Stage[C]) error {
	for _, stage := range stages {
		if err := e.runStage(ctx, c, stage); err != nil {
			if e.onFailure != nil {
				e.onFailure(ctx, c, stage.Name, err)
			}
			return err
		}
	}
	return nil
}

func (e *Executor[C]) runStage(ctx context.Context, c *C, stage Stage[C]) (err error) {
	ctx, span := e.tracer.Start(ctx, e.name+"."+stage.Name,
		trace.WithAttributes(attribute.String("pipeline.stage", stage.Name)))
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewInternalError(fmt.Errorf("stage %s panicked: %v", stage.Name, r))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	return stage.Run(ctx, c)
}
