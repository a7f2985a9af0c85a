package http

import (
	"context"

	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// WithSpan wraps fn in a child span and tags it with fn's error, if any.
func WithSpan(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	span, ctx := tracer.StartSpanFromContext(ctx, name)
	err := fn(ctx)
	span.Finish(tracer.WithError(err))
	return err
}
