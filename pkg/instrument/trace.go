package instrument

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/swapcell-dev/swapcell"
)

// Default tracer name for instrumented cells.
const defaultTracerName = "swapcell"

// TraceConfig configures traced cell updates.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "swapcell").
	TracerName string

	// SpanName is the name of the update span (default: "swapcell.update").
	SpanName string

	// Attributes are added to every update span.
	Attributes []attribute.KeyValue
}

// TraceOption configures traced cell updates.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithSpanName sets the span name.
func WithSpanName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.SpanName = name
	}
}

// WithAttributes adds attributes to every update span.
func WithAttributes(attrs ...attribute.KeyValue) TraceOption {
	return func(c *TraceConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// defaultTraceConfig returns the default trace configuration.
func defaultTraceConfig() TraceConfig {
	return TraceConfig{
		TracerName: defaultTracerName,
		SpanName:   "swapcell.update",
	}
}

// Update performs a scoped update on cell inside an OpenTelemetry span
// covering the full clone/mutate/commit cycle. The span context is passed
// to fn so nested work can attach child spans.
//
// Like swapcell.Cell.Update, the writeback is guaranteed on every exit
// path: a panic unwinding out of fn still commits, and the span records
// the panic as an error before it propagates.
func Update[T any](ctx context.Context, cell *swapcell.Cell[T], fn func(context.Context, *T), opts ...TraceOption) {
	config := defaultTraceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	tracer := otel.Tracer(config.TracerName)
	ctx, span := tracer.Start(ctx, config.SpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(config.Attributes...),
	)
	defer func() {
		if r := recover(); r != nil {
			span.SetStatus(codes.Error, fmt.Sprint(r))
			span.End()
			panic(r)
		}
		span.End()
	}()

	cell.Update(func(v *T) {
		fn(ctx, v)
	})
}
