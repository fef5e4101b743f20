// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import "context"

// Tracer creates spans for one InstrumentationLibrary (name, version).
type Tracer interface {
	// Start creates a span named spanName as a child of the span found in
	// ctx (unless overridden by WithNewRoot/WithParentSpanContext), and
	// returns a derived context carrying the new span alongside the span
	// itself. This is the Go realization of the builder chain
	// spanBuilder(name).setParent(...).startSpan(): every builder knob is
	// a SpanStartOption instead of a stateful, single-use builder object.
	Start(ctx context.Context, spanName string, opts ...SpanStartOption) (context.Context, Span)
}

// tracerConfig accumulates TracerOption settings.
type tracerConfig struct {
	instrumentationVersion string
}

// TracerOption configures a TracerProvider.Tracer call.
type TracerOption interface{ applyTracer(*tracerConfig) }

type tracerOptionFunc func(*tracerConfig)

func (f tracerOptionFunc) applyTracer(c *tracerConfig) { f(c) }

// WithInstrumentationVersion sets the version half of the
// InstrumentationLibrary identity.
func WithInstrumentationVersion(v string) TracerOption {
	return tracerOptionFunc(func(c *tracerConfig) { c.instrumentationVersion = v })
}

// NewTracerConfig applies opts and returns the resulting instrumentation
// version.
func NewTracerConfig(opts ...TracerOption) (instrumentationVersion string) {
	var c tracerConfig
	for _, o := range opts {
		o.applyTracer(&c)
	}
	return c.instrumentationVersion
}

// TracerProvider is the entry point instrumented code obtains a Tracer
// from. A TracerProvider returns the same Tracer instance for a repeated
// (name, version) InstrumentationLibrary identity.
type TracerProvider interface {
	Tracer(name string, opts ...TracerOption) Tracer
}
