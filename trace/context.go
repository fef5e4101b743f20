// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import "context"

// spanContextKeyType is the typed key under which the current Span is
// stored in a context.Context. Using an unexported type as the key, the
// way the standard library itself recommends, keeps collisions with
// unrelated packages impossible.
type spanContextKeyType struct{}

var spanKey = spanContextKeyType{}

// ContextWithSpan returns a copy of parent carrying span as the current
// span. This is the Go realization of the spec's Ctx.withSpan: explicit,
// immutable, and chainable, with no hidden global slot to mutate.
func ContextWithSpan(parent context.Context, span Span) context.Context {
	return context.WithValue(parent, spanKey, span)
}

// ContextWithSpanContext returns a copy of parent carrying a non-recording
// span whose identity is sc. Propagators use this to thread an extracted
// remote SpanContext through to Tracer.Start without fabricating a live
// Span.
func ContextWithSpanContext(parent context.Context, sc SpanContext) context.Context {
	return ContextWithSpan(parent, nonRecordingSpan{sc: sc})
}

// SpanFromContext returns the current span carried by ctx, or a non-op,
// invalid Span if none is present — the spec's "getSpan() returns a no-op
// invalid Span if none" guarantee.
func SpanFromContext(ctx context.Context) Span {
	if ctx == nil {
		return noopSpan{}
	}
	if s, ok := ctx.Value(spanKey).(Span); ok && s != nil {
		return s
	}
	return noopSpan{}
}

// SpanContextFromContext is a convenience for
// SpanFromContext(ctx).SpanContext().
func SpanContextFromContext(ctx context.Context) SpanContext {
	return SpanFromContext(ctx).SpanContext()
}

// Activate returns ctx unchanged along with a detach closure. Go's
// explicit context passing has no global "current" stack to push onto, so
// there is no token to violate by detaching out of order — the returned
// closure exists only so call sites that expect an attach/detach pair (per
// the spec's §4.2 Ctx contract) have one, at zero cost. Resolves the open
// question of how to realize a Java-style thread-local attach/detach in a
// language with no thread-locals: pass ctx explicitly instead.
func Activate(ctx context.Context) (context.Context, func()) {
	return ctx, func() {}
}

// Wrap returns a closure that invokes fn with ctx as its ambient context.
// This is the "propagation helper" the spec's design notes call for in
// host languages lacking task-local storage: instrumentation that must
// cross a goroutine boundary calls Wrap instead of relying on an implicit
// current-context lookup.
func Wrap(ctx context.Context, fn func(context.Context)) func() {
	return func() { fn(ctx) }
}

// nonRecordingSpan carries only identity; every mutating method is a
// no-op and IsRecording is always false. Used for spans materialized from
// a propagated SpanContext, and as the base for noopSpan.
type nonRecordingSpan struct{ sc SpanContext }

func (s nonRecordingSpan) SpanContext() SpanContext { return s.sc }
func (s nonRecordingSpan) IsRecording() bool         { return false }
func (s nonRecordingSpan) SetStatus(StatusCode, string) {}
func (s nonRecordingSpan) SetName(string)               {}
func (s nonRecordingSpan) SetAttributes(...KeyValue)    {}
func (s nonRecordingSpan) AddEvent(string, ...EventOption) {}
func (s nonRecordingSpan) RecordError(error, ...EventOption) {}
func (s nonRecordingSpan) TracerProvider() TracerProvider { return noopTracerProvider{} }
func (s nonRecordingSpan) End(...SpanEndOption)           {}

// noopSpan is the invalid, non-recording Span returned when no span is
// present in a context.
type noopSpan struct{ nonRecordingSpan }

// noopTracer/noopTracerProvider let a consumer call trace package APIs
// safely before any real TracerProvider is installed.
type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string, _ ...SpanStartOption) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopTracerProvider struct{}

func (noopTracerProvider) Tracer(string, ...TracerOption) Tracer { return noopTracer{} }

// NoopTracerProvider returns a TracerProvider whose Tracers produce only
// non-recording spans. Useful as a safe default before Start is called.
func NoopTracerProvider() TracerProvider { return noopTracerProvider{} }
