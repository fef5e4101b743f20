// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanFromContextNoneReturnsNoop(t *testing.T) {
	s := SpanFromContext(context.Background())
	assert.False(t, s.IsRecording())
	assert.False(t, s.SpanContext().IsValid())
}

func TestSpanFromContextNilContext(t *testing.T) {
	s := SpanFromContext(nil) //nolint:staticcheck
	assert.False(t, s.IsRecording())
}

func TestContextWithSpanRoundTrip(t *testing.T) {
	traceID, _ := TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := SpanIDFromHex("00f067aa0ba902b7")
	sc := NewSpanContext(SpanContextConfig{TraceID: traceID, SpanID: spanID})
	span := nonRecordingSpan{sc: sc}

	ctx := ContextWithSpan(context.Background(), span)
	got := SpanFromContext(ctx)
	assert.Equal(t, sc, got.SpanContext())
}

func TestContextWithSpanContext(t *testing.T) {
	traceID, _ := TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := SpanIDFromHex("00f067aa0ba902b7")
	sc := NewSpanContext(SpanContextConfig{TraceID: traceID, SpanID: spanID})

	ctx := ContextWithSpanContext(context.Background(), sc)
	got := SpanContextFromContext(ctx)
	assert.Equal(t, sc, got)
	assert.False(t, SpanFromContext(ctx).IsRecording())
}

func TestActivateReturnsUsableDetach(t *testing.T) {
	ctx := context.WithValue(context.Background(), struct{}{}, "v")
	got, detach := Activate(ctx)
	assert.Equal(t, ctx, got)
	assert.NotPanics(t, detach)
}

func TestWrapCarriesContextAcrossBoundary(t *testing.T) {
	traceID, _ := TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := SpanIDFromHex("00f067aa0ba902b7")
	sc := NewSpanContext(SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := ContextWithSpanContext(context.Background(), sc)

	var observed SpanContext
	fn := Wrap(ctx, func(c context.Context) {
		observed = SpanContextFromContext(c)
	})
	fn()
	assert.Equal(t, sc, observed)
}

func TestNoopTracerProviderProducesNonRecordingSpans(t *testing.T) {
	tp := NoopTracerProvider()
	tracer := tp.Tracer("test")
	_, span := tracer.Start(context.Background(), "op")
	assert.False(t, span.IsRecording())
	assert.Equal(t, tp, span.TracerProvider())
}

func TestNonRecordingSpanMutatorsAreNoops(t *testing.T) {
	span := noopSpan{}
	assert.NotPanics(t, func() {
		span.SetStatus(StatusError, "boom")
		span.SetName("renamed")
		span.SetAttributes(String("k", "v"))
		span.AddEvent("ev")
		span.RecordError(nil)
		span.End()
	})
	assert.False(t, span.IsRecording())
}
