// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package propagation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traceweave/tracecore/trace"
)

// TestB3ShortTraceIDZeroPadded exercises Scenario D: a short 16-hex-digit
// X-B3-TraceId is zero-padded to the full 32-digit form on extraction.
func TestB3ShortTraceIDZeroPadded(t *testing.T) {
	p := B3{Encoding: B3MultiHeader}
	carrier := MapCarrier{
		b3TraceIDHeader: "ff00000000000000",
		b3SpanIDHeader:  "00f067aa0ba902b7",
		b3SampledHeader: "1",
	}
	got := trace.SpanContextFromContext(p.Extract(context.Background(), carrier))
	require.True(t, got.IsValid())
	assert.Equal(t, "0000000000000000ff00000000000000", got.TraceID().String())
	assert.True(t, got.IsSampled())
	assert.True(t, got.IsRemote())
}

func TestB3MultiInjectRoundTrip(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})

	p := B3{Encoding: B3MultiHeader}
	carrier := MapCarrier{}
	p.Inject(trace.ContextWithSpanContext(context.Background(), sc), carrier)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", carrier.Get(b3TraceIDHeader))
	assert.Equal(t, "00f067aa0ba902b7", carrier.Get(b3SpanIDHeader))
	assert.Equal(t, "1", carrier.Get(b3SampledHeader))

	got := trace.SpanContextFromContext(p.Extract(context.Background(), carrier))
	assert.Equal(t, sc.TraceID(), got.TraceID())
	assert.Equal(t, sc.SpanID(), got.SpanID())
}

func TestB3SingleHeaderRoundTrip(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})

	p := B3{Encoding: B3SingleHeader}
	carrier := MapCarrier{}
	p.Inject(trace.ContextWithSpanContext(context.Background(), sc), carrier)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-1", carrier.Get(b3SingleHeader))

	got := trace.SpanContextFromContext(p.Extract(context.Background(), carrier))
	assert.Equal(t, sc.SpanID(), got.SpanID())
	assert.True(t, got.IsSampled())
}

func TestB3SingleHeaderDebugFlagMeansSampled(t *testing.T) {
	p := B3{}
	carrier := MapCarrier{b3SingleHeader: "4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-d"}
	got := trace.SpanContextFromContext(p.Extract(context.Background(), carrier))
	require.True(t, got.IsValid())
	assert.True(t, got.IsSampled())
}

func TestB3SingleHeaderPreferredOverMulti(t *testing.T) {
	p := B3{}
	carrier := MapCarrier{
		b3SingleHeader:  "4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-1",
		b3TraceIDHeader: "00000000000000000000000000000000",
	}
	got := trace.SpanContextFromContext(p.Extract(context.Background(), carrier))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", got.TraceID().String())
}

func TestB3ExtractMissingHeaderReturnsUnchanged(t *testing.T) {
	p := B3{}
	got := p.Extract(context.Background(), MapCarrier{})
	assert.False(t, trace.SpanContextFromContext(got).IsValid())
}
