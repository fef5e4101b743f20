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

// TestW3CRoundTrip exercises Scenario C from the core invariants: a known
// traceparent header round-trips to an equal SpanContext on a fresh
// receiver, with the remote flag set.
func TestW3CRoundTrip(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	p := TraceContext{}
	carrier := MapCarrier{}
	p.Inject(trace.ContextWithSpanContext(context.Background(), sc), carrier)

	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", carrier.Get(traceparentHeader))

	got := trace.SpanContextFromContext(p.Extract(context.Background(), carrier))
	assert.True(t, got.IsValid())
	assert.True(t, got.IsRemote())
	assert.Equal(t, sc.TraceID(), got.TraceID())
	assert.Equal(t, sc.SpanID(), got.SpanID())
	assert.True(t, got.IsSampled())
}

func TestW3CInjectInvalidWritesNothing(t *testing.T) {
	p := TraceContext{}
	carrier := MapCarrier{}
	p.Inject(context.Background(), carrier)
	assert.Empty(t, carrier.Get(traceparentHeader))
}

func TestW3CExtractMalformedLeavesContextUnchanged(t *testing.T) {
	p := TraceContext{}
	carrier := MapCarrier{traceparentHeader: "garbage"}
	got := p.Extract(context.Background(), carrier)
	assert.False(t, trace.SpanContextFromContext(got).IsValid())
}

func TestW3CFutureVersionBestEffort(t *testing.T) {
	p := TraceContext{}
	carrier := MapCarrier{
		traceparentHeader: "01-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01-extra-stuff",
	}
	got := trace.SpanContextFromContext(p.Extract(context.Background(), carrier))
	assert.True(t, got.IsValid())
}

func TestW3CTracestatePreserved(t *testing.T) {
	p := TraceContext{}
	carrier := MapCarrier{
		traceparentHeader: "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01",
		tracestateHeader:  "congo=t61rcWkgMzE,rojo=00f067aa0ba902b7",
	}
	got := trace.SpanContextFromContext(p.Extract(context.Background(), carrier))
	require.True(t, got.IsValid())
	assert.Equal(t, "t61rcWkgMzE", got.TraceState().Get("congo"))
}

func TestW3CBaggageRoundTrips(t *testing.T) {
	p := TraceContext{}
	ctx := trace.SetBaggage(context.Background(), "customer-id", "42")
	ctx = trace.SetBaggage(ctx, "region", "us east")

	carrier := MapCarrier{}
	p.Inject(ctx, carrier)
	assert.NotEmpty(t, carrier.Get(baggageHeader))

	got := p.Extract(context.Background(), carrier)
	v, ok := trace.Baggage(got, "customer-id")
	assert.True(t, ok)
	assert.Equal(t, "42", v)
	v, ok = trace.Baggage(got, "region")
	assert.True(t, ok)
	assert.Equal(t, "us east", v)
}

func TestW3CBaggageAbsentWritesNoHeader(t *testing.T) {
	p := TraceContext{}
	carrier := MapCarrier{}
	p.Inject(context.Background(), carrier)
	assert.Empty(t, carrier.Get(baggageHeader))
}

func TestW3CBaggageMalformedMemberIgnored(t *testing.T) {
	p := TraceContext{}
	carrier := MapCarrier{baggageHeader: "no-equals-sign,key=value"}
	got := p.Extract(context.Background(), carrier)
	assert.Equal(t, map[string]string{"key": "value"}, trace.AllBaggage(got))
}
