// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package propagation

import (
	"context"
	"fmt"
	"strings"

	"github.com/traceweave/tracecore/trace"
)

const (
	b3TraceIDHeader = "X-B3-TraceId"
	b3SpanIDHeader  = "X-B3-SpanId"
	b3SampledHeader = "X-B3-Sampled"
	b3SingleHeader  = "b3"
)

// B3Encoding selects which wire form a B3 propagator emits on Inject.
// Extract always understands both.
type B3Encoding int

const (
	// B3MultiHeader emits X-B3-TraceId/X-B3-SpanId/X-B3-Sampled.
	B3MultiHeader B3Encoding = iota
	// B3SingleHeader emits the single "b3" header.
	B3SingleHeader
)

// B3 implements both the B3 multi-header and B3 single-header formats.
// Extract accepts either; Encoding selects which one Inject writes.
type B3 struct {
	Encoding B3Encoding
}

// Fields implements TextMapPropagator.
func (b B3) Fields() []string {
	if b.Encoding == B3SingleHeader {
		return []string{b3SingleHeader}
	}
	return []string{b3TraceIDHeader, b3SpanIDHeader, b3SampledHeader}
}

// Inject implements TextMapPropagator.
func (b B3) Inject(ctx context.Context, carrier TextMapCarrier) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return
	}
	sampled := "0"
	if sc.IsSampled() {
		sampled = "1"
	}
	if b.Encoding == B3SingleHeader {
		carrier.Set(b3SingleHeader, fmt.Sprintf("%s-%s-%s", sc.TraceID().String(), sc.SpanID().String(), sampled))
		return
	}
	carrier.Set(b3TraceIDHeader, sc.TraceID().String())
	carrier.Set(b3SpanIDHeader, sc.SpanID().String())
	carrier.Set(b3SampledHeader, sampled)
}

// Extract implements TextMapPropagator. It accepts either B3 wire form
// regardless of b.Encoding, trying the single header first.
func (b B3) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	if single := carrier.Get(b3SingleHeader); single != "" {
		if sc, ok := parseB3Single(single); ok {
			return trace.ContextWithSpanContext(ctx, sc)
		}
		return ctx
	}
	traceIDHex := carrier.Get(b3TraceIDHeader)
	spanIDHex := carrier.Get(b3SpanIDHeader)
	if traceIDHex == "" || spanIDHex == "" {
		return ctx
	}
	traceID, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil || !traceID.IsValid() {
		return ctx
	}
	spanID, err := trace.SpanIDFromHex(spanIDHex)
	if err != nil || !spanID.IsValid() {
		return ctx
	}
	flags := trace.TraceFlags(0).WithSampled(parseB3Sampled(carrier.Get(b3SampledHeader)))
	return trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID, SpanID: spanID, TraceFlags: flags, Remote: true,
	}))
}

func parseB3Sampled(s string) bool {
	switch s {
	case "1", "true":
		return true
	default:
		return false
	}
}

// parseB3Single parses the "b3: {traceId}-{spanId}-{sampled}[-{parentId}]"
// single-header form. The sampled position also accepts the literal "d"
// (debug), which per spec is treated as sampled=true.
func parseB3Single(h string) (trace.SpanContext, bool) {
	var zero trace.SpanContext
	parts := strings.Split(h, "-")
	if len(parts) < 2 || len(parts) > 4 {
		return zero, false
	}
	traceID, err := trace.TraceIDFromHex(parts[0])
	if err != nil || !traceID.IsValid() {
		return zero, false
	}
	spanID, err := trace.SpanIDFromHex(parts[1])
	if err != nil || !spanID.IsValid() {
		return zero, false
	}
	sampled := false
	if len(parts) >= 3 {
		switch parts[2] {
		case "1", "d":
			sampled = true
		case "0":
			sampled = false
		default:
			return zero, false
		}
	}
	flags := trace.TraceFlags(0).WithSampled(sampled)
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID, SpanID: spanID, TraceFlags: flags, Remote: true,
	}), true
}
