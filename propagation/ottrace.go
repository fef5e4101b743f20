// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package propagation

import (
	"context"

	"github.com/traceweave/tracecore/trace"
)

const (
	otTraceIDHeader = "ot-tracer-traceid"
	otSpanIDHeader  = "ot-tracer-spanid"
	otSampledHeader = "ot-tracer-sampled"
)

// OTTrace implements the OT-Tracer / Lightstep propagation format: three
// headers, ot-tracer-traceid/ot-tracer-spanid/ot-tracer-sampled, the
// latter a literal "true"/"false". Lightstep uses the identical wire
// format, so it is exposed only as an alias constructor.
type OTTrace struct{}

// Lightstep returns an OTTrace propagator; Lightstep and OT-Tracer share
// the same three-header wire format.
func Lightstep() OTTrace { return OTTrace{} }

// Fields implements TextMapPropagator.
func (OTTrace) Fields() []string {
	return []string{otTraceIDHeader, otSpanIDHeader, otSampledHeader}
}

// Inject implements TextMapPropagator.
func (OTTrace) Inject(ctx context.Context, carrier TextMapCarrier) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return
	}
	carrier.Set(otTraceIDHeader, sc.TraceID().String())
	carrier.Set(otSpanIDHeader, sc.SpanID().String())
	sampled := "false"
	if sc.IsSampled() {
		sampled = "true"
	}
	carrier.Set(otSampledHeader, sampled)
}

// Extract implements TextMapPropagator.
func (OTTrace) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	traceIDHex := carrier.Get(otTraceIDHeader)
	spanIDHex := carrier.Get(otSpanIDHeader)
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
	flags := trace.TraceFlags(0).WithSampled(carrier.Get(otSampledHeader) == "true")
	return trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID, SpanID: spanID, TraceFlags: flags, Remote: true,
	}))
}
