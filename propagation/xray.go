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

const xrayHeader = "X-Amzn-Trace-Id"

// XRay implements the AWS X-Ray propagation format: a semicolon-separated
// `Root=1-<8hex>-<24hex>;Parent=<16hex>;Sampled=0|1` header.
type XRay struct{}

// Fields implements TextMapPropagator.
func (XRay) Fields() []string { return []string{xrayHeader} }

// Inject implements TextMapPropagator.
func (XRay) Inject(ctx context.Context, carrier TextMapCarrier) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return
	}
	full := sc.TraceID().String()
	root := fmt.Sprintf("1-%s-%s", full[:8], full[8:])
	sampled := "0"
	if sc.IsSampled() {
		sampled = "1"
	}
	carrier.Set(xrayHeader, fmt.Sprintf("Root=%s;Parent=%s;Sampled=%s", root, sc.SpanID().String(), sampled))
}

// Extract implements TextMapPropagator.
func (XRay) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	h := carrier.Get(xrayHeader)
	if h == "" {
		return ctx
	}
	var root, parent, sampledRaw string
	for _, kv := range strings.Split(h, ";") {
		parts := strings.SplitN(strings.TrimSpace(kv), "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "Root":
			root = parts[1]
		case "Parent":
			parent = parts[1]
		case "Sampled":
			sampledRaw = parts[1]
		}
	}
	rp := strings.Split(root, "-")
	if len(rp) != 3 || rp[0] != "1" || len(rp[1]) != 8 || len(rp[2]) != 24 {
		return ctx
	}
	traceID, err := trace.TraceIDFromHex(rp[1] + rp[2])
	if err != nil || !traceID.IsValid() {
		return ctx
	}
	if parent == "" {
		return ctx
	}
	spanID, err := trace.SpanIDFromHex(parent)
	if err != nil || !spanID.IsValid() {
		return ctx
	}
	flags := trace.TraceFlags(0).WithSampled(sampledRaw == "1")
	return trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID, SpanID: spanID, TraceFlags: flags, Remote: true,
	}))
}
