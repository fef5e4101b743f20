// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package propagation

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/traceweave/tracecore/trace"
)

const (
	traceparentHeader = "traceparent"
	tracestateHeader  = "tracestate"
	baggageHeader     = "baggage"
)

// TraceContext implements the W3C Trace Context propagator:
// `traceparent: 00-<32 hex>-<16 hex>-<2 hex>` plus an opaque `tracestate`,
// and the companion W3C Baggage propagator's `baggage: k1=v1,k2=v2` header.
type TraceContext struct{}

// Fields implements TextMapPropagator.
func (TraceContext) Fields() []string {
	return []string{traceparentHeader, tracestateHeader, baggageHeader}
}

// Inject implements TextMapPropagator.
func (TraceContext) Inject(ctx context.Context, carrier TextMapCarrier) {
	sc := trace.SpanContextFromContext(ctx)
	if sc.IsValid() {
		flags := "00"
		if sc.IsSampled() {
			flags = "01"
		}
		carrier.Set(traceparentHeader, fmt.Sprintf("00-%s-%s-%s", sc.TraceID().String(), sc.SpanID().String(), flags))
		if ts := sc.TraceState().String(); ts != "" {
			carrier.Set(tracestateHeader, ts)
		}
	}
	if baggage := trace.AllBaggage(ctx); len(baggage) > 0 {
		carrier.Set(baggageHeader, encodeW3CBaggage(baggage))
	}
}

// Extract implements TextMapPropagator.
func (TraceContext) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	ctx = decodeW3CBaggage(ctx, carrier.Get(baggageHeader))

	sc, ok := parseTraceparent(carrier.Get(traceparentHeader))
	if !ok {
		return ctx
	}
	if raw := carrier.Get(tracestateHeader); raw != "" {
		if ts, err := trace.ParseTraceState(raw); err == nil {
			sc = sc.WithTraceState(ts)
		}
	}
	return trace.ContextWithSpanContext(ctx, sc)
}

// encodeW3CBaggage renders baggage as the W3C Baggage header's
// comma-separated list of percent-encoded key=value members. Map
// iteration order is undefined, so the result's member order isn't
// stable across calls with the same contents.
func encodeW3CBaggage(baggage map[string]string) string {
	members := make([]string, 0, len(baggage))
	for k, v := range baggage {
		members = append(members, url.QueryEscape(k)+"="+url.QueryEscape(v))
	}
	return strings.Join(members, ",")
}

// decodeW3CBaggage parses a W3C Baggage header value, ignoring any
// member that doesn't have exactly one "=" or fails percent-decoding.
func decodeW3CBaggage(ctx context.Context, header string) context.Context {
	if header == "" {
		return ctx
	}
	for _, member := range strings.Split(header, ",") {
		member = strings.TrimSpace(member)
		kv := strings.SplitN(member, ";", 2)[0] // drop optional metadata
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		k, err := url.QueryUnescape(strings.TrimSpace(parts[0]))
		if err != nil || k == "" {
			continue
		}
		v, err := url.QueryUnescape(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		ctx = trace.SetBaggage(ctx, k, v)
	}
	return ctx
}

// parseTraceparent parses a traceparent header value. Version "00" is
// required; later versions are tolerated with best-effort parsing of the
// first four fields, per spec.
func parseTraceparent(h string) (trace.SpanContext, bool) {
	var zero trace.SpanContext
	if h == "" {
		return zero, false
	}
	parts := strings.Split(h, "-")
	if len(parts) < 4 {
		return zero, false
	}
	ver, traceIDHex, spanIDHex, flagsHex := parts[0], parts[1], parts[2], parts[3]
	if len(ver) != 2 || ver == "ff" {
		return zero, false
	}
	if len(traceIDHex) != 32 || len(spanIDHex) != 16 || len(flagsHex) != 2 {
		return zero, false
	}
	traceID, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil || !traceID.IsValid() {
		return zero, false
	}
	spanID, err := trace.SpanIDFromHex(spanIDHex)
	if err != nil || !spanID.IsValid() {
		return zero, false
	}
	fb, err := hex.DecodeString(flagsHex)
	if err != nil {
		return zero, false
	}
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.TraceFlags(fb[0]),
		Remote:     true,
	}), true
}
