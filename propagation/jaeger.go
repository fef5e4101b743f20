// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package propagation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/traceweave/tracecore/trace"
)

const (
	jaegerHeader       = "uber-trace-id"
	jaegerBaggagePrefix = "uberctx-"
)

// Jaeger implements the Jaeger client propagation format:
// `uber-trace-id: traceid:spanid:parentid:flags`. The header name is
// matched case-insensitively, matching every Jaeger client implementation.
type Jaeger struct{}

// Fields implements TextMapPropagator.
func (Jaeger) Fields() []string { return []string{jaegerHeader} }

// Inject implements TextMapPropagator. Alongside the trace header it
// writes every baggage entry carried by ctx as its own `uberctx-<key>`
// header, the convention every Jaeger client library uses.
func (Jaeger) Inject(ctx context.Context, carrier TextMapCarrier) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return
	}
	flags := 0
	if sc.IsSampled() {
		flags = 1
	}
	carrier.Set(jaegerHeader, fmt.Sprintf("%s:%s:0:%d", sc.TraceID().String(), sc.SpanID().String(), flags))
	for k, v := range trace.AllBaggage(ctx) {
		carrier.Set(jaegerBaggagePrefix+k, v)
	}
}

// Extract implements TextMapPropagator. Every `uberctx-<key>` header
// present in carrier is restored as baggage on the returned context,
// independently of whether the trace header itself parses.
func (Jaeger) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	ctx = extractJaegerBaggage(ctx, carrier)

	h := getCaseInsensitive(carrier, jaegerHeader)
	if h == "" {
		return ctx
	}
	parts := strings.Split(h, ":")
	if len(parts) != 4 {
		return ctx
	}
	traceIDHex := zeroPadHex(parts[0], 32)
	if traceIDHex == "" {
		return ctx
	}
	traceID, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil || !traceID.IsValid() {
		return ctx
	}
	spanIDHex := zeroPadHex(parts[1], 16)
	if spanIDHex == "" {
		return ctx
	}
	spanID, err := trace.SpanIDFromHex(spanIDHex)
	if err != nil || !spanID.IsValid() {
		return ctx
	}
	flagsVal, err := strconv.ParseUint(parts[3], 10, 8)
	if err != nil {
		return ctx
	}
	flags := trace.TraceFlags(0).WithSampled(flagsVal&1 == 1)
	return trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID, SpanID: spanID, TraceFlags: flags, Remote: true,
	}))
}

// extractJaegerBaggage returns a copy of ctx with a baggage entry for
// every uberctx-<key> header found in carrier, keyed by what follows the
// prefix and matched case-insensitively, the way Jaeger clients read it
// back on the receiving side.
func extractJaegerBaggage(ctx context.Context, carrier TextMapCarrier) context.Context {
	for _, k := range carrier.Keys() {
		if !strings.HasPrefix(strings.ToLower(k), jaegerBaggagePrefix) {
			continue
		}
		name := k[len(jaegerBaggagePrefix):]
		if name == "" {
			continue
		}
		ctx = trace.SetBaggage(ctx, name, carrier.Get(k))
	}
	return ctx
}

// zeroPadHex left-pads h with zeroes to length n, returning "" if h is
// longer than n or empty.
func zeroPadHex(h string, n int) string {
	if h == "" || len(h) > n {
		return ""
	}
	return strings.Repeat("0", n-len(h)) + h
}

// getCaseInsensitive looks up key against every key in the carrier
// case-insensitively, since Jaeger treats uber-trace-id that way.
func getCaseInsensitive(carrier TextMapCarrier, key string) string {
	if v := carrier.Get(key); v != "" {
		return v
	}
	for _, k := range carrier.Keys() {
		if strings.EqualFold(k, key) {
			return carrier.Get(k)
		}
	}
	return ""
}
