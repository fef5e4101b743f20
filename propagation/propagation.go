// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

// Package propagation implements context propagation across process
// boundaries: a carrier abstraction plus the wire-format codecs that
// translate a trace.SpanContext to and from it.
package propagation

import (
	"context"

	"github.com/traceweave/tracecore/trace"
)

// TextMapCarrier abstracts a string key/value store a propagator injects
// into or extracts from — HTTP headers, message metadata, or anything
// else shaped like one.
type TextMapCarrier interface {
	Get(key string) string
	Set(key, value string)
	Keys() []string
}

// MapCarrier is a TextMapCarrier backed directly by a map, useful in
// tests and for transports with no natural multi-valued header type.
type MapCarrier map[string]string

// Get implements TextMapCarrier.
func (c MapCarrier) Get(key string) string { return c[key] }

// Set implements TextMapCarrier.
func (c MapCarrier) Set(key, value string) { c[key] = value }

// Keys implements TextMapCarrier.
func (c MapCarrier) Keys() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	return out
}

// TextMapPropagator injects a trace.SpanContext into, and extracts one
// from, a TextMapCarrier. Extract never fails outwardly: a carrier with no
// valid SpanContext adds no SpanContext to ctx, and Inject on an invalid
// SpanContext writes no trace-identity headers. Baggage is not gated on
// the SpanContext: TraceContext writes its baggage header even for an
// invalid SpanContext, and TraceContext and Jaeger restore baggage from a
// carrier that holds no valid SpanContext.
type TextMapPropagator interface {
	Inject(ctx context.Context, carrier TextMapCarrier)
	Extract(ctx context.Context, carrier TextMapCarrier) context.Context
	Fields() []string
}

// compositeTextMapPropagator injects with every inner propagator and
// extracts by trying each in order until one yields a valid SpanContext.
type compositeTextMapPropagator []TextMapPropagator

// NewCompositeTextMapPropagator composes ps into a single
// TextMapPropagator: Inject runs every inner propagator; Extract stops at
// the first one that produces a valid SpanContext.
func NewCompositeTextMapPropagator(ps ...TextMapPropagator) TextMapPropagator {
	return compositeTextMapPropagator(ps)
}

func (c compositeTextMapPropagator) Inject(ctx context.Context, carrier TextMapCarrier) {
	for _, p := range c {
		p.Inject(ctx, carrier)
	}
}

func (c compositeTextMapPropagator) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	for _, p := range c {
		next := p.Extract(ctx, carrier)
		if trace.SpanContextFromContext(next).IsValid() {
			return next
		}
	}
	return ctx
}

func (c compositeTextMapPropagator) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, p := range c {
		for _, f := range p.Fields() {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	return fields
}
