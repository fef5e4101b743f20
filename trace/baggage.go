// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

// Baggage is the key/value data that rides alongside a SpanContext across
// process boundaries. In package propagation, TraceContext and Jaeger
// carry it on the wire; B3, X-Ray and OT-Tracer do not. This file gives
// that data an in-process home on
// context.Context, the same carrier Ctx.withSpan uses.
package trace

import "context"

type baggageKeyType struct{}

var baggageKey = baggageKeyType{}

// baggageMap returns the map stored in ctx, if any, along with whether one
// was present.
func baggageMap(ctx context.Context) (map[string]string, bool) {
	m, ok := ctx.Value(baggageKey).(map[string]string)
	return m, ok
}

// withBaggage returns a copy of ctx carrying m directly, without copying
// it first. Internal callers must pass a map they own exclusively.
func withBaggage(ctx context.Context, m map[string]string) context.Context {
	return context.WithValue(ctx, baggageKey, m)
}

func copyBaggage(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// SetBaggage returns a copy of ctx with key set to value in its baggage.
func SetBaggage(ctx context.Context, key, value string) context.Context {
	m, ok := baggageMap(ctx)
	var next map[string]string
	if ok {
		next = copyBaggage(m)
	} else {
		next = make(map[string]string, 1)
	}
	next[key] = value
	return withBaggage(ctx, next)
}

// Baggage returns the value stored under key in ctx's baggage, and
// whether it was present.
func Baggage(ctx context.Context, key string) (string, bool) {
	m, ok := baggageMap(ctx)
	if !ok {
		return "", false
	}
	v, ok := m[key]
	return v, ok
}

// AllBaggage returns a copy of every baggage entry carried by ctx.
func AllBaggage(ctx context.Context) map[string]string {
	m, ok := baggageMap(ctx)
	if !ok {
		return map[string]string{}
	}
	return copyBaggage(m)
}

// RemoveBaggage returns a copy of ctx with key removed from its baggage.
func RemoveBaggage(ctx context.Context, key string) context.Context {
	m, ok := baggageMap(ctx)
	if !ok {
		return ctx
	}
	next := copyBaggage(m)
	delete(next, key)
	return withBaggage(ctx, next)
}

// ClearBaggage returns a copy of ctx with all baggage removed.
func ClearBaggage(ctx context.Context) context.Context {
	return withBaggage(ctx, map[string]string{})
}
