// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import "github.com/traceweave/tracecore/trace"

// Resource describes the entity producing spans: a service, its
// deployment environment, version, and any other process-wide attributes.
// A Resource is immutable once built.
type Resource struct {
	attrs []trace.KeyValue
}

// NewResource builds a Resource from attrs, last-write-wins on duplicate
// keys.
func NewResource(attrs ...trace.KeyValue) *Resource {
	seen := make(map[string]int, len(attrs))
	out := make([]trace.KeyValue, 0, len(attrs))
	for _, kv := range attrs {
		if i, ok := seen[kv.Key]; ok {
			out[i] = kv
			continue
		}
		seen[kv.Key] = len(out)
		out = append(out, kv)
	}
	return &Resource{attrs: out}
}

// Attributes returns a copy of the Resource's attributes.
func (r *Resource) Attributes() []trace.KeyValue {
	if r == nil {
		return nil
	}
	return append([]trace.KeyValue(nil), r.attrs...)
}

// emptyResource is used when a TracerProvider is built without
// WithResource.
var emptyResource = NewResource()

// InstrumentationLibrary identifies the instrumentation (not the traced
// application) that produced a span: typically the name and version of
// the library calling Tracer.Start.
type InstrumentationLibrary struct {
	Name    string
	Version string
}
