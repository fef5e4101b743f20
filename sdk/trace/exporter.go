// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import "context"

// SpanExporter sends a batch of ended spans to some external sink. No
// concrete wire-format exporter (OTLP, Jaeger, Zipkin) ships in this
// package; that encoding is the concern of the component that imports
// it.
type SpanExporter interface {
	// ExportSpans exports spans. Implementations must not retain spans
	// after the call returns, and must return promptly when ctx is done.
	ExportSpans(ctx context.Context, spans []SpanSnapshot) error

	// Shutdown releases any resources held by the exporter. Subsequent
	// calls to ExportSpans are not guaranteed to succeed.
	Shutdown(ctx context.Context) error
}
