// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import (
	"context"

	tracepkg "github.com/traceweave/tracecore/trace"
)

// SpanProcessor observes the lifecycle of every span a TracerProvider
// produces. A TracerProvider calls OnStart/OnEnd only for spans where
// IsRecording() is true, and only on processors whose corresponding
// IsStartRequired/IsEndRequired predicate holds — so a processor that has
// no use for one of the two hooks can opt out of being called for it.
// Both are called synchronously (OnStart from Tracer.Start, OnEnd from
// Span.End); implementations that need to do expensive work (exporting)
// must hand it off rather than block the caller.
type SpanProcessor interface {
	OnStart(parentCtx context.Context, s tracepkg.Span)
	OnEnd(s SpanSnapshot)
	IsStartRequired() bool
	IsEndRequired() bool
	Shutdown(ctx context.Context) error
	ForceFlush(ctx context.Context) error
}

// simpleSpanProcessor exports every span synchronously on the calling
// goroutine, as soon as it ends. Useful for tests and debugging; real
// deployments want BatchSpanProcessor.
type simpleSpanProcessor struct {
	exporter          SpanExporter
	exportOnlySampled bool
}

// SimpleSpanProcessorOption configures NewSimpleSpanProcessor.
type SimpleSpanProcessorOption func(*simpleSpanProcessor)

// WithExportOnlySampled overrides the default of true. When true, OnEnd
// skips the exporter call for spans whose SpanContext isn't sampled —
// spans that were only ever going to be Record, never RecordAndSampled.
func WithExportOnlySampled(only bool) SimpleSpanProcessorOption {
	return func(p *simpleSpanProcessor) { p.exportOnlySampled = only }
}

// NewSimpleSpanProcessor returns a SpanProcessor that exports each span
// one at a time, synchronously, in OnEnd.
func NewSimpleSpanProcessor(exporter SpanExporter, opts ...SimpleSpanProcessorOption) SpanProcessor {
	p := &simpleSpanProcessor{exporter: exporter, exportOnlySampled: true}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *simpleSpanProcessor) OnStart(context.Context, tracepkg.Span) {}

func (p *simpleSpanProcessor) OnEnd(s SpanSnapshot) {
	if p.exportOnlySampled && !s.SpanContext.IsSampled() {
		return
	}
	_ = p.exporter.ExportSpans(context.Background(), []SpanSnapshot{s})
}

func (p *simpleSpanProcessor) IsStartRequired() bool { return false }
func (p *simpleSpanProcessor) IsEndRequired() bool   { return true }

func (p *simpleSpanProcessor) Shutdown(ctx context.Context) error {
	return p.exporter.Shutdown(ctx)
}

func (p *simpleSpanProcessor) ForceFlush(context.Context) error { return nil }

// multiSpanProcessor fans every call out to a fixed list of
// SpanProcessors, in registration order.
type multiSpanProcessor []SpanProcessor

// NewMultiSpanProcessor composes procs into a single SpanProcessor that
// fans every call out to each of them, in order.
func NewMultiSpanProcessor(procs ...SpanProcessor) SpanProcessor {
	return multiSpanProcessor(procs)
}

func (m multiSpanProcessor) OnStart(ctx context.Context, s tracepkg.Span) {
	for _, p := range m {
		if p.IsStartRequired() {
			p.OnStart(ctx, s)
		}
	}
}

func (m multiSpanProcessor) OnEnd(s SpanSnapshot) {
	for _, p := range m {
		if p.IsEndRequired() {
			p.OnEnd(s)
		}
	}
}

// IsStartRequired reports whether any inner processor needs OnStart —
// the predicates are the OR of the inner predicates.
func (m multiSpanProcessor) IsStartRequired() bool {
	for _, p := range m {
		if p.IsStartRequired() {
			return true
		}
	}
	return false
}

// IsEndRequired reports whether any inner processor needs OnEnd.
func (m multiSpanProcessor) IsEndRequired() bool {
	for _, p := range m {
		if p.IsEndRequired() {
			return true
		}
	}
	return false
}

func (m multiSpanProcessor) Shutdown(ctx context.Context) error {
	var err error
	for _, p := range m {
		if e := p.Shutdown(ctx); e != nil && err == nil {
			err = e
		}
	}
	return err
}

func (m multiSpanProcessor) ForceFlush(ctx context.Context) error {
	var err error
	for _, p := range m {
		if e := p.ForceFlush(ctx); e != nil && err == nil {
			err = e
		}
	}
	return err
}
