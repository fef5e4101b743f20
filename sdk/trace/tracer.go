// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	tracepkg "github.com/traceweave/tracecore/trace"

	"github.com/traceweave/tracecore/internal/log"
)

// TracerProvider is the SDK implementation of trace.TracerProvider: it
// owns the TraceConfig, the IDGenerator, the Resource, and the
// registered SpanProcessors, and hands out Tracers that share them.
type TracerProvider struct {
	cfg    atomic.Pointer[TraceConfig]
	idGen  IDGenerator
	res    *Resource

	mu           sync.Mutex
	procs        []SpanProcessor
	tracers      map[InstrumentationLibrary]*tracer
	shutdownOnce sync.Once
	isShutdown   atomic.Bool
}

// TracerProviderOption configures NewTracerProvider.
type TracerProviderOption func(*TracerProvider)

// WithTraceConfig installs an initial TraceConfig, replacing the default.
func WithTraceConfig(cfg TraceConfig) TracerProviderOption {
	return func(p *TracerProvider) { p.cfg.Store(&cfg) }
}

// WithIDGenerator overrides the default random IDGenerator.
func WithIDGenerator(g IDGenerator) TracerProviderOption {
	return func(p *TracerProvider) { p.idGen = g }
}

// WithResource sets the Resource describing the producing entity.
func WithResource(r *Resource) TracerProviderOption {
	return func(p *TracerProvider) { p.res = r }
}

// WithSpanProcessor registers sp, in call order; OnEnd/Shutdown/
// ForceFlush fan out to every registered processor in registration
// order.
func WithSpanProcessor(sp SpanProcessor) TracerProviderOption {
	return func(p *TracerProvider) { p.procs = append(p.procs, sp) }
}

// NewTracerProvider builds a TracerProvider with DefaultTraceConfig, a
// random IDGenerator, and an empty Resource, each overridable by opts.
func NewTracerProvider(opts ...TracerProviderOption) *TracerProvider {
	p := &TracerProvider{
		idGen:   NewIDGenerator(),
		res:     emptyResource,
		tracers: make(map[InstrumentationLibrary]*tracer),
	}
	cfg := DefaultTraceConfig()
	p.cfg.Store(&cfg)
	for _, o := range opts {
		o(p)
	}
	return p
}

// Tracer returns the Tracer for the given instrumentation identity,
// creating and caching it on first use.
func (p *TracerProvider) Tracer(name string, opts ...tracepkg.TracerOption) tracepkg.Tracer {
	version := tracepkg.NewTracerConfig(opts...)
	key := InstrumentationLibrary{Name: name, Version: version}

	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.tracers[key]; ok {
		return t
	}
	t := &tracer{
		provider: p,
		library:  InstrumentationLibrary{Name: name, Version: version},
	}
	p.tracers[key] = t
	return t
}

// Config returns the TracerProvider's current TraceConfig.
func (p *TracerProvider) Config() TraceConfig { return *p.cfg.Load() }

// UpdateConfig atomically replaces the TraceConfig used by every Tracer
// this provider has issued.
func (p *TracerProvider) UpdateConfig(cfg TraceConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	p.cfg.Store(&cfg)
	return nil
}

func (p *TracerProvider) processors() []SpanProcessor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]SpanProcessor(nil), p.procs...)
}

// ForceFlush flushes every registered SpanProcessor, in registration
// order, stopping at the first error.
func (p *TracerProvider) ForceFlush(ctx context.Context) error {
	for _, sp := range p.processors() {
		if err := sp.ForceFlush(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown shuts down every registered SpanProcessor, in registration
// order, and marks the provider as no longer accepting new spans for
// export. Safe to call more than once; only the first call does work.
func (p *TracerProvider) Shutdown(ctx context.Context) error {
	var err error
	p.shutdownOnce.Do(func() {
		p.isShutdown.Store(true)
		for _, sp := range p.processors() {
			if e := sp.Shutdown(ctx); e != nil && err == nil {
				err = e
			}
		}
	})
	return err
}

// tracer is the SDK implementation of trace.Tracer for one
// InstrumentationLibrary.
type tracer struct {
	provider *TracerProvider
	library  InstrumentationLibrary
}

var _ tracepkg.Tracer = (*tracer)(nil)

// Start implements trace.Tracer: it resolves the parent, asks the
// TraceConfig's current Sampler for a decision, allocates identifiers,
// and returns either a live recordingSpan or a non-recording span,
// alongside a context carrying it.
func (t *tracer) Start(ctx context.Context, name string, opts ...tracepkg.SpanStartOption) (context.Context, tracepkg.Span) {
	startTime, attrs, links, kind, newRoot, explicitParent := tracepkg.NewSpanStartConfig(opts...)
	if startTime.IsZero() {
		startTime = time.Now()
	}

	var parent tracepkg.SpanContext
	switch {
	case explicitParent != nil:
		parent = *explicitParent
	case newRoot:
		parent = tracepkg.SpanContext{}
	default:
		parent = tracepkg.SpanContextFromContext(ctx)
	}

	cfg := t.provider.Config()
	traceID, spanID := t.provider.idGen.NewIDs(parent.IsValid(), parent.TraceID())

	result := cfg.Sampler.ShouldSample(SamplingParameters{
		ParentContext: parent,
		TraceID:       traceID,
		Name:          name,
		Kind:          kind,
		Attributes:    attrs,
	})

	flags := tracepkg.TraceFlags(0).WithSampled(result.Decision == RecordAndSampled)
	sc := tracepkg.NewSpanContext(tracepkg.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: flags,
		TraceState: parent.TraceState(),
	})

	if parentSpan, ok := tracepkg.SpanFromContext(ctx).(interface{ addChild() }); ok && parent.IsValid() {
		parentSpan.addChild()
	}

	if result.Decision == NotRecord || t.provider.isShutdown.Load() {
		span := nonRecordingSpan{sc: sc, provider: t.provider}
		return tracepkg.ContextWithSpan(ctx, span), span
	}

	lim := cfg.SpanLimits
	cappedLinks := newEvictedQueue[tracepkg.Link](lim.MaxLinks)
	for _, l := range links {
		if len(l.Attributes) > lim.MaxAttributesPerLink {
			l.TotalAttributeCount = len(l.Attributes)
			l.Attributes = l.Attributes[:lim.MaxAttributesPerLink]
		}
		cappedLinks.add(l)
	}

	attrSet := newCappedAttributes(lim.MaxAttributes, lim.MaxAttributeValueLength)
	attrSet.add(attrs...)
	attrSet.add(result.Attributes...)

	span := &recordingSpan{
		spanContext: sc,
		parent:      parent,
		kind:        kind,
		startTime:   startTime,
		resource:    t.provider.res,
		library:     t.library,
		limits:      lim,
		tracer:      t,
		name:        name,
		attributes:  attrSet,
		events:      newEvictedQueue[tracepkg.Event](lim.MaxEvents),
		links:       cappedLinks,
	}
	log.Debug("trace: started span %q (trace=%s span=%s sampled=%t)", name, traceID.String(), spanID.String(), sc.IsSampled())
	for _, sp := range t.provider.processors() {
		if sp.IsStartRequired() {
			sp.OnStart(ctx, span)
		}
	}
	return tracepkg.ContextWithSpan(ctx, span), span
}
