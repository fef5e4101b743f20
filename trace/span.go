// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import "time"

// SpanKind describes the relationship between a Span and its surrounding
// activity.
type SpanKind int

const (
	// SpanKindInternal is the default: a span with no cross-process edge.
	SpanKindInternal SpanKind = iota
	SpanKindServer
	SpanKindClient
	SpanKindProducer
	SpanKindConsumer
)

func (k SpanKind) String() string {
	switch k {
	case SpanKindServer:
		return "server"
	case SpanKindClient:
		return "client"
	case SpanKindProducer:
		return "producer"
	case SpanKindConsumer:
		return "consumer"
	default:
		return "internal"
	}
}

// StatusCode is the canonical outcome of a span. The zero value, StatusOK,
// is the default for a span that never calls SetStatus.
type StatusCode int

const (
	StatusOK StatusCode = iota
	StatusError
)

// Status is the (canonicalCode, description) pair attached to a span.
// SetStatus is last-write-wins.
type Status struct {
	Code        StatusCode
	Description string
}

// Event is a timestamped annotation attached to a span.
type Event struct {
	Name                  string
	Time                  time.Time
	Attributes            []KeyValue
	TotalAttributeCount   int // >= len(Attributes); pre-truncation cardinality
}

// Link associates a span with another SpanContext established before the
// span started.
type Link struct {
	SpanContext         SpanContext
	Attributes          []KeyValue
	TotalAttributeCount int
}

// Span is the mutable, thread-safe handle instrumented code operates on
// between Tracer.Start and End. A Span obtained while no TracerProvider
// has been installed (or after sampling decided NOT_RECORD) is a
// non-recording no-op: every method is safe to call and has no effect.
type Span interface {
	// SpanContext returns the immutable identity of this span. It is
	// available even before the span is sampled or started.
	SpanContext() SpanContext

	// IsRecording reports whether the span is live and accepting
	// mutations; false for a no-op span or one that has already ended.
	IsRecording() bool

	// SetStatus sets the span's status. Last write wins.
	SetStatus(code StatusCode, description string)

	// SetName renames the span.
	SetName(name string)

	// SetAttributes merges the given attributes, subject to maxAttributes
	// and the per-value length cap. A KeyValue with an empty Key is
	// dropped. Existing keys are always overwritten and never count
	// against the cap.
	SetAttributes(kv ...KeyValue)

	// AddEvent appends an event to the span's bounded event ring.
	AddEvent(name string, opts ...EventOption)

	// RecordError is a convenience for AddEvent that also sets the span's
	// status to StatusError unless opts request otherwise.
	RecordError(err error, opts ...EventOption)

	// TracerProvider returns the TracerProvider that owns this span.
	TracerProvider() TracerProvider

	// End marks the span complete. Mutating calls after the first End
	// are silently ignored.
	End(opts ...SpanEndOption)
}

// eventConfig accumulates EventOption settings.
type eventConfig struct {
	timestamp         time.Time
	attributes        []KeyValue
	statusOverride     *StatusCode
}

// EventOption configures an AddEvent or RecordError call.
type EventOption interface{ applyEvent(*eventConfig) }

type eventOptionFunc func(*eventConfig)

func (f eventOptionFunc) applyEvent(c *eventConfig) { f(c) }

// WithTimestamp sets the explicit time of an event, overriding the
// default of "now".
func WithTimestamp(t time.Time) EventOption {
	return eventOptionFunc(func(c *eventConfig) { c.timestamp = t })
}

// WithAttributes attaches attributes to an event.
func WithAttributes(kv ...KeyValue) EventOption {
	return eventOptionFunc(func(c *eventConfig) { c.attributes = append(c.attributes, kv...) })
}

// WithStatusCode overrides the status RecordError would otherwise set
// (StatusError).
func WithStatusCode(code StatusCode) EventOption {
	return eventOptionFunc(func(c *eventConfig) { c.statusOverride = &code })
}

// NewEventConfig applies opts and returns the resulting configuration; the
// sdk/trace package uses this to build an Event without this package
// needing to depend on it.
func NewEventConfig(opts ...EventOption) (time.Time, []KeyValue, *StatusCode) {
	var c eventConfig
	for _, o := range opts {
		o.applyEvent(&c)
	}
	return c.timestamp, c.attributes, c.statusOverride
}

// spanStartConfig accumulates SpanStartOption settings.
type spanStartConfig struct {
	timestamp   time.Time
	attributes  []KeyValue
	links       []Link
	kind        SpanKind
	newRoot     bool
	spanContext *SpanContext
}

// SpanStartOption configures a Tracer.Start call.
type SpanStartOption interface{ applySpanStart(*spanStartConfig) }

type spanStartOptionFunc func(*spanStartConfig)

func (f spanStartOptionFunc) applySpanStart(c *spanStartConfig) { f(c) }

// WithSpanStartTime sets an explicit start time, overriding "now".
func WithSpanStartTime(t time.Time) SpanStartOption {
	return spanStartOptionFunc(func(c *spanStartConfig) { c.timestamp = t })
}

// WithSpanAttributes sets attributes known at span-start time.
func WithSpanAttributes(kv ...KeyValue) SpanStartOption {
	return spanStartOptionFunc(func(c *spanStartConfig) { c.attributes = append(c.attributes, kv...) })
}

// WithLinks fixes the span's links at start time; links added after
// start are refused.
func WithLinks(links ...Link) SpanStartOption {
	return spanStartOptionFunc(func(c *spanStartConfig) { c.links = append(c.links, links...) })
}

// WithSpanKind sets the span's kind; the default is SpanKindInternal.
func WithSpanKind(kind SpanKind) SpanStartOption {
	return spanStartOptionFunc(func(c *spanStartConfig) { c.kind = kind })
}

// WithNewRoot forces the span to be a new trace root, ignoring any parent
// found in ctx (the Go realization of the builder's setNoParent()).
func WithNewRoot() SpanStartOption {
	return spanStartOptionFunc(func(c *spanStartConfig) { c.newRoot = true })
}

// WithParentSpanContext sets an explicit parent SpanContext, overriding
// whatever Span is found in ctx (the builder's setParent(spanContext)).
func WithParentSpanContext(sc SpanContext) SpanStartOption {
	return spanStartOptionFunc(func(c *spanStartConfig) { c.spanContext = &sc })
}

// NewSpanStartConfig applies opts and returns the resulting fields.
func NewSpanStartConfig(opts ...SpanStartOption) (ts time.Time, attrs []KeyValue, links []Link, kind SpanKind, newRoot bool, parent *SpanContext) {
	var c spanStartConfig
	for _, o := range opts {
		o.applySpanStart(&c)
	}
	return c.timestamp, c.attributes, c.links, c.kind, c.newRoot, c.spanContext
}

// spanEndConfig accumulates SpanEndOption settings.
type spanEndConfig struct {
	timestamp time.Time
}

// SpanEndOption configures a Span.End call.
type SpanEndOption interface{ applySpanEnd(*spanEndConfig) }

type spanEndOptionFunc func(*spanEndConfig)

func (f spanEndOptionFunc) applySpanEnd(c *spanEndConfig) { f(c) }

// WithSpanEndTime sets an explicit end time, overriding "now".
func WithSpanEndTime(t time.Time) SpanEndOption {
	return spanEndOptionFunc(func(c *spanEndConfig) { c.timestamp = t })
}

// NewSpanEndConfig applies opts and returns the resulting end time (zero
// if none was requested).
func NewSpanEndConfig(opts ...SpanEndOption) time.Time {
	var c spanEndConfig
	for _, o := range opts {
		o.applySpanEnd(&c)
	}
	return c.timestamp
}
