// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import (
	"sync"
	"time"

	tracepkg "github.com/traceweave/tracecore/trace"
)

// SpanSnapshot is an immutable, torn-read-free projection of a span's
// state at the moment it was taken — what toSpanData() produces, live or
// after End. Processors and exporters operate exclusively on snapshots,
// never on the live span.
type SpanSnapshot struct {
	SpanContext            tracepkg.SpanContext
	Parent                 tracepkg.SpanContext
	Name                   string
	Kind                   tracepkg.SpanKind
	StartTime              time.Time
	EndTime                time.Time
	Attributes             []tracepkg.KeyValue
	TotalAttributeCount    int
	Events                 []tracepkg.Event
	TotalEventCount        int
	Links                  []tracepkg.Link
	TotalLinkCount         int
	Status                 tracepkg.Status
	Resource               *Resource
	InstrumentationLibrary InstrumentationLibrary
	ChildSpanCount         int
}

// Ended reports whether the snapshot was taken after End was called.
func (s SpanSnapshot) Ended() bool { return !s.EndTime.IsZero() }

// recordingSpan is the live, mutable implementation of trace.Span backed
// by an SDK tracer. Its immutable fields (SpanContext, parent, kind,
// start time, resource, library) are set once at construction and read
// without locking; mu guards everything that can change afterward.
type recordingSpan struct {
	mu sync.Mutex

	spanContext tracepkg.SpanContext
	parent      tracepkg.SpanContext
	kind        tracepkg.SpanKind
	startTime   time.Time
	resource    *Resource
	library     InstrumentationLibrary
	limits      SpanLimits
	tracer      *tracer

	name           string
	endTime        time.Time
	status         tracepkg.Status
	attributes     *cappedAttributes
	events         *evictedQueue[tracepkg.Event]
	links          *evictedQueue[tracepkg.Link]
	childSpanCount int
}

var _ tracepkg.Span = (*recordingSpan)(nil)

func (s *recordingSpan) SpanContext() tracepkg.SpanContext { return s.spanContext }

func (s *recordingSpan) IsRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endTime.IsZero()
}

func (s *recordingSpan) SetStatus(code tracepkg.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.endTime.IsZero() {
		return
	}
	st := tracepkg.Status{Code: code}
	if code == tracepkg.StatusError {
		st.Description = description
	}
	s.status = st
}

func (s *recordingSpan) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endTime.IsZero() {
		s.name = name
	}
}

func (s *recordingSpan) SetAttributes(kv ...tracepkg.KeyValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endTime.IsZero() {
		s.attributes.add(kv...)
	}
}

func (s *recordingSpan) AddEvent(name string, opts ...tracepkg.EventOption) {
	ts, attrs, _ := tracepkg.NewEventConfig(opts...)
	if ts.IsZero() {
		ts = time.Now()
	}
	total := len(attrs)
	if total > s.limits.MaxAttributesPerEvent {
		attrs = attrs[:s.limits.MaxAttributesPerEvent]
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endTime.IsZero() {
		s.events.add(tracepkg.Event{Name: name, Time: ts, Attributes: attrs, TotalAttributeCount: total})
	}
}

func (s *recordingSpan) RecordError(err error, opts ...tracepkg.EventOption) {
	if err == nil {
		return
	}
	_, _, statusOverride := tracepkg.NewEventConfig(opts...)
	opts = append(opts, tracepkg.WithAttributes(tracepkg.String("error.message", err.Error())))
	s.AddEvent("exception", opts...)

	s.mu.Lock()
	ended := !s.endTime.IsZero()
	s.mu.Unlock()
	if ended {
		return
	}
	if statusOverride != nil {
		s.SetStatus(*statusOverride, err.Error())
		return
	}
	s.SetStatus(tracepkg.StatusError, err.Error())
}

func (s *recordingSpan) TracerProvider() tracepkg.TracerProvider { return s.tracer.provider }

func (s *recordingSpan) End(opts ...tracepkg.SpanEndOption) {
	et := tracepkg.NewSpanEndConfig(opts...)
	if et.IsZero() {
		et = time.Now()
	}

	s.mu.Lock()
	if !s.endTime.IsZero() {
		s.mu.Unlock()
		return
	}
	s.endTime = et
	s.mu.Unlock()

	snap := s.snapshot()
	for _, sp := range s.tracer.provider.processors() {
		if sp.IsEndRequired() {
			sp.OnEnd(snap)
		}
	}
}

// snapshot builds the immutable SpanSnapshot under lock, so concurrent
// mutators never produce a torn read.
func (s *recordingSpan) snapshot() SpanSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SpanSnapshot{
		SpanContext:            s.spanContext,
		Parent:                 s.parent,
		Name:                   s.name,
		Kind:                   s.kind,
		StartTime:              s.startTime,
		EndTime:                s.endTime,
		Attributes:             s.attributes.snapshot(),
		TotalAttributeCount:    s.attributes.total,
		Events:                 s.events.snapshot(),
		TotalEventCount:        s.events.total,
		Links:                  s.links.snapshot(),
		TotalLinkCount:         s.links.total,
		Status:                 s.status,
		Resource:               s.resource,
		InstrumentationLibrary: s.library,
		ChildSpanCount:         s.childSpanCount,
	}
}

// addChild records that a new span was started with this span as parent.
func (s *recordingSpan) addChild() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.childSpanCount++
}

// nonRecordingSpan is returned for spans the sampler decided NotRecord:
// it carries a real SpanContext (so propagation still works) but every
// mutator is a no-op and IsRecording is always false.
type nonRecordingSpan struct {
	sc       tracepkg.SpanContext
	provider tracepkg.TracerProvider
}

func (s nonRecordingSpan) SpanContext() tracepkg.SpanContext          { return s.sc }
func (s nonRecordingSpan) IsRecording() bool                         { return false }
func (s nonRecordingSpan) SetStatus(tracepkg.StatusCode, string)     {}
func (s nonRecordingSpan) SetName(string)                            {}
func (s nonRecordingSpan) SetAttributes(...tracepkg.KeyValue)        {}
func (s nonRecordingSpan) AddEvent(string, ...tracepkg.EventOption)  {}
func (s nonRecordingSpan) RecordError(error, ...tracepkg.EventOption) {}
func (s nonRecordingSpan) TracerProvider() tracepkg.TracerProvider    { return s.provider }
func (s nonRecordingSpan) End(...tracepkg.SpanEndOption)              {}

var _ tracepkg.Span = nonRecordingSpan{}
