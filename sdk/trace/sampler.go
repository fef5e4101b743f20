// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	tracepkg "github.com/traceweave/tracecore/trace"
)

// SamplingDecision is the outcome of a sampling decision.
type SamplingDecision int

const (
	// NotRecord means the span is dropped: IsRecording is false and no
	// data is ever exported.
	NotRecord SamplingDecision = iota
	// Record means the span data is kept locally (IsRecording true) but
	// the sampled flag is not set, so downstream processes aren't
	// instructed to keep it too.
	Record
	// RecordAndSampled means the span is recorded and its sampled flag is
	// set, making it eligible for export.
	RecordAndSampled
)

// SamplingParameters are the inputs available to a Sampler when a new
// span is about to start.
type SamplingParameters struct {
	ParentContext tracepkg.SpanContext
	TraceID       tracepkg.TraceID
	Name          string
	Kind          tracepkg.SpanKind
	Attributes    []tracepkg.KeyValue
}

// SamplingResult is a Sampler's decision plus any attributes it wants
// attached to the span as a consequence (e.g. sampling.probability).
type SamplingResult struct {
	Decision   SamplingDecision
	Attributes []tracepkg.KeyValue
}

// Sampler decides, for each new span, whether it is recorded and whether
// it is marked sampled. A Sampler is installed into a TraceConfig and may
// be swapped atomically at runtime.
type Sampler interface {
	ShouldSample(p SamplingParameters) SamplingResult
	Description() string
}

type alwaysOnSampler struct{}

// AlwaysOn returns a Sampler that samples every span.
func AlwaysOn() Sampler { return alwaysOnSampler{} }

func (alwaysOnSampler) ShouldSample(SamplingParameters) SamplingResult {
	return SamplingResult{Decision: RecordAndSampled}
}
func (alwaysOnSampler) Description() string { return "AlwaysOnSampler" }

type alwaysOffSampler struct{}

// AlwaysOff returns a Sampler that never samples a span.
func AlwaysOff() Sampler { return alwaysOffSampler{} }

func (alwaysOffSampler) ShouldSample(SamplingParameters) SamplingResult {
	return SamplingResult{Decision: NotRecord}
}
func (alwaysOffSampler) Description() string { return "AlwaysOffSampler" }

type parentBasedSampler struct {
	root Sampler
}

// ParentBased returns a Sampler that mirrors the sampled bit of a valid
// parent SpanContext, delegating to root only when there is no valid
// parent (i.e. this span is starting a new trace).
func ParentBased(root Sampler) Sampler {
	return parentBasedSampler{root: root}
}

func (s parentBasedSampler) ShouldSample(p SamplingParameters) SamplingResult {
	if p.ParentContext.IsValid() {
		if p.ParentContext.IsSampled() {
			return SamplingResult{Decision: RecordAndSampled}
		}
		return SamplingResult{Decision: Record}
	}
	return s.root.ShouldSample(p)
}

func (s parentBasedSampler) Description() string {
	return fmt.Sprintf("ParentBased{root:%s}", s.root.Description())
}

type traceIDRatioSampler struct {
	ratio     float64
	threshold uint64
}

// TraceIDRatio returns a Sampler that samples a deterministic fraction
// ratio of traces, keyed off the low 64 bits of the TraceID so the
// decision is stable across processes for a given TraceID. ratio must be
// in [0, 1].
func TraceIDRatio(ratio float64) (Sampler, error) {
	if ratio < 0 || ratio > 1 {
		return nil, errors.New("trace: TraceIDRatio requires a ratio in [0, 1]")
	}
	return traceIDRatioSampler{
		ratio:     ratio,
		threshold: uint64(ratio * math.Exp2(63)),
	}, nil
}

// traceIDRatioSignMask clears the top bit of the low 64 bits of a
// TraceID, confining the comparison to [0, 2^63) so threshold (itself in
// [0, 2^63]) can represent the full [0, 1] ratio range.
const traceIDRatioSignMask = uint64(1)<<63 - 1

func (s traceIDRatioSampler) ShouldSample(p SamplingParameters) SamplingResult {
	x := binary.BigEndian.Uint64(p.TraceID[8:]) & traceIDRatioSignMask
	if x < s.threshold {
		return SamplingResult{
			Decision:   RecordAndSampled,
			Attributes: []tracepkg.KeyValue{tracepkg.Float64("sampling.probability", s.ratio)},
		}
	}
	return SamplingResult{Decision: NotRecord}
}

func (s traceIDRatioSampler) Description() string {
	return fmt.Sprintf("TraceIDRatioBased{%g}", s.ratio)
}
