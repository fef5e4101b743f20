// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

// Package statsdtest provides an in-memory statsd client double for use in
// tests that exercise code depending on a pluggable metrics collaborator
// (see internal/globalconfig and sdk/trace's batch span processor).
package statsdtest

import (
	"sync"
	"time"

	"github.com/stretchr/testify/assert"
)

type gaugeCall struct {
	name  string
	value float64
	tags  []string
	rate  float64
}

type countCall struct {
	name  string
	value int64
	tags  []string
	rate  float64
}

type timingCall struct {
	name    string
	timeVal time.Duration
	tags    []string
	rate    float64
}

// TestStatsdClient records every call made to it, for later assertions. It
// satisfies the narrow StatsClient interface sdk/trace and
// internal/globalconfig depend on.
type TestStatsdClient struct {
	mu sync.RWMutex

	n int

	names []string

	gaugeVals   map[string]float64
	counts      map[string]int64
	gaugeCalls  []gaugeCall
	incrCalls   []countCall
	countCalls  []countCall
	timingCalls []timingCall
}

func (tg *TestStatsdClient) ensureLocked() {
	if tg.gaugeVals == nil {
		tg.gaugeVals = map[string]float64{}
	}
	if tg.counts == nil {
		tg.counts = map[string]int64{}
	}
}

// Gauge records a gauge call. Values pushed under the same name accumulate.
func (tg *TestStatsdClient) Gauge(name string, value float64, tags []string, rate float64) error {
	tg.mu.Lock()
	defer tg.mu.Unlock()
	tg.ensureLocked()
	tg.n++
	tg.names = append(tg.names, name)
	tg.gaugeVals[name] += value
	tg.gaugeCalls = append(tg.gaugeCalls, gaugeCall{name, value, tags, rate})
	return nil
}

// Count records a count call.
func (tg *TestStatsdClient) Count(name string, value int64, tags []string, rate float64) error {
	tg.mu.Lock()
	defer tg.mu.Unlock()
	tg.ensureLocked()
	tg.n++
	tg.names = append(tg.names, name)
	tg.counts[name] += value
	tg.countCalls = append(tg.countCalls, countCall{name, value, tags, rate})
	return nil
}

// Incr records a count call of 1.
func (tg *TestStatsdClient) Incr(name string, tags []string, rate float64) error {
	tg.mu.Lock()
	defer tg.mu.Unlock()
	tg.ensureLocked()
	tg.n++
	tg.names = append(tg.names, name)
	tg.counts[name]++
	tg.incrCalls = append(tg.incrCalls, countCall{name: name, value: 1, tags: tags, rate: rate})
	return nil
}

// Timing records a timing call.
func (tg *TestStatsdClient) Timing(name string, value time.Duration, tags []string, rate float64) error {
	tg.mu.Lock()
	defer tg.mu.Unlock()
	tg.ensureLocked()
	tg.n++
	tg.names = append(tg.names, name)
	tg.timingCalls = append(tg.timingCalls, timingCall{name, value, tags, rate})
	return nil
}

// Reset clears all recorded calls.
func (tg *TestStatsdClient) Reset() {
	tg.mu.Lock()
	defer tg.mu.Unlock()
	tg.n = 0
	tg.names = nil
	tg.gaugeVals = map[string]float64{}
	tg.counts = map[string]int64{}
	tg.gaugeCalls = nil
	tg.incrCalls = nil
	tg.countCalls = nil
	tg.timingCalls = nil
}

// ValsByName returns the accumulated gauge values recorded per metric name.
func (tg *TestStatsdClient) ValsByName() map[string]float64 {
	tg.mu.RLock()
	defer tg.mu.RUnlock()
	out := make(map[string]float64, len(tg.gaugeVals))
	for k, v := range tg.gaugeVals {
		out[k] = v
	}
	return out
}

// Counts returns the accumulated count values recorded per metric name.
func (tg *TestStatsdClient) Counts() map[string]int64 {
	tg.mu.RLock()
	defer tg.mu.RUnlock()
	out := make(map[string]int64, len(tg.counts))
	for k, v := range tg.counts {
		out[k] = v
	}
	return out
}

// TimingCalls returns a copy of every recorded Timing call.
func (tg *TestStatsdClient) TimingCalls() []timingCall {
	tg.mu.RLock()
	defer tg.mu.RUnlock()
	out := make([]timingCall, len(tg.timingCalls))
	copy(out, tg.timingCalls)
	return out
}

// CallNames returns the metric name passed to every recorded call, in the
// order the calls were made.
func (tg *TestStatsdClient) CallNames() []string {
	tg.mu.RLock()
	defer tg.mu.RUnlock()
	out := make([]string, len(tg.names))
	copy(out, tg.names)
	return out
}

// Wait blocks until at least n calls have been recorded, or timeout elapses
// (in which case it fails the assertion).
func (tg *TestStatsdClient) Wait(a *assert.Assertions, n int, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		tg.mu.RLock()
		cur := tg.n
		tg.mu.RUnlock()
		if cur >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	tg.mu.RLock()
	cur := tg.n
	tg.mu.RUnlock()
	a.GreaterOrEqual(cur, n, "timed out waiting for %d calls, got %d", n, cur)
}
