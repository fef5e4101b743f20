// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

// Package globalconfig stores process-wide identity (service name,
// environment, version — the attributes that populate a Resource) and an
// optional pluggable metrics collaborator that SDK components may report
// operational counters and gauges through.
package globalconfig

import (
	"sync"
	"time"
)

type headerTags struct {
	mu sync.RWMutex
	m  map[string]string
}

func (h *headerTags) Get(header string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.m[header]
}

func (h *headerTags) Set(header, tag string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.m[header] = tag
}

type config struct {
	mu sync.RWMutex

	headersAsTags headerTags

	service string
	env     string
	version string

	statsCarrier *StatsRelay
}

var cfg = &config{headersAsTags: headerTags{m: map[string]string{}}}

// SetHeaderTag records that values of the given HTTP header should be
// attached to spans under the given tag name.
func SetHeaderTag(header, tag string) { cfg.headersAsTags.Set(header, tag) }

// HeaderTag returns the tag name configured for header, or "" if none.
func HeaderTag(header string) string { return cfg.headersAsTags.Get(header) }

// SetServiceName sets the process-wide default service name.
func SetServiceName(name string) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.service = name
}

// ServiceName returns the process-wide default service name.
func ServiceName() string {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.service
}

// SetEnv sets the process-wide deployment environment name.
func SetEnv(env string) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.env = env
}

// Env returns the process-wide deployment environment name.
func Env() string {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.env
}

// SetVersion sets the process-wide service version.
func SetVersion(version string) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.version = version
}

// Version returns the process-wide service version.
func Version() string {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.version
}

// StatsClient is the narrow metrics-collaborator surface tracecore depends
// on. *statsd.Client and statsd.NoOpClient from
// github.com/DataDog/datadog-go/v5/statsd both satisfy it.
type StatsClient interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Incr(name string, tags []string, rate float64) error
	Timing(name string, value time.Duration, tags []string, rate float64) error
}

// Stat is a single metric observation queued for delivery through a
// StatsRelay.
type Stat interface {
	push(c StatsClient) error
	Name() string
}

type gaugeStat struct {
	name  string
	value float64
	tags  []string
	rate  float64
}

func (g gaugeStat) push(c StatsClient) error { return c.Gauge(g.name, g.value, g.tags, g.rate) }
func (g gaugeStat) Name() string             { return g.name }

// NewGauge builds a Stat reporting a gauge observation.
func NewGauge(name string, value float64, tags []string, rate float64) Stat {
	return gaugeStat{name, value, tags, rate}
}

type countStat struct {
	name  string
	value int64
	tags  []string
	rate  float64
}

func (c countStat) push(cl StatsClient) error { return cl.Count(c.name, c.value, c.tags, c.rate) }
func (c countStat) Name() string              { return c.name }

// NewCount builds a Stat reporting a count observation.
func NewCount(name string, value int64, tags []string, rate float64) Stat {
	return countStat{name, value, tags, rate}
}

// StatsRelay delivers Stat values to a StatsClient on a dedicated
// goroutine, so components on the hot path never block on metrics
// delivery; a full queue drops the stat rather than stalling the caller.
type StatsRelay struct {
	client StatsClient
	stats  chan Stat
	stop   chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewStatsRelay returns a StatsRelay that will deliver to c once Start is
// called.
func NewStatsRelay(c StatsClient) *StatsRelay {
	return &StatsRelay{client: c, stats: make(chan Stat, 100), stop: make(chan struct{})}
}

// Start begins relaying pushed stats to the underlying client. It is a
// no-op if already started.
func (sc *StatsRelay) Start() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.started {
		return
	}
	sc.started = true
	sc.wg.Add(1)
	go sc.run()
}

func (sc *StatsRelay) run() {
	defer sc.wg.Done()
	for {
		select {
		case s := <-sc.stats:
			_ = s.push(sc.client)
		case <-sc.stop:
			sc.drain()
			return
		}
	}
}

func (sc *StatsRelay) drain() {
	for {
		select {
		case s := <-sc.stats:
			_ = s.push(sc.client)
		default:
			return
		}
	}
}

// Push enqueues s for delivery. If the queue is full, the stat is dropped;
// a relay that has not been started still queues stats until it fills.
func (sc *StatsRelay) Push(s Stat) {
	select {
	case sc.stats <- s:
	default:
	}
}

// Stop halts the relay after draining any stats already queued. It is
// idempotent.
func (sc *StatsRelay) Stop() {
	sc.mu.Lock()
	if sc.stopped {
		sc.mu.Unlock()
		return
	}
	sc.stopped = true
	started := sc.started
	sc.mu.Unlock()
	if !started {
		return
	}
	close(sc.stop)
	sc.wg.Wait()
}

// Stopped reports whether Stop has been called.
func (sc *StatsRelay) Stopped() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.stopped
}

// SetStatsCarrier installs sc as the process-wide metrics collaborator.
func SetStatsCarrier(sc *StatsRelay) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.statsCarrier = sc
}

// ClearStatsCarrier removes the process-wide metrics collaborator without
// stopping it.
func ClearStatsCarrier() {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.statsCarrier = nil
}

// StatsCarrier reports whether a metrics collaborator is currently
// installed.
func StatsCarrier() bool {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.statsCarrier != nil
}

// PushStat delivers s to the installed metrics collaborator, if any.
func PushStat(s Stat) {
	cfg.mu.RLock()
	sc := cfg.statsCarrier
	cfg.mu.RUnlock()
	if sc == nil {
		return
	}
	sc.Push(s)
}
