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

	"github.com/DataDog/datadog-go/v5/statsd"

	"github.com/traceweave/tracecore/internal/globalconfig"
	"github.com/traceweave/tracecore/internal/log"
	tracepkg "github.com/traceweave/tracecore/trace"
)

const (
	defaultMaxQueueSize       = 2048
	defaultMaxExportBatchSize = 512
	defaultScheduleDelay      = 5000 * time.Millisecond
	defaultExportTimeout      = 30000 * time.Millisecond
)

// BatchSpanProcessor buffers ended spans in a bounded queue and exports
// them in chunks on a dedicated worker goroutine, so Span.End never
// blocks on an exporter. The producer side signals the worker early —
// rather than waiting out the full schedule delay — once the queue
// crosses half of its capacity, so a burst of spans drains promptly
// instead of sitting buffered until the next tick.
type BatchSpanProcessor struct {
	exporter      SpanExporter
	maxQueueSize  int
	maxBatchSize  int
	scheduleDelay time.Duration
	exportTimeout time.Duration
	statsClient   globalconfig.StatsClient

	queue chan SpanSnapshot
	wake  chan struct{}
	flush chan chan error
	stop  chan struct{}
	wg    sync.WaitGroup

	dropped      atomic.Int64
	stopOnce     sync.Once
	shuttingDown atomic.Bool
}

// BatchOption configures a BatchSpanProcessor.
type BatchOption func(*BatchSpanProcessor)

// WithMaxQueueSize overrides the default queue capacity of 2048.
func WithMaxQueueSize(n int) BatchOption {
	return func(p *BatchSpanProcessor) { p.maxQueueSize = n }
}

// WithMaxExportBatchSize overrides the default chunk size of 512.
func WithMaxExportBatchSize(n int) BatchOption {
	return func(p *BatchSpanProcessor) { p.maxBatchSize = n }
}

// WithBatchScheduleDelay overrides the default 5s wake interval.
func WithBatchScheduleDelay(d time.Duration) BatchOption {
	return func(p *BatchSpanProcessor) { p.scheduleDelay = d }
}

// WithExportTimeout overrides the default 30s per-chunk export deadline.
func WithExportTimeout(d time.Duration) BatchOption {
	return func(p *BatchSpanProcessor) { p.exportTimeout = d }
}

// WithStatsClient installs c as the destination for the processor's
// operational metrics (tracecore.bsp.dropped_spans, .queue_size,
// .export_duration). Defaults to statsd.NoOpClient, discarding them.
func WithStatsClient(c globalconfig.StatsClient) BatchOption {
	return func(p *BatchSpanProcessor) { p.statsClient = c }
}

// NewBatchSpanProcessor returns a BatchSpanProcessor exporting through
// exporter, and starts its worker goroutine.
func NewBatchSpanProcessor(exporter SpanExporter, opts ...BatchOption) *BatchSpanProcessor {
	p := &BatchSpanProcessor{
		exporter:      exporter,
		maxQueueSize:  defaultMaxQueueSize,
		maxBatchSize:  defaultMaxExportBatchSize,
		scheduleDelay: defaultScheduleDelay,
		exportTimeout: defaultExportTimeout,
		statsClient:   &statsd.NoOpClient{},
		flush:         make(chan chan error),
		stop:          make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	p.queue = make(chan SpanSnapshot, p.maxQueueSize)
	p.wake = make(chan struct{}, 1)
	p.wg.Add(1)
	go p.run()
	return p
}

var _ SpanProcessor = (*BatchSpanProcessor)(nil)

func (p *BatchSpanProcessor) OnStart(context.Context, tracepkg.Span) {}

func (p *BatchSpanProcessor) IsStartRequired() bool { return false }
func (p *BatchSpanProcessor) IsEndRequired() bool   { return true }

// OnEnd enqueues s for export. If the queue is full the span is dropped
// and the dropped-span counter is incremented; the caller is never
// blocked. Once the queue is at least half full, the worker is signaled
// to wake and drain early rather than waiting out the schedule delay.
func (p *BatchSpanProcessor) OnEnd(s SpanSnapshot) {
	if p.shuttingDown.Load() {
		return
	}
	select {
	case p.queue <- s:
		p.statsClient.Gauge("tracecore.bsp.queue_size", float64(len(p.queue)), nil, 1)
		if len(p.queue)*2 >= p.maxQueueSize {
			p.signalWake()
		}
	default:
		p.dropped.Add(1)
		p.statsClient.Count("tracecore.bsp.dropped_spans", 1, nil, 1)
		log.Debug("trace: batch processor queue full, dropping span %q", s.Name)
	}
}

// signalWake nudges the worker without blocking; a pending signal is
// enough, so a full wake channel means the worker already knows.
func (p *BatchSpanProcessor) signalWake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// DroppedSpans returns the number of spans dropped so far due to a full
// queue.
func (p *BatchSpanProcessor) DroppedSpans() int64 { return p.dropped.Load() }

func (p *BatchSpanProcessor) run() {
	defer p.wg.Done()
	timer := time.NewTimer(p.scheduleDelay)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			p.exportAvailable()
			timer.Reset(p.scheduleDelay)
		case <-p.wake:
			p.exportAvailable()
		case reply := <-p.flush:
			reply <- p.exportAvailable()
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(p.scheduleDelay)
		case <-p.stop:
			p.exportAvailable()
			return
		}
	}
}

// exportAvailable drains everything currently queued, in chunks of at
// most maxBatchSize, submitting each chunk to the exporter with its own
// deadline. Returns the first error encountered, if any.
func (p *BatchSpanProcessor) exportAvailable() error {
	var batch []SpanSnapshot
	var firstErr error
	flushChunk := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), p.exportTimeout)
		start := time.Now()
		err := p.exporter.ExportSpans(ctx, batch)
		p.statsClient.Timing("tracecore.bsp.export_duration", time.Since(start), nil, 1)
		cancel()
		if err != nil {
			log.Error("trace: export failed: %s", err)
			if firstErr == nil {
				firstErr = err
			}
		}
		batch = nil
	}
	for {
		select {
		case s := <-p.queue:
			batch = append(batch, s)
			if len(batch) >= p.maxBatchSize {
				flushChunk()
			}
		default:
			flushChunk()
			return firstErr
		}
	}
}

// ForceFlush blocks until every span currently queued has been submitted
// to the exporter.
func (p *BatchSpanProcessor) ForceFlush(ctx context.Context) error {
	reply := make(chan error, 1)
	select {
	case p.flush <- reply:
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stop:
		return nil
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown flushes any remaining spans and stops the worker goroutine.
// Idempotent.
func (p *BatchSpanProcessor) Shutdown(ctx context.Context) error {
	var err error
	p.stopOnce.Do(func() {
		p.shuttingDown.Store(true)
		close(p.stop)
		done := make(chan struct{})
		go func() { p.wg.Wait(); close(done) }()
		select {
		case <-done:
		case <-ctx.Done():
			err = ctx.Err()
		}
		if e := p.exporter.Shutdown(ctx); e != nil && err == nil {
			err = e
		}
	})
	return err
}
