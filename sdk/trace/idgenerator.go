// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
	mathrand "math/rand"
	"sync"

	tracepkg "github.com/traceweave/tracecore/trace"
)

// IDGenerator allocates trace and span identifiers for new spans.
// Implementations must never return the all-zero id, since that denotes
// "invalid" throughout the trace package.
type IDGenerator interface {
	NewIDs(hasParent bool, parent tracepkg.TraceID) (tracepkg.TraceID, tracepkg.SpanID)
	NewSpanID() tracepkg.SpanID
}

// randomIDGenerator is seeded once per instance from a CSPRNG, then uses a
// fast non-cryptographic generator for the high volume of per-span calls
// that follow; the source is mutex-guarded since math/rand.Rand is not
// safe for concurrent use.
type randomIDGenerator struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

// NewIDGenerator returns the default IDGenerator, seeded from
// crypto/rand.
func NewIDGenerator() IDGenerator {
	var seed int64
	n, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		seed = mathrand.Int63()
	} else {
		seed = n.Int64()
	}
	return &randomIDGenerator{rng: mathrand.New(mathrand.NewSource(seed))}
}

// NewIDs returns a fresh SpanID, and either a fresh TraceID (no parent, or
// hasParent with an invalid parent) or the parent's TraceID (valid
// parent).
func (g *randomIDGenerator) NewIDs(hasParent bool, parent tracepkg.TraceID) (tracepkg.TraceID, tracepkg.SpanID) {
	spanID := g.NewSpanID()
	if hasParent && parent.IsValid() {
		return parent, spanID
	}
	return g.newTraceID(), spanID
}

func (g *randomIDGenerator) newTraceID() tracepkg.TraceID {
	var tid tracepkg.TraceID
	g.mu.Lock()
	for {
		binary.BigEndian.PutUint64(tid[:8], g.rng.Uint64())
		binary.BigEndian.PutUint64(tid[8:], g.rng.Uint64())
		if tid.IsValid() {
			break
		}
	}
	g.mu.Unlock()
	return tid
}

// NewSpanID returns a fresh, non-zero SpanID.
func (g *randomIDGenerator) NewSpanID() tracepkg.SpanID {
	var sid tracepkg.SpanID
	g.mu.Lock()
	for {
		binary.BigEndian.PutUint64(sid[:], g.rng.Uint64())
		if sid.IsValid() {
			break
		}
	}
	g.mu.Unlock()
	return sid
}
