// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

// Package trace defines the stable, dependency-free API surface of
// tracecore: trace and span identity, the Span/Tracer/TracerProvider
// interfaces instrumented code is written against, and the context
// propagation helpers that carry a Span across API boundaries.
//
// The SDK that actually builds and exports spans lives in sdk/trace; this
// package never imports it.
package trace

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
)

// TraceID is a 128-bit trace identifier, big-endian.
type TraceID [16]byte

// nilTraceID is the invalid, all-zero TraceID.
var nilTraceID TraceID

// IsValid reports whether t is not the all-zero TraceID.
func (t TraceID) IsValid() bool { return t != nilTraceID }

// String returns the 32 lowercase hex character form of t.
func (t TraceID) String() string { return hex.EncodeToString(t[:]) }

// MarshalText implements encoding.TextMarshaler.
func (t TraceID) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// TraceIDFromHex parses a hex-encoded TraceID. A 16-character input is
// accepted and zero-padded on the left, matching B3's short trace id
// compatibility rule.
func TraceIDFromHex(h string) (TraceID, error) {
	var t TraceID
	switch len(h) {
	case 32:
		b, err := hex.DecodeString(h)
		if err != nil {
			return t, err
		}
		copy(t[:], b)
		return t, nil
	case 16:
		b, err := hex.DecodeString(h)
		if err != nil {
			return t, err
		}
		copy(t[8:], b)
		return t, nil
	default:
		return t, errors.New("trace: invalid trace id length")
	}
}

// SpanID is a 64-bit span identifier, big-endian.
type SpanID [8]byte

var nilSpanID SpanID

// IsValid reports whether s is not the all-zero SpanID.
func (s SpanID) IsValid() bool { return s != nilSpanID }

// String returns the 16 lowercase hex character form of s.
func (s SpanID) String() string { return hex.EncodeToString(s[:]) }

// MarshalText implements encoding.TextMarshaler.
func (s SpanID) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Uint64 returns s interpreted as an unsigned 64-bit big-endian integer.
func (s SpanID) Uint64() uint64 { return binary.BigEndian.Uint64(s[:]) }

// SpanIDFromHex parses a 16 hex character SpanID.
func SpanIDFromHex(h string) (SpanID, error) {
	var s SpanID
	if len(h) != 16 {
		return s, errors.New("trace: invalid span id length")
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return s, err
	}
	copy(s[:], b)
	return s, nil
}

// TraceFlags is the one-byte W3C trace-flags field. Only FlagsSampled is
// currently defined; all other bits are reserved and are preserved as
// opaque on parse, emitted as zero when synthesized fresh.
type TraceFlags byte

// FlagsSampled is the "sampled" bit of TraceFlags.
const FlagsSampled = TraceFlags(0x01)

// IsSampled reports whether the sampled bit is set.
func (f TraceFlags) IsSampled() bool { return f&FlagsSampled == FlagsSampled }

// WithSampled returns a copy of f with the sampled bit set to sampled.
func (f TraceFlags) WithSampled(sampled bool) TraceFlags {
	if sampled {
		return f | FlagsSampled
	}
	return f &^ FlagsSampled
}

// String returns the two lowercase hex character form of f.
func (f TraceFlags) String() string { return hex.EncodeToString([]byte{byte(f)}) }

const maxTraceStateEntries = 32

// traceStateEntry is a single tracestate vendor key/value pair.
type traceStateEntry struct {
	Key   string
	Value string
}

// TraceState is an immutable, order-sensitive mapping from vendor key to
// value, capped at 32 entries. The zero value is the empty TraceState.
type TraceState struct {
	entries []traceStateEntry
}

// keyRe approximates the W3C tracestate key grammar: lowercase
// alphanumeric, optionally namespaced with "@", and "-_*/" as interior
// punctuation.
var keyRe = regexp.MustCompile(`^[a-z][a-z0-9_\-*/]{0,255}(@[a-z][a-z0-9_\-*/]{0,240})?$`)

// Get returns the value associated with key, or "" if absent.
func (ts TraceState) Get(key string) string {
	for _, e := range ts.entries {
		if e.Key == key {
			return e.Value
		}
	}
	return ""
}

// Len returns the number of entries in ts.
func (ts TraceState) Len() int { return len(ts.entries) }

// Insert returns a copy of ts with key set to value, moved to the front
// (last-mutator-wins ordering, per the W3C tracestate rule). An invalid
// key/value or an insert that would exceed the 32-entry cap on a brand new
// key returns an error and the original TraceState.
func (ts TraceState) Insert(key, value string) (TraceState, error) {
	if !validTraceStateKey(key) || !validTraceStateValue(value) {
		return ts, errors.New("trace: invalid tracestate key or value")
	}
	next := make([]traceStateEntry, 0, len(ts.entries)+1)
	next = append(next, traceStateEntry{key, value})
	for _, e := range ts.entries {
		if e.Key == key {
			continue
		}
		next = append(next, e)
	}
	if len(next) > maxTraceStateEntries {
		return ts, errors.New("trace: tracestate would exceed 32 entries")
	}
	return TraceState{entries: next}, nil
}

// Delete returns a copy of ts with key removed.
func (ts TraceState) Delete(key string) TraceState {
	next := make([]traceStateEntry, 0, len(ts.entries))
	for _, e := range ts.entries {
		if e.Key != key {
			next = append(next, e)
		}
	}
	return TraceState{entries: next}
}

// String serializes ts in "key1=value1,key2=value2" form, preserving
// entry order.
func (ts TraceState) String() string {
	if len(ts.entries) == 0 {
		return ""
	}
	var b strings.Builder
	for i, e := range ts.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.Key)
		b.WriteByte('=')
		b.WriteString(e.Value)
	}
	return b.String()
}

// ParseTraceState parses the W3C tracestate header value s.
func ParseTraceState(s string) (TraceState, error) {
	var ts TraceState
	if s == "" {
		return ts, nil
	}
	members := strings.Split(s, ",")
	if len(members) > maxTraceStateEntries {
		return ts, errors.New("trace: tracestate has too many entries")
	}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		kv := strings.SplitN(m, "=", 2)
		if len(kv) != 2 {
			return TraceState{}, errors.New("trace: malformed tracestate member")
		}
		k, v := kv[0], kv[1]
		if !validTraceStateKey(k) || !validTraceStateValue(v) || seen[k] {
			return TraceState{}, errors.New("trace: invalid tracestate member")
		}
		seen[k] = true
		ts.entries = append(ts.entries, traceStateEntry{k, v})
	}
	return ts, nil
}

func validTraceStateKey(k string) bool {
	return k != "" && len(k) <= 256 && keyRe.MatchString(k)
}

func validTraceStateValue(v string) bool {
	if v == "" || len(v) > 256 {
		return false
	}
	for _, r := range v {
		if r < 0x20 || r > 0x7e || r == ',' || r == '=' {
			return false
		}
	}
	return true
}

// SpanContextConfig carries the fields used to construct a SpanContext.
type SpanContextConfig struct {
	TraceID    TraceID
	SpanID     SpanID
	TraceFlags TraceFlags
	TraceState TraceState
	Remote     bool
}

// SpanContext is the immutable identity propagated across process
// boundaries: a (TraceID, SpanID, TraceFlags, TraceState) tuple plus a
// flag recording whether it was extracted from a remote carrier.
type SpanContext struct {
	traceID    TraceID
	spanID     SpanID
	traceFlags TraceFlags
	traceState TraceState
	remote     bool
}

// NewSpanContext builds a SpanContext from the given config.
func NewSpanContext(cfg SpanContextConfig) SpanContext {
	return SpanContext{
		traceID:    cfg.TraceID,
		spanID:     cfg.SpanID,
		traceFlags: cfg.TraceFlags,
		traceState: cfg.TraceState,
		remote:     cfg.Remote,
	}
}

// TraceID returns the trace identifier.
func (sc SpanContext) TraceID() TraceID { return sc.traceID }

// SpanID returns the span identifier.
func (sc SpanContext) SpanID() SpanID { return sc.spanID }

// TraceFlags returns the trace flags.
func (sc SpanContext) TraceFlags() TraceFlags { return sc.traceFlags }

// TraceState returns the tracestate.
func (sc SpanContext) TraceState() TraceState { return sc.traceState }

// IsRemote reports whether sc was extracted from a remote carrier.
func (sc SpanContext) IsRemote() bool { return sc.remote }

// IsSampled reports whether the sampled bit is set.
func (sc SpanContext) IsSampled() bool { return sc.traceFlags.IsSampled() }

// IsValid reports whether both the TraceID and SpanID are valid. An
// invalid SpanContext denotes "no context" throughout tracecore.
func (sc SpanContext) IsValid() bool { return sc.traceID.IsValid() && sc.spanID.IsValid() }

// Equal reports whether sc and other carry the same identity, flags,
// remote flag, and tracestate serialization.
func (sc SpanContext) Equal(other SpanContext) bool {
	return sc.traceID == other.traceID &&
		sc.spanID == other.spanID &&
		sc.traceFlags == other.traceFlags &&
		sc.remote == other.remote &&
		sc.traceState.String() == other.traceState.String()
}

// WithTraceState returns a copy of sc with its TraceState replaced.
func (sc SpanContext) WithTraceState(ts TraceState) SpanContext {
	sc2 := sc
	sc2.traceState = ts
	return sc2
}

// WithRemote returns a copy of sc with the remote flag set.
func (sc SpanContext) WithRemote(remote bool) SpanContext {
	sc2 := sc
	sc2.remote = remote
	return sc2
}
