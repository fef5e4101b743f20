// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import tracepkg "github.com/traceweave/tracecore/trace"

// cappedAttributes is an insertion-ordered, capacity-bounded attribute
// set. Once full, new keys are rejected; existing keys are always
// overwritten in place and never count against the cap. total tracks
// every add ever attempted, including rejected ones.
type cappedAttributes struct {
	cap     int
	valueLn int
	order   []string
	index   map[string]int
	values  []tracepkg.Value
	total   int
}

func newCappedAttributes(capacity, valueLn int) *cappedAttributes {
	return &cappedAttributes{cap: capacity, valueLn: valueLn, index: make(map[string]int)}
}

// add merges kvs into the set per the cap/overwrite rule above.
func (a *cappedAttributes) add(kvs ...tracepkg.KeyValue) {
	for _, kv := range kvs {
		if kv.Key == "" {
			continue
		}
		a.total++
		v := kv.Value.Truncated(a.valueLn)
		if i, ok := a.index[kv.Key]; ok {
			a.values[i] = v
			continue
		}
		if len(a.order) >= a.cap {
			continue
		}
		a.index[kv.Key] = len(a.order)
		a.order = append(a.order, kv.Key)
		a.values = append(a.values, v)
	}
}

// snapshot returns the attributes currently held, in insertion order.
func (a *cappedAttributes) snapshot() []tracepkg.KeyValue {
	out := make([]tracepkg.KeyValue, len(a.order))
	for i, k := range a.order {
		out[i] = tracepkg.KeyValue{Key: k, Value: a.values[i]}
	}
	return out
}

// len returns the number of attributes currently held (<= cap).
func (a *cappedAttributes) len() int { return len(a.order) }

// evictedQueue is a FIFO ring of fixed capacity: once full, adding a new
// element drops the oldest. total tracks every add ever attempted.
type evictedQueue[T any] struct {
	cap   int
	items []T
	total int
}

func newEvictedQueue[T any](capacity int) *evictedQueue[T] {
	return &evictedQueue[T]{cap: capacity, items: make([]T, 0, capacity)}
}

func (q *evictedQueue[T]) add(v T) {
	q.total++
	if len(q.items) >= q.cap {
		q.items = q.items[1:]
	}
	q.items = append(q.items, v)
}

func (q *evictedQueue[T]) snapshot() []T {
	return append([]T(nil), q.items...)
}

func (q *evictedQueue[T]) len() int { return len(q.items) }
