// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

// Package internal holds the process-wide global TracerProvider registry.
// It is a separate package from trace so that trace itself stays free of
// any mutable global state.
package internal

import (
	"sync/atomic"

	"github.com/traceweave/tracecore/trace"
)

var global atomic.Pointer[trace.TracerProvider]

func init() {
	var def trace.TracerProvider = trace.NoopTracerProvider()
	global.Store(&def)
}

// SetGlobalTracerProvider installs tp as the process-wide TracerProvider.
func SetGlobalTracerProvider(tp trace.TracerProvider) {
	if tp == nil {
		tp = trace.NoopTracerProvider()
	}
	global.Store(&tp)
}

// GlobalTracerProvider returns the process-wide TracerProvider. It never
// returns nil: before SetGlobalTracerProvider is ever called, it returns a
// TracerProvider whose Tracers produce only non-recording spans.
func GlobalTracerProvider() trace.TracerProvider {
	return *global.Load()
}
