// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTracerConfigDefault(t *testing.T) {
	v := NewTracerConfig()
	assert.Equal(t, "", v)
}

func TestNewTracerConfigWithInstrumentationVersion(t *testing.T) {
	v := NewTracerConfig(WithInstrumentationVersion("1.2.3"))
	assert.Equal(t, "1.2.3", v)
}
