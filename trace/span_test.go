// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanKindString(t *testing.T) {
	assert.Equal(t, "internal", SpanKindInternal.String())
	assert.Equal(t, "server", SpanKindServer.String())
	assert.Equal(t, "client", SpanKindClient.String())
	assert.Equal(t, "producer", SpanKindProducer.String())
	assert.Equal(t, "consumer", SpanKindConsumer.String())
}

func TestStatusOKIsZeroValue(t *testing.T) {
	var s Status
	assert.Equal(t, StatusOK, s.Code)
}

func TestNewEventConfigDefaults(t *testing.T) {
	ts, attrs, status := NewEventConfig()
	assert.True(t, ts.IsZero())
	assert.Nil(t, attrs)
	assert.Nil(t, status)
}

func TestNewEventConfigWithOptions(t *testing.T) {
	when := time.Unix(1000, 0)
	ts, attrs, status := NewEventConfig(
		WithTimestamp(when),
		WithAttributes(String("k", "v")),
		WithStatusCode(StatusError),
	)
	assert.True(t, ts.Equal(when))
	require.Len(t, attrs, 1)
	assert.Equal(t, "k", attrs[0].Key)
	require.NotNil(t, status)
	assert.Equal(t, StatusError, *status)
}

func TestNewEventConfigAccumulatesAttributes(t *testing.T) {
	_, attrs, _ := NewEventConfig(
		WithAttributes(String("a", "1")),
		WithAttributes(String("b", "2")),
	)
	assert.Len(t, attrs, 2)
}

func TestNewSpanStartConfigDefaults(t *testing.T) {
	ts, attrs, links, kind, newRoot, parent := NewSpanStartConfig()
	assert.True(t, ts.IsZero())
	assert.Nil(t, attrs)
	assert.Nil(t, links)
	assert.Equal(t, SpanKindInternal, kind)
	assert.False(t, newRoot)
	assert.Nil(t, parent)
}

func TestNewSpanStartConfigWithOptions(t *testing.T) {
	sc := NewSpanContext(SpanContextConfig{})
	_, attrs, links, kind, newRoot, parent := NewSpanStartConfig(
		WithSpanAttributes(String("a", "1")),
		WithLinks(Link{SpanContext: sc}),
		WithSpanKind(SpanKindClient),
		WithNewRoot(),
		WithParentSpanContext(sc),
	)
	assert.Len(t, attrs, 1)
	assert.Len(t, links, 1)
	assert.Equal(t, SpanKindClient, kind)
	assert.True(t, newRoot)
	require.NotNil(t, parent)
	assert.Equal(t, sc, *parent)
}

func TestNewSpanEndConfig(t *testing.T) {
	ts := NewSpanEndConfig()
	assert.True(t, ts.IsZero())

	when := time.Unix(2000, 0)
	ts2 := NewSpanEndConfig(WithSpanEndTime(when))
	assert.True(t, ts2.Equal(when))
}
