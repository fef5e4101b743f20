// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTraceConfig(t *testing.T) {
	cfg := DefaultTraceConfig()
	require.NoError(t, cfg.validate())
	assert.Equal(t, "ParentBased{root:AlwaysOnSampler}", cfg.Sampler.Description())
	assert.Equal(t, DefaultSpanLimits(), cfg.SpanLimits)
}

func TestSpanLimitsValidateRejectsNonPositive(t *testing.T) {
	lim := DefaultSpanLimits()
	lim.MaxAttributes = 0
	assert.Error(t, lim.validate())
}

func TestSpanLimitsValidateAllowsUnlimitedValueLength(t *testing.T) {
	lim := DefaultSpanLimits()
	lim.MaxAttributeValueLength = -1
	assert.NoError(t, lim.validate())
}

func TestSpanLimitsValidateRejectsBadValueLength(t *testing.T) {
	lim := DefaultSpanLimits()
	lim.MaxAttributeValueLength = -2
	assert.Error(t, lim.validate())
}

func TestConfigLoaderFromEnviron(t *testing.T) {
	t.Setenv(EnvSamplerProbability, "1")
	t.Setenv(EnvMaxAttributes, "16")

	cfg, err := NewConfigLoader().FromEnviron().Load()
	require.NoError(t, err)
	assert.Equal(t, "AlwaysOnSampler", cfg.Sampler.Description())
	assert.Equal(t, 16, cfg.SpanLimits.MaxAttributes)
}

func TestConfigLoaderFromEnvironMaxAttributeValueLength(t *testing.T) {
	t.Setenv(EnvMaxAttributeValueLength, "120")

	cfg, err := NewConfigLoader().FromEnviron().Load()
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.SpanLimits.MaxAttributeValueLength)
}

func TestConfigLoaderPropertiesOverrideEnvironMaxAttributeValueLength(t *testing.T) {
	t.Setenv(EnvMaxAttributeValueLength, "120")

	cfg, err := NewConfigLoader().
		FromEnviron().
		FromProperties(map[string]string{PropMaxAttributeValueLength: "60"}).
		Load()
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.SpanLimits.MaxAttributeValueLength)
}

func TestConfigLoaderPropertiesOverrideEnviron(t *testing.T) {
	t.Setenv(EnvMaxAttributes, "16")

	cfg, err := NewConfigLoader().
		FromEnviron().
		FromProperties(map[string]string{PropMaxAttributes: "8"}).
		Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.SpanLimits.MaxAttributes)
}

func TestConfigLoaderBuilderOverridesEverything(t *testing.T) {
	t.Setenv(EnvMaxAttributes, "16")

	cfg, err := NewConfigLoader().
		FromEnviron().
		FromProperties(map[string]string{PropMaxAttributes: "8"}).
		WithSpanLimits(SpanLimits{
			MaxAttributes: 4, MaxEvents: 4, MaxLinks: 4,
			MaxAttributesPerEvent: 4, MaxAttributesPerLink: 4,
			MaxAttributeValueLength: -1,
		}).
		Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.SpanLimits.MaxAttributes)
}

func TestConfigLoaderSamplerFromProbabilityMapping(t *testing.T) {
	assert.Equal(t, "AlwaysOffSampler", samplerFromProbability(0).Description())
	assert.Equal(t, "AlwaysOnSampler", samplerFromProbability(1).Description())
	assert.Equal(t, "TraceIDRatioBased{0.25}", samplerFromProbability(0.25).Description())
}

func TestConfigLoaderIgnoresUnparseableValues(t *testing.T) {
	t.Setenv(EnvMaxAttributes, "not-a-number")
	cfg, err := NewConfigLoader().FromEnviron().Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSpanLimits().MaxAttributes, cfg.SpanLimits.MaxAttributes)
}

func TestConfigLoaderLoadValidates(t *testing.T) {
	_, err := NewConfigLoader().WithSpanLimits(SpanLimits{}).Load()
	assert.Error(t, err)
}
