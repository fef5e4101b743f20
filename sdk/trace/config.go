// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import (
	"errors"
	"os"
	"strconv"
)

// SpanLimits bounds the size of a single span's mutable collections.
// unlimited (-1) is only meaningful for MaxAttributeValueLength; every
// other field must be positive.
type SpanLimits struct {
	MaxAttributes           int
	MaxEvents               int
	MaxLinks                int
	MaxAttributesPerEvent   int
	MaxAttributesPerLink    int
	MaxAttributeValueLength int
}

// DefaultSpanLimits returns the spec-mandated defaults: 32 attributes,
// 128 events, 32 links, 32 attributes per event and per link, unlimited
// attribute value length.
func DefaultSpanLimits() SpanLimits {
	return SpanLimits{
		MaxAttributes:           32,
		MaxEvents:               128,
		MaxLinks:                32,
		MaxAttributesPerEvent:   32,
		MaxAttributesPerLink:    32,
		MaxAttributeValueLength: -1,
	}
}

func (l SpanLimits) validate() error {
	if l.MaxAttributes <= 0 || l.MaxEvents <= 0 || l.MaxLinks <= 0 ||
		l.MaxAttributesPerEvent <= 0 || l.MaxAttributesPerLink <= 0 {
		return errors.New("trace: span limits must be positive")
	}
	if l.MaxAttributeValueLength < -1 {
		return errors.New("trace: MaxAttributeValueLength must be -1 or non-negative")
	}
	return nil
}

// TraceConfig is the immutable bundle of settings governing how new spans
// are sampled and bounded. It is swapped atomically, never mutated in
// place, so a TracerProvider can republish it without disturbing spans
// already in flight.
type TraceConfig struct {
	Sampler    Sampler
	SpanLimits SpanLimits
}

// DefaultTraceConfig returns a TraceConfig with ParentBased(AlwaysOn)
// sampling and DefaultSpanLimits.
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		Sampler:    ParentBased(AlwaysOn()),
		SpanLimits: DefaultSpanLimits(),
	}
}

func (c TraceConfig) validate() error {
	if c.Sampler == nil {
		return errors.New("trace: TraceConfig requires a Sampler")
	}
	return c.SpanLimits.validate()
}

// Environment variable / property-map keys for TraceConfig, in the order
// the spec's configuration table lists them.
const (
	EnvSamplerProbability       = "OTEL_CONFIG_SAMPLER_PROBABILITY"
	EnvMaxAttributes            = "OTEL_CONFIG_MAX_ATTRS"
	EnvMaxEvents                = "OTEL_CONFIG_MAX_EVENTS"
	EnvMaxLinks                 = "OTEL_CONFIG_MAX_LINKS"
	EnvMaxAttributesPerEvt      = "OTEL_CONFIG_MAX_EVENT_ATTRS"
	EnvMaxAttributesPerLnk      = "OTEL_CONFIG_MAX_LINK_ATTRS"
	EnvMaxAttributeValueLength  = "OTEL_CONFIG_MAX_ATTR_LENGTH"

	PropSamplerProbability      = "otel.config.sampler.probability"
	PropMaxAttributes           = "otel.config.max.attrs"
	PropMaxEvents               = "otel.config.max.events"
	PropMaxLinks                = "otel.config.max.links"
	PropMaxAttributesPerEvt     = "otel.config.max.event.attrs"
	PropMaxAttributesPerLnk     = "otel.config.max.link.attrs"
	PropMaxAttributeValueLength = "otel.config.max.attr.length"
)

// ConfigLoader builds a TraceConfig from layered sources: DefaultTraceConfig,
// the process environment, a property map, and explicit builder overrides.
// Each call overwrites the fields it sets, so the last call wins: calling
// FromEnviron, then FromProperties, then WithSampler/WithSpanLimits gives
// overrides precedence over properties over the environment over the
// defaults. Calls are not reordered, so an override followed by
// FromEnviron or FromProperties is replaced by any key those find.
type ConfigLoader struct {
	cfg TraceConfig
}

// NewConfigLoader returns a loader holding DefaultTraceConfig; no other
// source is applied until FromEnviron, FromProperties, WithSampler or
// WithSpanLimits is called.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{cfg: DefaultTraceConfig()}
}

// FromEnviron applies any of the OTEL_CONFIG_* variables present in the
// process environment.
func (l *ConfigLoader) FromEnviron() *ConfigLoader {
	return l.fromLookup(os.LookupEnv, map[string]string{
		EnvSamplerProbability:      "probability",
		EnvMaxAttributes:           "maxAttrs",
		EnvMaxEvents:               "maxEvents",
		EnvMaxLinks:                "maxLinks",
		EnvMaxAttributesPerEvt:     "maxEventAttrs",
		EnvMaxAttributesPerLnk:     "maxLinkAttrs",
		EnvMaxAttributeValueLength: "maxAttrValueLength",
	})
}

// FromProperties applies any of the otel.config.* keys present in props,
// overriding whatever FromEnviron set.
func (l *ConfigLoader) FromProperties(props map[string]string) *ConfigLoader {
	lookup := func(k string) (string, bool) { v, ok := props[k]; return v, ok }
	return l.fromLookup(lookup, map[string]string{
		PropSamplerProbability:      "probability",
		PropMaxAttributes:           "maxAttrs",
		PropMaxEvents:               "maxEvents",
		PropMaxLinks:                "maxLinks",
		PropMaxAttributesPerEvt:     "maxEventAttrs",
		PropMaxAttributesPerLnk:     "maxLinkAttrs",
		PropMaxAttributeValueLength: "maxAttrValueLength",
	})
}

func (l *ConfigLoader) fromLookup(lookup func(string) (string, bool), keys map[string]string) *ConfigLoader {
	for key, field := range keys {
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		switch field {
		case "probability":
			if p, err := strconv.ParseFloat(raw, 64); err == nil {
				l.cfg.Sampler = samplerFromProbability(p)
			}
		case "maxAttrs":
			if n, err := strconv.Atoi(raw); err == nil {
				l.cfg.SpanLimits.MaxAttributes = n
			}
		case "maxEvents":
			if n, err := strconv.Atoi(raw); err == nil {
				l.cfg.SpanLimits.MaxEvents = n
			}
		case "maxLinks":
			if n, err := strconv.Atoi(raw); err == nil {
				l.cfg.SpanLimits.MaxLinks = n
			}
		case "maxEventAttrs":
			if n, err := strconv.Atoi(raw); err == nil {
				l.cfg.SpanLimits.MaxAttributesPerEvent = n
			}
		case "maxLinkAttrs":
			if n, err := strconv.Atoi(raw); err == nil {
				l.cfg.SpanLimits.MaxAttributesPerLink = n
			}
		case "maxAttrValueLength":
			if n, err := strconv.Atoi(raw); err == nil {
				l.cfg.SpanLimits.MaxAttributeValueLength = n
			}
		}
	}
	return l
}

// WithSampler overrides the sampler, replacing whatever earlier
// FromEnviron/FromProperties calls set.
func (l *ConfigLoader) WithSampler(s Sampler) *ConfigLoader {
	l.cfg.Sampler = s
	return l
}

// WithSpanLimits overrides the span limits wholesale, replacing whatever
// earlier FromEnviron/FromProperties calls set.
func (l *ConfigLoader) WithSpanLimits(lim SpanLimits) *ConfigLoader {
	l.cfg.SpanLimits = lim
	return l
}

// Load validates and returns the accumulated TraceConfig.
func (l *ConfigLoader) Load() (TraceConfig, error) {
	if err := l.cfg.validate(); err != nil {
		return TraceConfig{}, err
	}
	return l.cfg, nil
}

// samplerFromProbability implements the spec's sampler-probability
// mapping: 0 -> AlwaysOff, 1 -> AlwaysOn, else TraceIDRatio(p).
func samplerFromProbability(p float64) Sampler {
	switch p {
	case 0:
		return AlwaysOff()
	case 1:
		return AlwaysOn()
	default:
		s, err := TraceIDRatio(p)
		if err != nil {
			return AlwaysOn()
		}
		return s
	}
}
