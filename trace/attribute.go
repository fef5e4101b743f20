// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

package trace

import "fmt"

// ValueKind discriminates the concrete type held by a Value.
type ValueKind int

const (
	// INVALID is the zero value; a Value holding no data.
	INVALID ValueKind = iota
	BOOL
	INT64
	FLOAT64
	STRING
	BOOLSLICE
	INT64SLICE
	FLOAT64SLICE
	STRINGSLICE
)

// Value is a typed attribute value: a string, int64, float64, bool, or a
// homogeneous slice of one of those. It is a closed discriminated union,
// never a bare interface{}, so SetAttributes never needs reflection to
// figure out what it was handed.
type Value struct {
	kind        ValueKind
	boolVal     bool
	int64Val    int64
	float64Val  float64
	stringVal   string
	boolSlice   []bool
	int64Slice  []int64
	float64Slice []float64
	stringSlice []string
}

// Kind returns the kind of value held.
func (v Value) Kind() ValueKind { return v.kind }

func BoolValue(b bool) Value             { return Value{kind: BOOL, boolVal: b} }
func Int64Value(i int64) Value           { return Value{kind: INT64, int64Val: i} }
func IntValue(i int) Value               { return Int64Value(int64(i)) }
func Float64Value(f float64) Value       { return Value{kind: FLOAT64, float64Val: f} }
func StringValue(s string) Value         { return Value{kind: STRING, stringVal: s} }
func BoolSliceValue(b []bool) Value      { return Value{kind: BOOLSLICE, boolSlice: append([]bool(nil), b...)} }
func Int64SliceValue(i []int64) Value    { return Value{kind: INT64SLICE, int64Slice: append([]int64(nil), i...)} }
func Float64SliceValue(f []float64) Value {
	return Value{kind: FLOAT64SLICE, float64Slice: append([]float64(nil), f...)}
}
func StringSliceValue(s []string) Value {
	return Value{kind: STRINGSLICE, stringSlice: append([]string(nil), s...)}
}

func (v Value) AsBool() bool            { return v.boolVal }
func (v Value) AsInt64() int64          { return v.int64Val }
func (v Value) AsFloat64() float64      { return v.float64Val }
func (v Value) AsString() string        { return v.stringVal }
func (v Value) AsBoolSlice() []bool     { return append([]bool(nil), v.boolSlice...) }
func (v Value) AsInt64Slice() []int64   { return append([]int64(nil), v.int64Slice...) }
func (v Value) AsFloat64Slice() []float64 {
	return append([]float64(nil), v.float64Slice...)
}
func (v Value) AsStringSlice() []string { return append([]string(nil), v.stringSlice...) }

// Len returns the number of elements for a slice-kinded Value, or -1 for a
// scalar kind.
func (v Value) Len() int {
	switch v.kind {
	case BOOLSLICE:
		return len(v.boolSlice)
	case INT64SLICE:
		return len(v.int64Slice)
	case FLOAT64SLICE:
		return len(v.float64Slice)
	case STRINGSLICE:
		return len(v.stringSlice)
	default:
		return -1
	}
}

// Emit renders v for diagnostic purposes (debug logs, test failure
// messages); it is not a wire format.
func (v Value) Emit() string {
	switch v.kind {
	case BOOL:
		return fmt.Sprintf("%t", v.boolVal)
	case INT64:
		return fmt.Sprintf("%d", v.int64Val)
	case FLOAT64:
		return fmt.Sprintf("%g", v.float64Val)
	case STRING:
		return v.stringVal
	case BOOLSLICE:
		return fmt.Sprintf("%v", v.boolSlice)
	case INT64SLICE:
		return fmt.Sprintf("%v", v.int64Slice)
	case FLOAT64SLICE:
		return fmt.Sprintf("%v", v.float64Slice)
	case STRINGSLICE:
		return fmt.Sprintf("%v", v.stringSlice)
	default:
		return "<invalid>"
	}
}

// Truncated returns a copy of v with string values (scalar or each slice
// element) truncated to at most n runes. n < 0 disables truncation and
// returns v unchanged.
func (v Value) Truncated(n int) Value {
	if n < 0 {
		return v
	}
	switch v.kind {
	case STRING:
		return StringValue(truncateRunes(v.stringVal, n))
	case STRINGSLICE:
		out := make([]string, len(v.stringSlice))
		for i, s := range v.stringSlice {
			out[i] = truncateRunes(s, n)
		}
		return Value{kind: STRINGSLICE, stringSlice: out}
	default:
		return v
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// KeyValue is a single Attribute: a non-empty key paired with a typed
// Value.
type KeyValue struct {
	Key   string
	Value Value
}

// Bool returns a KeyValue with a bool Value.
func Bool(k string, v bool) KeyValue { return KeyValue{k, BoolValue(v)} }

// Int64 returns a KeyValue with an int64 Value.
func Int64(k string, v int64) KeyValue { return KeyValue{k, Int64Value(v)} }

// Int returns a KeyValue with an int64 Value.
func Int(k string, v int) KeyValue { return KeyValue{k, IntValue(v)} }

// Float64 returns a KeyValue with a float64 Value.
func Float64(k string, v float64) KeyValue { return KeyValue{k, Float64Value(v)} }

// String returns a KeyValue with a string Value.
func String(k, v string) KeyValue { return KeyValue{k, StringValue(v)} }

// BoolSlice returns a KeyValue with a []bool Value.
func BoolSlice(k string, v []bool) KeyValue { return KeyValue{k, BoolSliceValue(v)} }

// Int64Slice returns a KeyValue with a []int64 Value.
func Int64Slice(k string, v []int64) KeyValue { return KeyValue{k, Int64SliceValue(v)} }

// Float64Slice returns a KeyValue with a []float64 Value.
func Float64Slice(k string, v []float64) KeyValue { return KeyValue{k, Float64SliceValue(v)} }

// StringSlice returns a KeyValue with a []string Value.
func StringSlice(k string, v []string) KeyValue { return KeyValue{k, StringSliceValue(v)} }
