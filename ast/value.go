// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"maps"
	"slices"
)

// ToValue converts a string, bool, nil, integer, float, []any, map[string]any
// or Value into a Value. Slices and maps are converted recursively, and map
// keys are sorted. ToValue panics if v does not have one of those types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Number(t)
	case int8:
		return Number(t)
	case int16:
		return Number(t)
	case int32:
		return Number(t)
	case int64:
		return Number(t)
	case uint:
		return Number(t)
	case uint8:
		return Number(t)
	case uint16:
		return Number(t)
	case uint32:
		return Number(t)
	case uint64:
		return Number(t)
	case float32:
		return Number(t)
	case float64:
		return Number(t)
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	case map[string]any:
		out := make(Object, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			out = append(out, Field(key, t[key]))
		}
		return out
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}

// Equal reports whether a and b are structurally equal. Numbers are compared
// by numeric value, and objects are compared as unordered sets of members.
// A nil Value is equal to Null.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case nil, Null:
		return IsNull(b)
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Object:
		y, ok := b.(Object)
		if !ok || len(x) != len(y) {
			return false
		}
		for _, m := range x {
			w, ok := y.Get(m.Key)
			if !ok || !Equal(m.Value, w) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("unknown value type %T", a))
	}
}
