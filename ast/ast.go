// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an in-memory tree model for JSON values.
//
// A Value has exactly one of six concrete types: Null, Bool, Number, String,
// Array, or Object. Arrays and objects own their children; a tree built by
// the parser never shares a node between two parents.
package ast

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/jval/internal/escape"
	"go4.org/mem"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// Kind reports which of the six JSON variants the value is.
	Kind() Kind

	// JSON renders the value as compact JSON text.
	JSON() string

	isValue()
}

// Kind identifies the variant of a Value. Each kind is represented by a
// single byte, which is the first byte of that kind's grammar, except that
// numbers are represented by '0' and Booleans by 'b'.
type Kind byte

// Constants defining the valid Kind values.
const (
	InvalidKind Kind = 0   // not a valid JSON value (e.g., a nil Value)
	NullKind    Kind = 'n' // null
	BoolKind    Kind = 'b' // true, false
	NumberKind  Kind = '0' // number
	StringKind  Kind = '"' // quoted string
	ArrayKind   Kind = '[' // [ ... ]
	ObjectKind  Kind = '{' // { ... }
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	case InvalidKind:
		return "invalid"
	}
	return fmt.Sprintf("Kind(%q)", byte(k))
}

// Null represents the null constant.
type Null struct{}

func (Null) Kind() Kind     { return NullKind }
func (Null) JSON() string   { return "null" }
func (Null) String() string { return "null" }
func (Null) isValue()       {}

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Kind() Kind       { return BoolKind }
func (b Bool) JSON() string   { return strconv.FormatBool(bool(b)) }
func (b Bool) String() string { return b.JSON() }
func (Bool) isValue()         {}

// A Number is a double-precision floating-point value.
type Number float64

// Int returns an integer-valued Number.
func Int(z int64) Number { return Number(z) }

// Float returns a Number with value f.
func Float(f float64) Number { return Number(f) }

func (Number) Kind() Kind { return NumberKind }

// JSON renders n in the shortest decimal form that parses back to the same
// value. Magnitudes below 1e-6 or from 1e21 up use exponent notation.
// Non-finite values, which are not valid JSON, render as null.
func (n Number) JSON() string { return string(AppendNumber(nil, float64(n))) }

func (n Number) String() string { return n.JSON() }

// Float64 returns n as a float64.
func (n Number) Float64() float64 { return float64(n) }

// IsInt reports whether n is a finite number with no fractional part.
func (n Number) IsInt() bool {
	f := float64(n)
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

// Int64 returns n truncated toward zero to an int64.
func (n Number) Int64() int64 { return int64(n) }

func (Number) isValue() {}

// AppendNumber appends the JSON text of f to dst, as described for
// Number.JSON, and returns the extended slice.
func AppendNumber(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	if format == 'e' {
		// Trim a leading zero from a two-digit exponent: 1e-07 => 1e-7.
		if n := len(dst); n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

// A String is a string value. The string holds the decoded text, without
// quotation marks or escapes.
type String string

func (String) Kind() Kind { return StringKind }

// JSON renders s as a quoted and escaped JSON string.
func (s String) JSON() string { return escape.Quote(mem.S(string(s))) }

// String returns the decoded text of s.
func (s String) String() string { return string(s) }

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

func (String) isValue() {}

// An Array is a sequence of values.
type Array []Value

func (Array) Kind() Kind { return ArrayKind }

func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, elt := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jsonOf(elt))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a)) }

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

func (Array) isValue() {}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
// The value must be acceptable to ToValue.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

func (m Member) JSON() string {
	return escape.Quote(mem.S(m.Key)) + ":" + jsonOf(m.Value)
}

func (m Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// An Object is a collection of key-value members, in order. Objects produced
// by the parser have unique keys, in order of their first appearance in the
// input. The members of an Object must not be nil.
type Object []*Member

func (Object) Kind() Kind { return ObjectKind }

func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o)) }

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Get returns the value of the member of o with the given key, and reports
// whether such a member exists.
func (o Object) Get(key string) (Value, bool) {
	if m := o.Find(key); m != nil {
		return m.Value, true
	}
	return nil, false
}

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Sorted returns a copy of o with its members in ascending order by key.
// Members with equal keys keep their relative order. The members themselves
// are shared with o.
func (o Object) Sorted() Object {
	out := slices.Clone(o)
	slices.SortStableFunc(out, func(a, b *Member) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

func (Object) isValue() {}

// jsonOf renders v as JSON, treating a nil Value as null.
func jsonOf(v Value) string {
	if v == nil {
		return "null"
	}
	return v.JSON()
}
