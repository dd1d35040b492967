// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package query implements structural queries over JSON values.
//
// A query describes a syntactic substructure of a JSON syntax tree, such as an
// object member, array element, or a path through the tree. Evaluating a query
// against a concrete JSON value traverses the structure described by the query
// and returns the resulting value.
//
// The simplest query is for a "path", a sequence of object keys and/or array
// indices that describes a path from the root of a JSON value. For example,
// given the JSON value:
//
//	[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]
//
// the query
//
//	query.Path(1, "c", "d")
//
// yields the value "true".
//
// Queries report type mismatches with errors that match ast.ErrTypeMismatch,
// and missing object keys with errors that match ast.ErrKeyNotFound.
package query

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/creachadair/jval/ast"
)

// Eval evaluates the given query beginning from root, returning the resulting
// value or an error.
func Eval(root ast.Value, q Query) (ast.Value, error) {
	return q.eval(root)
}

// EvalAs evaluates the given query beginning from root, and returns the
// resulting value as a T. If the result does not have type T, EvalAs reports
// an error that matches ast.ErrTypeMismatch.
func EvalAs[T ast.Value](root ast.Value, q Query) (T, error) {
	v, err := q.eval(root)
	if err != nil {
		var zero T
		return zero, err
	}
	return ast.As[T](v)
}

// A Query describes a traversal of a JSON value.
type Query interface {
	eval(ast.Value) (ast.Value, error)
}

// Path traverses a sequence of nested object keys or array indices from the
// root.  If no keys are specified, the root is returned. Each key must be a
// string, an int, or a Query.
func Path(keys ...any) Query {
	if len(keys) == 1 {
		return pathElem(keys[0])
	}
	pq := make(Seq, 0, len(keys))
	for _, key := range keys {
		q := pathElem(key)
		if sq, ok := q.(Seq); ok {
			pq = append(pq, sq...)
		} else {
			pq = append(pq, q)
		}
	}
	return pq
}

func pathElem(key any) Query {
	switch t := key.(type) {
	case string:
		return objKey(t)
	case int:
		return nthQuery(t)
	case Query:
		return t
	default:
		panic(fmt.Sprintf("invalid path element %T", key))
	}
}

type objKey string

func (o objKey) eval(v ast.Value) (ast.Value, error) { return ast.Get(v, string(o)) }

type nthQuery int

func (nq nthQuery) eval(v ast.Value) (ast.Value, error) {
	arr, err := ast.AsArray(v)
	if err != nil {
		return nil, err
	}
	idx := int(nq)
	if idx < 0 {
		idx += len(arr)
	}
	if idx < 0 || idx >= len(arr) {
		return nil, fmt.Errorf("index %d out of range (0..%d)", nq, len(arr))
	}
	return arr[idx], nil
}

// Selection constructs an array of the elements of its input array, for which
// the specified function returns true.
type Selection func(ast.Value) bool

func (q Selection) eval(v ast.Value) (ast.Value, error) {
	a, err := ast.AsArray(v)
	if err != nil {
		return nil, err
	}
	out := ast.Array{}
	for _, elt := range a {
		if q(elt) {
			out = append(out, elt)
		}
	}
	return out, nil
}

// Mapping constructs an array in which each value is replaced by the result of
// calling the specified function on the corresponding input value.
type Mapping func(ast.Value) ast.Value

func (q Mapping) eval(v ast.Value) (ast.Value, error) {
	a, err := ast.AsArray(v)
	if err != nil {
		return nil, err
	}
	out := make(ast.Array, len(a))
	for i, elt := range a {
		out[i] = q(elt)
	}
	return out, nil
}

// Slice selects the elements of an array from offsets lo to hi. The range
// includes lo but excludes hi. Negative offsets count from the end of the
// array, and offsets past either end are clamped to it. If hi == 0, the
// length of the array is used. An empty range selects an empty array.
func Slice(lo, hi int) Query { return sliceQuery{lo, hi} }

type sliceQuery struct{ lo, hi int }

func (q sliceQuery) eval(v ast.Value) (ast.Value, error) {
	arr, err := ast.AsArray(v)
	if err != nil {
		return nil, err
	}
	lo, hi := clampOffset(q.lo, len(arr)), len(arr)
	if q.hi != 0 {
		hi = clampOffset(q.hi, len(arr))
	}
	if lo >= hi {
		return ast.Array{}, nil
	}
	return arr[lo:hi], nil
}

// clampOffset converts an offset into an array of length n to an index in
// the range 0..n, counting negative offsets from the end.
func clampOffset(off, n int) int {
	if off < 0 {
		off += n
	}
	return max(0, min(off, n))
}

// Pick constructs an array by picking the designated offsets from an array,
// in the order given. Negative offsets count from the end of the array.
// Offsets that do not fall within the array are skipped.
func Pick(offsets ...int) Query { return pickQuery(offsets) }

type pickQuery []int

func (q pickQuery) eval(v ast.Value) (ast.Value, error) {
	arr, err := ast.AsArray(v)
	if err != nil {
		return nil, err
	}
	out := make(ast.Array, 0, len(q))
	for _, off := range q {
		if off < 0 {
			off += len(arr)
		}
		if off >= 0 && off < len(arr) {
			out = append(out, arr[off])
		}
	}
	return out, nil
}

// Len returns an integer representing the length of the root.
//
// For an object, the length is the number of members.
// For an array, the length is the number of elements.
// For a string, the length is the length of the string in bytes.
// For null, the length is zero.
func Len() Query { return lenQuery{} }

type lenQuery struct{}

func (lenQuery) eval(v ast.Value) (ast.Value, error) {
	if ast.IsNull(v) {
		return ast.Int(0), nil
	}
	if t, ok := v.(interface {
		Len() int
	}); ok {
		return ast.Int(int64(t.Len())), nil
	}
	return nil, fmt.Errorf("cannot take length of %v: %w", ast.KindOf(v), ast.ErrTypeMismatch)
}

// Seq is a sequential composition of queries. An empty sequence selects the
// root; otherwise, each query is applied to the result selected by the
// previous query in the sequence.
type Seq []Query

func (q Seq) eval(v ast.Value) (ast.Value, error) {
	cur := v
	for _, sq := range q {
		next, err := sq.eval(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Alt is a query that selects among a sequence of alternatives.  The result of
// the first alternative that does not report an error is returned. If there
// are no alternatives, the query fails on all inputs.
type Alt []Query

func (q Alt) eval(v ast.Value) (ast.Value, error) {
	for _, alt := range q {
		if w, err := alt.eval(v); err == nil {
			return w, nil
		}
	}
	return nil, errors.New("no matching alternatives")
}

// Recur applies a query to its input and each of its recursive descendants,
// in document order, and returns an array of the values for which the query
// succeeded. It fails if there are none. The arguments have the same
// constraints as Path; with no arguments, Recur returns every value in its
// input, beginning with the input itself.
func Recur(keys ...any) Query { return recQuery{Path(keys...)} }

type recQuery struct{ Query }

func (q recQuery) eval(v ast.Value) (ast.Value, error) {
	var out ast.Array

	stk := []ast.Value{v}
	for len(stk) != 0 {
		next := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		if r, err := q.Query.eval(next); err == nil {
			out = append(out, r)
		}

		// N.B. Push in reverse order, so we visit in lexical order.
		switch t := next.(type) {
		case ast.Object:
			for i := len(t) - 1; i >= 0; i-- {
				stk = append(stk, t[i].Value)
			}
		case ast.Array:
			for i := len(t) - 1; i >= 0; i-- {
				stk = append(stk, t[i])
			}
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no matches")
	}
	return out, nil
}

// Nodes is a query over sets of values. Beginning with a set containing only
// the input, each query in turn is applied to every value of the current set,
// and the elements of the arrays it returns form the next set. A query that
// fails on a value, or whose result is not an array, selects nothing from
// that value. Nodes returns an array of the final set, in the order the
// values were selected.
type Nodes []Query

func (q Nodes) eval(v ast.Value) (ast.Value, error) {
	cur := ast.Array{v}
	for _, sq := range q {
		next := ast.Array{}
		for _, elt := range cur {
			r, err := sq.eval(elt)
			if err != nil {
				continue
			}
			if arr, ok := r.(ast.Array); ok {
				next = append(next, arr...)
			}
		}
		cur = next
	}
	return cur, nil
}

// Each applies a query to each element of an array and returns an array of the
// resulting values. It fails if the input is not an array.  The arguments have
// the same constraints as Path.
func Each(keys ...any) Query { return eachQuery{Path(keys...)} }

type eachQuery struct{ Query }

func (q eachQuery) eval(v ast.Value) (ast.Value, error) {
	arr, err := ast.AsArray(v)
	if err != nil {
		return nil, err
	}
	out := make(ast.Array, 0, len(arr))
	for i, elt := range arr {
		v, err := q.Query.eval(elt)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Object constructs an object with the given keys mapped to the results of
// matching the query values against its input. The members of the result are
// in lexicographic order by key.
type Object map[string]Query

func (o Object) eval(v ast.Value) (ast.Value, error) {
	out := make(ast.Object, 0, len(o))
	for _, key := range slices.Sorted(maps.Keys(o)) {
		q := o[key]
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", key, err)
		}
		out = append(out, ast.Field(key, val))
	}
	return out, nil
}

// Array constructs an array with the values produced by matching the given
// queries against its input.
type Array []Query

func (a Array) eval(v ast.Value) (ast.Value, error) {
	out := make(ast.Array, len(a))
	for i, q := range a {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = val
	}
	return out, nil
}

// A String query ignores its input and returns the given string.
func String(s string) Query { return Value(ast.String(s)) }

// A Float query ignores its input and returns the given number.
func Float(n float64) Query { return Value(ast.Float(n)) }

// An Int query ignores its input and returns the given integer.
func Int(z int64) Query { return Value(ast.Int(z)) }

// A Bool query ignores its input and returns the given bool.
func Bool(b bool) Query { return Value(ast.Bool(b)) }

// A Null query ignores its input and returns a null value.
func Null() Query { return Value(ast.Null{}) }

// A Value query ignores its input and returns the given value.
func Value(v ast.Value) Query { return constQuery{v} }

type constQuery struct{ ast.Value }

func (c constQuery) eval(_ ast.Value) (ast.Value, error) { return c.Value, nil }

// A Glob query returns an array of all its inputs.
func Glob() Query { return globQuery{} }

type globQuery struct{}

func (globQuery) eval(v ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case ast.Object:
		out := make(ast.Array, len(t))
		for i, m := range t {
			out[i] = m.Value
		}
		return out, nil
	case ast.Array:
		return t, nil
	default:
		return nil, fmt.Errorf("no matching values in %v", ast.KindOf(v))
	}
}
