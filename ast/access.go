// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is reported when a value is accessed as a kind it does
	// not have. Errors of concrete type *TypeError match it with errors.Is.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrKeyNotFound is reported by a keyed lookup for a key that an object
	// does not contain. Errors of concrete type *KeyError match it with
	// errors.Is.
	ErrKeyNotFound = errors.New("key not found")
)

// TypeError is the concrete type of errors reporting a type mismatch.
type TypeError struct {
	Want, Got Kind
}

func (e *TypeError) Error() string { return fmt.Sprintf("got %v, want %v", e.Got, e.Want) }

// Unwrap supports error wrapping; it returns ErrTypeMismatch.
func (e *TypeError) Unwrap() error { return ErrTypeMismatch }

// KeyError is the concrete type of errors reporting a missing object key.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string { return fmt.Sprintf("key %q not found", e.Key) }

// Unwrap supports error wrapping; it returns ErrKeyNotFound.
func (e *KeyError) Unwrap() error { return ErrKeyNotFound }

// As returns v as the concrete type T, or reports a *TypeError if v has some
// other type. A nil Value is treated as null, so As[Null](nil) succeeds.
func As[T Value](v Value) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	var zero T
	if _, ok := any(zero).(Null); ok && v == nil {
		return zero, nil
	}
	want := InvalidKind
	if z, ok := any(zero).(Value); ok {
		want = z.Kind()
	}
	return zero, &TypeError{Want: want, Got: KindOf(v)}
}

// AsBool returns the payload of v if it is a Bool.
func AsBool(v Value) (bool, error) { b, err := As[Bool](v); return bool(b), err }

// AsNumber returns the payload of v if it is a Number.
func AsNumber(v Value) (float64, error) { n, err := As[Number](v); return float64(n), err }

// AsString returns the payload of v if it is a String.
func AsString(v Value) (string, error) { s, err := As[String](v); return string(s), err }

// AsArray returns v if it is an Array.
func AsArray(v Value) (Array, error) { return As[Array](v) }

// AsObject returns v if it is an Object.
func AsObject(v Value) (Object, error) { return As[Object](v) }

// Get returns the value of the member of v with the given key. It reports a
// *TypeError if v is not an Object, or a *KeyError if v has no such member.
func Get(v Value, key string) (Value, error) {
	obj, err := As[Object](v)
	if err != nil {
		return nil, err
	}
	if m := obj.Find(key); m != nil {
		return m.Value, nil
	}
	return nil, &KeyError{Key: key}
}

// IsNull reports whether v is the null value. A nil Value is treated as null.
func IsNull(v Value) bool {
	switch v.(type) {
	case nil, Null:
		return true
	}
	return false
}

// KindOf returns the kind of v, or InvalidKind if v == nil.
func KindOf(v Value) Kind {
	if v == nil {
		return InvalidKind
	}
	return v.Kind()
}
