// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"fmt"
	"io"
	"math"

	"github.com/creachadair/jval/ast"
	"github.com/creachadair/jval/internal/escape"
	"go4.org/mem"
)

// DefaultPrintDepth is the nesting limit used by a Printer whose MaxDepth
// field is zero.
const DefaultPrintDepth = 100

// A Printer carries the settings for rendering values as indented JSON text.
// A zero value is ready for use with default settings.
type Printer struct {
	// Indent is the text written once per nesting level before each array
	// element and object member. If empty, two spaces are used.
	Indent string

	// MaxDepth is the deepest nesting level at which the contents of an array
	// or object may be rendered. If zero, DefaultPrintDepth is used; if
	// negative, nesting is not limited.
	MaxDepth int

	// If true, escape string contents and object keys. Otherwise the text of
	// strings is written verbatim between quotation marks.
	EscapeStrings bool

	// If true, render object members in lexicographic order of key.
	// Otherwise members are rendered in the order they occur in the object.
	SortKeys bool
}

// Print renders v to w with default settings.
func Print(w io.Writer, v ast.Value) error { return Printer{}.Print(w, v) }

// PrintString renders v as a string with default settings.
func PrintString(v ast.Value) (string, error) { return Printer{}.PrintString(v) }

// Print renders v to w starting at depth 0. It is shorthand for
// p.PrintDepth(w, v, 0).
func (p Printer) Print(w io.Writer, v ast.Value) error { return p.PrintDepth(w, v, 0) }

// PrintDepth renders v to w as if it were nested inside depth enclosing
// containers. The closing bracket of an array or object is indented to depth,
// and its contents to depth+1; the first line of output is not indented.
// No trailing newline is written.
//
// If the contents of any array or object would lie deeper than the maximum
// depth, PrintDepth reports a *PrintError of kind MaxDepthExceeded. Nothing
// is written to w unless rendering succeeds.
func (p Printer) PrintDepth(w io.Writer, v ast.Value, depth int) error {
	if depth < 0 {
		return fmt.Errorf("print: invalid depth %d", depth)
	}
	buf, err := p.render(nil, v, depth)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// PrintString renders v as a string starting at depth 0.
func (p Printer) PrintString(v ast.Value) (string, error) {
	buf, err := p.render(nil, v, 0)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func (p Printer) maxDepth() int {
	if p.MaxDepth == 0 {
		return DefaultPrintDepth
	}
	return p.MaxDepth
}

func (p Printer) indent() string {
	if p.Indent == "" {
		return "  "
	}
	return p.Indent
}

// checkDepth reports an error if depth is past the maximum.
func (p Printer) checkDepth(depth int) error {
	if limit := p.maxDepth(); limit >= 0 && depth > limit {
		return &PrintError{
			Kind:    MaxDepthExceeded,
			Depth:   depth,
			Message: fmt.Sprintf("nesting depth %d exceeds %d", depth, limit),
		}
	}
	return nil
}

// render appends the text of v at the given depth to dst.
func (p Printer) render(dst []byte, v ast.Value, depth int) ([]byte, error) {
	if err := p.checkDepth(depth); err != nil {
		return dst, err
	}
	switch t := v.(type) {
	case nil, ast.Null:
		return append(dst, "null"...), nil

	case ast.Bool:
		if t {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil

	case ast.Number:
		if f := float64(t); math.IsInf(f, 0) || math.IsNaN(f) {
			return dst, fmt.Errorf("print: number %v has no JSON representation", f)
		}
		return ast.AppendNumber(dst, float64(t)), nil

	case ast.String:
		return p.appendString(dst, string(t)), nil

	case ast.Array:
		if err := p.checkDepth(depth + 1); err != nil {
			return dst, err
		}
		if len(t) == 0 {
			return append(dst, "[]"...), nil
		}
		dst = append(dst, "[\n"...)
		for i, elt := range t {
			dst = p.appendIndent(dst, depth+1)
			var err error
			dst, err = p.render(dst, elt, depth+1)
			if err != nil {
				return dst, err
			}
			if i+1 < len(t) {
				dst = append(dst, ',')
			}
			dst = append(dst, '\n')
		}
		return append(p.appendIndent(dst, depth), ']'), nil

	case ast.Object:
		if err := p.checkDepth(depth + 1); err != nil {
			return dst, err
		}
		if len(t) == 0 {
			return append(dst, "{}"...), nil
		}
		if p.SortKeys {
			t = t.Sorted()
		}
		dst = append(dst, "{\n"...)
		for i, m := range t {
			if m == nil {
				return dst, fmt.Errorf("print: nil member at offset %d", i)
			}
			dst = p.appendIndent(dst, depth+1)
			dst = append(p.appendString(dst, m.Key), ": "...)
			var err error
			dst, err = p.render(dst, m.Value, depth+1)
			if err != nil {
				return dst, err
			}
			if i+1 < len(t) {
				dst = append(dst, ',')
			}
			dst = append(dst, '\n')
		}
		return append(p.appendIndent(dst, depth), '}'), nil

	default:
		return dst, fmt.Errorf("print: unknown value type %T", v)
	}
}

func (p Printer) appendString(dst []byte, s string) []byte {
	if p.EscapeStrings {
		return escape.AppendQuote(dst, mem.S(s))
	}
	dst = append(dst, '"')
	dst = append(dst, s...)
	return append(dst, '"')
}

func (p Printer) appendIndent(dst []byte, depth int) []byte {
	ind := p.indent()
	for range depth {
		dst = append(dst, ind...)
	}
	return dst
}
