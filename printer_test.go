// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jval"
	"github.com/creachadair/jval/ast"
	"github.com/google/go-cmp/cmp"
)

func TestPrint(t *testing.T) {
	tests := []struct {
		name  string
		input ast.Value
		want  string
	}{
		{"Nil", nil, "null"},
		{"Null", ast.Null{}, "null"},
		{"True", ast.Bool(true), "true"},
		{"False", ast.Bool(false), "false"},
		{"Int", ast.Number(25), "25"},
		{"Negative", ast.Number(-3.5), "-3.5"},
		{"Small", ast.Number(1e-7), "1e-7"},
		{"Large", ast.Number(1e21), "1e+21"},
		{"String", ast.String("a b"), `"a b"`},
		{"Verbatim", ast.String("tab\there"), "\"tab\there\""},
		{"EmptyArray", ast.Array{}, "[]"},
		{"EmptyObject", ast.Object{}, "{}"},
		{"Array", ast.Array{ast.Number(1), ast.String("two"), ast.Null{}}, `[
  1,
  "two",
  null
]`},
		{"Object", ast.Object{
			ast.Field("a", 1),
			ast.Field("b", ast.Array{ast.Bool(true), ast.Bool(false), ast.Null{}}),
		}, `{
  "a": 1,
  "b": [
    true,
    false,
    null
  ]
}`},
		{"Nested", ast.Array{ast.Object{ast.Field("x", ast.Array{})}, ast.Object{}}, `[
  {
    "x": []
  },
  {}
]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := jval.PrintString(tc.input)
			if err != nil {
				t.Fatalf("Print: unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Print: (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestPrinterOptions(t *testing.T) {
	obj := ast.Object{
		ast.Field("zulu", "q\"uote"),
		ast.Field("alpha", ast.Array{ast.Number(1)}),
	}
	tests := []struct {
		name string
		p    jval.Printer
		want string
	}{
		{"Default", jval.Printer{}, `{
  "zulu": "q"uote",
  "alpha": [
    1
  ]
}`},
		{"Indent", jval.Printer{Indent: "\t"}, "{\n\t\"zulu\": \"q\"uote\",\n\t\"alpha\": [\n\t\t1\n\t]\n}"},
		{"SortKeys", jval.Printer{SortKeys: true}, `{
  "alpha": [
    1
  ],
  "zulu": "q"uote"
}`},
		{"Escape", jval.Printer{EscapeStrings: true}, `{
  "zulu": "q\"uote",
  "alpha": [
    1
  ]
}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf strings.Builder
			if err := tc.p.Print(&buf, obj); err != nil {
				t.Fatalf("Print: unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("Print: (-want, +got)\n%s", diff)
			}
		})
	}

	// Sorting does not modify the input.
	if got := obj.Keys(); !cmp.Equal(got, []string{"zulu", "alpha"}) {
		t.Errorf("Keys after print: got %q, want input order", got)
	}
}

func TestPrintDepth(t *testing.T) {
	var buf strings.Builder
	if err := (jval.Printer{}).PrintDepth(&buf, ast.Array{ast.Number(1)}, 1); err != nil {
		t.Fatalf("PrintDepth: unexpected error: %v", err)
	}
	if got, want := buf.String(), "[\n    1\n  ]"; got != want {
		t.Errorf("PrintDepth: got %q, want %q", got, want)
	}

	if err := (jval.Printer{}).PrintDepth(&buf, ast.Null{}, -1); err == nil {
		t.Error("PrintDepth(-1): got nil, want error")
	}
	if err := (jval.Printer{}).PrintDepth(&buf, ast.Null{}, jval.DefaultPrintDepth+1); !errors.Is(err, jval.MaxDepthExceeded) {
		t.Errorf("PrintDepth(%d): got %v, want %v", jval.DefaultPrintDepth+1, err, jval.MaxDepthExceeded)
	}
}

// nestArrays returns n arrays nested inside one another, with the innermost
// containing a single number.
func nestArrays(n int) ast.Value {
	var v ast.Value = ast.Array{ast.Number(0)}
	for range n - 1 {
		v = ast.Array{v}
	}
	return v
}

func TestPrintMaxDepth(t *testing.T) {
	if _, err := jval.PrintString(nestArrays(jval.DefaultPrintDepth)); err != nil {
		t.Errorf("Print depth %d: unexpected error: %v", jval.DefaultPrintDepth, err)
	}

	var buf strings.Builder
	err := jval.Print(&buf, nestArrays(jval.DefaultPrintDepth+1))
	var perr *jval.PrintError
	if !errors.As(err, &perr) || perr.Kind != jval.MaxDepthExceeded {
		t.Errorf("Print depth %d: got %v, want %v", jval.DefaultPrintDepth+1, err, jval.MaxDepthExceeded)
	}
	if buf.Len() != 0 {
		t.Errorf("Print wrote %d bytes despite error", buf.Len())
	}

	// Empty containers count toward the depth as well.
	deep := ast.Value(ast.Object{})
	for range jval.DefaultPrintDepth {
		deep = ast.Array{deep}
	}
	if _, err := jval.PrintString(deep); !errors.Is(err, jval.MaxDepthExceeded) {
		t.Errorf("Print empty at depth %d: got %v, want %v", jval.DefaultPrintDepth+1, err, jval.MaxDepthExceeded)
	}

	p := jval.Printer{MaxDepth: 2}
	if err := p.Print(&buf, nestArrays(2)); err != nil {
		t.Errorf("Print depth 2 limit 2: unexpected error: %v", err)
	}
	if err := p.Print(&buf, nestArrays(3)); !errors.Is(err, jval.MaxDepthExceeded) {
		t.Errorf("Print depth 3 limit 2: got %v, want %v", err, jval.MaxDepthExceeded)
	}
	if err := (jval.Printer{MaxDepth: -1}).Print(&buf, nestArrays(500)); err != nil {
		t.Errorf("Print unlimited: unexpected error: %v", err)
	}
}

func TestPrintNonFinite(t *testing.T) {
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if got, err := jval.PrintString(ast.Array{ast.Number(f)}); err == nil {
			t.Errorf("Print %v: got %q, want error", f, got)
		}
	}
}

func TestPrintNilMember(t *testing.T) {
	v := ast.Object{ast.Field("a", 1), nil}
	if got, err := jval.PrintString(v); err == nil {
		t.Errorf("Print: got %q, want error", got)
	} else {
		t.Logf("Got expected error: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`null`, `true`, `-0.25`, `"xyz"`, `[]`, `{}`,
		`{"a":1,"b":[true,false,null]}`,
		`{"jsonrpc":"2.0","id":9929,"result":[{"instrument_name":"BTC-PERPETUAL","tick_size":0.5,"is_active":true}]}`,
		`[[1,[2,[3]]],{"k":{"k":{"k":"v"}}}]`,
		`{"big": 1e300, "tiny": 2.5e-9, "neg": -12345678901}`,
	}
	for _, input := range inputs {
		v, err := jval.Parse(input)
		if err != nil {
			t.Fatalf("Parse %q: %v", input, err)
		}
		text, err := (jval.Printer{EscapeStrings: true}).PrintString(v)
		if err != nil {
			t.Fatalf("Print %q: %v", input, err)
		}
		w, err := jval.Parse(text)
		if err != nil {
			t.Fatalf("Reparse %q: %v", text, err)
		}
		if !ast.Equal(v, w) {
			t.Errorf("Round trip of %q differs:\n%s", input, text)
		}
	}
}
