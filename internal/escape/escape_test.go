// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jval/internal/escape"
	"go4.org/mem"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"\u2028 \u2029 \ufffd", `"\u2028 \u2029 \ufffd"`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
		{"café \U0001F600", "\"café \U0001F600\""},
		{"bad \xff byte", `"bad \ufffd byte"`},
	}
	for _, test := range tests {
		got := escape.Quote(mem.S(test.input))
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		input string
		want  string
		n     int
		err   error
	}{
		{`"`, `"`, 1, nil},
		{`\`, `\`, 1, nil},
		{`/`, `/`, 1, nil},
		{`b`, "\b", 1, nil},
		{`f`, "\f", 1, nil},
		{`n`, "\n", 1, nil},
		{`r`, "\r", 1, nil},
		{`t`, "\t", 1, nil},
		{`u0041xyz`, "A", 5, nil},
		{`u00e9`, "é", 5, nil},
		{`uD83D\uDE00`, "\U0001F600", 11, nil},
		{`ud83d\ude00 tail`, "\U0001F600", 11, nil},
		{`uD83D`, "\ufffd", 5, nil},         // unpaired high surrogate
		{`uDE00`, "\ufffd", 5, nil},         // unpaired low surrogate
		{`uD83D\u0041`, "\ufffd", 5, nil},   // second escape is not a low surrogate
		{`uD83D\uZZZZ`, "\ufffd", 5, nil},   // second escape is left for the caller
		{``, ``, 0, escape.ErrIncomplete},  // nothing after the backslash
		{`u00`, ``, 0, escape.ErrIncomplete},
		{`u00"`, ``, 0, escape.ErrInvalid}, // short escape before a quote
		{`u00x9`, ``, 0, escape.ErrInvalid},
		{`x`, ``, 0, escape.ErrInvalid},
		{`'`, ``, 0, escape.ErrInvalid},
	}
	for _, test := range tests {
		got, n, err := escape.Decode(nil, mem.S(test.input))
		if !errors.Is(err, test.err) {
			t.Errorf("Decode(%#q): got error %v, want %v", test.input, err, test.err)
			continue
		}
		if string(got) != test.want || n != test.n {
			t.Errorf("Decode(%#q): got %#q, %d; want %#q, %d", test.input, got, n, test.want, test.n)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, false},
		{`ok go`, "ok go", false},
		{`abc\ndef`, "abc\ndef", false},
		{`\b\f\n\r\t`, "\b\f\n\r\t", false},
		{`a & b`, "a & b", false},
		{`a\"b`, `a"b`, false},
		{`a\\b\\cd`, `a\b\cd`, false},
		{`\/\/`, `//`, false},
		{`\u`, ``, true},
		{`\u00`, ``, true},
		{`\u00x9`, ``, true},
		{`\q`, ``, true},
		{`trailing\`, ``, true},
	}
	for _, test := range tests {
		got, err := escape.Unquote(mem.S(test.input))
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if test.fail {
			t.Errorf("Unquote(%#q): got %#q, want error", test.input, got)
		}
		if s := string(got); s != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, s, test.want)
		}
	}
}
