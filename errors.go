// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval

import "fmt"

// ErrorKind classifies the errors reported by the parser and the printer.
// An ErrorKind is itself an error, and the concrete error types of this
// package unwrap to their kind, so callers can write:
//
//	if errors.Is(err, jval.TrailingContent) { ... }
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	UnexpectedCharacter    ErrorKind = iota + 1 // no grammar production matches the input
	InvalidEscape                               // unknown or malformed escape in a string
	InvalidNumber                               // malformed or out-of-range number
	UnterminatedString                          // input ends inside a string
	ExpectedColon                               // missing ":" after an object key
	ExpectedCommaOrBracket                      // missing "," or "]" in an array
	ExpectedCommaOrBrace                        // missing "," or "}" in an object
	TrailingContent                             // input remains after the value
	MaxDepthExceeded                            // nesting exceeds the configured limit
)

var kindStr = [...]string{
	0:                      "unknown error",
	UnexpectedCharacter:    "unexpected character",
	InvalidEscape:          "invalid escape",
	InvalidNumber:          "invalid number",
	UnterminatedString:     "unterminated string",
	ExpectedColon:          "expected colon",
	ExpectedCommaOrBracket: "expected comma or bracket",
	ExpectedCommaOrBrace:   "expected comma or brace",
	TrailingContent:        "trailing content",
	MaxDepthExceeded:       "maximum depth exceeded",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Kind     ErrorKind
	Offset   int     // byte offset of the error in the input
	Location LineCol // line and column corresponding to Offset
	Message  string
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping; it returns the kind of e.
func (e *SyntaxError) Unwrap() error { return e.Kind }

// PrintError is the concrete type of errors reported by the printer.
type PrintError struct {
	Kind    ErrorKind
	Depth   int // the depth at which printing stopped
	Message string
}

// Error satisfies the error interface.
func (e *PrintError) Error() string { return "print: " + e.Message }

// Unwrap supports error wrapping; it returns the kind of e.
func (e *PrintError) Unwrap() error { return e.Kind }
