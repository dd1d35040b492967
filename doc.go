// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jval implements a JSON parser and an indented printer over the
// value model defined by package ast.
//
// # Parsing
//
// Parse consumes a complete JSON text and returns the ast.Value it denotes.
// Apart from surrounding whitespace the input must contain exactly one value:
//
//	v, err := jval.Parse(`{"result": [1, 2, 3]}`)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The Parser type carries settings, notably a limit on how deeply arrays and
// objects may nest. The zero Parser uses DefaultParseDepth.
//
// # Printing
//
// Print renders a value as indented text, one array element or object member
// per line, two spaces per nesting level:
//
//	if err := jval.Print(os.Stdout, v); err != nil {
//	   log.Fatalf("Print failed: %v", err)
//	}
//
// The Printer type carries settings for the indentation text, the maximum
// nesting depth (DefaultPrintDepth), key ordering and string escaping.
//
// # Errors
//
// Parse failures have concrete type *SyntaxError, and printing failures due
// to excessive nesting have concrete type *PrintError. Both carry an
// ErrorKind, and both unwrap to it, so a caller may test for a specific
// failure with errors.Is:
//
//	Kind                    | Reported when
//	----------------------- | -----------------------------------------------
//	UnexpectedCharacter     | no value can begin at the lookahead
//	InvalidEscape           | a string contains a malformed escape sequence
//	InvalidNumber           | a number is malformed or out of range
//	UnterminatedString      | input ends inside a string
//	ExpectedColon           | an object key is not followed by ":"
//	ExpectedCommaOrBracket  | an array element is not followed by "," or "]"
//	ExpectedCommaOrBrace    | an object member is not followed by "," or "}"
//	TrailingContent         | input remains after the value
//	MaxDepthExceeded        | arrays and objects nest past the limit
//
// Typed access to parsed values, and the TypeMismatch and KeyNotFound errors
// it reports, are provided by package ast.
package jval
