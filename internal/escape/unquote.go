// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

var (
	// ErrInvalid reports an unknown escape character or a malformed Unicode
	// escape.
	ErrInvalid = errors.New("invalid escape sequence")

	// ErrIncomplete reports that the input ended inside an escape sequence.
	ErrIncomplete = errors.New("incomplete escape sequence")
)

// Decode decodes the escape sequence at the front of src, which must begin
// with the byte immediately following a backslash. It appends the decoded
// text to dst and returns the extended slice together with the number of
// bytes of src consumed.
//
// A \u escape naming a UTF-16 surrogate consumes the following \u escape as
// well when the two form a valid pair; an unpaired surrogate decodes to the
// Unicode replacement rune.
func Decode(dst []byte, src mem.RO) ([]byte, int, error) {
	if src.Len() == 0 {
		return dst, 0, ErrIncomplete
	}
	switch c := src.At(0); c {
	case '"', '\\', '/':
		return append(dst, c), 1, nil
	case 'b':
		return append(dst, '\b'), 1, nil
	case 'f':
		return append(dst, '\f'), 1, nil
	case 'n':
		return append(dst, '\n'), 1, nil
	case 'r':
		return append(dst, '\r'), 1, nil
	case 't':
		return append(dst, '\t'), 1, nil
	case 'u':
		r, err := hex4(src.SliceFrom(1))
		if err != nil {
			return dst, 0, err
		}
		n := 5
		if utf16.IsSurrogate(r) {
			r, n = pairSurrogate(r, src.SliceFrom(n))
		}
		return utf8.AppendRune(dst, r), n, nil
	default:
		return dst, 0, ErrInvalid
	}
}

// pairSurrogate combines the high surrogate r with a \u escape at the front
// of rest, if there is one that completes the pair. It reports the decoded
// rune and the total number of bytes consumed, counting the 5 bytes of the
// escape that produced r.
func pairSurrogate(r rune, rest mem.RO) (rune, int) {
	if rest.Len() >= 6 && rest.At(0) == '\\' && rest.At(1) == 'u' {
		if lo, err := hex4(rest.SliceFrom(2)); err == nil {
			if d := utf16.DecodeRune(r, lo); d != utf8.RuneError {
				return d, 11
			}
		}
	}
	return utf8.RuneError, 5
}

// Unquote decodes the body of a JSON string. The input must have the
// enclosing double quotation marks already removed. Unlike a parser, Unquote
// does not require quotation marks inside src to be escaped.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
		dec = mem.Append(dec, src.SliceTo(i))

		var n int
		var err error
		dec, n, err = Decode(dec, src.SliceFrom(i+1))
		if err != nil {
			return nil, err
		}
		src = src.SliceFrom(i + 1 + n)
	}
}

// hex4 decodes exactly 4 hexadecimal digits from the front of data.
func hex4(data mem.RO) (rune, error) {
	if data.Len() < 4 {
		for i := 0; i < data.Len(); i++ {
			if !isHexDigit(data.At(i)) {
				return 0, ErrInvalid
			}
		}
		return 0, ErrIncomplete
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, ErrInvalid
		}
	}
	return v, nil
}

func isHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}
