// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// AppendQuote appends the JSON encoding of src to dst, including the
// enclosing double quotation marks, and returns the extended slice.
//
// Control characters, quotation marks and backslashes are escaped. Invalid
// UTF-8 is replaced by the Unicode replacement rune.
func AppendQuote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for src.Len() != 0 {
		if b := src.At(0); b < utf8.RuneSelf {
			if b < ' ' {
				if e := controlEsc[b]; e != 0 {
					dst = append(dst, '\\', e)
				} else {
					dst = append(dst, '\\', 'u', '0', '0', hexDigit[b>>4], hexDigit[b&15])
				}
			} else if b == '\\' || b == '"' {
				dst = append(dst, '\\', b)
			} else {
				dst = append(dst, b)
			}
			src = src.SliceFrom(1)
			continue
		}

		r, n := mem.DecodeRune(src)
		switch r {
		case utf8.RuneError:
			dst = append(dst, `\ufffd`...)
		case '\u2028': // line separator
			dst = append(dst, `\u2028`...)
		case '\u2029': // paragraph separator
			dst = append(dst, `\u2029`...)
		default:
			dst = utf8.AppendRune(dst, r)
		}
		src = src.SliceFrom(n)
	}
	return append(dst, '"')
}

// Quote returns the JSON encoding of src as a string, including the enclosing
// double quotation marks.
func Quote(src mem.RO) string { return string(AppendQuote(make([]byte, 0, src.Len()+2), src)) }
