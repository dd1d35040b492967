// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"fmt"

	"github.com/creachadair/jval/ast"
	"github.com/creachadair/jval/internal/escape"
	"go4.org/mem"
)

// DefaultParseDepth is the nesting limit used by a Parser whose MaxDepth
// field is zero.
const DefaultParseDepth = 1000

// A Parser carries the settings for parsing JSON text.
// A zero value is ready for use with default settings.
type Parser struct {
	// MaxDepth is the maximum number of arrays and objects that may enclose
	// any value. If zero, DefaultParseDepth is used; if negative, nesting is
	// not limited.
	MaxDepth int
}

func (p Parser) maxDepth() int {
	if p.MaxDepth == 0 {
		return DefaultParseDepth
	}
	return p.MaxDepth
}

// Parse parses text as a single JSON value with default settings.
// In case of error, the concrete type of the error is *SyntaxError.
func Parse(text string) (ast.Value, error) { return Parser{}.Parse(text) }

// ParseBytes parses data as a single JSON value with default settings.
func ParseBytes(data []byte) (ast.Value, error) { return Parser{}.ParseBytes(data) }

// Parse parses text as a single JSON value. The entire input must be
// consumed: apart from whitespace, text must contain exactly one value.
// In case of error, no value is returned and the concrete type of the error
// is *SyntaxError.
func (p Parser) Parse(text string) (ast.Value, error) { return p.parse(mem.S(text)) }

// ParseBytes parses data as a single JSON value. It is equivalent to Parse,
// but does not convert data to a string first. The result does not retain
// data.
func (p Parser) ParseBytes(data []byte) (ast.Value, error) { return p.parse(mem.B(data)) }

func (p Parser) parse(src mem.RO) (v ast.Value, err error) {
	ps := &parseState{src: src, max: p.maxDepth()}
	defer ps.recoverSyntaxError(&v, &err)

	v = ps.parseValue()
	ps.skipSpace()
	if ps.pos < src.Len() {
		ps.failf(TrailingContent, "unexpected %s after value", ps.lookahead())
	}
	return v, nil
}

// A parseState is a forward-only cursor over the input of a single parse.
// Errors are reported by panicking with a *SyntaxError, which Parser.parse
// recovers.
type parseState struct {
	src   mem.RO
	pos   int // offset of the next unread byte
	depth int // current nesting depth
	max   int // maximum nesting depth, or < 0 for no limit
}

func (s *parseState) recoverSyntaxError(vp *ast.Value, errp *error) {
	if x := recover(); x != nil {
		serr, ok := x.(*SyntaxError)
		if !ok {
			panic(x)
		}
		*vp, *errp = nil, serr
	}
}

// peek returns the next unread byte without consuming it, or -1 at the end
// of the input.
func (s *parseState) peek() int {
	if s.pos < s.src.Len() {
		return int(s.src.At(s.pos))
	}
	return -1
}

func (s *parseState) skipSpace() {
	for s.pos < s.src.Len() && isSpace(s.src.At(s.pos)) {
		s.pos++
	}
}

// parseValue consumes a single value of any type, with leading whitespace.
func (s *parseState) parseValue() ast.Value {
	s.skipSpace()
	switch c := s.peek(); c {
	case 'n':
		s.literal("null")
		return ast.Null{}
	case 't':
		s.literal("true")
		return ast.Bool(true)
	case 'f':
		s.literal("false")
		return ast.Bool(false)
	case '"':
		return ast.String(s.parseString())
	case '[':
		return s.parseArray()
	case '{':
		return s.parseObject()
	default:
		if c == '-' || isDigit(c) {
			return s.parseNumber()
		}
		s.failf(UnexpectedCharacter, "unexpected %s", s.lookahead())
		panic("unreachable")
	}
}

// literal consumes the constant word, which must appear at the cursor.
func (s *parseState) literal(word string) {
	if !mem.HasPrefix(s.src.SliceFrom(s.pos), mem.S(word)) {
		s.failf(UnexpectedCharacter, "invalid literal, want %q", word)
	}
	s.pos += len(word)
}

// parseString consumes a quoted string and returns its decoded text.
// Precondition: peek() == '"'.
func (s *parseState) parseString() string {
	open := s.pos
	s.pos++

	var dec []byte // decoded text, if the string contains escapes
	var esc bool   // whether dec is in use
	mark := s.pos  // start of the pending run of unescaped bytes
	for s.pos < s.src.Len() {
		switch s.src.At(s.pos) {
		case '"':
			run := s.src.Slice(mark, s.pos)
			s.pos++
			if !esc {
				return run.StringCopy()
			}
			return string(mem.Append(dec, run))

		case '\\':
			dec = mem.Append(dec, s.src.Slice(mark, s.pos))
			esc = true
			var n int
			var err error
			dec, n, err = escape.Decode(dec, s.src.SliceFrom(s.pos+1))
			if err == escape.ErrIncomplete {
				s.failAt(open, UnterminatedString, "unterminated string")
			} else if err != nil {
				s.failf(InvalidEscape, "invalid escape sequence in string")
			}
			s.pos += 1 + n
			mark = s.pos

		default:
			s.pos++
		}
	}
	s.failAt(open, UnterminatedString, "unterminated string")
	panic("unreachable")
}

// parseNumber consumes a number.
// Precondition: peek() is '-' or a digit.
func (s *parseState) parseNumber() ast.Value {
	start := s.pos
	if s.peek() == '-' {
		s.pos++
	}

	// Integer part: a single zero, or a run of digits not starting with zero.
	switch c := s.peek(); {
	case c == '0':
		s.pos++
		if isDigit(s.peek()) {
			s.failf(InvalidNumber, "extra leading zeroes")
		}
	case isDigit(c):
		s.digits()
	default:
		s.failf(InvalidNumber, "got %s, want digit", s.lookahead())
	}

	// Optional fraction.
	if s.peek() == '.' {
		s.pos++
		if s.digits() == 0 {
			s.failf(InvalidNumber, "no digits after decimal point")
		}
	}

	// Optional exponent.
	if c := s.peek(); c == 'e' || c == 'E' {
		s.pos++
		if c := s.peek(); c == '+' || c == '-' {
			s.pos++
		}
		if s.digits() == 0 {
			s.failf(InvalidNumber, "missing exponent digits")
		}
	}

	text := s.src.Slice(start, s.pos)
	f, err := mem.ParseFloat(text, 64)
	if err != nil {
		s.failAt(start, InvalidNumber, "number %s out of range", text.StringCopy())
	}
	return ast.Number(f)
}

// digits consumes a run of decimal digits and reports how many there were.
func (s *parseState) digits() int {
	start := s.pos
	for isDigit(s.peek()) {
		s.pos++
	}
	return s.pos - start
}

// parseArray consumes zero or more comma-separated array values.
// Precondition: peek() == '['.
func (s *parseState) parseArray() ast.Value {
	s.enter()
	s.pos++
	arr := ast.Array{}

	s.skipSpace()
	if s.peek() == ']' {
		s.pos++
		s.leave()
		return arr
	}
	for {
		arr = append(arr, s.parseValue())

		// Check whether we have more elements (",") or are done ("]").
		s.skipSpace()
		switch s.peek() {
		case ']':
			s.pos++
			s.leave()
			return arr
		case ',':
			s.pos++
			if s.skipSpace(); s.peek() == ']' {
				s.failf(ExpectedCommaOrBracket, "unexpected \"]\" after comma")
			}
		default:
			s.failf(ExpectedCommaOrBracket, "expected \",\" or \"]\", got %s", s.lookahead())
		}
	}
}

// parseObject consumes zero or more "key": value object members.
// Precondition: peek() == '{'.
func (s *parseState) parseObject() ast.Value {
	s.enter()
	s.pos++
	obj := ast.Object{}

	s.skipSpace()
	if s.peek() == '}' {
		s.pos++
		s.leave()
		return obj
	}

	// Keys are indexed once the object is large enough that a linear scan for
	// duplicates becomes expensive.
	const indexThreshold = 16
	var index map[string]*ast.Member
	for {
		// Parse a single member: "key": value
		s.skipSpace()
		if s.peek() != '"' {
			s.failf(UnexpectedCharacter, "expected string key, got %s", s.lookahead())
		}
		key := s.parseString()
		s.skipSpace()
		if s.peek() != ':' {
			s.failf(ExpectedColon, "expected \":\" after key, got %s", s.lookahead())
		}
		s.pos++
		val := s.parseValue()

		// A duplicate key replaces the value of the earlier member.
		var prev *ast.Member
		if index != nil {
			prev = index[key]
		} else {
			prev = obj.Find(key)
		}
		if prev != nil {
			prev.Value = val
		} else {
			m := &ast.Member{Key: key, Value: val}
			obj = append(obj, m)
			if index != nil {
				index[key] = m
			} else if len(obj) >= indexThreshold {
				index = make(map[string]*ast.Member, 2*len(obj))
				for _, m := range obj {
					index[m.Key] = m
				}
			}
		}

		// Check whether we have more members (",") or are done ("}").
		s.skipSpace()
		switch s.peek() {
		case '}':
			s.pos++
			s.leave()
			return obj
		case ',':
			s.pos++
			if s.skipSpace(); s.peek() == '}' {
				s.failf(ExpectedCommaOrBrace, "unexpected \"}\" after comma")
			}
		default:
			s.failf(ExpectedCommaOrBrace, "expected \",\" or \"}\", got %s", s.lookahead())
		}
	}
}

// enter records the start of an array or object at the cursor, and fails if
// that exceeds the nesting limit.
func (s *parseState) enter() {
	s.depth++
	if s.max >= 0 && s.depth > s.max {
		s.failf(MaxDepthExceeded, "nesting depth exceeds %d", s.max)
	}
}

func (s *parseState) leave() { s.depth-- }

// lookahead describes the next unread character for use in error messages.
func (s *parseState) lookahead() string {
	if s.pos >= s.src.Len() {
		return "end of input"
	}
	r, _ := mem.DecodeRune(s.src.SliceFrom(s.pos))
	return fmt.Sprintf("%q", r)
}

func (s *parseState) failf(kind ErrorKind, msg string, args ...any) {
	s.failAt(s.pos, kind, msg, args...)
}

func (s *parseState) failAt(pos int, kind ErrorKind, msg string, args ...any) {
	panic(&SyntaxError{
		Kind:     kind,
		Offset:   pos,
		Location: locate(s.src, pos),
		Message:  fmt.Sprintf(msg, args...),
	})
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch int) bool { return '0' <= ch && ch <= '9' }
