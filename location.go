package jval

import (
	"fmt"

	"go4.org/mem"
)

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// locate returns the line and column of byte offset pos in src.
func locate(src mem.RO, pos int) LineCol {
	lc := LineCol{Line: 1}
	for {
		i := mem.IndexByte(src, '\n')
		if i < 0 || i >= pos {
			lc.Column = pos
			return lc
		}
		lc.Line++
		src = src.SliceFrom(i + 1)
		pos -= i + 1
	}
}
