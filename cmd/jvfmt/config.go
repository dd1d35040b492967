package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creachadair/jval"
	"github.com/creachadair/jval/query"
)

// config carries the settings for a run of the program.
type config struct {
	Indent     int   // spaces per nesting level, > 0
	MaxDepth   int   // printer depth limit, > 0
	ParseDepth int   // parser depth limit, > 0
	MaxSize    int64 // input size limit in bytes, > 0
	SortKeys   bool
	Escape     bool
	JWCC       bool
	Select     string // JSONPath expression, or "" for the whole input
	Quiet      bool
}

// check reports an error if any setting is out of range.
func (c config) check() error {
	var errs []error
	if c.Indent <= 0 {
		errs = append(errs, fmt.Errorf("indent must be positive (got %d)", c.Indent))
	}
	if c.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("max depth must be positive (got %d)", c.MaxDepth))
	}
	if c.ParseDepth <= 0 {
		errs = append(errs, fmt.Errorf("parse depth must be positive (got %d)", c.ParseDepth))
	}
	if c.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("max size must be positive (got %d)", c.MaxSize))
	}
	return errors.Join(errs...)
}

// formatter returns a formatter for the settings in c. It reports an error if
// the selection expression is invalid.
func (c config) formatter() (*formatter, error) {
	sel := query.Path()
	if c.Select != "" {
		q, err := query.Compile(c.Select)
		if err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
		sel = q
	}
	return &formatter{
		parser: jval.Parser{MaxDepth: c.ParseDepth},
		printer: jval.Printer{
			Indent:        strings.Repeat(" ", c.Indent),
			MaxDepth:      c.MaxDepth,
			EscapeStrings: c.Escape,
			SortKeys:      c.SortKeys,
		},
		selector: sel,
		maxSize:  c.MaxSize,
		jwcc:     c.JWCC,
		quiet:    c.Quiet,
	}, nil
}
