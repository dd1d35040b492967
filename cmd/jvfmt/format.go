package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"github.com/creachadair/jval"
	"github.com/creachadair/jval/query"
	"github.com/fatih/color"
	"github.com/tailscale/hujson"
)

type formatter struct {
	parser   jval.Parser
	printer  jval.Printer
	selector query.Query
	maxSize  int64
	jwcc     bool
	quiet    bool
}

// formatFile reads, parses and prints the input named by path, which is "-"
// for stdin. The formatted value is written to w followed by a newline.
func (f *formatter) formatFile(path string, stdin io.Reader, w io.Writer, rep *reporter) error {
	data, err := f.readInput(path, stdin)
	if err != nil {
		return inputError(path, err)
	}
	if f.jwcc {
		data, err = hujson.Standardize(data)
		if err != nil {
			return parseError(path, err)
		}
	}
	v, err := f.parser.ParseBytes(data)
	if err != nil {
		return parseError(path, err)
	}
	v, err = query.Eval(v, f.selector)
	if err != nil {
		return selectError(path, err)
	}
	text, err := f.printer.PrintString(v)
	if err != nil {
		return printError(path, err)
	}
	if !f.quiet {
		rep.info("parsed %s", path)
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

func (f *formatter) readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		// Read one byte past the limit to detect oversized input.
		limit := min(f.maxSize, math.MaxInt64-1) + 1
		data, err := io.ReadAll(io.LimitReader(stdin, limit))
		if err != nil {
			return nil, err
		} else if int64(len(data)) > f.maxSize {
			return nil, fmt.Errorf("%w (limit %d bytes)", errFileTooLarge, f.maxSize)
		} else if len(data) == 0 {
			return nil, errFileEmpty
		}
		return data, nil
	}

	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errFileNotFound
	} else if err != nil {
		return nil, err
	}
	switch {
	case !fi.Mode().IsRegular():
		return nil, errNotRegular
	case fi.Size() == 0:
		return nil, errFileEmpty
	case fi.Size() > f.maxSize:
		return nil, fmt.Errorf("%w (%d bytes, limit %d)", errFileTooLarge, fi.Size(), f.maxSize)
	}
	return os.ReadFile(path)
}

// reporter writes one-line diagnostics.
type reporter struct {
	w io.Writer
}

var (
	errCol  = color.New(color.FgHiRed).SprintFunc()
	infoCol = color.New(color.FgHiGreen).SprintFunc()
	msgCol  = color.New(color.FgBlue).SprintFunc()
)

func newReporter(w io.Writer) *reporter { return &reporter{w: w} }

func (r *reporter) info(msg string, args ...any) {
	fmt.Fprintf(r.w, "%s %s\n", infoCol("INF"), msgCol(fmt.Sprintf(msg, args...)))
}

func (r *reporter) error(err error) { fmt.Fprintf(r.w, "%s %v\n", errCol("ERR"), err) }
