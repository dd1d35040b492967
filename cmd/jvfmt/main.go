// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Program jvfmt reads JSON text from files or standard input, checks that it
// is well-formed, and prints it in indented form to standard output.
//
// Usage:
//
//	jvfmt [flags] [FILE ...]
//
// With no files, or a file named "-", input is read from stdin. Each input
// that cannot be read, parsed or printed is reported on stderr and processing
// continues with the next; the exit status is 1 if any input failed.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

var cli struct {
	Files []string `arg:"" optional:"" help:"Input files (\"-\" for stdin)."`

	Indent     int    `help:"Spaces of indentation per nesting level." default:"2" env:"JVFMT_INDENT"`
	MaxDepth   int    `help:"Maximum nesting depth when printing." default:"100" env:"JVFMT_MAX_DEPTH"`
	ParseDepth int    `help:"Maximum nesting depth when parsing." default:"1000" env:"JVFMT_PARSE_DEPTH"`
	MaxSize    int64  `help:"Maximum input size in bytes." default:"104857600" env:"JVFMT_MAX_SIZE"`
	SortKeys   bool   `help:"Print object members sorted by key." env:"JVFMT_SORT_KEYS"`
	Escape     bool   `help:"Escape the contents of strings on output." env:"JVFMT_ESCAPE"`
	JWCC       bool   `name:"jwcc" help:"Accept comments and trailing commas in the input." env:"JVFMT_JWCC"`
	Select     string `help:"JSONPath expression selecting the part of each input to print." placeholder:"EXPR" env:"JVFMT_SELECT"`
	Quiet      bool   `short:"q" help:"Do not print a header before each output."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("jvfmt"),
		kong.Description("Check and pretty-print JSON text."),
		kong.UsageOnError(),
	)
	cfg := config{
		Indent:     cli.Indent,
		MaxDepth:   cli.MaxDepth,
		ParseDepth: cli.ParseDepth,
		MaxSize:    cli.MaxSize,
		SortKeys:   cli.SortKeys,
		Escape:     cli.Escape,
		JWCC:       cli.JWCC,
		Select:     cli.Select,
		Quiet:      cli.Quiet,
	}
	if err := cfg.check(); err != nil {
		newReporter(os.Stderr).error(fmt.Errorf("invalid flags: %w", err))
		os.Exit(2)
	}
	files := cli.Files
	if len(files) == 0 {
		files = []string{"-"}
	}
	os.Exit(run(cfg, files, os.Stdin, os.Stdout, os.Stderr))
}

// run formats each of the named inputs in turn, and returns the exit status.
func run(cfg config, files []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rep := newReporter(stderr)
	f, err := cfg.formatter()
	if err != nil {
		rep.error(fmt.Errorf("invalid flags: %w", err))
		return 2
	}
	status := 0
	for _, path := range files {
		if err := f.formatFile(path, stdin, stdout, rep); err != nil {
			rep.error(err)
			status = 1
		}
	}
	return status
}
