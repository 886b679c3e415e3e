package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/peg/ebnf/grammar"
	"github.com/dhamidi/peg/input"
	"github.com/dhamidi/peg/peg"
)

// eolEnv names the environment variable holding the default end-of-line
// convention.
const eolEnv = "PEG_EOL"

type grammarFlags struct {
	start string
	eol   string
}

func (f *grammarFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "start production (default: first production in the file)")
	cmd.Flags().StringVar(&f.eol, "eol", defaultEOL(), "end-of-line convention (lf_crlf, lf, cr, crlf, any)")
}

func (f *grammarFlags) load(filename string) (*grammar.Grammar, error) {
	src, err := grammar.Load(filename)
	if err != nil {
		return nil, err
	}
	start := f.start
	if start == "" {
		start = grammar.FirstProduction(src)
	}
	log.Debugf("compiling %s starting at %s", filename, start)
	return grammar.Compile(src, start)
}

func (f *grammarFlags) lineEnding() (input.EOL, error) {
	eol, err := input.ParseEOL(f.eol)
	if err != nil {
		return eol, fmt.Errorf("--eol: %w", err)
	}
	return eol, nil
}

func defaultEOL() string {
	if v := os.Getenv(eolEnv); v != "" {
		return v
	}
	return input.LFOrCRLF.String()
}

// printErrors prints each error contained in err on its own line. Lists
// returned by errors.Join and by the ebnf package are flattened.
func printErrors(w io.Writer, err error) {
	if errs := splitErrors(err); errs != nil {
		for _, e := range errs {
			printErrors(w, e)
		}
		return
	}
	if inner := errors.Unwrap(err); inner != nil && splitErrors(inner) != nil {
		printErrors(w, inner)
		return
	}
	var perr *peg.ParseError
	if errors.As(err, &perr) {
		printParseError(w, perr)
		return
	}
	fmt.Fprintln(w, err)
}

func splitErrors(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Slice {
		return nil
	}
	errs := make([]error, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if e, ok := v.Index(i).Interface().(error); ok {
			errs = append(errs, e)
		}
	}
	return errs
}

// printParseError prints the diagnostic followed by the offending line and
// a caret under the error column.
func printParseError(w io.Writer, err *peg.ParseError) {
	fmt.Fprintln(w, err)
	if err.Line == "" {
		return
	}
	fmt.Fprintln(w, err.Line)
	pad := err.Position.Column - 1
	if pad > len(err.Line) {
		pad = len(err.Line)
	}
	fmt.Fprintln(w, strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		return ' '
	}, err.Line[:pad])+"^")
}
