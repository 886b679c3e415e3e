package main

import (
	"bytes"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/peg/ebnf/grammar"
	"github.com/dhamidi/peg/input"
	"github.com/dhamidi/peg/peg"
	"github.com/dhamidi/peg/peg/cst"
	"github.com/dhamidi/peg/peg/trace"
)

type parseResult struct {
	out bytes.Buffer
	err error
}

func newParseCmd() *cobra.Command {
	var flags grammarFlags
	var outputFormat string
	var traceRules bool
	var jobs int

	cmd := &cobra.Command{
		Use:           "parse <grammar.ebnf> <file>...",
		Short:         "Parse files with a grammar and print their syntax trees",
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "tree", "json", "none":
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			g, err := flags.load(args[0])
			if err != nil {
				printErrors(os.Stderr, err)
				return err
			}
			eol, err := flags.lineEnding()
			if err != nil {
				return err
			}

			files := args[1:]
			results := make([]parseResult, len(files))

			if jobs < 1 {
				jobs = 1
			}
			var eg errgroup.Group
			eg.SetLimit(jobs)
			for i, filename := range files {
				i, filename := i, filename
				eg.Go(func() error {
					res := &results[i]
					res.err = parseFile(g, filename, eol, outputFormat, traceRules, &res.out)
					return nil
				})
			}
			eg.Wait()

			failed := 0
			for _, res := range results {
				os.Stdout.Write(res.out.Bytes())
				if res.err != nil {
					failed++
					printErrors(os.Stderr, res.err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to parse", failed, len(files))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, none)")
	cmd.Flags().BoolVar(&traceRules, "trace", false, "log every rule attempt at debug level (use with -vv)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of files parsed concurrently")

	return cmd
}

func parseFile(g *grammar.Grammar, filename string, eol input.EOL, outputFormat string, traceRules bool, out *bytes.Buffer) error {
	in, err := input.ReadFile(filename, input.WithEOL(eol))
	if err != nil {
		return err
	}

	builder := cst.NewBuilder()
	listeners := peg.Listeners{builder}
	if traceRules {
		listeners = append(listeners, trace.New())
	}

	ok, err := peg.Parse(g.Document(), in, peg.WithListener(listeners))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: input does not match %s", in.Position(), g.Start)
	}
	log.Debugf("%s: parsed %d bytes", filename, in.Offset())

	root := builder.Root()
	if root == nil {
		return nil
	}
	switch outputFormat {
	case "json":
		return cst.NewJSONEncoder(out).Encode(root)
	case "tree":
		fmt.Fprintf(out, "# %s\n%s", filename, root)
	}
	return nil
}
