package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/peg/input"
	"github.com/dhamidi/peg/peg"
)

func newMatchCmd() *cobra.Command {
	var flags grammarFlags

	cmd := &cobra.Command{
		Use:           "match <grammar.ebnf> <text>...",
		Short:         "Match each argument against a grammar",
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := flags.load(args[0])
			if err != nil {
				printErrors(os.Stderr, err)
				return err
			}
			eol, err := flags.lineEnding()
			if err != nil {
				return err
			}

			texts := args[1:]
			failed := 0
			for i := range texts {
				in, err := input.FromArgs(texts, i, input.WithEOL(eol))
				if err != nil {
					return err
				}
				ok, err := peg.Parse(g.Document(), in)
				switch {
				case err != nil:
					failed++
					printErrors(os.Stdout, err)
				case !ok:
					failed++
					fmt.Printf("%s: no match\n", in.Source())
				default:
					fmt.Printf("%s: match\n", in.Source())
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d arguments did not match", failed, len(texts))
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
