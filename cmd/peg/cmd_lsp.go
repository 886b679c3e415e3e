package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/peg/lsp"
)

func newLSPCmd() *cobra.Command {
	var flags grammarFlags
	var grammarFile string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start a language server that checks documents against a grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := flags.load(grammarFile)
			if err != nil {
				return err
			}
			eol, err := flags.lineEnding()
			if err != nil {
				return err
			}
			server := lsp.NewServer(g, lsp.WithEOL(eol))
			return server.RunStdio()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "EBNF grammar file")
	cmd.MarkFlagRequired("grammar")

	return cmd
}
