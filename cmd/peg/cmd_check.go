package main

import (
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dhamidi/peg/ebnf/grammar"
)

func newCheckCmd() *cobra.Command {
	var flags grammarFlags
	var quiet bool

	cmd := &cobra.Command{
		Use:           "check <grammar.ebnf>",
		Short:         "Compile an EBNF grammar and report problems",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := flags.load(args[0])
			if err != nil {
				printErrors(os.Stderr, err)
				return err
			}
			if quiet {
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"RULE", "KIND", "NULLABLE", "LEFT CALLS", "CALLS"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.SetAutoWrapText(false)
			for _, info := range g.Analyze() {
				kind := "syntactic"
				if grammar.IsLexical(info.Name) {
					kind = "lexical"
				}
				nullable := "no"
				if info.Nullable {
					nullable = "yes"
				}
				table.Append([]string{
					info.Name,
					kind,
					nullable,
					strings.Join(info.LeftCalls, " "),
					strings.Join(info.Calls, " "),
				})
			}
			table.Render()
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report problems")

	return cmd
}
