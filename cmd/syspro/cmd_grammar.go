package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/syspro/syntax/grammar"
)

func newGrammarCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the language grammar as EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := grammar.Default()
			if verify {
				if err := grammar.Verify(table); err != nil {
					return fmt.Errorf("verify grammar: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "grammar ok")
				return nil
			}
			return grammar.WriteEBNF(cmd.OutOrStdout(), table)
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check the grammar for undefined and unreachable productions")

	return cmd
}
