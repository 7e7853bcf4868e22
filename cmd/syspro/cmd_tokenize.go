package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/syspro/format"
	"github.com/dhamidi/syspro/syntax/lexer"
)

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize [file]",
		Short: "Print the tokens of a source file",
		Long: `Print one line per token: core start, core end, kind and value.

Offsets count code points. Indentation tokens are zero-width.
Reads stdin when no file or "-" is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, text, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return format.NewTokenEncoder(cmd.OutOrStdout()).Encode(lexer.Tokenize(text))
		},
	}
}
