package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/syspro/format"
	"github.com/dhamidi/syspro/syntax"
	"github.com/dhamidi/syspro/syntax/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a source file and dump the syntax tree",
		Long: `Parse a source file and dump the syntax tree with its diagnostics.

Reads stdin when no file or "-" is given. Parsing never stops at the first
error: the tree is printed together with every diagnostic.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, text, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			result := parser.Parse(text)

			var encoder format.Encoder
			switch outputFormat {
			case "text":
				encoder = format.NewTreeEncoder(cmd.OutOrStdout(), syntax.NewLineIndex(text))
			case "json":
				encoder = format.NewJSONEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(result); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}
