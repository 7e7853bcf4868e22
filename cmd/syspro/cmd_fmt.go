package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/syspro/format"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Pretty-print a source file, preserving comments",
		Long: `Pretty-print a source file to stdout.

If no file is provided, reads source from stdin. Files with syntax errors
are rejected.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fmtOverwrite && (len(args) == 0 || args[0] == "-") {
				return fmt.Errorf("-w requires a file argument")
			}
			_, text, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			output, err := format.PrettyPrint([]byte(text))
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				return os.WriteFile(args[0], output, 0644)
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
