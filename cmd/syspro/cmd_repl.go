package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/dhamidi/syspro/format"
	"github.com/dhamidi/syspro/syntax"
	"github.com/dhamidi/syspro/syntax/lexer"
	"github.com/dhamidi/syspro/syntax/parser"
)

const (
	historyFile = ".syspro_history"
	promptMain  = "syspro> "
	promptCont  = "   ...> "
)

const replHelp = `Enter source text. A blank line ends the input and prints its syntax
tree; indented lines continue it.

Commands:
  :tokens   print tokens instead of trees
  :tree     print trees (default)
  :json     print parse results as JSON
  :help     show this text
  :quit     exit
`

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse source text interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.OutOrStdout())
		},
	}
}

func runRepl(out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(out, "syspro %s. Type :help for help, Ctrl+D to exit.\n", version)

	mode := ":tree"
	for {
		src, ok, err := readInput(ln)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		switch cmd := strings.TrimSpace(src); cmd {
		case "":
			continue
		case ":quit", ":q":
			return nil
		case ":help":
			fmt.Fprint(out, replHelp)
			continue
		case ":tokens", ":tree", ":json":
			mode = cmd
			continue
		}

		ln.AppendHistory(src)
		if err := evaluate(out, src, mode); err != nil {
			return err
		}
	}
}

// readInput reads lines until a blank line. REPL commands end after their
// first line. ok is false at end of input.
func readInput(ln *liner.State) (string, bool, error) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			return b.String(), b.Len() > 0, nil
		case errors.Is(err, liner.ErrPromptAborted):
			b.Reset()
			continue
		case err != nil:
			return "", false, err
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true, nil
		}
		if strings.TrimSpace(line) == "" {
			return b.String(), true, nil
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func evaluate(out io.Writer, src, mode string) error {
	switch mode {
	case ":tokens":
		return format.NewTokenEncoder(out).Encode(lexer.Tokenize(src))
	case ":json":
		return format.NewJSONEncoder(out).Encode(parser.Parse(src))
	}
	return format.NewTreeEncoder(out, syntax.NewLineIndex(src)).Encode(parser.Parse(src))
}
