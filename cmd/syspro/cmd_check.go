package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dhamidi/syspro/format"
	"github.com/dhamidi/syspro/workspace"
)

var errSyntax = errors.New("syntax errors found")

func newCheckCmd() *cobra.Command {
	var watch bool
	var jobs int

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Report syntax errors in source files",
		Long: `Parse every .syspro file below the given paths and report diagnostics
as path:line:column: kind: message.

Paths default to the current directory. With --watch, a single directory
is watched and files are checked again whenever they change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			out := cmd.OutOrStdout()

			if watch {
				if len(args) != 1 {
					return fmt.Errorf("--watch takes a single directory")
				}
				return watchDir(cmd, args[0], jobs)
			}

			ws := workspace.New(".", workspace.WithConcurrency(jobs))
			if err := ws.Load(cmd.Context(), args...); err != nil {
				return err
			}
			for _, doc := range ws.Documents() {
				if err := report(out, doc); err != nil {
					return err
				}
			}
			if ws.ErrorCount() > 0 {
				return errSyntax
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "check again whenever a file changes")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of files to parse in parallel (default: GOMAXPROCS)")

	return cmd
}

func report(w io.Writer, doc *workspace.Document) error {
	return format.NewDiagnosticEncoder(w, doc.Path, doc.Lines).Encode(doc.Result)
}

func watchDir(cmd *cobra.Command, dir string, jobs int) error {
	out := cmd.OutOrStdout()
	ws := workspace.New(dir, workspace.WithConcurrency(jobs))
	if err := ws.ScanAll(cmd.Context()); err != nil {
		return err
	}
	for _, doc := range ws.Documents() {
		if err := report(out, doc); err != nil {
			return err
		}
	}

	watcher, err := workspace.NewWatcher(ws)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer watcher.Stop()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)

	for {
		select {
		case <-sigc:
			return nil
		case <-cmd.Context().Done():
			return nil
		case change, ok := <-watcher.Changes():
			if !ok {
				return nil
			}
			if change.Removed() {
				fmt.Fprintf(out, "%s: removed\n", change.Path)
				continue
			}
			if !change.Document.HasErrors() {
				fmt.Fprintf(out, "%s: ok\n", change.Path)
				continue
			}
			if err := report(out, change.Document); err != nil {
				return err
			}
		}
	}
}
