package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/tocblock"
	"github.com/spf13/cobra"
)

var errStale = errors.New("outline is out of date")

func (a *app) buildCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "build <file|url|->",
		Short: "Print the outline of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.render(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}

			var sink outline.Sink = outline.WriterSink{W: a.stdout}
			if output != "" {
				sink = outline.FileSink{Path: output}
			}
			return a.fail(sink.Deliver(text))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the outline to this file instead of stdout")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <source> <markdown>",
		Short: "Fail if the marked outline block in <markdown> is stale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.render(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return a.fail(err)
			}

			current, ok := tocblock.Extract(string(data))
			if !ok {
				return a.fail(fmt.Errorf("%s: %w", args[1], tocblock.ErrNoMarkers))
			}
			if diff := tocblock.Diff(current, text); diff != "" {
				fmt.Fprint(a.stdout, diff)
				return a.fail(fmt.Errorf("%s: %w", args[1], errStale))
			}
			a.log.Debug("outline up to date", "file", args[1])
			return nil
		},
	}
}

func (a *app) injectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inject <source> <markdown>",
		Short: "Rewrite the marked outline block in <markdown>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.render(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}
			path := args[1]
			info, err := os.Stat(path)
			if err != nil {
				return a.fail(err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return a.fail(err)
			}

			updated, err := tocblock.Replace(string(data), text)
			if err != nil {
				return a.fail(fmt.Errorf("%s: %w", path, err))
			}
			if updated == string(data) {
				a.log.Debug("outline unchanged", "file", path)
				return nil
			}
			sink := outline.FileSink{Path: path, Perm: info.Mode().Perm()}
			return a.fail(sink.Deliver(updated))
		},
	}
}

// fail reports err on stderr and passes it through.
func (a *app) fail(err error) error {
	if err != nil {
		fmt.Fprintln(a.stderr, "docoutline:", err)
	}
	return err
}
