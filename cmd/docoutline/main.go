package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dgallion1/docoutline/internal/browser"
	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/spf13/cobra"
)

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	excludeClass string
	verbose      bool
	inputType    string

	log     *slog.Logger
	builder *outline.Builder
	cfg     config.Config
}

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, cfg: config.Load()}

	root := &cobra.Command{
		Use:           "docoutline",
		Short:         "Render a document's h2/h3 headings as a Markdown table of contents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
			a.builder = outline.New(outline.WithExcludeClass(a.excludeClass))
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.excludeClass, "exclude-class", a.cfg.ExcludeClass, "skip headings whose class attribute equals this value (empty disables)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")
	root.PersistentFlags().StringVar(&a.inputType, "type", "", "input extension when reading stdin, e.g. html or md")

	root.AddCommand(a.buildCmd(), a.checkCmd(), a.injectCmd())
	return root
}

// load resolves a source argument: an http(s) URL, "-" for stdin, or a file path.
func (a *app) load(ctx context.Context, source string) (*doctree.DocTree, error) {
	switch {
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		a.log.Debug("fetching live page", "url", source)
		return browser.NewFetcher(a.cfg.BrowserTimeout, a.log).Fetch(ctx, source)

	case source == "-":
		if a.inputType == "" {
			return nil, fmt.Errorf("--type is required when reading from stdin")
		}
		name := "stdin." + strings.TrimPrefix(a.inputType, ".")
		return parser.ParseFile(a.stdin, name)

	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		tree, err := parser.ParseFile(f, source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		a.log.Debug("parsed document", "file", source, "title", tree.Title, "headings", len(tree.Headings))
		return tree, nil
	}
}

func (a *app) render(ctx context.Context, source string) (string, error) {
	tree, err := a.load(ctx, source)
	if err != nil {
		return "", err
	}
	return a.builder.Build(tree), nil
}
