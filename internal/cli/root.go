// Package cli implements the valence command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/aretw0/valence/internal/config"
	"github.com/aretw0/valence/internal/logging"
	"github.com/aretw0/valence/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the state they resolve to.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Format     string // "text" | "json"
	Style      string // glamour style; empty picks by terminal

	Config config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the valence CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "valence",
		Short: "Valence inspects and edits node-graph documents",
		Long: `Valence works with node-graph documents: it finds nodes placed near each
other, replays scripted edits through an undo history, exports Mermaid
diagrams and serves an editing API over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Style, "style", "", "markdown style for text reports (dark|light|notty|...)")

	cmd.AddCommand(NewOverlapsCommand(opts))
	cmd.AddCommand(NewGraphCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func (o *RootOptions) resolve(cmd *cobra.Command) error {
	if !slices.Contains(ValidFormats, o.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = o.LogLevel
	}

	logger, err := logging.NewFromConfig(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	o.Config = cfg
	o.Logger = logger
	return nil
}

// renderer uses the --style flag when given. Otherwise it picks glamour for
// terminals and plain markdown for everything else.
func (o *RootOptions) renderer(w io.Writer) (tui.Renderer, error) {
	if o.Style != "" {
		return tui.NewStyledRenderer(o.Style)
	}
	if f, ok := w.(*os.File); ok {
		return tui.NewRenderer(f), nil
	}
	return tui.Plain, nil
}

// printMarkdown renders markdown to w.
func (o *RootOptions) printMarkdown(w io.Writer, markdown string) error {
	render, err := o.renderer(w)
	if err != nil {
		return err
	}
	out, err := render(markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
