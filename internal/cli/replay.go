package cli

import (
	"fmt"
	"os"

	"github.com/aretw0/valence"
	"github.com/aretw0/valence/internal/adapters/file"
	"github.com/aretw0/valence/internal/presentation/tui"
	"github.com/aretw0/valence/pkg/command"
	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/history"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Script is a sequence of edits. Each step is either a command spec or one
// of the strings "undo", "redo" and "clear".
type Script struct {
	Steps []any `yaml:"steps"`
}

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Output string
}

// ReplayResult is the JSON output of the replay command.
type ReplayResult struct {
	Steps    int             `json:"steps"`
	Skipped  int             `json:"skipped"`
	History  history.Stats   `json:"history"`
	Document domain.Document `json:"document"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <document> <script>",
		Short: "Apply a scripted sequence of edits through the undo history",
		Long: `Loads a document, applies every step of a YAML script through the undo
history and prints the resulting history.

Script format:
  steps:
    - kind: move_node
      node_id: a
      position: {x: 120, y: 40}
    - kind: delete_node
      node_id: b
    - undo
    - redo

Undo and redo past the ends of the history are counted as skipped.

Examples:
  valence replay board.yaml edits.yaml
  valence replay board.yaml edits.yaml --out result.yaml --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "write the resulting document to this file")

	return cmd
}

// LoadScript reads a replay script.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("failed to parse script %s: %w", path, err)
	}
	return s, nil
}

func runReplay(opts *ReplayOptions, docPath, scriptPath string, cmd *cobra.Command) error {
	doc, err := file.ReadDocument(docPath)
	if err != nil {
		return err
	}
	script, err := LoadScript(scriptPath)
	if err != nil {
		return err
	}

	ed := valence.New(
		valence.WithDocument(doc),
		valence.WithLogger(opts.Logger),
		valence.WithMaxHistory(opts.Config.History.MaxSize),
		valence.WithAwarenessDistance(opts.Config.Awareness.Distance),
	)

	skipped := 0
	for i, step := range script.Steps {
		applied, err := applyStep(ed, step)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if !applied {
			skipped++
		}
	}

	if opts.Output != "" {
		if err := file.WriteDocument(opts.Output, ed.Document()); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	stats := ed.History().Stats()
	if opts.Format == "json" {
		return writeJSON(out, ReplayResult{
			Steps:    len(script.Steps),
			Skipped:  skipped,
			History:  stats,
			Document: ed.Document(),
		})
	}

	final := ed.Document()
	summary := fmt.Sprintf("%d steps, %d skipped.", len(script.Steps), skipped)
	fmt.Fprintf(out, "%s %d nodes, %d edges.\n", tui.Status(out, skipped == 0, summary), len(final.Nodes), len(final.Edges))
	return opts.printMarkdown(out, tui.HistoryReport(stats))
}

func applyStep(ed *valence.Editor, step any) (bool, error) {
	switch s := step.(type) {
	case string:
		switch s {
		case "undo":
			return ed.Undo(), nil
		case "redo":
			return ed.Redo(), nil
		case "clear":
			ed.History().Clear()
			return true, nil
		}
		return false, fmt.Errorf("unknown step %q", s)
	case map[string]any:
		if err := ed.ApplyRaw(s); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, fmt.Errorf("%w: unsupported step %T", command.ErrInvalidSpec, step)
}
