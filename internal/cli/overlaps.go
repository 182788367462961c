package cli

import (
	"fmt"

	"github.com/aretw0/valence/internal/adapters/file"
	"github.com/aretw0/valence/internal/presentation/tui"
	"github.com/aretw0/valence/pkg/geometry"
	"github.com/spf13/cobra"
)

// OverlapsOptions holds flags for the overlaps command.
type OverlapsOptions struct {
	*RootOptions
	Distance float64
	NodeID   string
}

// OverlapsResult is the JSON output of the overlaps command.
type OverlapsResult struct {
	Document string   `json:"document"`
	Distance float64  `json:"distance"`
	Node     string   `json:"node,omitempty"`
	Pairs    []string `json:"pairs,omitempty"`
	Nearby   []string `json:"nearby,omitempty"`
}

// NewOverlapsCommand creates the overlaps command.
func NewOverlapsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OverlapsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "overlaps <file>",
		Short: "List nodes whose awareness zones overlap",
		Long: `Reads a document (YAML or JSON) and lists every pair of nodes whose
bounding boxes, padded by the awareness distance, intersect.

Examples:
  valence overlaps board.yaml
  valence overlaps board.json --distance 20
  valence overlaps board.yaml --node a --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("distance") {
				opts.Distance = opts.Config.Awareness.Distance
			}
			return runOverlaps(opts, args[0], cmd)
		},
	}

	cmd.Flags().Float64VarP(&opts.Distance, "distance", "d", 0, "awareness distance (default from config)")
	cmd.Flags().StringVarP(&opts.NodeID, "node", "n", "", "only list nodes near this one")

	return cmd
}

func runOverlaps(opts *OverlapsOptions, path string, cmd *cobra.Command) error {
	if opts.Distance < 0 {
		return fmt.Errorf("distance must not be negative")
	}
	doc, err := file.ReadDocument(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if opts.NodeID != "" {
		if _, ok := doc.Node(opts.NodeID); !ok {
			return fmt.Errorf("node %q not found in %s", opts.NodeID, path)
		}
		nearby := []string{}
		for _, n := range geometry.OverlappingNodes(opts.NodeID, doc.Nodes, opts.Distance) {
			nearby = append(nearby, n.ID)
		}
		if opts.Format == "json" {
			return writeJSON(out, OverlapsResult{Document: doc.ID, Distance: opts.Distance, Node: opts.NodeID, Nearby: nearby})
		}
		for _, id := range nearby {
			fmt.Fprintln(out, id)
		}
		return nil
	}

	pairs := geometry.FindOverlappingPairs(doc.Nodes, opts.Distance)
	opts.Logger.Debug("overlaps computed", "document", doc.ID, "nodes", len(doc.Nodes), "pairs", pairs.Len())

	if opts.Format == "json" {
		return writeJSON(out, OverlapsResult{Document: doc.ID, Distance: opts.Distance, Pairs: pairs.Keys()})
	}
	return opts.printMarkdown(out, tui.OverlapReport(doc, pairs, opts.Distance))
}
