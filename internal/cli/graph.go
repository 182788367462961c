package cli

import (
	"fmt"

	"github.com/aretw0/valence/internal/adapters/file"
	"github.com/aretw0/valence/internal/presentation/graph"
	"github.com/aretw0/valence/pkg/geometry"
	"github.com/spf13/cobra"
)

// GraphOptions holds flags for the graph command.
type GraphOptions struct {
	*RootOptions
	Awareness bool
	Selected  string
}

// NewGraphCommand creates the graph command.
func NewGraphCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GraphOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Export a document as a Mermaid diagram",
		Long: `Outputs a Mermaid flowchart (graph LR) for a document. With --awareness,
nodes near each other are linked with dotted lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := file.ReadDocument(args[0])
			if err != nil {
				return err
			}

			var overlay *graph.Overlay
			if opts.Awareness || opts.Selected != "" {
				overlay = &graph.Overlay{Selected: opts.Selected}
				if opts.Awareness {
					overlay.Pairs = geometry.FindOverlappingPairs(doc.Nodes, opts.Config.Awareness.Distance)
				}
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(doc, overlay))
			return err
		},
	}

	cmd.Flags().BoolVarP(&opts.Awareness, "awareness", "a", false, "draw awareness links")
	cmd.Flags().StringVar(&opts.Selected, "select", "", "highlight a node")

	return cmd
}
