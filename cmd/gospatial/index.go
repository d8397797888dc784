package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/gospatial/pkg/scene"
	"github.com/spf13/cobra"
)

type indexResult struct {
	Splits int              `json:"splits,omitempty"`
	Stats  scene.IndexStats `json:"stats"`
}

func (a *app) newIndexCmd() *cobra.Command {
	var depth, refineDepth, refineItems int

	cmd := &cobra.Command{
		Use:   "index <file>",
		Short: "Show the structure of the screen space quadtree",
		Long: `Build the quadtree over the projected triangles and report its root
rectangle, node counts and depth. --refine-depth splits crowded leaves further
regardless of the split policy before reporting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := a.loadModel(cmd, args[0])
			if err != nil {
				return err
			}
			s := a.buildScene(model)

			var res indexResult
			if refineDepth > 0 {
				res.Splits = s.Refine(refineDepth, refineItems)
			}
			res.Stats = s.Stats(depth)

			return a.print(cmd, res, func(w io.Writer) {
				st := res.Stats
				fmt.Fprintln(w, "Screen Index")
				fmt.Fprintln(w, "============")
				fmt.Fprintf(w, "Split policy: %s\n", st.Policy)
				fmt.Fprintf(w, "Root: %s\n", st.Root)
				fmt.Fprintf(w, "Facets: %d (%d culled)\n", st.Facets, st.Culled)
				fmt.Fprintf(w, "Nodes: %d\n", st.Nodes)
				fmt.Fprintf(w, "Leaves: %d (%d empty)\n", st.Leaves, st.EmptyLeaves)
				fmt.Fprintf(w, "Depth: %d\n", st.Depth)
				fmt.Fprintf(w, "Largest leaf: %d\n", st.MaxLeafItems)
				fmt.Fprintf(w, "Stored references: %d\n", st.Stored)
				if res.Splits > 0 {
					fmt.Fprintf(w, "Forced splits: %d\n", res.Splits)
				}
			})
		},
	}

	cmd.Flags().IntVar(&depth, "depth", -1, "deepest level to report, -1 for all")
	cmd.Flags().IntVar(&refineDepth, "refine-depth", 0, "split leaves down to this depth")
	cmd.Flags().IntVar(&refineItems, "refine-items", 1, "split leaves holding more facets than this")
	return cmd
}
