package main

import (
	"fmt"
	"io"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/philipparndt/gospatial/pkg/geometry"
	"github.com/philipparndt/gospatial/pkg/scene"
	"github.com/spf13/cobra"
)

type pickResult struct {
	Rect geometry.Rect `json:"rect"`
	Hits []scene.Hit   `json:"hits"`
}

func (a *app) newPickCmd() *cobra.Command {
	var rectValues, pointValues []float64

	cmd := &cobra.Command{
		Use:   "pick <file>",
		Short: "List the triangles visible through a screen rectangle",
		Long: `Project the model through the camera, index the projected triangles in a
quadtree and list the triangles under a screen rectangle or point, nearest
first. Screen coordinates start in the top-left corner.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r geometry.Rect
			switch {
			case len(rectValues) > 0:
				var err error
				if r, err = rect("rect", rectValues); err != nil {
					return err
				}
			case len(pointValues) > 0:
				p, err := vector2("point", pointValues)
				if err != nil {
					return err
				}
				r = geometry.NewRect(p.X, p.Y, p.X, p.Y)
			default:
				return errors.New("either --rect or --point is required").WithType(errTypeUsage)
			}

			model, err := a.loadModel(cmd, args[0])
			if err != nil {
				return err
			}
			res := pickResult{Rect: r, Hits: a.buildScene(model).PickRect(r)}
			if res.Hits == nil {
				res.Hits = []scene.Hit{}
			}

			return a.print(cmd, res, func(w io.Writer) {
				fmt.Fprintf(w, "Pick %s: %d triangle(s)\n", r, len(res.Hits))
				for _, h := range res.Hits {
					fmt.Fprintf(w, "  #%d at depth %.6f\n", h.Index, h.Depth)
				}
			})
		},
	}

	cmd.Flags().Float64SliceVar(&rectValues, "rect", nil, "screen rectangle x1,y1,x2,y2")
	cmd.Flags().Float64SliceVar(&pointValues, "point", nil, "screen position x,y")
	cmd.MarkFlagsMutuallyExclusive("rect", "point")
	return cmd
}
