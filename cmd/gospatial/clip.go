package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/gospatial/pkg/analysis"
	"github.com/philipparndt/gospatial/pkg/geometry"
	"github.com/spf13/cobra"
)

type clipResult struct {
	Inside bool                 `json:"inside"`
	Pieces [][]geometry.Vector3 `json:"pieces"`
}

func (a *app) newClipCmd() *cobra.Command {
	var pointValues []float64

	cmd := &cobra.Command{
		Use:   "clip <file>",
		Short: "Clip a segment or polyline to the model bounds",
		Long: `Clip the polyline through --points (x,y,z triples) to the bounding box of
the model and print the pieces inside. Two points are clipped as a single
segment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pts, err := points("points", pointValues)
			if err != nil {
				return err
			}
			model, err := a.loadModel(cmd, args[0])
			if err != nil {
				return err
			}
			s := a.buildScene(model)

			res := clipResult{Pieces: [][]geometry.Vector3{}}
			if len(pts) == 2 {
				if start, end, ok := s.ClipSegment(pts[0], pts[1]); ok {
					res.Pieces = append(res.Pieces, []geometry.Vector3{start, end})
				}
			} else {
				for _, c := range s.ClipPolyline(pts...) {
					res.Pieces = append(res.Pieces, curvePoints(c))
				}
			}
			res.Inside = len(res.Pieces) > 0

			return a.print(cmd, res, func(w io.Writer) {
				fmt.Fprintf(w, "Clipped to %s: %d piece(s)\n", s.Bounds(), len(res.Pieces))
				for i, piece := range res.Pieces {
					fmt.Fprintf(w, "  piece %d:\n", i+1)
					for _, p := range piece {
						fmt.Fprintf(w, "    %s\n", analysis.FormatVector(p))
					}
				}
			})
		},
	}

	cmd.Flags().Float64SliceVar(&pointValues, "points", nil, "polyline points x1,y1,z1,x2,y2,z2,...")
	_ = cmd.MarkFlagRequired("points")
	return cmd
}

func curvePoints(c geometry.Curve) []geometry.Vector3 {
	switch c := c.(type) {
	case *geometry.Polyline:
		return c.Points
	case *geometry.Line:
		return []geometry.Vector3{c.Start, c.End}
	default:
		return []geometry.Vector3{c.PointAt(0), c.PointAt(1)}
	}
}
