package main

import (
	"fmt"
	"io"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/philipparndt/gospatial/pkg/analysis"
	"github.com/philipparndt/gospatial/pkg/geometry"
	"github.com/spf13/cobra"
)

type nearResult struct {
	Point     *geometry.Vector2 `json:"point,omitempty"`
	Radius    float64           `json:"radius,omitempty"`
	Triangles []int             `json:"triangles,omitempty"`
	World     *geometry.Vector3 `json:"world,omitempty"`
	Vertex    *geometry.Vector3 `json:"vertex,omitempty"`
	Distance  float64           `json:"distance,omitempty"`
}

func (a *app) newNearCmd() *cobra.Command {
	var pointValues, worldValues []float64
	var radius float64

	cmd := &cobra.Command{
		Use:   "near <file>",
		Short: "Find what is close to a screen position or a world point",
		Long: `With --point, list the triangles whose projection comes within --radius
pixels of a screen position. With --world, find the model vertex nearest to a
point in model coordinates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(pointValues) == 0 && len(worldValues) == 0 {
				return errors.New("either --point or --world is required").WithType(errTypeUsage)
			}
			model, err := a.loadModel(cmd, args[0])
			if err != nil {
				return err
			}

			if len(worldValues) > 0 {
				p, err := vector3("world", worldValues)
				if err != nil {
					return err
				}
				res := nearResult{World: &p}
				if v, d, ok := analysis.FindNearestVertex(model, p); ok {
					res.Vertex = &v
					res.Distance = d
				}
				return a.print(cmd, res, func(w io.Writer) {
					if res.Vertex == nil {
						fmt.Fprintln(w, "Model has no vertices")
						return
					}
					fmt.Fprintf(w, "Nearest vertex to %s: %s (distance: %.6f)\n",
						analysis.FormatVector(p), analysis.FormatVector(*res.Vertex), res.Distance)
				})
			}

			p, err := vector2("point", pointValues)
			if err != nil {
				return err
			}
			res := nearResult{
				Point:     &p,
				Radius:    radius,
				Triangles: a.buildScene(model).Near(p, radius),
			}
			return a.print(cmd, res, func(w io.Writer) {
				fmt.Fprintf(w, "Within %.1f px of (%.1f, %.1f): %d triangle(s)\n", radius, p.X, p.Y, len(res.Triangles))
				for _, i := range res.Triangles {
					fmt.Fprintf(w, "  #%d\n", i)
				}
			})
		},
	}

	cmd.Flags().Float64SliceVar(&pointValues, "point", nil, "screen position x,y")
	cmd.Flags().Float64Var(&radius, "radius", 5, "search radius in pixels")
	cmd.Flags().Float64SliceVar(&worldValues, "world", nil, "model point x,y,z")
	cmd.MarkFlagsMutuallyExclusive("point", "world")
	return cmd
}
