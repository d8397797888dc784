package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/gospatial/pkg/bounds"
	"github.com/philipparndt/gospatial/pkg/scene"
	"github.com/spf13/cobra"
)

type boxResult struct {
	Box       bounds.Box `json:"box"`
	Triangles []int      `json:"triangles"`
}

func (a *app) newBoxCmd() *cobra.Command {
	var minValues, maxValues, axisValues []float64
	var angle float64

	cmd := &cobra.Command{
		Use:   "box <file>",
		Short: "List the triangles interfering with a box",
		Long: `List the triangles that share at least one point with an axis-aligned box.
With --angle the box is first rotated about --axis through its center and
replaced by the axis-aligned box around the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, err := vector3("min", minValues)
			if err != nil {
				return err
			}
			hi, err := vector3("max", maxValues)
			if err != nil {
				return err
			}
			axis, err := vector3("axis", axisValues)
			if err != nil {
				return err
			}

			model, err := a.loadModel(cmd, args[0])
			if err != nil {
				return err
			}

			b := bounds.New(lo.X, hi.X, lo.Y, hi.Y, lo.Z, hi.Z)
			if angle != 0 {
				b = scene.RotateBox(b, axis, degrees(angle))
			}
			res := boxResult{Box: b, Triangles: a.buildScene(model).BoxQuery(b)}
			if res.Triangles == nil {
				res.Triangles = []int{}
			}

			return a.print(cmd, res, func(w io.Writer) {
				fmt.Fprintf(w, "Box %s: %d triangle(s)\n", b, len(res.Triangles))
				for _, i := range res.Triangles {
					fmt.Fprintf(w, "  #%d\n", i)
				}
			})
		},
	}

	cmd.Flags().Float64SliceVar(&minValues, "min", nil, "minimum corner x,y,z")
	cmd.Flags().Float64SliceVar(&maxValues, "max", nil, "maximum corner x,y,z")
	cmd.Flags().Float64SliceVar(&axisValues, "axis", []float64{0, 0, 1}, "rotation axis x,y,z")
	cmd.Flags().Float64Var(&angle, "angle", 0, "rotation angle in degrees")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}
