package main

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/philipparndt/gospatial/pkg/analysis"
	"github.com/philipparndt/gospatial/pkg/geometry"
	"github.com/philipparndt/gospatial/pkg/stl"
	"github.com/spf13/cobra"
)

type triangleInfo struct {
	Index     int                 `json:"index"`
	Area      float64             `json:"area"`
	Perimeter float64             `json:"perimeter"`
	Vertices  [3]geometry.Vector3 `json:"vertices"`
}

func (a *app) newTrianglesCmd() *cobra.Command {
	var (
		count    int
		largest  bool
		smallest bool
		onBounds bool
		indices  []int
	)

	cmd := &cobra.Command{
		Use:   "triangles <file>",
		Short: "Analyze the triangles of a model",
		Long: `Display area, perimeter and vertex positions of triangles. --indices limits
the listing to triangles reported by pick, box or near; --on-bounds to
triangles with a vertex on the model bounds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := a.loadModel(cmd, args[0])
			if err != nil {
				return err
			}

			triangles := selectTriangles(model, indices, onBounds)
			switch {
			case largest:
				slices.SortStableFunc(triangles, func(x, y triangleInfo) int { return cmp.Compare(y.Area, x.Area) })
			case smallest:
				slices.SortStableFunc(triangles, func(x, y triangleInfo) int { return cmp.Compare(x.Area, y.Area) })
			}
			if count >= 0 && count < len(triangles) {
				triangles = triangles[:count]
			}

			return a.print(cmd, triangles, func(w io.Writer) {
				fmt.Fprintf(w, "Triangles: %d of %d\n", len(triangles), model.TriangleCount())
				fmt.Fprintln(w, "====================")
				for _, t := range triangles {
					fmt.Fprintf(w, "Triangle #%d:\n", t.Index)
					fmt.Fprintf(w, "  Area: %s\n", analysis.FormatMeasurement(t.Area, "square units"))
					fmt.Fprintf(w, "  Perimeter: %s\n", analysis.FormatMeasurement(t.Perimeter, "units"))
					fmt.Fprintf(w, "  Vertices: %s, %s, %s\n\n",
						analysis.FormatVector(t.Vertices[0]),
						analysis.FormatVector(t.Vertices[1]),
						analysis.FormatVector(t.Vertices[2]))
				}
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of triangles to display, -1 for all")
	cmd.Flags().BoolVarP(&largest, "largest", "l", false, "show largest triangles by area")
	cmd.Flags().BoolVarP(&smallest, "smallest", "s", false, "show smallest triangles by area")
	cmd.Flags().BoolVar(&onBounds, "on-bounds", false, "only triangles touching the model bounds")
	cmd.Flags().IntSliceVar(&indices, "indices", nil, "only these triangle indices")
	cmd.MarkFlagsMutuallyExclusive("largest", "smallest")
	return cmd
}

func selectTriangles(model *stl.Model, indices []int, onBounds bool) []triangleInfo {
	b := model.Bounds()
	precision := math.Max(b.DiagonalLength(), 1) * 1e-9

	keep := func(i int) bool {
		if !onBounds {
			return true
		}
		for _, v := range model.Triangles[i].Vertices() {
			if b.IsOnBounds(v, precision) {
				return true
			}
		}
		return false
	}

	if indices == nil {
		indices = make([]int, len(model.Triangles))
		for i := range indices {
			indices[i] = i
		}
	}

	res := make([]triangleInfo, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(model.Triangles) || !keep(i) {
			continue
		}
		t := model.Triangles[i]
		res = append(res, triangleInfo{
			Index:     i,
			Area:      t.Area(),
			Perimeter: t.Perimeter(),
			Vertices:  t.Vertices(),
		})
	}
	return res
}
