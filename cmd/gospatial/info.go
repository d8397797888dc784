package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/gospatial/pkg/analysis"
	"github.com/spf13/cobra"
)

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Display general information about a model",
		Long:  "Show the bounds, dimensions, triangle and vertex counts, surface area and edge statistics of a model.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := a.loadModel(cmd, args[0])
			if err != nil {
				return err
			}
			r := analysis.AnalyzeModel(model)
			return a.print(cmd, r, func(w io.Writer) {
				printReport(w, args[0], r)
			})
		},
	}
}

func printReport(w io.Writer, filename string, r *analysis.Report) {
	fmt.Fprintln(w, "Model Information")
	fmt.Fprintln(w, "=================")
	if r.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", r.Name)
	}
	fmt.Fprintf(w, "File: %s\n\n", filename)

	fmt.Fprintln(w, "Model Statistics:")
	fmt.Fprintf(w, "  Triangles: %d\n", r.TriangleCount)
	fmt.Fprintf(w, "  Vertices: %d\n", r.VertexCount)
	fmt.Fprintf(w, "  Degenerate triangles: %d\n", r.Degenerate)
	fmt.Fprintf(w, "  Surface Area: %s\n\n", analysis.FormatMeasurement(r.SurfaceArea, "square units"))

	if r.Bounds.IsEmpty() {
		fmt.Fprintln(w, "Bounding Box: empty")
		return
	}

	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(r.Bounds.Min()))
	fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(r.Bounds.Max()))
	fmt.Fprintf(w, "  Center: %s\n", analysis.FormatVector(r.Bounds.Center()))
	fmt.Fprintf(w, "  Vertices on bounds: %d\n\n", r.OnBoundsCount)

	fmt.Fprintln(w, "Dimensions:")
	fmt.Fprintf(w, "  Width (X): %s\n", analysis.FormatMeasurement(r.Dimensions.X, "units"))
	fmt.Fprintf(w, "  Depth (Y): %s\n", analysis.FormatMeasurement(r.Dimensions.Y, "units"))
	fmt.Fprintf(w, "  Height (Z): %s\n", analysis.FormatMeasurement(r.Dimensions.Z, "units"))
	fmt.Fprintf(w, "  Diagonal: %s\n", analysis.FormatMeasurement(r.Diagonal, "units"))
	fmt.Fprintf(w, "  Volume: %s\n\n", analysis.FormatMeasurement(r.BoxVolume, "cubic units"))

	fmt.Fprintln(w, "Edge Lengths:")
	fmt.Fprintf(w, "  Minimum: %s\n", analysis.FormatMeasurement(r.MinEdgeLength, "units"))
	fmt.Fprintf(w, "  Maximum: %s\n", analysis.FormatMeasurement(r.MaxEdgeLength, "units"))
	fmt.Fprintf(w, "  Average: %s\n", analysis.FormatMeasurement(r.AvgEdgeLength, "units"))
}
