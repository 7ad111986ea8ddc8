package main

import (
	"fmt"
	"slices"

	"github.com/philipparndt/polymesh/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Display general information about a polyhedron",
	Long:  "Show counts, dimensions, surface area, volume and edge statistics of a stored polyhedron.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	m, err := loadMesh(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	result := analysis.AnalyzeMesh(m)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Polyhedron Information")
	fmt.Fprintln(out, "======================")
	fmt.Fprintf(out, "Name: %s\n", m.Name)
	fmt.Fprintf(out, "ID: %s\n\n", args[0])

	fmt.Fprintln(out, "Topology:")
	fmt.Fprintf(out, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  Faces: %d\n", result.FaceCount)
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Euler characteristic: %d\n", result.Euler)

	sizes := make([]int, 0, len(result.FaceSizes))
	for n := range result.FaceSizes {
		sizes = append(sizes, n)
	}
	slices.Sort(sizes)
	for _, n := range sizes {
		fmt.Fprintf(out, "  %d-gons: %d\n", n, result.FaceSizes[n])
	}
	fmt.Fprintf(out, "  Regular: %t\n\n", analysis.IsRegular(result, 1e-6))

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(out, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(out, "  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Fprintf(out, "  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n", result.SurfaceArea)
	fmt.Fprintf(out, "  Volume: %.6f cubic units\n\n", result.Volume)

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n", result.AvgEdgeLength)
	return nil
}
