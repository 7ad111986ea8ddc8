package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/polymesh/pkg/analysis"
	"github.com/spf13/cobra"
)

var facesCount int

var facesCmd = &cobra.Command{
	Use:   "faces <id>",
	Short: "List the faces of a polyhedron",
	Long:  "Display each face with its vertex indices in winding order, area and circumradius.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFaces,
}

func init() {
	rootCmd.AddCommand(facesCmd)

	facesCmd.Flags().IntVarP(&facesCount, "count", "n", 0, "Number of faces to display (0 for all)")
}

func runFaces(cmd *cobra.Command, args []string) error {
	m, err := loadMesh(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	result := analysis.AnalyzeMesh(m)
	faces := result.Faces
	if facesCount > 0 && len(faces) > facesCount {
		faces = faces[:facesCount]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Faces of %s (showing %d of %d)\n", m.Name, len(faces), result.FaceCount)
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "%-6s %-24s %-12s %-12s %-30s\n", "Index", "Vertices", "Area", "Radius", "Normal")
	fmt.Fprintln(out, "-------------------------------------------------------------------------------------")
	for _, f := range faces {
		indices := make([]string, len(f.Vertices))
		for i, v := range f.Vertices {
			indices[i] = strconv.Itoa(v)
		}
		fmt.Fprintf(out, "%-6d %-24s %-12.6f %-12.6f %-30s\n",
			f.Index,
			strings.Join(indices, " "),
			f.Area,
			f.Circumradius,
			analysis.FormatVector(f.Normal))
	}
	return nil
}
