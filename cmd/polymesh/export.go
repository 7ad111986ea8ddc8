package main

import (
	"fmt"

	"github.com/philipparndt/polymesh/pkg/export"
	"github.com/spf13/cobra"
)

var exportASCII bool

var exportCmd = &cobra.Command{
	Use:   "export <id> <file>",
	Short: "Export a polyhedron as STL, OBJ, GLB or OpenSCAD",
	Long: `Write a polyhedron to a mesh file. The format follows the extension:
.stl (binary, or ASCII with --ascii), .obj (polygon faces kept), .glb or
.scad (an OpenSCAD polyhedron() call).`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().BoolVar(&exportASCII, "ascii", false, "Write ASCII instead of binary STL")
}

func runExport(cmd *cobra.Command, args []string) error {
	if _, err := export.FormatFromPath(args[1], exportASCII); err != nil {
		return err
	}

	m, err := loadMesh(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if err := export.WriteFile(args[1], m, exportASCII); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d vertices, %d faces)\n", args[1], len(m.Vertices), len(m.Faces))
	return nil
}
