package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/polymesh/pkg/openscad"
	"github.com/philipparndt/polymesh/pkg/polydb"
	"github.com/philipparndt/polymesh/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	storeName      string
	storeTolerance float64
	storeReplace   bool
)

var storeCmd = &cobra.Command{
	Use:   "store <id> <file>",
	Short: "Store an STL or OpenSCAD file in the database as a polyhedron",
	Long: `Parse an ASCII or binary STL file, weld coincident triangle corners into
shared vertices and store the resulting mesh under the given id. Each STL
triangle becomes one triangular face.

.scad files are rendered to STL with the openscad binary first.`,
	Args: cobra.ExactArgs(2),
	RunE: runStore,
}

func init() {
	rootCmd.AddCommand(storeCmd)

	storeCmd.Flags().StringVar(&storeName, "name", "", "Polyhedron name (default: STL solid name or file name)")
	storeCmd.Flags().Float64Var(&storeTolerance, "tolerance", 1e-6, "Distance below which corners are welded")
	storeCmd.Flags().BoolVar(&storeReplace, "replace", false, "Replace an existing polyhedron with the same id")
}

func runStore(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	model, err := loadModel(ctx, args[1])
	if err != nil {
		return err
	}

	m := model.ToMesh(storeTolerance)
	switch {
	case storeName != "":
		m.Name = storeName
	case m.Name == "":
		m.Name = strings.TrimSuffix(filepath.Base(args[1]), filepath.Ext(args[1]))
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}
	logger.Debug("welded STL", "file", args[1], "triangles", model.TriangleCount(), "vertices", len(m.Vertices))

	db, err := openDB(polydb.WithWritable())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CreateSchema(ctx); err != nil {
		return err
	}
	put := db.Put
	if storeReplace {
		put = db.Replace
	}
	if err := put(ctx, id, m); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stored %q as %d: %d vertices, %d faces\n", m.Name, id, len(m.Vertices), len(m.Faces))
	return nil
}

func loadModel(ctx context.Context, path string) (*stl.Model, error) {
	if strings.EqualFold(filepath.Ext(path), ".scad") {
		dir, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		logger.Debug("rendering OpenSCAD source", "file", path)
		return openscad.NewRenderer(dir).Load(ctx, path)
	}

	model, err := stl.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return model, nil
}
