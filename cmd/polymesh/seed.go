package main

import (
	"fmt"

	"github.com/philipparndt/polymesh/pkg/polydb"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and store the five Platonic solids",
	Long:  "Create the Polyhedron, Vertex and Polygon tables if needed and insert the Platonic solids as ids 1 to 5.",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	db, err := openDB(polydb.WithWritable())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := polydb.Seed(cmd.Context(), db); err != nil {
		return err
	}

	logger.Info("seeded database", "path", db.Path())
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s with %d polyhedra\n", db.Path(), len(polydb.PlatonicSolids()))
	return nil
}
