package main

import (
	"fmt"

	"github.com/philipparndt/polymesh/pkg/coxeter"
	"github.com/philipparndt/polymesh/pkg/polydb"
	"github.com/spf13/cobra"
)

var (
	generateName    string
	generateReplace bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <id> <diagram>",
	Short: "Build a uniform polyhedron from a Coxeter diagram and store it",
	Long: `Build the polyhedron of a linear three-node Coxeter-Dynkin diagram in
Bowers' notation by Wythoff's construction and store it under the given id.

Nodes are o (unringed), x (edge 1), q, f, v, h, k, u or F; marks are the
integers between them, e.g.

  polymesh generate 6 x3x5o    # truncated icosahedron
  polymesh generate 7 o4x3o    # cuboctahedron`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateName, "name", "", "Polyhedron name (default: common name or the diagram)")
	generateCmd.Flags().BoolVar(&generateReplace, "replace", false, "Replace an existing polyhedron with the same id")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	d, err := coxeter.Parse(args[1])
	if err != nil {
		return err
	}
	group, err := coxeter.Classify(d)
	if err != nil {
		return err
	}
	m, err := d.Polyhedron()
	if err != nil {
		return err
	}
	if generateName != "" {
		m.Name = generateName
	}
	logger.Debug("generated polyhedron", "diagram", d.String(), "group", group, "vertices", len(m.Vertices))

	db, err := openDB(polydb.WithWritable())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if err := db.CreateSchema(ctx); err != nil {
		return err
	}
	put := db.Put
	if generateReplace {
		put = db.Replace
	}
	if err := put(ctx, id, m); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stored %q (%s, %s) as %d: %d vertices, %d faces\n",
		m.Name, d, group, id, len(m.Vertices), len(m.Faces))
	return nil
}
