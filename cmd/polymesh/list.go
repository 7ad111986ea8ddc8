package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the polyhedra in the database",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	polyhedra, err := db.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(polyhedra) == 0 {
		fmt.Fprintf(out, "No polyhedra in %s\n", db.Path())
		return nil
	}

	fmt.Fprintf(out, "%-6s %-30s %-10s %-10s\n", "ID", "Name", "Vertices", "Faces")
	fmt.Fprintln(out, "----------------------------------------------------------")
	for _, p := range polyhedra {
		name := p.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(out, "%-6d %-30s %-10d %-10d\n", p.ID, name, p.VertexCount, p.FaceCount)
	}
	return nil
}
