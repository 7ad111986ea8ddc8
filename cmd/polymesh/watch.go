package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/philipparndt/polymesh/pkg/export"
	"github.com/philipparndt/polymesh/pkg/importer"
	"github.com/philipparndt/polymesh/pkg/scene"
	"github.com/philipparndt/polymesh/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchASCII bool

var watchCmd = &cobra.Command{
	Use:   "watch <id> <file>",
	Short: "Re-export a polyhedron whenever the database changes",
	Long: `Import a polyhedron into a fresh scene and write it to a file, then repeat
every time the database is written. Mesh files (.stl, .obj, .glb, .scad) are
exported; images (.png, .webp) are rendered. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchASCII, "ascii", false, "Write ASCII instead of binary STL")
}

func isImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".webp":
		return true
	}
	return false
}

func runWatch(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	target := args[1]
	if !isImagePath(target) {
		if _, err := export.FormatFromPath(target, watchASCII); err != nil {
			return err
		}
	}
	opts := renderOptions(cmd)

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// the debounce timer may fire while a previous rebuild is still writing
	var mu sync.Mutex
	rebuild := func() error {
		mu.Lock()
		defer mu.Unlock()

		sc := scene.New()
		sc.NewCollection(cfg.Collection)
		obj, err := importer.New(db, importer.Target{Scene: sc, Collection: cfg.Collection}, logger).Import(ctx, id)
		if err != nil {
			return err
		}
		m := obj.Mesh.Geometry()
		if isImagePath(target) {
			err = writeImage(target, m, opts)
		} else {
			err = export.WriteFile(target, m, watchASCII)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s (%s, %d faces)\n", target, obj.Name, len(m.Faces))
		return nil
	}

	if err := rebuild(); err != nil {
		return err
	}

	w, err := watcher.New(cfg.Database, cfg.Watch.Debounce(), logger)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("watching database", "path", w.Path(), "id", id)
	// Run waits for a running rebuild before the deferred closes release db
	return w.Run(ctx, func() {
		if ctx.Err() != nil {
			return
		}
		if err := rebuild(); err != nil {
			logger.Error("rebuild failed", "id", id, "error", err)
		}
	})
}
