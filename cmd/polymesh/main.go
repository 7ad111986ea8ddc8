package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/philipparndt/polymesh/internal/config"
	"github.com/philipparndt/polymesh/pkg/importer"
	"github.com/philipparndt/polymesh/pkg/mesh"
	"github.com/philipparndt/polymesh/pkg/polydb"
	"github.com/philipparndt/polymesh/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dbPath     string
	verbose    bool

	cfg    = config.Default()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "polymesh",
	Short: "Import and inspect polyhedra stored in a SQLite database",
	Long: `polymesh reads polyhedra (vertices and polygon faces) from a SQLite database
and builds named mesh objects from them. It can analyze, export and render the
meshes, seed a database with the Platonic solids, and watch a database for
changes.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "Config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Polyhedron database (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// setup configures logging and loads the config before any command runs
func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		return err
	}

	if dbPath != "" {
		cfg.Database = dbPath
	}
	logger.Debug("configuration loaded", "config", configPath, "database", cfg.Database)
	return nil
}

func openDB(opts ...polydb.Option) (*polydb.DB, error) {
	return polydb.Open(cfg.Database, opts...)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid polyhedron id %q", arg)
	}
	return id, nil
}

// loadMesh reads one polyhedron without creating scene objects
func loadMesh(ctx context.Context, arg string) (*mesh.Mesh, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}

	db, err := openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	m, err := importer.New(db, importer.Target{}, logger).Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load polyhedron %d: %w", id, err)
	}
	return m, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
