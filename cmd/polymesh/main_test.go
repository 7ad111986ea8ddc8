package main

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/polymesh/pkg/coxeter"
	"github.com/philipparndt/polymesh/pkg/importer"
	"github.com/philipparndt/polymesh/pkg/polydb"
	"github.com/philipparndt/polymesh/pkg/stl"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears flag values left over from a previous Execute
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func seededDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "polyhedra.db")
	db, err := polydb.Open(path, polydb.WithWritable())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, polydb.Seed(context.Background(), db))
	return path
}

func TestSeedAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")

	out, err := execute(t, "--db", path, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "with 5 polyhedra")

	out, err = execute(t, "--db", path, "list")
	require.NoError(t, err)
	for _, name := range []string{"Tetrahedron", "Cube", "Octahedron", "Dodecahedron", "Icosahedron"} {
		assert.Contains(t, out, name)
	}
}

func TestImport(t *testing.T) {
	db := seededDB(t)

	out, err := execute(t, "--db", db, "import", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Imported 1 as "Tetrahedron": 4 vertices, 6 edges, 4 faces -> Collection`)
	assert.Contains(t, out, "Active object: Tetrahedron")
}

func TestImportTwiceCreatesSuffixedObject(t *testing.T) {
	db := seededDB(t)

	out, err := execute(t, "--db", db, "import", "2", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `as "Cube"`)
	assert.Contains(t, out, `as "Cube.001"`)
	assert.Contains(t, out, "Active object: Cube.001")
}

func TestImportMissingSkipsUnlessStrict(t *testing.T) {
	db := seededDB(t)

	out, err := execute(t, "--db", db, "import", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing imported.")

	_, err = execute(t, "--db", db, "import", "--strict", "99")
	assert.ErrorIs(t, err, importer.ErrNotFound)
}

func TestImportIntoCollectionAndExport(t *testing.T) {
	db := seededDB(t)
	target := filepath.Join(t.TempDir(), "octa.obj")

	out, err := execute(t, "--db", db, "import", "--collection", "Solids", "--out", target, "3")
	require.NoError(t, err)
	assert.Contains(t, out, "-> Solids")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "o Octahedron")

	_, err = execute(t, "--db", db, "import", "--out", target, "1", "2")
	assert.ErrorContains(t, err, "exactly one id")
}

func TestInvalidID(t *testing.T) {
	_, err := execute(t, "--db", seededDB(t), "info", "abc")
	assert.ErrorContains(t, err, `invalid polyhedron id "abc"`)
}

func TestInfo(t *testing.T) {
	out, err := execute(t, "--db", seededDB(t), "info", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Dodecahedron")
	assert.Contains(t, out, "Faces: 12")
	assert.Contains(t, out, "5-gons: 12")
	assert.Contains(t, out, "Euler characteristic: 2")
	assert.Contains(t, out, "Regular: true")
}

func TestFacesAndEdges(t *testing.T) {
	db := seededDB(t)

	out, err := execute(t, "--db", db, "faces", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "showing 4 of 4")
	assert.Contains(t, out, "1 3 2")

	out, err = execute(t, "--db", db, "edges", "--longest", "-n", "2", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Top 2 Longest Edges")
	assert.Contains(t, out, "Total edges in polyhedron: 30")

	_, err = execute(t, "--db", db, "edges", "--longest", "--shortest", "5")
	assert.Error(t, err)
}

func TestExportAndRender(t *testing.T) {
	db := seededDB(t)
	dir := t.TempDir()

	stlPath := filepath.Join(dir, "cube.stl")
	_, err := execute(t, "--db", db, "export", "2", stlPath)
	require.NoError(t, err)
	model, err := stl.Parse(stlPath)
	require.NoError(t, err)
	assert.Equal(t, 12, model.TriangleCount())

	_, err = execute(t, "--db", db, "export", "2", filepath.Join(dir, "cube.ply"))
	assert.Error(t, err)

	pngPath := filepath.Join(dir, "cube.png")
	_, err = execute(t, "--db", db, "render", "--size", "32", "--supersample", "1", "2", pngPath)
	require.NoError(t, err)

	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	imgCfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 32, imgCfg.Width)
	assert.Equal(t, 32, imgCfg.Height)
}

func TestStoreSTL(t *testing.T) {
	db := seededDB(t)
	stlPath := filepath.Join(t.TempDir(), "tetra.stl")

	f, err := os.Create(stlPath)
	require.NoError(t, err)
	require.NoError(t, stl.WriteASCII(f, polydb.Tetrahedron()))
	require.NoError(t, f.Close())

	out, err := execute(t, "--db", db, "store", "--name", "Tet", "10", stlPath)
	require.NoError(t, err)
	assert.Contains(t, out, `Stored "Tet" as 10: 4 vertices, 4 faces`)

	_, err = execute(t, "--db", db, "store", "10", stlPath)
	assert.Error(t, err, "existing id without --replace")

	_, err = execute(t, "--db", db, "store", "--replace", "10", stlPath)
	require.NoError(t, err)

	out, err = execute(t, "--db", db, "info", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Tetrahedron")
	assert.Contains(t, out, "Euler characteristic: 2")
}

func TestGenerate(t *testing.T) {
	db := seededDB(t)

	out, err := execute(t, "--db", db, "generate", "6", "x3x5o")
	require.NoError(t, err)
	assert.Contains(t, out, `Stored "Truncated icosahedron" (x3x5o, H3) as 6: 60 vertices, 32 faces`)

	out, err = execute(t, "--db", db, "info", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "5-gons: 12")
	assert.Contains(t, out, "6-gons: 20")
	assert.Contains(t, out, "Euler characteristic: 2")

	_, err = execute(t, "--db", db, "generate", "6", "o4x3o")
	assert.Error(t, err, "existing id without --replace")

	out, err = execute(t, "--db", db, "generate", "--replace", "--name", "Cubo", "6", "o4x3o")
	require.NoError(t, err)
	assert.Contains(t, out, `Stored "Cubo" (o4x3o, B3) as 6: 12 vertices, 14 faces`)

	_, err = execute(t, "--db", db, "generate", "7", "x3o6o")
	assert.ErrorIs(t, err, coxeter.ErrNotFinite)
	_, err = execute(t, "--db", db, "generate", "7", "o3o3o")
	assert.ErrorIs(t, err, coxeter.ErrNoRing)
}

func TestConfigFile(t *testing.T) {
	db := seededDB(t)
	cfgPath := filepath.Join(t.TempDir(), "polymesh.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database = \""+filepath.ToSlash(db)+"\"\ncollection = \"Solids\"\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, "import", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "-> Solids")

	out, err = execute(t, "--config", cfgPath, "config")
	require.NoError(t, err)
	assert.Regexp(t, `collection = ["']Solids["']`, out)

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "absent.toml"), "list")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "polymesh dev\n", out)
}
