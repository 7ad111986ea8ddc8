package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileMissingIsError(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
database = "solids.db"

[render]
size = 256
`))
	require.NoError(t, err)

	assert.Equal(t, "solids.db", cfg.Database)
	assert.Equal(t, "Collection", cfg.Collection)
	assert.Equal(t, 256, cfg.Render.Size)
	assert.Equal(t, 2, cfg.Render.Supersample)
	assert.Equal(t, 250, cfg.Watch.DebounceMillis)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("databse = \"typo.db\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "databse")
}

func TestDecodeValidates(t *testing.T) {
	_, err := Decode(strings.NewReader("[render]\nsupersample = 0\n"))
	assert.ErrorContains(t, err, "render.supersample")

	_, err = Decode(strings.NewReader("database = \"\"\n"))
	assert.ErrorContains(t, err, "database")
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Collection = "Solids"
	cfg.Watch.DebounceMillis = 100

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, int64(100_000_000), int64(loaded.Watch.Debounce()))
}
