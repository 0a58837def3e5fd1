package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, "all", cfg.DefaultFilter)
	assert.Equal(t, "a", cfg.Keys.Add)
	assert.Equal(t, "2", cfg.Keys.FilterToday)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.LogPath)
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := []byte("db_path = \"/tmp/anders.db\"\ndefault_filter = \"today\"\n\n[keys]\nquit = \"x\"\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/anders.db", cfg.DBPath)
	assert.Equal(t, "today", cfg.DefaultFilter)
	assert.Equal(t, "x", cfg.Keys.Quit)
	// Missing paths are backfilled.
	assert.NotEmpty(t, cfg.LogPath)
}

func TestLoadOrCreateRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("db_path = ["), 0o644))

	_, err := LoadOrCreate(path)
	assert.Error(t, err)
}
