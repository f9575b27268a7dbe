package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	// Use temp directories to avoid touching real config
	configDir = t.TempDir()
	gameDir = "/flag/game"
	modRepoDir = "/flag/mods"
	t.Cleanup(func() { gameDir, modRepoDir = "", "" })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/flag/game", cfg.GameDir)
	assert.Equal(t, "/flag/mods", cfg.ModRepoDir)
}

func TestInitService_WithValidDirs(t *testing.T) {
	configDir = t.TempDir()
	gameDir = t.TempDir()
	modRepoDir = t.TempDir()
	t.Cleanup(func() { gameDir, modRepoDir = "", "" })

	svc, err := initService()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, svc.Close())
	})

	assert.Empty(t, svc.InstalledMods())

	// Service creation lays down the Modroller tree.
	_, err = os.Stat(filepath.Join(gameDir, "Modroller", "backup"))
	assert.NoError(t, err)
}

func TestInitService_MissingPathsFails(t *testing.T) {
	configDir = t.TempDir()
	gameDir = ""
	modRepoDir = ""

	_, err := initService()
	assert.Error(t, err)
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	noColor = false
	assert.True(t, colorEnabled())

	noColor = true
	assert.False(t, colorEnabled())
	noColor = false

	t.Setenv("NO_COLOR", "1")
	assert.False(t, colorEnabled())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "long…", truncate("longer", 5))
}
