package core_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"modroller/internal/core"
	"modroller/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip creates an archive with the given name -> content entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestImport_TopLevelDescriptor(t *testing.T) {
	dir := t.TempDir()
	repo := filepath.Join(dir, "mods")
	require.NoError(t, os.MkdirAll(repo, 0755))

	archive := filepath.Join(dir, "Better Balls.zip")
	writeZip(t, archive, map[string]string{
		"mod.json":  `{"name": "Better Balls", "description": "rounder"}`,
		"balls.lua": "return {}",
	})

	imp := core.NewImporter(repo)
	result, err := imp.Import(archive)
	require.NoError(t, err)
	assert.Equal(t, "better-balls", result.DirName)
	assert.Equal(t, "Better Balls", result.Name)

	_, err = os.Stat(filepath.Join(repo, "better-balls", "mod.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(repo, "better-balls", "balls.lua"))
	assert.NoError(t, err)
}

func TestImport_SingleTopLevelDirectory(t *testing.T) {
	dir := t.TempDir()
	repo := filepath.Join(dir, "mods")
	require.NoError(t, os.MkdirAll(repo, 0755))

	archive := filepath.Join(dir, "pack.zip")
	writeZip(t, archive, map[string]string{
		"cool-mod/mod.json": `{"name": "Cool", "description": "d"}`,
		"cool-mod/file.txt": "x",
	})

	imp := core.NewImporter(repo)
	result, err := imp.Import(archive)
	require.NoError(t, err)
	assert.Equal(t, "cool-mod", result.DirName)

	_, err = os.Stat(filepath.Join(repo, "cool-mod", "file.txt"))
	assert.NoError(t, err)
}

func TestImport_NoDescriptorFails(t *testing.T) {
	dir := t.TempDir()
	repo := filepath.Join(dir, "mods")
	require.NoError(t, os.MkdirAll(repo, 0755))

	archive := filepath.Join(dir, "junk.zip")
	writeZip(t, archive, map[string]string{"readme.txt": "not a mod"})

	imp := core.NewImporter(repo)
	_, err := imp.Import(archive)
	assert.ErrorIs(t, err, domain.ErrNoDescriptor)

	// No staging leftovers.
	entries, readErr := os.ReadDir(repo)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestImport_InvalidDescriptorFails(t *testing.T) {
	dir := t.TempDir()
	repo := filepath.Join(dir, "mods")
	require.NoError(t, os.MkdirAll(repo, 0755))

	archive := filepath.Join(dir, "bad.zip")
	writeZip(t, archive, map[string]string{"mod.json": `{"name": "No Description"}`})

	imp := core.NewImporter(repo)
	_, err := imp.Import(archive)
	assert.Error(t, err)
}

func TestImport_ExistingDirectoryFails(t *testing.T) {
	dir := t.TempDir()
	repo := filepath.Join(dir, "mods")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "taken"), 0755))

	archive := filepath.Join(dir, "pack.zip")
	writeZip(t, archive, map[string]string{
		"taken/mod.json": `{"name": "Taken", "description": "d"}`,
	})

	imp := core.NewImporter(repo)
	_, err := imp.Import(archive)
	assert.Error(t, err)
}

func TestExtractor_RejectsNonZip(t *testing.T) {
	e := core.NewExtractor()
	assert.False(t, e.CanExtract("mod.rar"))
	assert.True(t, e.CanExtract("mod.zip"))
	assert.True(t, e.CanExtract("MOD.ZIP"))

	err := e.Extract("mod.7z", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNotAnArchive)
}

func TestExtractor_RejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	writeZip(t, archive, map[string]string{"../escape.txt": "out"})

	e := core.NewExtractor()
	err := e.Extract(archive, filepath.Join(dir, "out"))
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(statErr))
}
