// Package catalog reads the mod repository: one subdirectory per mod, each
// with a mod.json descriptor next to the replacement files and XML fragments
// it references.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"modroller/internal/domain"
)

// DescriptorFile is the descriptor filename expected in every mod directory.
const DescriptorFile = "mod.json"

// Scan walks repoDir and returns the available mods, sorted by directory
// name. Entries that are not directories, lack a mod.json, or whose
// descriptor is missing a name or description are skipped silently; a
// descriptor that exists but fails to parse is an error so a broken mod
// package does not vanish without a trace.
func Scan(repoDir string) ([]domain.Mod, error) {
	entries, err := os.ReadDir(repoDir)
	if err != nil {
		return nil, fmt.Errorf("reading mod repository: %w", err)
	}

	var mods []domain.Mod
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		modPath := filepath.Join(repoDir, entry.Name())
		desc, err := ReadDescriptor(modPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("mod %s: %w", entry.Name(), err)
		}
		if !desc.Valid() {
			continue
		}

		mods = append(mods, domain.Mod{
			DirName:    entry.Name(),
			Path:       modPath,
			Descriptor: *desc,
		})
	}

	sort.Slice(mods, func(i, j int) bool { return mods[i].DirName < mods[j].DirName })
	return mods, nil
}

// Find returns the mod with the given directory name.
func Find(repoDir, dirName string) (*domain.Mod, error) {
	mods, err := Scan(repoDir)
	if err != nil {
		return nil, err
	}
	for i := range mods {
		if mods[i].DirName == dirName {
			return &mods[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrModNotFound, dirName)
}

// ReadDescriptor parses the mod.json inside modPath.
func ReadDescriptor(modPath string) (*domain.Descriptor, error) {
	data, err := os.ReadFile(filepath.Join(modPath, DescriptorFile))
	if err != nil {
		return nil, err
	}

	var desc domain.Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", DescriptorFile, err)
	}
	return &desc, nil
}
