package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"modroller/internal/catalog"
	"modroller/internal/domain"

	"github.com/google/uuid"
)

// ImportResult contains the outcome of importing a mod archive
type ImportResult struct {
	DirName string // Directory created under the mod repository
	Name    string // Display name from the descriptor
}

// Importer unpacks zip-packaged mods into the mod repository. The archive
// must contain a mod.json, either at its top level or inside a single
// top-level directory.
type Importer struct {
	repoDir   string
	extractor *Extractor
}

// NewImporter creates a new Importer
func NewImporter(repoDir string) *Importer {
	return &Importer{
		repoDir:   repoDir,
		extractor: NewExtractor(),
	}
}

var dirNameSanitizer = regexp.MustCompile(`[^a-z0-9_-]+`)

// Import extracts the archive into the mod repository and returns the
// resulting catalog directory name.
func (i *Importer) Import(archivePath string) (result *ImportResult, err error) {
	if _, err := os.Stat(archivePath); err != nil {
		return nil, fmt.Errorf("archive not found: %w", err)
	}

	// Stage inside the repository so the final step is a rename on the
	// same filesystem.
	staging := filepath.Join(i.repoDir, ".import-"+uuid.NewString()[:8])
	defer os.RemoveAll(staging)

	if err := i.extractor.Extract(archivePath, staging); err != nil {
		return nil, err
	}

	modRoot, desc, err := locateDescriptor(staging)
	if err != nil {
		return nil, err
	}
	if !desc.Valid() {
		return nil, fmt.Errorf("descriptor in %s is missing a name or description", filepath.Base(archivePath))
	}

	dirName := i.dirNameFor(modRoot, staging, archivePath)
	dest := filepath.Join(i.repoDir, dirName)
	if _, err := os.Stat(dest); err == nil {
		return nil, fmt.Errorf("mod directory already exists: %s", dirName)
	}

	if err := os.Rename(modRoot, dest); err != nil {
		return nil, fmt.Errorf("moving mod into repository: %w", err)
	}

	return &ImportResult{DirName: dirName, Name: desc.Name}, nil
}

// dirNameFor picks the repository directory name: the archive's own
// top-level directory when it has one, otherwise a name derived from the
// archive filename.
func (i *Importer) dirNameFor(modRoot, staging, archivePath string) string {
	if modRoot != staging {
		return filepath.Base(modRoot)
	}

	base := strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
	name := dirNameSanitizer.ReplaceAllString(strings.ToLower(base), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "imported-" + uuid.NewString()[:8]
	}
	return name
}

// locateDescriptor finds the directory holding mod.json: the extraction root
// itself, or a single top-level directory inside it.
func locateDescriptor(staging string) (string, *domain.Descriptor, error) {
	if desc, err := catalog.ReadDescriptor(staging); err == nil {
		return staging, desc, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", nil, err
	}

	entries, err := os.ReadDir(staging)
	if err != nil {
		return "", nil, fmt.Errorf("reading extracted archive: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	if len(dirs) == 1 {
		modRoot := filepath.Join(staging, dirs[0])
		desc, err := catalog.ReadDescriptor(modRoot)
		if err == nil {
			return modRoot, desc, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, err
		}
	}

	return "", nil, domain.ErrNoDescriptor
}
