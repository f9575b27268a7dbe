// Package backup preserves pristine copies of game files before they are
// modified. Backups mirror the data root's directory structure under the
// backup root and are written at most once per target: the copy taken the
// first time a path is ever touched is the one that survives, no matter how
// many mods overwrite the file afterwards. Backups are never deleted here.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store manages the backup tree rooted at a single directory.
type Store struct {
	root string
}

// NewStore creates a store writing under root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the backup root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the backup location for a file at relDir/filename under the
// data root.
func (s *Store) Path(relDir, filename string) string {
	return filepath.Join(s.root, relDir, filename)
}

// Exists reports whether a backup is present for relDir/filename.
func (s *Store) Exists(relDir, filename string) bool {
	_, err := os.Stat(s.Path(relDir, filename))
	return err == nil
}

// Ensure copies targetFile to the mirrored backup path unless a backup is
// already present. A second install must not clobber the pristine copy with
// an already-modded file, so an existing backup always wins. When targetFile
// does not exist either (a mod adding a brand-new file) there is nothing to
// preserve and Ensure is a no-op.
//
// Returns true when a new backup was written.
func (s *Store) Ensure(targetFile, relDir, filename string) (bool, error) {
	backupPath := s.Path(relDir, filename)

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	}

	src, err := os.Open(targetFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No stock counterpart; nothing to back up.
			return false, nil
		}
		return false, fmt.Errorf("opening target: %w", err)
	}
	defer src.Close()

	srcInfo, err := src.Stat()
	if err != nil {
		return false, fmt.Errorf("stat target: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(backupPath), 0755); err != nil {
		return false, fmt.Errorf("creating backup dir: %w", err)
	}

	// O_EXCL so a racing caller cannot overwrite a backup written between
	// the existence check above and this create.
	dst, err := os.OpenFile(backupPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("creating backup: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(backupPath)
		return false, fmt.Errorf("copying to backup: %w", err)
	}

	if err := dst.Close(); err != nil {
		return false, fmt.Errorf("closing backup: %w", err)
	}

	return true, nil
}
