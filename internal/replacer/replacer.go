// Package replacer installs and reverts the plain file replacements a mod
// declares. Every target is handed to the backup store before it is
// overwritten, so the pre-mod original can always be restored.
package replacer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"modroller/internal/backup"
	"modroller/internal/domain"
)

// Replacer copies mod files over the game's data tree and back.
type Replacer struct {
	dataRoot string
	backups  *backup.Store
}

// New creates a replacer targeting dataRoot.
func New(dataRoot string, backups *backup.Store) *Replacer {
	return &Replacer{dataRoot: dataRoot, backups: backups}
}

// TargetPath returns the data-tree location for a replacement entry.
func (r *Replacer) TargetPath(relDir, filename string) string {
	return filepath.Join(r.dataRoot, relDir, filename)
}

// Install copies modDir/filename over dataRoot/relDir/filename, backing up
// the original first. A missing source file means the mod package is
// malformed and is fatal.
func (r *Replacer) Install(modDir, filename, relDir string) error {
	src := filepath.Join(modDir, filename)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("mod file %s: %w", src, err)
	}

	target := r.TargetPath(relDir, filename)
	if _, err := r.backups.Ensure(target, relDir, filename); err != nil {
		return fmt.Errorf("backing up %s: %w", target, err)
	}

	if err := copyFile(src, target); err != nil {
		return fmt.Errorf("replacing %s: %w", target, err)
	}
	return nil
}

// Uninstall copies the backed-up original over dataRoot/relDir/filename.
// A missing backup is recoverable: the entry is skipped and reported as a
// warning, since the file may never have had a stock counterpart or the user
// may have cleared backups by hand.
func (r *Replacer) Uninstall(filename, relDir string) (*domain.Warning, error) {
	backupFile := r.backups.Path(relDir, filename)
	if _, err := os.Stat(backupFile); err != nil {
		return &domain.Warning{
			Step:    "file",
			Path:    r.TargetPath(relDir, filename),
			Message: "no backup found, skipping",
		}, nil
	}

	target := r.TargetPath(relDir, filename)
	if err := copyFile(backupFile, target); err != nil {
		return nil, fmt.Errorf("restoring %s: %w", target, err)
	}
	return nil, nil
}

// copyFile copies src to dst, creating parent directories and overwriting
// any existing content.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating destination dir: %w", err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("copying file: %w", err)
	}

	return nil
}
