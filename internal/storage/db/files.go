package db

import (
	"fmt"
	"strings"
)

// File kinds recorded in touched_files.
const (
	KindFile = "file" // plain file replacement
	KindXML  = "xml"  // XML snippet patch target
)

// TouchedFile is one data-tree path a mod modified.
type TouchedFile struct {
	RelativePath string
	Kind         string
}

// Overlap reports that a path is touched by more than one installed mod.
type Overlap struct {
	RelativePath string
	OtherMod     string
}

// SaveTouchedFile records that modDir modified relativePath.
// Uses upsert so reinstalling a mod refreshes the timestamp.
func (d *DB) SaveTouchedFile(modDir, relativePath, kind string) error {
	_, err := d.Exec(`
		INSERT INTO touched_files (mod_dir, relative_path, kind)
		VALUES (?, ?, ?)
		ON CONFLICT(mod_dir, relative_path) DO UPDATE SET
			kind = excluded.kind,
			touched_at = CURRENT_TIMESTAMP
	`, modDir, relativePath, kind)
	if err != nil {
		return fmt.Errorf("saving touched file: %w", err)
	}
	return nil
}

// DeleteTouchedFiles removes all records for a mod.
func (d *DB) DeleteTouchedFiles(modDir string) error {
	_, err := d.Exec(`DELETE FROM touched_files WHERE mod_dir = ?`, modDir)
	if err != nil {
		return fmt.Errorf("deleting touched files: %w", err)
	}
	return nil
}

// TouchedFilesForMod returns all paths a mod modified, sorted by path.
func (d *DB) TouchedFilesForMod(modDir string) ([]TouchedFile, error) {
	rows, err := d.Query(`
		SELECT relative_path, kind FROM touched_files
		WHERE mod_dir = ?
		ORDER BY relative_path
	`, modDir)
	if err != nil {
		return nil, fmt.Errorf("querying touched files: %w", err)
	}
	defer rows.Close()

	var files []TouchedFile
	for rows.Next() {
		var f TouchedFile
		if err := rows.Scan(&f.RelativePath, &f.Kind); err != nil {
			return nil, fmt.Errorf("scanning touched file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Overlapping returns the given paths that another mod has also touched.
// Used for conflict hints in status output.
func (d *DB) Overlapping(modDir string, paths []string) ([]Overlap, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	// Build placeholders for IN clause
	placeholders := make([]string, len(paths))
	args := make([]interface{}, 0, len(paths)+1)
	args = append(args, modDir)
	for i, p := range paths {
		placeholders[i] = "?"
		args = append(args, p)
	}

	query := fmt.Sprintf(`
		SELECT relative_path, mod_dir FROM touched_files
		WHERE mod_dir != ? AND relative_path IN (%s)
		ORDER BY relative_path, mod_dir
	`, strings.Join(placeholders, ","))

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("checking overlaps: %w", err)
	}
	defer rows.Close()

	var overlaps []Overlap
	for rows.Next() {
		var o Overlap
		if err := rows.Scan(&o.RelativePath, &o.OtherMod); err != nil {
			return nil, fmt.Errorf("scanning overlap: %w", err)
		}
		overlaps = append(overlaps, o)
	}
	return overlaps, rows.Err()
}
