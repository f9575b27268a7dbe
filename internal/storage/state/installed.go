// Package state persists the installed-mods record: the set of mod directory
// names currently applied to the game installation. The record is read in
// full and rewritten in full on every mutation.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// Record is the set of installed mod directory names backed by a JSON file.
type Record struct {
	path string
	mods map[string]struct{}
}

// Load reads the record at path. A missing file yields an empty record.
func Load(path string) (*Record, error) {
	r := &Record{path: path, mods: make(map[string]struct{})}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r, nil
		}
		return nil, fmt.Errorf("reading installed mods: %w", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parsing installed mods: %w", err)
	}
	for _, name := range names {
		r.mods[name] = struct{}{}
	}
	return r, nil
}

// Contains reports whether dirName is recorded as installed.
func (r *Record) Contains(dirName string) bool {
	_, ok := r.mods[dirName]
	return ok
}

// Names returns the installed mod directory names, sorted.
func (r *Record) Names() []string {
	names := make([]string, 0, len(r.mods))
	for name := range r.mods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add records dirName as installed and persists immediately.
func (r *Record) Add(dirName string) error {
	r.mods[dirName] = struct{}{}
	return r.save()
}

// Remove drops dirName from the record and persists immediately.
func (r *Record) Remove(dirName string) error {
	delete(r.mods, dirName)
	return r.save()
}

func (r *Record) save() error {
	data, err := json.Marshal(r.Names())
	if err != nil {
		return fmt.Errorf("marshaling installed mods: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("writing installed mods: %w", err)
	}
	return nil
}
