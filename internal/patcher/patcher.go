// Package patcher performs structural replacement of XML elements identified
// by path selectors, and the exact inverse for rollback.
//
// Elements have no stable identity, so rollback pairs the backup document's
// matches with the current document's matches purely by evaluation order
// under the same selector. That holds as long as only the content the mod
// touched has changed; if unrelated edits alter a selector's cardinality the
// rollback refuses to guess and fails instead.
package patcher

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/beevik/etree"

	"modroller/internal/domain"
)

// indentWidth matches the game's own XML formatting.
const indentWidth = 3

// Patcher applies and reverts XML snippet patches. It is stateless; every
// call parses the target from disk and writes it back in full.
type Patcher struct{}

// New creates a Patcher.
func New() *Patcher {
	return &Patcher{}
}

// Apply replaces every element matched by each selector in patches with the
// fragment loaded from modDir/fragmentPath. Selectors run in sorted order and
// each sees the mutations of the previous ones. A selector matching nothing
// is fatal and leaves the file on disk untouched: the target is only written
// after every selector has succeeded.
func (p *Patcher) Apply(xmlFile, modDir string, patches map[string]string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(xmlFile); err != nil {
		return fmt.Errorf("parsing %s: %w", xmlFile, err)
	}

	for _, selector := range sortedKeys(patches) {
		path, err := etree.CompilePath(selector)
		if err != nil {
			return fmt.Errorf("compiling selector %q: %w", selector, err)
		}

		fragment, err := loadFragment(modDir, patches[selector])
		if err != nil {
			return err
		}

		matches := doc.FindElementsPath(path)
		if len(matches) == 0 {
			return fmt.Errorf("selector %q matched nothing in %s: %w", selector, xmlFile, domain.ErrNoMatch)
		}
		for _, el := range matches {
			replaceElement(el, fragment.Copy())
		}
	}

	return writeDocument(doc, xmlFile)
}

// Remove restores the elements matched by each selector from the backed-up
// original document. Both documents must yield the same non-zero match count
// per selector; anything else means the correspondence between original and
// current elements is ambiguous and the rollback fails with the target file
// untouched. Matches are paired by position, not by content.
func (p *Patcher) Remove(targetFile, originalFile string, selectors []string) error {
	original := etree.NewDocument()
	if err := original.ReadFromFile(originalFile); err != nil {
		return fmt.Errorf("parsing %s: %w", originalFile, err)
	}
	target := etree.NewDocument()
	if err := target.ReadFromFile(targetFile); err != nil {
		return fmt.Errorf("parsing %s: %w", targetFile, err)
	}

	sorted := append([]string(nil), selectors...)
	sort.Strings(sorted)

	for _, selector := range sorted {
		path, err := etree.CompilePath(selector)
		if err != nil {
			return fmt.Errorf("compiling selector %q: %w", selector, err)
		}

		originalMatches := original.FindElementsPath(path)
		targetMatches := target.FindElementsPath(path)

		if len(originalMatches) == 0 {
			return fmt.Errorf("selector %q matched nothing in %s: %w", selector, originalFile, domain.ErrNoMatch)
		}
		if len(targetMatches) == 0 {
			return fmt.Errorf("selector %q matched nothing in %s: %w", selector, targetFile, domain.ErrNoMatch)
		}
		if len(originalMatches) != len(targetMatches) {
			return fmt.Errorf("selector %q matches %d elements in %s but %d in %s: %w",
				selector, len(originalMatches), originalFile, len(targetMatches), targetFile, domain.ErrMatchMismatch)
		}

		for i, el := range targetMatches {
			replaceElement(el, originalMatches[i].Copy())
		}
	}

	return writeDocument(target, targetFile)
}

// loadFragment parses a standalone XML element supplied by the mod.
func loadFragment(modDir, fragmentPath string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(filepath.Join(modDir, fragmentPath)); err != nil {
		return nil, fmt.Errorf("parsing fragment %s: %w", fragmentPath, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("fragment %s has no root element", fragmentPath)
	}
	return root, nil
}

// replaceElement swaps el for replacement at the same position in el's parent.
func replaceElement(el, replacement *etree.Element) {
	parent := el.Parent()
	if parent == nil {
		return
	}
	idx := el.Index()
	parent.RemoveChildAt(idx)
	parent.InsertChildAt(idx, replacement)
}

// writeDocument strips whitespace-only text nodes, re-indents and overwrites
// the file. Normalizing the formatting keeps diffs against the backup
// meaningful.
func writeDocument(doc *etree.Document, path string) error {
	doc.Indent(indentWidth)
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
