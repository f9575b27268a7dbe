package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"modroller/internal/backup"
	"modroller/internal/domain"
	"modroller/internal/patcher"
	"modroller/internal/replacer"
	"modroller/internal/storage/db"
	"modroller/internal/storage/state"

	"github.com/charmbracelet/log"
)

// Installer applies and reverts a mod's full set of changes: plain file
// replacements first, then XML patches, each category in sorted entry order.
//
// There is no transaction across a mod: when a step fails, the steps already
// applied stay applied and the error reports where it stopped. The backup
// store guarantees pristine originals survive, so a later uninstall can still
// revert whatever did succeed.
type Installer struct {
	dataRoot string
	backups  *backup.Store
	files    *replacer.Replacer
	xml      *patcher.Patcher
	record   *state.Record
	db       *db.DB // Optional: enables touched-file tracking for conflict hints
	log      *log.Logger
}

// NewInstaller creates a new installer.
// The database parameter is optional - if nil, file tracking is disabled.
func NewInstaller(dataRoot string, backups *backup.Store, record *state.Record, database *db.DB, logger *log.Logger) *Installer {
	return &Installer{
		dataRoot: dataRoot,
		backups:  backups,
		files:    replacer.New(dataRoot, backups),
		xml:      patcher.New(),
		record:   record,
		db:       database,
		log:      logger,
	}
}

// Install applies every change the mod declares and records it as installed.
func (i *Installer) Install(mod *domain.Mod) error {
	i.log.Info("installing", "mod", mod.Name)

	for _, filename := range sortedKeys(mod.Files) {
		relDir := mod.Files[filename]
		i.log.Info("replacing file", "path", filepath.Join(relDir, filename))

		if err := i.files.Install(mod.Path, filename, relDir); err != nil {
			return fmt.Errorf("installing %s: %w", mod.Name, err)
		}
		if err := i.track(mod.DirName, filepath.Join(relDir, filename), db.KindFile); err != nil {
			return err
		}
	}

	for _, xmlRel := range sortedXMLKeys(mod.XML) {
		target := filepath.Join(i.dataRoot, xmlRel)
		i.log.Info("patching xml", "path", xmlRel)

		// Install requires its prerequisites: a missing patch target means
		// the mod is malformed or targets a different game-data version.
		if _, err := os.Stat(target); err != nil {
			return fmt.Errorf("installing %s: patch target %s: %w", mod.Name, target, err)
		}

		relDir, filename := filepath.Split(xmlRel)
		if _, err := i.backups.Ensure(target, relDir, filename); err != nil {
			return fmt.Errorf("installing %s: backing up %s: %w", mod.Name, target, err)
		}

		if err := i.xml.Apply(target, mod.Path, mod.XML[xmlRel]); err != nil {
			return fmt.Errorf("installing %s: %w", mod.Name, err)
		}
		if err := i.track(mod.DirName, xmlRel, db.KindXML); err != nil {
			return err
		}
	}

	if err := i.record.Add(mod.DirName); err != nil {
		return fmt.Errorf("recording install of %s: %w", mod.Name, err)
	}

	i.log.Info("installed", "mod", mod.Name)
	return nil
}

// Uninstall reverts every change the mod declares and removes it from the
// installed record. Missing backups are tolerated per entry: the entry is
// skipped with a warning rather than aborting, since the file may have been
// added fresh by the mod or the user may have cleared backups by hand.
// Mod-added files without a backup are left in place.
func (i *Installer) Uninstall(mod *domain.Mod) ([]domain.Warning, error) {
	i.log.Info("uninstalling", "mod", mod.Name)

	var warnings []domain.Warning

	for _, filename := range sortedKeys(mod.Files) {
		relDir := mod.Files[filename]
		i.log.Info("restoring file", "path", filepath.Join(relDir, filename))

		warn, err := i.files.Uninstall(filename, relDir)
		if err != nil {
			return warnings, fmt.Errorf("uninstalling %s: %w", mod.Name, err)
		}
		if warn != nil {
			i.log.Warn(warn.Message, "path", warn.Path)
			warnings = append(warnings, *warn)
		}
	}

	for _, xmlRel := range sortedXMLKeys(mod.XML) {
		target := filepath.Join(i.dataRoot, xmlRel)
		relDir, filename := filepath.Split(xmlRel)

		if !i.backups.Exists(relDir, filename) {
			warn := domain.Warning{Step: "xml", Path: target, Message: "no backup found, skipping"}
			i.log.Warn(warn.Message, "path", warn.Path)
			warnings = append(warnings, warn)
			continue
		}

		i.log.Info("reverting xml", "path", xmlRel)

		selectors := sortedKeys(mod.XML[xmlRel])
		if err := i.xml.Remove(target, i.backups.Path(relDir, filename), selectors); err != nil {
			return warnings, fmt.Errorf("uninstalling %s: %w", mod.Name, err)
		}
	}

	if i.db != nil {
		if err := i.db.DeleteTouchedFiles(mod.DirName); err != nil {
			return warnings, fmt.Errorf("removing file tracking: %w", err)
		}
	}

	if err := i.record.Remove(mod.DirName); err != nil {
		return warnings, fmt.Errorf("recording uninstall of %s: %w", mod.Name, err)
	}

	i.log.Info("uninstalled", "mod", mod.Name)
	return warnings, nil
}

func (i *Installer) track(modDir, relPath, kind string) error {
	if i.db == nil {
		return nil
	}
	if err := i.db.SaveTouchedFile(modDir, relPath, kind); err != nil {
		return fmt.Errorf("tracking touched file %s: %w", relPath, err)
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

func sortedXMLKeys(m map[string]map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
