package core

import (
	"fmt"
	"sync"

	"modroller/internal/backup"
	"modroller/internal/catalog"
	"modroller/internal/domain"
	"modroller/internal/storage/config"
	"modroller/internal/storage/db"
	"modroller/internal/storage/state"

	"github.com/charmbracelet/log"
)

// ModStatus pairs a catalog entry with its install state.
type ModStatus struct {
	domain.Mod
	Installed bool
}

// Service is the main orchestrator for mod management operations. It owns
// the installed-mods record and the tracking database, and serializes
// install/uninstall calls: one operation runs against the game tree at a
// time, which is all the underlying layers are designed for.
type Service struct {
	config    *config.Config
	record    *state.Record
	db        *db.DB
	installer *Installer
	importer  *Importer
	log       *log.Logger

	mu sync.Mutex
}

// NewService creates a new core service instance.
func NewService(cfg *config.Config, logger *log.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	recordPath, err := cfg.InstalledModsPath()
	if err != nil {
		return nil, err
	}
	record, err := state.Load(recordPath)
	if err != nil {
		return nil, fmt.Errorf("loading installed mods: %w", err)
	}

	backupDir, err := cfg.BackupDir()
	if err != nil {
		return nil, err
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, err
	}
	database, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	backups := backup.NewStore(backupDir)
	return &Service{
		config:    cfg,
		record:    record,
		db:        database,
		installer: NewInstaller(cfg.DataRoot(), backups, record, database, logger),
		importer:  NewImporter(cfg.ModRepoDir),
		log:       logger,
	}, nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ListMods returns the catalog with install state, sorted by directory name.
func (s *Service) ListMods() ([]ModStatus, error) {
	mods, err := catalog.Scan(s.config.ModRepoDir)
	if err != nil {
		return nil, err
	}

	statuses := make([]ModStatus, 0, len(mods))
	for _, mod := range mods {
		statuses = append(statuses, ModStatus{
			Mod:       mod,
			Installed: s.record.Contains(mod.DirName),
		})
	}
	return statuses, nil
}

// InstalledMods returns the directory names recorded as installed.
func (s *Service) InstalledMods() []string {
	return s.record.Names()
}

// Install applies the named mod to the game installation.
func (s *Service) Install(dirName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record.Contains(dirName) {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyInstalled, dirName)
	}

	mod, err := catalog.Find(s.config.ModRepoDir, dirName)
	if err != nil {
		return err
	}
	return s.installer.Install(mod)
}

// Uninstall reverts the named mod. Recoverable per-entry problems are
// returned as warnings alongside a nil error.
func (s *Service) Uninstall(dirName string) ([]domain.Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.record.Contains(dirName) {
		return nil, fmt.Errorf("%w: %s", domain.ErrModNotInstalled, dirName)
	}

	mod, err := catalog.Find(s.config.ModRepoDir, dirName)
	if err != nil {
		return nil, err
	}
	return s.installer.Uninstall(mod)
}

// Overlaps returns the data-tree paths the named mod shares with other
// installed mods, per the tracking database.
func (s *Service) Overlaps(dirName string) ([]db.Overlap, error) {
	touched, err := s.db.TouchedFilesForMod(dirName)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(touched))
	for _, f := range touched {
		paths = append(paths, f.RelativePath)
	}
	return s.db.Overlapping(dirName, paths)
}

// ImportArchive extracts a zip-packaged mod into the mod repository.
func (s *Service) ImportArchive(archivePath string) (*ImportResult, error) {
	return s.importer.Import(archivePath)
}
