package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"modroller/internal/domain"

	"gopkg.in/yaml.v3"
)

// toolDir is the subdirectory of the game installation that holds the
// installed-mods record and the backup tree.
const toolDir = "Modroller"

// Config holds the paths everything else operates on.
type Config struct {
	GameDir    string `yaml:"game_dir"`     // Game installation directory
	ModRepoDir string `yaml:"mod_repo_dir"` // Directory holding one subdirectory per mod
	DataDir    string `yaml:"data_dir"`     // Optional override; defaults to <game_dir>/Data
}

// Load reads configuration from the given directory. A missing file returns
// an empty config; flags may still fill in the paths.
func Load(configDir string) (*Config, error) {
	cfg := &Config{}

	configPath := filepath.Join(configDir, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the given directory.
func (c *Config) Save(configDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks that the paths required for install operations are set and
// point at existing directories.
func (c *Config) Validate() error {
	if c.GameDir == "" {
		return fmt.Errorf("%w: game directory not set", domain.ErrInvalidConfig)
	}
	if c.ModRepoDir == "" {
		return fmt.Errorf("%w: mod repository directory not set", domain.ErrInvalidConfig)
	}
	if _, err := os.Stat(c.GameDir); err != nil {
		return fmt.Errorf("%w: game directory: %v", domain.ErrInvalidConfig, err)
	}
	if _, err := os.Stat(c.ModRepoDir); err != nil {
		return fmt.Errorf("%w: mod repository: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// DataRoot returns the game data directory mods target.
func (c *Config) DataRoot() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(c.GameDir, "Data")
}

// ToolDir returns <game_dir>/Modroller, creating it if needed.
func (c *Config) ToolDir() (string, error) {
	dir := filepath.Join(c.GameDir, toolDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating %s dir: %w", toolDir, err)
	}
	return dir, nil
}

// BackupDir returns <game_dir>/Modroller/backup, creating it if needed.
func (c *Config) BackupDir() (string, error) {
	dir, err := c.ToolDir()
	if err != nil {
		return "", err
	}
	backupDir := filepath.Join(dir, "backup")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}
	return backupDir, nil
}

// InstalledModsPath returns the path of the installed-mods record.
func (c *Config) InstalledModsPath() (string, error) {
	dir, err := c.ToolDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "installed.json"), nil
}

// DBPath returns the path of the touched-files tracking database.
func (c *Config) DBPath() (string, error) {
	dir, err := c.ToolDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "modroller.db"), nil
}
