package main

import (
	"fmt"
	"os"
	"path/filepath"

	"modroller/internal/core"
	"modroller/internal/logger"
	"modroller/internal/storage/config"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	configDir  string
	gameDir    string
	modRepoDir string
	dataDir    string
	verbose    bool
	noColor    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modroller",
	Short: "Modroller - mod manager for Blood Bowl 2",
	Long: `modroller applies and reverts mods against a game installation.

Mods live as subdirectories of a local mod repository, each with a mod.json
describing file replacements and XML patches. Originals are preserved under
<game>/Modroller/backup before any file is touched.

Use subcommands for operations. Run 'modroller --help' for available commands.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/modroller)")
	rootCmd.PersistentFlags().StringVarP(&gameDir, "game", "g", "", "game installation directory")
	rootCmd.PersistentFlags().StringVarP(&modRepoDir, "repo", "r", "", "mod repository directory")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "game data directory (default: <game>/Data)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// colorEnabled returns true if colored output should be used (respects --no-color and NO_COLOR env).
// NO_COLOR: if set (any value), color is disabled per https://no-color.org
func colorEnabled() bool {
	if noColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return true
}

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

// colorGreen returns s with green ANSI when color is enabled, otherwise s.
func colorGreen(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiGreen + s + ansiReset
}

// colorRed returns s with red ANSI when color is enabled, otherwise s.
func colorRed(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiRed + s + ansiReset
}

// colorYellow returns s with yellow ANSI when color is enabled, otherwise s.
func colorYellow(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiYellow + s + ansiReset
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorRed("Error:"), err)
		os.Exit(1)
	}
}

// defaultConfigDir returns ~/.config/modroller.
func defaultConfigDir() (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "modroller"), nil
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	dir, err := defaultConfigDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	if gameDir != "" {
		cfg.GameDir = gameDir
	}
	if modRepoDir != "" {
		cfg.ModRepoDir = modRepoDir
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	return cfg, nil
}

// initService creates and initializes the core service
func initService() (*core.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return core.NewService(cfg, logger.New(os.Stderr, verbose))
}
