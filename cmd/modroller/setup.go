package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Save game and repository paths to the config file",
	Long: `Persist the --game, --repo and --data flags so later invocations
do not need them.

Examples:
  modroller setup --game ~/games/bb2 --repo ~/bb2-mods`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir, err := defaultConfigDir()
	if err != nil {
		return err
	}
	if err := cfg.Save(dir); err != nil {
		return err
	}

	fmt.Printf("%s Config written to %s\n", colorGreen("✓"), dir)
	fmt.Printf("  Game:       %s\n", cfg.GameDir)
	fmt.Printf("  Repository: %s\n", cfg.ModRepoDir)
	fmt.Printf("  Data root:  %s\n", cfg.DataRoot())
	return nil
}
