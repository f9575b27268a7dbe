package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <mod-dir>",
	Short: "Uninstall a mod",
	Long: `Revert a mod's changes by restoring the backed-up originals.

Entries whose backup is missing are skipped with a warning; files the mod
added fresh (with no stock counterpart) are left in place.

Examples:
  modroller uninstall better-balls`,
	Args: cobra.ExactArgs(1),
	RunE: runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	dirName := args[0]
	warnings, err := service.Uninstall(dirName)
	for _, warn := range warnings {
		fmt.Println(colorYellow("warning: " + warn.String()))
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s Uninstalled %s\n", colorGreen("✓"), dirName)
	return nil
}
