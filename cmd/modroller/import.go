package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <archive.zip>",
	Short: "Import a mod archive into the repository",
	Long: `Extract a zip-packaged mod into the mod repository.

The archive must contain a mod.json, either at its top level or inside a
single top-level directory.

Examples:
  modroller import ~/Downloads/better-balls.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	result, err := service.ImportArchive(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s Imported %q as %s\n", colorGreen("✓"), result.Name, result.DirName)
	fmt.Printf("Install it with: modroller install %s\n", result.DirName)
	return nil
}
