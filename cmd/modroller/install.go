package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <mod-dir>",
	Short: "Install a mod",
	Long: `Install a mod from the repository by its directory name.

Every file the mod replaces is backed up first; the pristine copy stays under
<game>/Modroller/backup until cleared by hand.

Examples:
  modroller install better-balls
  modroller install better-balls --game ~/games/bb2`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	dirName := args[0]
	if err := service.Install(dirName); err != nil {
		return err
	}

	fmt.Printf("%s Installed %s\n", colorGreen("✓"), dirName)
	return nil
}
