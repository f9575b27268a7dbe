package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show installed mods and conflicts",
	Long: `Show the mods currently applied to the game installation, along with
any data files that more than one installed mod has modified. Overlapping
mods still work, but uninstall order matters for the shared files.

Examples:
  modroller status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	installed := service.InstalledMods()
	if len(installed) == 0 {
		fmt.Println("No mods installed.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MOD\tSHARED FILES")
	fmt.Fprintln(w, "---\t------------")

	for _, dirName := range installed {
		overlaps, err := service.Overlaps(dirName)
		if err != nil {
			return fmt.Errorf("checking overlaps for %s: %w", dirName, err)
		}

		if len(overlaps) == 0 {
			fmt.Fprintf(w, "%s\t%s\n", dirName, "-")
			continue
		}
		for _, o := range overlaps {
			fmt.Fprintf(w, "%s\t%s\n", dirName, colorYellow(o.RelativePath+" (also "+o.OtherMod+")"))
		}
	}
	w.Flush()

	if verbose {
		fmt.Printf("\nTotal: %d mod(s) installed\n", len(installed))
	}

	return nil
}
