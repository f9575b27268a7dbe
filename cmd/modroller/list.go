package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available mods",
	Long: `List every mod in the repository with its install state.

Examples:
  modroller list
  modroller list --repo ~/bb2-mods`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	mods, err := service.ListMods()
	if err != nil {
		return fmt.Errorf("scanning mod repository: %w", err)
	}

	if len(mods) == 0 {
		fmt.Println("No mods found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MOD\tNAME\tCATEGORY\tINSTALLED\tPREVIEW\tDESCRIPTION")
	fmt.Fprintln(w, "---\t----\t--------\t---------\t-------\t-----------")

	for _, mod := range mods {
		installed := "no"
		if mod.Installed {
			installed = colorGreen("yes")
		}
		preview := "-"
		if mod.PreviewImage != "" {
			preview = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			mod.DirName,
			truncate(mod.Name, 30),
			mod.CategoryOrDefault(),
			installed,
			preview,
			truncate(mod.Description, 50),
		)
	}
	w.Flush()

	if verbose {
		fmt.Printf("\nTotal: %d mod(s)\n", len(mods))
	}

	return nil
}
