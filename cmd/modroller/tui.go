package main

import (
	"fmt"

	"modroller/internal/core"
	"modroller/internal/logger"
	"modroller/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive mod browser",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Narration goes to the TUI's log pane instead of stderr.
	logBuf := tui.NewLogBuffer()
	service, err := core.NewService(cfg, logger.New(logBuf, verbose))
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	p := tea.NewProgram(tui.NewApp(service, logBuf), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
