// Package tui is the interactive mod browser: a checkbox list of the catalog
// with a log pane narrating install and uninstall steps.
package tui

import (
	"fmt"

	"modroller/internal/core"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	nameStyle     = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	logPaneStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true)
	installedMark = "[x]"
	availableMark = "[ ]"
)

// modsRefreshedMsg carries a re-scanned catalog after an operation.
type modsRefreshedMsg struct {
	mods []core.ModStatus
	err  error
}

// App is the TUI application model.
type App struct {
	service *core.Service
	logBuf  *LogBuffer

	mods     []core.ModStatus
	selected int
	busy     bool
	err      error

	logPane viewport.Model
	width   int
	height  int
}

// NewApp creates the mod browser backed by service; narration written to
// logBuf shows up in the log pane.
func NewApp(service *core.Service, logBuf *LogBuffer) App {
	vp := viewport.New(78, 8)
	return App{
		service: service,
		logBuf:  logBuf,
		logPane: vp,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return a.refreshCmd()
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.logPane.Width = msg.Width - 2
		a.logPane.Height = logPaneHeight(msg.Height)
		return a, nil

	case modsRefreshedMsg:
		a.busy = false
		a.err = msg.err
		if msg.mods != nil {
			a.mods = msg.mods
			if a.selected >= len(a.mods) && len(a.mods) > 0 {
				a.selected = len(a.mods) - 1
			}
		}
		a.logPane.SetContent(a.logBuf.String())
		a.logPane.GotoBottom()
		return a, nil
	}

	var cmd tea.Cmd
	a.logPane, cmd = a.logPane.Update(msg)
	return a, cmd
}

func (a App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.selected > 0 {
			a.selected--
		}
		return a, nil

	case "down", "j":
		if a.selected < len(a.mods)-1 {
			a.selected++
		}
		return a, nil

	case "r":
		if !a.busy {
			a.busy = true
			return a, a.refreshCmd()
		}
		return a, nil

	case " ", "enter":
		if a.busy || len(a.mods) == 0 {
			return a, nil
		}
		a.busy = true
		return a, a.toggleCmd(a.mods[a.selected])
	}

	return a, nil
}

// toggleCmd installs or uninstalls the mod, then re-scans the catalog.
func (a App) toggleCmd(mod core.ModStatus) tea.Cmd {
	return func() tea.Msg {
		var err error
		if mod.Installed {
			_, err = a.service.Uninstall(mod.DirName)
		} else {
			err = a.service.Install(mod.DirName)
		}
		mods, listErr := a.service.ListMods()
		if err == nil {
			err = listErr
		}
		return modsRefreshedMsg{mods: mods, err: err}
	}
}

func (a App) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		mods, err := a.service.ListMods()
		return modsRefreshedMsg{mods: mods, err: err}
	}
}

// View implements tea.Model
func (a App) View() string {
	s := titleStyle.Render("Modroller") + "\n\n"

	if len(a.mods) == 0 {
		s += dimStyle.Render("No mods found in the repository.") + "\n"
	}

	for i, mod := range a.mods {
		mark := availableMark
		if mod.Installed {
			mark = installedMark
		}

		cursor := "  "
		line := fmt.Sprintf("%s %s — %s", mark, nameStyle.Render(mod.Name), mod.Description)
		if i == a.selected {
			cursor = cursorStyle.Render("> ")
		}
		s += cursor + line + "\n"
	}

	s += "\n"
	if a.err != nil {
		s += errorStyle.Render("Error: "+a.err.Error()) + "\n"
	}
	if a.busy {
		s += dimStyle.Render("Working...") + "\n"
	}

	s += logPaneStyle.Render(a.logPane.View()) + "\n"
	s += dimStyle.Render("space: install/uninstall • r: refresh • q: quit")
	return s
}

func logPaneHeight(total int) int {
	h := total / 3
	if h < 4 {
		h = 4
	}
	return h
}
