package menu

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/feltlab/residue/internal/apps"
	"github.com/feltlab/residue/internal/config"
	"github.com/feltlab/residue/internal/gate"
	"github.com/feltlab/residue/internal/runner"
	"github.com/feltlab/residue/internal/ui"
)

// ─── View states ─────────────────────────────────────────────────────────────

type viewState int

const (
	viewMenu viewState = iota
	viewConfirmClean
	viewConfirmRegistry
	viewRunning
	viewResult
	viewApps
)

// menuItems are the main menu entries, in display order.
var menuItems = []string{
	"Run cleanup",
	"Dry-run preview",
	"Leftover registry entries",
	"Quit",
}

// ─── Messages ────────────────────────────────────────────────────────────────

type runDoneMsg struct {
	report *runner.Report
	output string
}

type appsDoneMsg struct {
	entries []apps.Entry
	err     error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// Model is the bubbletea Model for the interactive main menu.
type Model struct {
	profile *config.Profile

	view   viewState
	cursor int
	width  int

	spinner spinner.Model

	dryRun          bool
	includeRegistry bool

	report  *runner.Report
	output  string
	entries []apps.Entry
	err     error

	quitting bool
}

// New creates the menu model for the given cleanup profile.
func New(profile *config.Profile) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.SelectStyle
	return Model{
		profile: profile,
		spinner: sp,
		width:   80,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case runDoneMsg:
		m.report = msg.report
		m.output = msg.output
		m.view = viewResult
		return m, nil

	case appsDoneMsg:
		m.entries = msg.entries
		m.err = msg.err
		m.view = viewApps
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.view {

	case viewMenu:
		switch key {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
		case "enter":
			return m.selectItem()
		}

	case viewConfirmClean:
		switch key {
		case "y":
			if len(m.profile.RegistryKeys) > 0 {
				m.view = viewConfirmRegistry
				return m, nil
			}
			m.includeRegistry = false
			return m.startRun()
		case "n", "esc", "q":
			// Anything but an explicit yes declines.
			m.view = viewMenu
		}

	case viewConfirmRegistry:
		switch key {
		case "y":
			m.includeRegistry = true
			return m.startRun()
		case "n", "esc", "q":
			m.includeRegistry = false
			return m.startRun()
		}

	case viewResult, viewApps:
		switch key {
		case "q", "esc", "enter":
			m.view = viewMenu
			m.report = nil
			m.output = ""
			m.entries = nil
			m.err = nil
		}
	}

	return m, nil
}

func (m Model) selectItem() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case 0: // Run cleanup
		m.dryRun = false
		m.view = viewConfirmClean
		return m, nil
	case 1: // Dry-run preview
		m.dryRun = true
		m.includeRegistry = true
		return m.startRun()
	case 2: // Leftover registry entries
		m.view = viewRunning
		return m, tea.Batch(m.spinner.Tick, m.listApps())
	case 3: // Quit
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) startRun() (tea.Model, tea.Cmd) {
	m.view = viewRunning
	return m, tea.Batch(m.spinner.Tick, m.runCleanup())
}

// runCleanup executes the pipeline in a tea command. The gates were already
// answered in the TUI, so the runner's own gate is pre-confirmed.
func (m Model) runCleanup() tea.Cmd {
	profile := m.profile
	dryRun := m.dryRun
	skipRegistry := !m.includeRegistry
	return func() tea.Msg {
		var buf bytes.Buffer
		g := gate.New(strings.NewReader(""), &buf)
		g.AssumeYes = true

		r := &runner.Runner{
			Profile:      profile,
			Gate:         g,
			Out:          &buf,
			DryRun:       dryRun,
			SkipRegistry: skipRegistry,
		}
		report := r.Run()
		return runDoneMsg{report: report, output: buf.String()}
	}
}

func (m Model) listApps() tea.Cmd {
	pattern := m.profile.ProcessPattern
	if pattern == "" {
		pattern = m.profile.Name
	}
	return func() tea.Msg {
		entries, err := apps.List(pattern, false)
		return appsDoneMsg{entries: entries, err: err}
	}
}

// Run starts the interactive menu and blocks until the operator quits.
func Run(profile *config.Profile) error {
	_, err := tea.NewProgram(New(profile)).Run()
	if err != nil {
		return fmt.Errorf("interactive menu: %w", err)
	}
	return nil
}
