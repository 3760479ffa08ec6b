package menu

import (
	"fmt"
	"strings"

	"github.com/feltlab/residue/internal/ui"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString("\n  ")
	s.WriteString(ui.TitleStyle.Render("residue"))
	s.WriteString(ui.MutedStyle.Render("  ·  " + m.profile.Name + " leftovers"))
	s.WriteString("\n\n")

	switch m.view {
	case viewMenu:
		s.WriteString(m.renderMenu())
	case viewConfirmClean:
		s.WriteString(fmt.Sprintf("  Have you already uninstalled %s?\n", m.profile.Name))
		s.WriteString("  Continue removing leftovers?  ")
		s.WriteString(ui.MutedStyle.Render("y confirm · n back"))
		s.WriteString("\n")
	case viewConfirmRegistry:
		s.WriteString("  Also remove registry keys?\n")
		for _, key := range m.profile.RegistryKeys {
			s.WriteString(ui.MutedStyle.Render("    " + key))
			s.WriteString("\n")
		}
		s.WriteString("  ")
		s.WriteString(ui.MutedStyle.Render("y include · n skip registry"))
		s.WriteString("\n")
	case viewRunning:
		s.WriteString("  " + m.spinner.View() + " working…\n")
	case viewResult:
		s.WriteString(m.renderResult())
	case viewApps:
		s.WriteString(m.renderApps())
	}

	s.WriteString("\n")
	s.WriteString(ui.MutedStyle.Render(m.footer()))
	s.WriteString("\n")
	return s.String()
}

func (m Model) renderMenu() string {
	var s strings.Builder
	for i, item := range menuItems {
		if i == m.cursor {
			s.WriteString(ui.SelectStyle.Render("  > " + item))
		} else {
			s.WriteString("    " + item)
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) renderResult() string {
	var s strings.Builder
	for _, line := range strings.Split(strings.TrimRight(m.output, "\n"), "\n") {
		s.WriteString("  " + line + "\n")
	}
	if m.report != nil && m.report.RegistryWarning() {
		s.WriteString("\n  " + ui.WarnStyle.Render("Some registry keys need manual removal.") + "\n")
	}
	return s.String()
}

func (m Model) renderApps() string {
	if m.err != nil {
		return "  " + ui.BadStyle.Render("registry scan failed: "+m.err.Error()) + "\n"
	}
	if len(m.entries) == 0 {
		return "  " + ui.GoodStyle.Render("No leftover uninstall entries found.") + "\n"
	}

	var s strings.Builder
	s.WriteString(fmt.Sprintf("  %d leftover uninstall entries:\n\n", len(m.entries)))
	for _, e := range m.entries {
		s.WriteString("    " + e.Name)
		if e.Version != "" {
			s.WriteString(ui.MutedStyle.Render("  " + e.Version))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) footer() string {
	switch m.view {
	case viewMenu:
		return "  ↑/↓ move · enter select · q quit"
	case viewRunning:
		return ""
	case viewResult, viewApps:
		return "  enter back"
	default:
		return ""
	}
}
