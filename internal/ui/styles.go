package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorGood    = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarn    = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorBad     = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// ─── Styles ──────────────────────────────────────────────────────────────────

var (
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	GoodStyle   = lipgloss.NewStyle().Foreground(ColorGood)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	BadStyle    = lipgloss.NewStyle().Foreground(ColorBad)
	SelectStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
)

// ─── Console helpers ─────────────────────────────────────────────────────────

// Printf writes a plain formatted line.
func Printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// Successf writes a green success line.
func Successf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, GoodStyle.Render(fmt.Sprintf(format, args...)))
}

// Warnf writes a yellow warning line.
func Warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, WarnStyle.Render(fmt.Sprintf(format, args...)))
}

// Mutedf writes a dim informational line.
func Mutedf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, MutedStyle.Render(fmt.Sprintf(format, args...)))
}
