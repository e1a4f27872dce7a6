package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fraudlens/fraudlens/internal/simulator"
)

// Palette shared by every widget
var (
	ColorPrimary = lipgloss.Color("#a855f7") // Purple
	ColorSuccess = lipgloss.Color("#22c55e") // Green
	ColorWarning = lipgloss.Color("#f59e0b") // Amber
	ColorError   = lipgloss.Color("#ef4444") // Red
	ColorInfo    = lipgloss.Color("#3b82f6") // Blue
	ColorMuted   = lipgloss.Color("#6b7280") // Gray
	ColorBorder  = lipgloss.Color("#374151")
)

// Styles groups the lipgloss styles the view uses.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Panel     lipgloss.Style
	PanelHead lipgloss.Style
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Muted     lipgloss.Style
	Footer    lipgloss.Style
}

// NewStyles creates the default style set.
func NewStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1),
		Subtitle: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		PanelHead: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorInfo).
			MarginBottom(1),
		StatLabel: lipgloss.NewStyle().Foreground(ColorMuted),
		StatValue: lipgloss.NewStyle().Bold(true),
		Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
		Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
		Error:     lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Info:      lipgloss.NewStyle().Foreground(ColorInfo),
		Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
		Footer: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),
	}
}

// ForStatus colours a transaction status.
func (s Styles) ForStatus(st simulator.TxStatus) lipgloss.Style {
	switch st {
	case simulator.StatusBlocked:
		return s.Error
	case simulator.StatusFlagged:
		return s.Warning
	default:
		return s.Success
	}
}

// ForSeverity colours an alert severity.
func (s Styles) ForSeverity(sev simulator.Severity) lipgloss.Style {
	switch sev {
	case simulator.SeverityCritical:
		return s.Error
	case simulator.SeverityHigh:
		return s.Warning
	default:
		return s.Info
	}
}
