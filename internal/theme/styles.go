package theme

import "github.com/charmbracelet/lipgloss"

// Table styles used by --format table
var (
	TableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorNormal).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Padding(0, 1)

	TableIDStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Padding(0, 1)
)
