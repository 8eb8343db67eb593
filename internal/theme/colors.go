package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - table headers
	ColorSecondary Color = "86" // Cyan - resource ids
)

// UI semantic colors
const (
	ColorMuted  Color = "241" // Gray - borders
	ColorNormal Color = "250" // Default text
)
