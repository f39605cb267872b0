package style

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	BackgroundColor  = lipgloss.Color("234")                                 // Dark warm grey
	TableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Subtle warm grey border
	ActiveRowStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236")) // Keyboard focus
	SelectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("180")) // Warm sand text
	ActiveSelStyle   = SelectedStyle.Background(lipgloss.Color("236"))
	HeaderStyle      = lipgloss.NewStyle().Bold(true)
	FocusHeaderStyle = HeaderStyle.Underline(true)
	MutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("246")) // Warm muted grey text
	SkeletonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	BarStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("180")).Background(lipgloss.Color("235"))
	FooterStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ErrorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	UnStyle          = lipgloss.NewStyle()
)

// Rows says how each data row of a grid should look.
type Rows struct {
	Active   int
	Selected map[int]bool
	FocusCol int
}

// GridStyler returns a StyleFunc for data rows and the header.
func GridStyler(rows Rows) func(row, col int) lipgloss.Style {
	return func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			if col == rows.FocusCol {
				return FocusHeaderStyle
			}
			return HeaderStyle
		}

		active := row == rows.Active
		switch {
		case active && rows.Selected[row]:
			return ActiveSelStyle
		case active:
			return ActiveRowStyle
		case rows.Selected[row]:
			return SelectedStyle
		}
		return UnStyle
	}
}

// StyleTable applies consistent table styling for borders and separators
func StyleTable(tbl *table.Table) {
	tbl.Border(lipgloss.Border{
		Top:         "─", // Horizontal parts of separator
		Middle:      "─", // Between columns in separator
		MiddleLeft:  "─", // Left edge of separator
		MiddleRight: "─", // Right edge of separator
	}).
		BorderTop(false).    // Disable top border
		BorderBottom(false). // Disable bottom border
		BorderLeft(false).   // Disable left border
		BorderRight(false).  // Disable right border
		BorderColumn(false). // Disable column separators
		BorderStyle(TableBorderStyle)
}
