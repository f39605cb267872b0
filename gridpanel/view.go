package gridpanel

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	nt "workgrid/entity"
	"workgrid/style"
)

const (
	skeletonRows = 5
	emptyText    = "No rows"
)

// View renders the grid
func (pnl Panel) View() tea.View {
	return tea.NewView(pnl.Render())
}

// Render renders the grid with its selection bar below
func (pnl Panel) Render() string {

	spans := pnl.spans()
	focused, _ := pnl.focused()

	tbl := table.New()
	style.StyleTable(tbl)

	focusIdx := -1
	headers := make([]string, len(spans))
	for i, sp := range spans {
		headers[i] = pnl.heading(sp)
		if !sp.selector && sp.col.Id == focused.Id {
			focusIdx = i
		}
	}
	tbl.Headers(headers...)

	rows := style.Rows{
		Active:   -1,
		Selected: map[int]bool{},
		FocusCol: focusIdx,
	}

	var below string
	switch {
	case pnl.grid.Loading():
		for range min(skeletonRows, max(pnl.PageSize(), 1)) {
			tbl.Row(skeleton(spans)...)
		}

	case len(pnl.grid.Rows()) == 0:
		if !pnl.grid.Props().Loading {
			below = style.MutedStyle.Render(pnl.empty)
		}

	default:
		last := min(pnl.offset+max(pnl.PageSize(), 1), len(pnl.grid.Rows()))
		for idx := pnl.offset; idx < last; idx++ {
			row, _ := pnl.grid.Row(idx)
			tbl.Row(pnl.cells(row, spans)...)

			if pnl.grid.Selected(row.Id) {
				rows.Selected[idx-pnl.offset] = true
			}
		}
		rows.Active = pnl.grid.ActiveRowIndex() - pnl.offset
	}

	tbl.StyleFunc(style.GridStyler(rows))

	if n := len(pnl.grid.SelectedIds()); n > 0 {
		below = style.BarStyle.Render(fmt.Sprintf(" %d selected · x deselect all · d delete ", n))
	}

	return lipgloss.JoinVertical(lipgloss.Left, tbl.Render(), below)
}

// WithEmpty sets the text shown in place of rows when there are none.
func (pnl Panel) WithEmpty(text string) Panel {
	if text != "" {
		pnl.empty = text
	}
	return pnl
}

// unexported

func (pnl Panel) heading(sp span) string {

	if sp.selector {
		box := "[ ]"
		switch {
		case pnl.grid.AllSelected():
			box = "[x]"
		case pnl.grid.SomeSelected():
			box = "[-]"
		}
		return fit(box, sp.width, nt.AlignCenter)
	}

	text := sp.col.Heading()

	sort := pnl.grid.Sort()
	if sort.Active() && sort.ColumnId == sp.col.Id {
		arrow := " ↑"
		if sort.Desc() {
			arrow = " ↓"
		}
		text += arrow
	}
	return fit(text, sp.width, sp.col.HeaderAlign)
}

func (pnl Panel) cells(row nt.Row, spans []span) []string {

	cells := make([]string, len(spans))
	for i, sp := range spans {
		if sp.selector {
			box := "[ ]"
			if pnl.grid.Selected(row.Id) {
				box = "[x]"
			}
			cells[i] = fit(box, sp.width, nt.AlignCenter)
			continue
		}
		cells[i] = fit(sp.col.Display(row), sp.width, sp.col.CellAlign)
	}
	return cells
}

func skeleton(spans []span) []string {

	cells := make([]string, len(spans))
	for i, sp := range spans {
		bar := strings.Repeat("░", max((sp.width-1)*3/4, 1))
		if sp.selector {
			bar = "░"
		}
		cells[i] = style.SkeletonStyle.Render(fit(bar, sp.width, sp.col.CellAlign))
	}
	return cells
}

// fit pads or truncates text to width, leaving a gap on the right.
func fit(text string, width int, align nt.Align) string {

	inner := max(width-1, 1)
	text = truncate(text, inner)

	pos := lipgloss.Left
	switch align {
	case nt.AlignCenter:
		pos = lipgloss.Center
	case nt.AlignEnd:
		pos = lipgloss.Right
	}

	return lipgloss.PlaceHorizontal(inner, pos, text) + " "
}

func truncate(in string, width int) string {

	in = strings.ReplaceAll(in, "\n", " ")
	if lipgloss.Width(in) <= width {
		return in
	}

	runes := []rune(in)
	if len(runes) > width-1 {
		runes = runes[:max(width-1, 0)]
	}
	ellipsis := style.MutedStyle.Render("…")
	return string(runes) + ellipsis
}
