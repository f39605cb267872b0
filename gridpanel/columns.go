package gridpanel

import (
	nt "workgrid/entity"
	"workgrid/grid"
)

const (
	// cellPixels converts column width hints to terminal cells.
	cellPixels = 8
	minCells   = 4
)

// span places a column horizontally within the panel.
type span struct {
	col      nt.Column
	x        int
	width    int
	selector bool
}

func (sp span) contains(x int) bool {
	return x >= sp.x && x < sp.x+sp.width
}

func cells(col nt.Column) int {

	width := col.Width
	if width <= 0 {
		width = grid.DefaultPinWidth
	}
	return max(width/cellPixels, minCells)
}

// visible returns the columns not hidden, in declaration order.
func visible(columns []nt.Column) []nt.Column {

	shown := []nt.Column{}
	for _, col := range columns {
		if !col.Hidden {
			shown = append(shown, col)
		}
	}
	return shown
}

// middle returns the visible columns that scroll horizontally.
func middle(columns []nt.Column) []nt.Column {

	scroll := []nt.Column{}
	for _, col := range visible(columns) {
		if col.Pinned == nt.PinNone {
			scroll = append(scroll, col)
		}
	}
	return scroll
}

// spans lays out the selector, left pinned, scrolled middle and right pinned
// columns left to right within width.
func (pnl Panel) spans() (spans []span) {

	props := pnl.grid.Props()
	shown := visible(props.Columns)

	var left, right []nt.Column
	for _, col := range shown {
		switch col.Pinned {
		case nt.PinLeft:
			left = append(left, col)
		case nt.PinRight:
			right = append(right, col)
		}
	}

	x := 0
	add := func(col nt.Column, width int) {
		spans = append(spans, span{col: col, x: x, width: width})
		x += width
	}

	if props.Selectable {
		spans = append(spans, span{x: x, width: grid.SelectorWidth / cellPixels, selector: true})
		x += grid.SelectorWidth / cellPixels
	}
	for _, col := range left {
		add(col, cells(col))
	}

	rightWidth := 0
	for _, col := range right {
		rightWidth += cells(col)
	}

	scroll := middle(props.Columns)
	for i := pnl.colOffset; i < len(scroll); i++ {
		width := cells(scroll[i])
		if pnl.width > 0 && x+width+rightWidth > pnl.width && i > pnl.colOffset {
			break
		}
		add(scroll[i], width)
	}

	for _, col := range right {
		add(col, cells(col))
	}
	return
}

// hit returns the span under x.
func (pnl Panel) hit(x int) (sp span, ok bool) {

	for _, sp = range pnl.spans() {
		if sp.contains(x) {
			return sp, true
		}
	}
	return span{}, false
}

// focused returns the column with keyboard focus.
func (pnl Panel) focused() (col nt.Column, ok bool) {

	shown := visible(pnl.grid.Columns())
	if pnl.focusCol < 0 || pnl.focusCol >= len(shown) {
		return
	}
	return shown[pnl.focusCol], true
}

// focus moves column focus to idx and scrolls it into view.
func (pnl Panel) focus(idx int) Panel {

	shown := visible(pnl.grid.Columns())
	if len(shown) == 0 {
		return pnl
	}
	pnl.focusCol = min(max(idx, 0), len(shown)-1)

	target := shown[pnl.focusCol]
	if target.Pinned != nt.PinNone {
		return pnl
	}

	scroll := middle(pnl.grid.Columns())
	pos := 0
	for i, col := range scroll {
		if col.Id == target.Id {
			pos = i
		}
	}

	if pos < pnl.colOffset {
		pnl.colOffset = pos
	}
	for pnl.colOffset < pos && !pnl.shows(target.Id) {
		pnl.colOffset++
	}
	return pnl
}

func (pnl Panel) focusId(id string) Panel {

	for i, col := range visible(pnl.grid.Columns()) {
		if col.Id == id {
			return pnl.focus(i)
		}
	}
	return pnl
}

func (pnl Panel) shows(id string) bool {
	for _, sp := range pnl.spans() {
		if !sp.selector && sp.col.Id == id {
			return true
		}
	}
	return false
}
