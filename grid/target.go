package grid

import nt "workgrid/entity"

// Kind identifies what sort of element an event landed on.
type Kind int

const (
	Cell Kind = iota
	Text
	Button
	Link
	Input
	Choice // select
	TextArea
	Menu
	MenuItem
	Listbox
	Option
	Combobox
)

// Element is one step on the path from an event's target up to its row.
type Element struct {
	Kind Kind
	// Flagged marks an element as independently interactive whatever its kind.
	Flagged bool
	// Column is set on cell elements.
	Column string
}

// Target is the path from the element an event landed on up to, not
// including, the row. The zero Target is the row itself.
type Target []Element

// Within returns a target for an element nested in tgt.
func (tgt Target) Within(el Element) Target {
	return append(Target{el}, tgt...)
}

// CellTarget is a plain click on a column's cell.
func CellTarget(column string) Target {
	return Target{{Kind: Cell, Column: column}}
}

// Interactive reports whether any element on the path handles its own
// activation, either by kind, by flag, or by sitting in an interactive column.
func (tgt Target) Interactive(columns []nt.Column) bool {

	interactiveCols := map[string]bool{}
	for _, col := range columns {
		interactiveCols[col.Id] = col.Interactive
	}

	for _, el := range tgt {
		if el.Flagged || interactiveKinds[el.Kind] {
			return true
		}
		if el.Kind == Cell && interactiveCols[el.Column] {
			return true
		}
	}
	return false
}

var interactiveKinds = map[Kind]bool{
	Button:   true,
	Link:     true,
	Input:    true,
	Choice:   true,
	TextArea: true,
	Menu:     true,
	MenuItem: true,
	Listbox:  true,
	Option:   true,
	Combobox: true,
}
