package grid

import (
	"slices"

	nt "workgrid/entity"
)

// SortModel cycles a single column through asc, desc and unsorted.
type SortModel struct {
	state nt.SortState
}

// State returns the current sort, zero when none is active.
func (sm SortModel) State() nt.SortState {
	return sm.state
}

// RequestSort advances the cycle for columnId.
// A column other than the active one always starts over at asc.
// Sortability is not checked here.
func (sm SortModel) RequestSort(columnId string) SortModel {

	if !sm.state.Active() || sm.state.ColumnId != columnId {
		sm.state = nt.SortState{ColumnId: columnId, Direction: nt.Asc}
		return sm
	}

	switch sm.state.Direction {
	case nt.Asc:
		sm.state.Direction = nt.Desc
	default:
		sm.state = nt.SortState{}
	}
	return sm
}

// SortRows returns a sorted copy of rows, rows is not modified.
// The sort is stable so equal keys keep their incoming order, and an
// inactive sort returns the rows in their original order.
func SortRows(rows []nt.Row, sort nt.SortState, columns []nt.Column) []nt.Row {

	sorted := slices.Clone(rows)
	if !sort.Active() {
		return sorted
	}

	var col nt.Column
	for _, c := range columns {
		if c.Id == sort.ColumnId {
			col = c
		}
	}
	if col.Id == "" {
		col = nt.Column{Id: sort.ColumnId}
	}

	slices.SortStableFunc(sorted, func(a, b nt.Row) int {
		cmp := key(a, col).Compare(key(b, col))
		if sort.Desc() {
			return -cmp
		}
		return cmp
	})

	return sorted
}

// unexported

func key(row nt.Row, col nt.Column) nt.Value {

	if col.Id == "id" {
		val := row.Get("id")
		if val.Raw == nil {
			return nt.Value{Raw: row.Id}
		}
		return val
	}

	val := row.Get(col.Id)
	if val.Raw == nil && col.Render != nil {
		return nt.Value{Raw: col.Render(row)}
	}
	return val
}
