package grid

import "maps"

// DragMode is what a drag range does to the rows it covers.
type DragMode int

const (
	Select DragMode = iota
	Deselect
)

func (mode DragMode) String() string {
	if mode == Deselect {
		return "deselect"
	}
	return "select"
}

// Selection is a set of selected row ids.
// Operations return a new Selection and leave the receiver untouched.
type Selection struct {
	ids map[string]bool
}

// NewSelection creates a selection holding ids.
func NewSelection(ids ...string) Selection {
	sel := Selection{ids: make(map[string]bool, len(ids))}
	for _, id := range ids {
		sel.ids[id] = true
	}
	return sel
}

// Has reports whether id is selected.
func (sel Selection) Has(id string) bool {
	return sel.ids[id]
}

// Len returns the number of selected ids.
func (sel Selection) Len() int {
	return len(sel.ids)
}

// Toggle flips membership of id.
func (sel Selection) Toggle(id string) Selection {

	next := sel.clone()
	if next.ids[id] {
		delete(next.ids, id)
	} else {
		next.ids[id] = true
	}
	return next
}

// ToggleAll clears a complete selection and otherwise selects every id.
// Repeated ids count once. Nothing happens when there are no ids.
func (sel Selection) ToggleAll(allIds []string) Selection {

	if len(allIds) == 0 {
		return sel
	}

	all := NewSelection(allIds...)
	if sel.Equal(all) {
		return NewSelection()
	}
	return all
}

// SelectRange adds or removes ids depending on mode.
func (sel Selection) SelectRange(ids []string, mode DragMode) Selection {

	next := sel.clone()
	for _, id := range ids {
		if mode == Select {
			next.ids[id] = true
		} else {
			delete(next.ids, id)
		}
	}
	return next
}

// AllSelected is true when total distinct rows are present and all are selected.
func (sel Selection) AllSelected(total int) bool {
	return total > 0 && sel.Len() == total
}

// SomeSelected is true for a non-empty, incomplete selection.
func (sel Selection) SomeSelected(total int) bool {
	return sel.Len() > 0 && !sel.AllSelected(total)
}

// Prune drops ids that are not present.
func (sel Selection) Prune(present map[string]bool) Selection {

	next := NewSelection()
	for id := range sel.ids {
		if present[id] {
			next.ids[id] = true
		}
	}
	return next
}

// Ids returns selected ids following order, ids missing from order are left out.
func (sel Selection) Ids(order []string) []string {

	ids := []string{}
	seen := map[string]bool{}
	for _, id := range order {
		if sel.ids[id] && !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	return ids
}

// Equal reports whether both selections hold the same ids.
func (sel Selection) Equal(other Selection) bool {
	return maps.Equal(sel.ids, other.ids)
}

// unexported

func (sel Selection) clone() Selection {
	next := Selection{ids: make(map[string]bool, len(sel.ids)+1)}
	maps.Copy(next.ids, sel.ids)
	return next
}
