package grid

import (
	"slices"
	"testing"
	"time"

	nt "workgrid/entity"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func invoiceColumns() []nt.Column {
	return []nt.Column{
		{Id: "number", Label: "Invoice", Pinned: nt.PinLeft},
		{Id: "amount", Label: "Amount", Sortable: true, CellAlign: nt.AlignEnd},
		{Id: "client", Label: "Client"},
		{Id: "actions", Interactive: true},
	}
}

func invoiceRows(ids ...string) []nt.Row {
	rows := make([]nt.Row, len(ids))
	for i, id := range ids {
		rows[i] = nt.Row{Id: id, Values: map[string]nt.Value{
			"number": {Raw: "INV-" + id},
			"amount": {Raw: (i + 1) * 100},
		}}
	}
	return rows
}

func newGrid(t *testing.T, props Props) Grid {
	t.Helper()

	grid, _ := New(props, now)
	return grid
}

func step(t *testing.T, grid Grid, events ...Event) (Grid, []Effect) {
	t.Helper()

	var all []Effect
	for _, ev := range events {
		var effects []Effect
		grid, effects = grid.Update(ev)
		all = append(all, effects...)
	}
	return grid, all
}

func findEffect[T Effect](effects []Effect) (found T, ok bool) {
	for _, eff := range effects {
		if found, ok = eff.(T); ok {
			return
		}
	}
	return
}

func TestEndToEnd(t *testing.T) {

	grid := newGrid(t, Props{
		Rows:       invoiceRows("r1", "r2", "r3", "r4", "r5"),
		Columns:    invoiceColumns(),
		Selectable: true,
	})

	grid, effects := step(t, grid, HeaderClickEvent{ColumnId: "amount"})
	if got := grid.Sort(); got != (nt.SortState{ColumnId: "amount", Direction: nt.Asc}) {
		t.Errorf("got %+v, want amount asc", got)
	}
	if sc, ok := findEffect[SortChanged](effects); !ok || sc.Sort.Direction != nt.Asc {
		t.Errorf("expected sort changed effect, got %v", effects)
	}

	grid, _ = step(t, grid, HeaderClickEvent{ColumnId: "amount"})
	if got := grid.Sort(); got != (nt.SortState{ColumnId: "amount", Direction: nt.Desc}) {
		t.Errorf("got %+v, want amount desc", got)
	}

	grid, _ = step(t, grid,
		PointerDownEvent{Index: 1, Target: CellTarget("client")},
		PointerEnterEvent{Index: 2},
		PointerEnterEvent{Index: 3},
		PointerUpEvent{},
	)
	if got := grid.SelectedIds(); !slices.Equal(got, []string{"r2", "r3", "r4"}) {
		t.Fatalf("got %v, want [r2 r3 r4]", got)
	}
	if grid.Dragging() {
		t.Errorf("drag should have ended")
	}

	deleteButton := CellTarget("client").Within(Element{Kind: Button})
	grid, effects = step(t, grid, RowClickEvent{Index: 1, Target: deleteButton})
	if len(effects) != 0 {
		t.Errorf("click on button produced %v", effects)
	}
	if got := grid.SelectedIds(); !slices.Equal(got, []string{"r2", "r3", "r4"}) {
		t.Errorf("selection changed to %v", got)
	}

	grid, _ = step(t, grid, KeyEvent{Key: ArrowDown}, KeyEvent{Key: ArrowDown}, KeyEvent{Key: ArrowDown},
		KeyEvent{Key: ArrowDown}, KeyEvent{Key: ArrowDown})
	if grid.ActiveRowIndex() != 4 {
		t.Fatalf("got active %d, want 4", grid.ActiveRowIndex())
	}

	grid, effects = step(t, grid, KeyEvent{Key: Space})
	want := []string{"r2", "r3", "r4", "r5"}
	if got := grid.SelectedIds(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if sc, ok := findEffect[SelectionChanged](effects); !ok || !slices.Equal(sc.Ids, want) {
		t.Errorf("got effects %v, want selection %v", effects, want)
	}
}

func TestRowClick(t *testing.T) {

	props := Props{Rows: invoiceRows("a", "b"), Columns: invoiceColumns(), Selectable: true}

	t.Run("activates outside selection mode", func(t *testing.T) {
		grid, effects := step(t, newGrid(t, props), RowClickEvent{Index: 1, Target: CellTarget("client")})

		ra, ok := findEffect[RowActivated](effects)
		if !ok || ra.Id != "b" {
			t.Errorf("got %v, want activation of b", effects)
		}
		if grid.ActiveRowIndex() != 1 {
			t.Errorf("got active %d, want 1", grid.ActiveRowIndex())
		}
	})

	t.Run("toggles in selection mode", func(t *testing.T) {
		sm := props
		sm.SelectionMode = true

		grid, effects := step(t, newGrid(t, sm), RowClickEvent{Index: 0})
		if _, ok := findEffect[RowActivated](effects); ok {
			t.Errorf("row activated in selection mode")
		}
		if !grid.Selected("a") {
			t.Errorf("expected a selected")
		}

		grid, _ = step(t, grid, RowClickEvent{Index: 0})
		if grid.Selected("a") {
			t.Errorf("expected a deselected")
		}
	})

	t.Run("ignores interactive column", func(t *testing.T) {
		grid, effects := step(t, newGrid(t, props), RowClickEvent{Index: 0, Target: CellTarget("actions")})
		if len(effects) != 0 || grid.ActiveRowIndex() != -1 {
			t.Errorf("got %v active %d", effects, grid.ActiveRowIndex())
		}
	})

	t.Run("ignores out of range", func(t *testing.T) {
		_, effects := step(t, newGrid(t, props), RowClickEvent{Index: 7})
		if len(effects) != 0 {
			t.Errorf("got %v", effects)
		}
	})
}

func TestToggleRow(t *testing.T) {

	props := Props{Rows: invoiceRows("a", "b"), Columns: invoiceColumns(), Selectable: true}

	grid, effects := step(t, newGrid(t, props), ToggleRowEvent{Index: 1})
	if !grid.Selected("b") {
		t.Errorf("expected b selected")
	}
	if _, ok := findEffect[RowActivated](effects); ok {
		t.Errorf("checkbox must not activate the row")
	}

	props.Selectable = false
	grid, _ = step(t, newGrid(t, props), ToggleRowEvent{Index: 1})
	if grid.Selected("b") {
		t.Errorf("not selectable, b should stay unselected")
	}
}

func TestDrag(t *testing.T) {

	props := Props{Rows: invoiceRows("a", "b", "c", "d", "e"), Columns: invoiceColumns(), Selectable: true}

	t.Run("backtrack reverts", func(t *testing.T) {
		grid, _ := step(t, newGrid(t, props),
			PointerDownEvent{Index: 1},
			PointerEnterEvent{Index: 1},
			PointerEnterEvent{Index: 2},
			PointerEnterEvent{Index: 3},
			PointerEnterEvent{Index: 2},
		)
		if got := grid.SelectedIds(); !slices.Equal(got, []string{"b", "c"}) {
			t.Errorf("got %v, want [b c]", got)
		}
	})

	t.Run("deselect from selected anchor", func(t *testing.T) {
		grid, _ := step(t, newGrid(t, props), ToggleAllEvent{})
		grid, effects := step(t, grid,
			PointerDownEvent{Index: 3},
			PointerEnterEvent{Index: 1},
			PointerUpEvent{},
		)

		ds, ok := findEffect[DragStarted](effects)
		if !ok || ds.Mode != Deselect || ds.Anchor != 3 {
			t.Errorf("got %v, want deselect drag from 3", effects)
		}
		if _, ok := findEffect[DragEnded](effects); !ok {
			t.Errorf("expected drag ended")
		}
		if got := grid.SelectedIds(); !slices.Equal(got, []string{"a", "e"}) {
			t.Errorf("got %v, want [a e]", got)
		}
	})

	t.Run("rows replaced mid drag", func(t *testing.T) {
		grid, _ := step(t, newGrid(t, props),
			ToggleRowEvent{Index: 2},
			PointerDownEvent{Index: 0},
		)

		shrunk := props
		shrunk.Rows = invoiceRows("a", "b")
		grid, _ = step(t, grid,
			PropsEvent{Props: shrunk, Now: now},
			PointerEnterEvent{Index: 1},
		)

		if grid.Selected("c") || grid.selection.Len() != 2 {
			t.Errorf("removed row came back: %v", grid.selection.ids)
		}
		if !grid.AllSelected() || grid.SomeSelected() {
			t.Errorf("got all %t some %t, want all selected", grid.AllSelected(), grid.SomeSelected())
		}
		if !grid.Dragging() {
			t.Errorf("drag with a present anchor should continue")
		}
	})

	t.Run("enter without session", func(t *testing.T) {
		grid, effects := step(t, newGrid(t, props), PointerEnterEvent{Index: 2})
		if len(effects) != 0 || len(grid.SelectedIds()) != 0 {
			t.Errorf("got %v", effects)
		}
	})

	t.Run("not started", func(t *testing.T) {
		notSelectable := props
		notSelectable.Selectable = false

		tests := []struct {
			name  string
			props Props
			ev    PointerDownEvent
		}{
			{"secondary button", props, PointerDownEvent{Index: 1, Button: Secondary}},
			{"interactive target", props, PointerDownEvent{Index: 1, Target: Target{{Kind: Input}}}},
			{"not selectable", notSelectable, PointerDownEvent{Index: 1}},
			{"no such row", props, PointerDownEvent{Index: 9}},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				grid, _ := step(t, newGrid(t, tc.props), tc.ev)
				if grid.Dragging() {
					t.Errorf("drag should not start")
				}
			})
		}
	})

	t.Run("anchor removed by replacement", func(t *testing.T) {
		grid, _ := step(t, newGrid(t, props), PointerDownEvent{Index: 4})

		short := props
		short.Rows = invoiceRows("a", "b")
		grid, effects := step(t, grid, PropsEvent{Props: short, Now: now})

		if grid.Dragging() {
			t.Errorf("drag should end when anchor goes")
		}
		if _, ok := findEffect[DragEnded](effects); !ok {
			t.Errorf("expected drag ended, got %v", effects)
		}
	})

	t.Run("unmount ends session", func(t *testing.T) {
		grid, effects := step(t, newGrid(t, props), PointerDownEvent{Index: 0}, UnmountEvent{})
		if grid.Dragging() {
			t.Errorf("drag should end on unmount")
		}
		if _, ok := findEffect[DragEnded](effects); !ok {
			t.Errorf("expected drag ended")
		}
	})
}

func TestKeyboard(t *testing.T) {

	props := Props{Rows: invoiceRows("a", "b", "c"), Columns: invoiceColumns(), Selectable: true}

	grid, _ := step(t, newGrid(t, props), KeyEvent{Key: ArrowUp})
	if grid.ActiveRowIndex() != 0 {
		t.Errorf("arrow up from none: got %d, want 0", grid.ActiveRowIndex())
	}

	grid, _ = step(t, grid, KeyEvent{Key: ArrowUp})
	if grid.ActiveRowIndex() != 0 {
		t.Errorf("arrow up at top: got %d, want 0", grid.ActiveRowIndex())
	}

	grid, _ = step(t, grid, KeyEvent{Key: ArrowDown}, KeyEvent{Key: ArrowDown}, KeyEvent{Key: ArrowDown})
	if grid.ActiveRowIndex() != 2 {
		t.Errorf("arrow down at bottom: got %d, want 2", grid.ActiveRowIndex())
	}

	_, effects := step(t, grid, KeyEvent{Key: Enter})
	if ra, ok := findEffect[RowActivated](effects); !ok || ra.Id != "c" {
		t.Errorf("got %v, want activation of c", effects)
	}

	_, effects = step(t, newGrid(t, props), KeyEvent{Key: Enter})
	if len(effects) != 0 {
		t.Errorf("enter without active row: got %v", effects)
	}

	empty := newGrid(t, Props{Columns: invoiceColumns(), Selectable: true})
	for _, key := range []Key{ArrowDown, ArrowUp, Enter, Space} {
		empty, effects = step(t, empty, KeyEvent{Key: key})
		if empty.ActiveRowIndex() != -1 || len(effects) != 0 {
			t.Errorf("key %d on empty grid: active %d effects %v", key, empty.ActiveRowIndex(), effects)
		}
	}

	notSelectable := props
	notSelectable.Selectable = false
	grid, _ = step(t, newGrid(t, notSelectable), KeyEvent{Key: ArrowDown}, KeyEvent{Key: Space})
	if grid.Selected("a") {
		t.Errorf("space should not select when not selectable")
	}
}

func TestHeaderClickUnsortable(t *testing.T) {

	grid, effects := step(t, newGrid(t, Props{Columns: invoiceColumns()}),
		HeaderClickEvent{ColumnId: "client"},
		HeaderClickEvent{ColumnId: "missing"},
	)
	if grid.Sort().Active() || len(effects) != 0 {
		t.Errorf("got %+v %v", grid.Sort(), effects)
	}
}

func TestHeaderCheckbox(t *testing.T) {

	props := Props{Rows: invoiceRows("a", "b", "c"), Columns: invoiceColumns(), Selectable: true}
	grid := newGrid(t, props)

	if grid.AllSelected() || grid.SomeSelected() {
		t.Errorf("fresh grid should have nothing selected")
	}

	grid, _ = step(t, grid, ToggleRowEvent{Index: 0})
	if grid.AllSelected() || !grid.SomeSelected() {
		t.Errorf("one of three should be indeterminate")
	}

	grid, _ = step(t, grid, ToggleAllEvent{})
	if !grid.AllSelected() || grid.SomeSelected() {
		t.Errorf("toggle all should select everything")
	}

	grid, _ = step(t, grid, ToggleAllEvent{})
	if len(grid.SelectedIds()) != 0 {
		t.Errorf("second toggle all should clear, got %v", grid.SelectedIds())
	}

	grid, _ = step(t, grid, ToggleAllEvent{}, ClearSelectionEvent{})
	if len(grid.SelectedIds()) != 0 {
		t.Errorf("clear left %v", grid.SelectedIds())
	}
}

func TestReplacePrunesSelection(t *testing.T) {

	props := Props{Rows: invoiceRows("a", "b", "c", "d"), Columns: invoiceColumns(), Selectable: true}

	grid, _ := step(t, newGrid(t, props),
		ToggleAllEvent{},
		KeyEvent{Key: ArrowDown}, KeyEvent{Key: ArrowDown}, KeyEvent{Key: ArrowDown}, KeyEvent{Key: ArrowDown},
	)

	next := props
	next.Rows = invoiceRows("b", "d")
	grid, effects := step(t, grid, PropsEvent{Props: next, Now: now})

	if got := grid.SelectedIds(); !slices.Equal(got, []string{"b", "d"}) {
		t.Errorf("got %v, want [b d]", got)
	}
	if sc, ok := findEffect[SelectionChanged](effects); !ok || !slices.Equal(sc.Ids, []string{"b", "d"}) {
		t.Errorf("expected pruned selection effect, got %v", effects)
	}
	if !grid.AllSelected() {
		t.Errorf("remaining rows are all selected")
	}
	if grid.ActiveRowIndex() != 1 {
		t.Errorf("got active %d, want clamped 1", grid.ActiveRowIndex())
	}

	next.Rows = nil
	grid, _ = step(t, grid, PropsEvent{Props: next, Now: now})
	if grid.ActiveRowIndex() != -1 || len(grid.SelectedIds()) != 0 {
		t.Errorf("empty rows: active %d selected %v", grid.ActiveRowIndex(), grid.SelectedIds())
	}
}

func TestSelectionSubsetOfRows(t *testing.T) {

	props := Props{Columns: invoiceColumns(), Selectable: true}
	sequences := [][]string{
		{"a", "b", "c", "d"},
		{"c", "d", "e"},
		{"e"},
		{"a", "e", "f", "g"},
	}

	grid := newGrid(t, props)
	for i, ids := range sequences {
		props.Rows = invoiceRows(ids...)
		grid, _ = step(t, grid,
			PropsEvent{Props: props, Now: now},
			ToggleRowEvent{Index: 0},
			PointerDownEvent{Index: len(ids) - 1},
			PointerEnterEvent{Index: 0},
			PointerUpEvent{},
		)
		if i%2 == 1 {
			grid, _ = step(t, grid, ToggleAllEvent{})
		}

		for _, id := range grid.SelectedIds() {
			if !slices.Contains(ids, id) {
				t.Errorf("round %d: %s selected but not present in %v", i, id, ids)
			}
		}
		if grid.selection.Len() != len(grid.SelectedIds()) {
			t.Errorf("round %d: selection holds ids beyond the rows", i)
		}
	}
}

func TestControlled(t *testing.T) {

	props := Props{
		Rows:        invoiceRows("a", "b", "c"),
		Columns:     invoiceColumns(),
		Selectable:  true,
		SelectedIds: []string{"a", "gone"},
	}
	grid := newGrid(t, props)

	if got := grid.SelectedIds(); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("got %v, want [a]", got)
	}

	grid, effects := step(t, grid, ToggleRowEvent{Index: 1})
	sc, ok := findEffect[SelectionChanged](effects)
	if !ok || !slices.Equal(sc.Ids, []string{"a", "b"}) {
		t.Errorf("got %v, want proposal [a b]", effects)
	}
	if grid.Selected("b") {
		t.Errorf("controlled selection changed without new props")
	}

	props.SelectedIds = sc.Ids
	grid, _ = step(t, grid, PropsEvent{Props: props, Now: now})
	if got := grid.SelectedIds(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestLoadingIndicator(t *testing.T) {

	props := Props{Columns: invoiceColumns(), Loading: true}

	grid, effects := New(props, now)
	timer, ok := findEffect[ScheduleTimer](effects)
	if !ok {
		t.Fatalf("expected a show timer, got %v", effects)
	}
	if grid.Loading() {
		t.Errorf("indicator visible before delay")
	}

	grid, _ = step(t, grid, TimerEvent{Token: timer.Token, Now: now.Add(timer.After)})
	if !grid.Loading() {
		t.Fatalf("indicator should show after delay")
	}

	props.Loading = false
	props.Rows = invoiceRows("a")
	grid, effects = step(t, grid, PropsEvent{Props: props, Now: now.Add(timer.After + 10*time.Millisecond)})
	hide, ok := findEffect[ScheduleTimer](effects)
	if !ok {
		t.Fatalf("expected a hide timer, got %v", effects)
	}
	if !grid.Loading() {
		t.Errorf("indicator hid before minimum display")
	}

	grid, _ = step(t, grid, UnmountEvent{}, TimerEvent{Token: hide.Token, Now: now.Add(time.Second)})
	if grid.Loading() {
		t.Errorf("indicator should be gone after unmount")
	}
}

func TestDuplicateIds(t *testing.T) {

	rows := invoiceRows("a", "b")
	rows = append(rows, rows[0])
	props := Props{Rows: rows, Columns: invoiceColumns(), Selectable: true}

	grid, _ := step(t, newGrid(t, props), ToggleAllEvent{})
	if !grid.AllSelected() || grid.SomeSelected() {
		t.Fatalf("got all %t some %t, want all selected", grid.AllSelected(), grid.SomeSelected())
	}

	grid, _ = step(t, grid, ToggleAllEvent{})
	if len(grid.SelectedIds()) != 0 {
		t.Errorf("second toggle all should clear, got %v", grid.SelectedIds())
	}
}

func TestSortEvent(t *testing.T) {

	grid := newGrid(t, Props{Columns: invoiceColumns()})

	want := nt.SortState{ColumnId: "amount", Direction: nt.Desc}
	grid, effects := step(t, grid, SortEvent{Sort: want})
	if grid.Sort() != want || len(effects) != 0 {
		t.Errorf("got %v with %v, want %v and no effects", grid.Sort(), effects, want)
	}

	grid, _ = step(t, grid, HeaderClickEvent{ColumnId: "amount"})
	if grid.Sort().Active() {
		t.Errorf("desc should cycle to cleared, got %v", grid.Sort())
	}

	grid, _ = step(t, grid, SortEvent{Sort: want}, SortEvent{Sort: nt.SortState{ColumnId: "amount"}})
	if grid.Sort().Active() {
		t.Errorf("inactive sort should clear, got %v", grid.Sort())
	}
}
