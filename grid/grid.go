// Package grid holds the interaction state of a data grid: selection, drag
// selection, sort, keyboard navigation and the loading indicator.
// Grid is a pure reducer, events go in and effects come out.
package grid

import (
	"time"

	nt "workgrid/entity"
	"workgrid/loading"
)

// Props is everything the caller supplies, replaced wholesale.
type Props struct {
	Rows          []nt.Row
	Columns       []nt.Column
	Loading       bool
	Selectable    bool
	SelectionMode bool

	// SelectedIds, when non-nil, puts the selection under the caller's
	// control: changes are proposed with SelectionChanged and take hold
	// only when they come back in a later PropsEvent.
	SelectedIds []string

	LoadingDelay      time.Duration
	LoadingMinDisplay time.Duration

	// InitialSort is the sort in effect when the grid is created, such as
	// one already applied by the row source. Later props do not change it.
	InitialSort nt.SortState
}

// DragSession is an in-progress drag selection.
type DragSession struct {
	Anchor int
	Mode   DragMode
	// base is the selection when the drag began, each enter applies the
	// range to it afresh.
	base Selection
}

// Grid is the state of one grid.
type Grid struct {
	props     Props
	rows      RowStore
	selection Selection
	sort      SortModel
	active    int
	drag      *DragSession
	debounce  loading.Debounce
}

// New creates a grid from props.
// Effects returned are to be handled like those from Update.
func New(props Props, now time.Time) (grid Grid, effects []Effect) {

	grid = Grid{
		props:     props,
		rows:      RowStore{}.Replace(props.Rows),
		selection: NewSelection(),
		sort:      SortModel{state: props.InitialSort},
		active:    -1,
		debounce:  loading.New(props.LoadingDelay, props.LoadingMinDisplay),
	}
	if grid.controlled() {
		grid.selection = grid.fromCaller()
	}
	if !props.InitialSort.Active() {
		grid.sort = SortModel{}
	}

	var timer *loading.Timer
	grid.debounce, timer = grid.debounce.Set(props.Loading, now)
	effects = appendTimer(effects, timer)
	return
}

// Update applies an event.
func (grid Grid) Update(ev Event) (Grid, []Effect) {

	switch ev := ev.(type) {
	case PropsEvent:
		return grid.replace(ev.Props, ev.Now)
	case RowClickEvent:
		return grid.rowClick(ev.Index, ev.Target)
	case ToggleRowEvent:
		row, ok := grid.rows.Get(ev.Index)
		if !ok || !grid.props.Selectable {
			return grid, nil
		}
		return grid.propose(grid.selection.Toggle(row.Id))
	case PointerDownEvent:
		return grid.pointerDown(ev)
	case PointerEnterEvent:
		return grid.pointerEnter(ev.Index)
	case PointerUpEvent:
		return grid.endDrag()
	case KeyEvent:
		return grid.key(ev.Key)
	case HeaderClickEvent:
		return grid.headerClick(ev.ColumnId)
	case ToggleAllEvent:
		if !grid.props.Selectable {
			return grid, nil
		}
		return grid.propose(grid.selection.ToggleAll(grid.rows.Ids()))
	case ClearSelectionEvent:
		return grid.propose(NewSelection())
	case TimerEvent:
		grid.debounce = grid.debounce.Fire(ev.Token, ev.Now)
		return grid, nil
	case UnmountEvent:
		grid.debounce = grid.debounce.Stop()
		return grid.endDrag()
	case SortEvent:
		grid.sort = SortModel{}
		if ev.Sort.Active() {
			grid.sort = SortModel{state: ev.Sort}
		}
		return grid, nil
	}

	return grid, nil
}

// Rows returns the current row sequence.
func (grid Grid) Rows() []nt.Row {
	return grid.rows.Rows()
}

// Columns returns the column definitions.
func (grid Grid) Columns() []nt.Column {
	return grid.props.Columns
}

// Row returns the row at idx.
func (grid Grid) Row(idx int) (nt.Row, bool) {
	return grid.rows.Get(idx)
}

// Index returns the position of row id, or -1.
func (grid Grid) Index(id string) int {
	return grid.rows.Index(id)
}

// Props returns the props last supplied.
func (grid Grid) Props() Props {
	return grid.props
}

// Selected reports whether row id is selected.
func (grid Grid) Selected(id string) bool {
	return grid.selection.Has(id)
}

// SelectedIds returns selected ids in row order.
func (grid Grid) SelectedIds() []string {
	return grid.selection.Ids(grid.rows.Ids())
}

// AllSelected drives the header checkbox's checked state.
func (grid Grid) AllSelected() bool {
	return grid.selection.AllSelected(len(grid.rows.present()))
}

// SomeSelected drives the header checkbox's indeterminate state.
func (grid Grid) SomeSelected() bool {
	return grid.selection.SomeSelected(len(grid.rows.present()))
}

// Sort returns the active sort.
func (grid Grid) Sort() nt.SortState {
	return grid.sort.State()
}

// ActiveRowIndex returns the keyboard focused row or -1.
func (grid Grid) ActiveRowIndex() int {
	return grid.active
}

// Dragging reports an in-progress drag selection.
func (grid Grid) Dragging() bool {
	return grid.drag != nil
}

// Drag returns the drag session, if any.
func (grid Grid) Drag() (DragSession, bool) {
	if grid.drag == nil {
		return DragSession{}, false
	}
	return *grid.drag, true
}

// Loading reports whether the loading indicator should show.
func (grid Grid) Loading() bool {
	return grid.debounce.Visible()
}

// PinOffsets returns pinned column offsets for the current columns.
func (grid Grid) PinOffsets() map[string]int {
	return PinOffsets(grid.props.Columns, grid.props.Selectable)
}

// unexported

func (grid Grid) controlled() bool {
	return grid.props.SelectedIds != nil
}

func (grid Grid) fromCaller() Selection {
	return NewSelection(grid.props.SelectedIds...).Prune(grid.rows.present())
}

// propose applies next, or hands it to the caller in controlled mode.
func (grid Grid) propose(next Selection) (Grid, []Effect) {

	if next.Equal(grid.selection) {
		return grid, nil
	}

	changed := SelectionChanged{Ids: next.Ids(grid.rows.Ids())}
	if !grid.controlled() {
		grid.selection = next
	}
	return grid, []Effect{changed}
}

func (grid Grid) replace(props Props, now time.Time) (Grid, []Effect) {

	var effects []Effect

	wasControlled := grid.controlled()
	grid.props = props
	grid.rows = grid.rows.Replace(props.Rows)

	if grid.controlled() {
		grid.selection = grid.fromCaller()
	} else {
		if wasControlled {
			grid.selection = NewSelection()
		}
		pruned := grid.selection.Prune(grid.rows.present())
		if !pruned.Equal(grid.selection) {
			grid.selection = pruned
			effects = append(effects, SelectionChanged{Ids: pruned.Ids(grid.rows.Ids())})
		}
	}

	count := grid.rows.Count()
	switch {
	case count == 0:
		grid.active = -1
	case grid.active >= count:
		grid.active = count - 1
	}

	switch {
	case grid.drag == nil:
	case grid.drag.Anchor >= count:
		grid.drag = nil
		effects = append(effects, DragEnded{})
	default:
		session := *grid.drag
		session.base = session.base.Prune(grid.rows.present())
		grid.drag = &session
	}

	var timer *loading.Timer
	grid.debounce = grid.debounce.Timings(props.LoadingDelay, props.LoadingMinDisplay)
	grid.debounce, timer = grid.debounce.Set(props.Loading, now)
	effects = appendTimer(effects, timer)

	return grid, effects
}

func (grid Grid) rowClick(idx int, target Target) (Grid, []Effect) {

	row, ok := grid.rows.Get(idx)
	if !ok || target.Interactive(grid.props.Columns) {
		return grid, nil
	}

	grid.active = idx
	return grid.activate(row)
}

// activate toggles row in selection mode and otherwise reports it.
func (grid Grid) activate(row nt.Row) (Grid, []Effect) {

	if grid.props.SelectionMode {
		return grid.propose(grid.selection.Toggle(row.Id))
	}
	return grid, []Effect{RowActivated{Id: row.Id}}
}

func (grid Grid) pointerDown(ev PointerDownEvent) (Grid, []Effect) {

	row, ok := grid.rows.Get(ev.Index)
	switch {
	case !ok, !grid.props.Selectable, ev.Button != Primary:
		return grid, nil
	case ev.Target.Interactive(grid.props.Columns):
		return grid, nil
	}

	mode := Select
	if grid.selection.Has(row.Id) {
		mode = Deselect
	}

	grid.drag = &DragSession{
		Anchor: ev.Index,
		Mode:   mode,
		base:   grid.selection,
	}
	return grid, []Effect{DragStarted{Anchor: ev.Index, Mode: mode}}
}

func (grid Grid) pointerEnter(idx int) (Grid, []Effect) {

	if grid.drag == nil {
		return grid, nil
	}
	if _, ok := grid.rows.Get(idx); !ok {
		return grid, nil
	}

	ids := grid.rows.Range(grid.drag.Anchor, idx)
	return grid.propose(grid.drag.base.SelectRange(ids, grid.drag.Mode))
}

func (grid Grid) endDrag() (Grid, []Effect) {

	if grid.drag == nil {
		return grid, nil
	}
	grid.drag = nil
	return grid, []Effect{DragEnded{}}
}

func (grid Grid) key(key Key) (Grid, []Effect) {

	count := grid.rows.Count()
	if count == 0 {
		return grid, nil
	}

	switch key {
	case ArrowDown:
		grid.active = min(grid.active+1, count-1)
	case ArrowUp:
		grid.active = max(grid.active-1, 0)
	case Enter:
		row, ok := grid.rows.Get(grid.active)
		if ok {
			return grid.activate(row)
		}
	case Space:
		row, ok := grid.rows.Get(grid.active)
		if ok && grid.props.Selectable {
			return grid.propose(grid.selection.Toggle(row.Id))
		}
	}
	return grid, nil
}

func (grid Grid) headerClick(columnId string) (Grid, []Effect) {

	for _, col := range grid.props.Columns {
		if col.Id == columnId && col.Sortable {
			grid.sort = grid.sort.RequestSort(columnId)
			return grid, []Effect{SortChanged{Sort: grid.sort.State()}}
		}
	}
	return grid, nil
}

func appendTimer(effects []Effect, timer *loading.Timer) []Effect {
	if timer == nil {
		return effects
	}
	return append(effects, ScheduleTimer{Token: timer.Token, After: timer.After})
}
