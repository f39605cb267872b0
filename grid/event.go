package grid

import (
	"time"

	nt "workgrid/entity"
)

// Event is an input to Grid.Update.
type Event interface {
	isEvent()
}

func (PropsEvent) isEvent()          {}
func (RowClickEvent) isEvent()       {}
func (ToggleRowEvent) isEvent()      {}
func (PointerDownEvent) isEvent()    {}
func (PointerEnterEvent) isEvent()   {}
func (PointerUpEvent) isEvent()      {}
func (KeyEvent) isEvent()            {}
func (HeaderClickEvent) isEvent()    {}
func (ToggleAllEvent) isEvent()      {}
func (ClearSelectionEvent) isEvent() {}
func (TimerEvent) isEvent()          {}
func (UnmountEvent) isEvent()        {}
func (SortEvent) isEvent()           {}

// PropsEvent replaces everything the caller supplies.
type PropsEvent struct {
	Props Props
	Now   time.Time
}

// RowClickEvent is a click, or tap, on row Index.
type RowClickEvent struct {
	Index  int
	Target Target
}

// ToggleRowEvent is a click on a row's checkbox.
type ToggleRowEvent struct {
	Index int
}

// MouseButton of a pointer press.
type MouseButton int

const (
	Primary MouseButton = iota
	Middle
	Secondary
)

// PointerDownEvent is a button press over row Index.
type PointerDownEvent struct {
	Index  int
	Button MouseButton
	Target Target
}

// PointerEnterEvent is the pointer moving onto row Index.
type PointerEnterEvent struct {
	Index int
}

// PointerUpEvent is a button release anywhere, in or out of the grid.
type PointerUpEvent struct{}

// Key is a navigation key the grid understands.
type Key int

const (
	ArrowDown Key = iota
	ArrowUp
	Enter
	Space
)

// KeyEvent is a key press while the grid has focus.
type KeyEvent struct {
	Key Key
}

// HeaderClickEvent is a click on a column header.
type HeaderClickEvent struct {
	ColumnId string
}

// ToggleAllEvent is a click on the header checkbox.
type ToggleAllEvent struct{}

// ClearSelectionEvent deselects everything.
type ClearSelectionEvent struct{}

// TimerEvent reports a scheduled timer firing.
type TimerEvent struct {
	Token uint64
	Now   time.Time
}

// UnmountEvent ends a drag session and cancels timers.
type UnmountEvent struct{}

// SortEvent sets a sort the row source has already applied.
// No SortChanged follows, an inactive sort clears.
type SortEvent struct {
	Sort nt.SortState
}

// Effect is something the caller should act on after an Update.
type Effect interface {
	isEffect()
}

func (SelectionChanged) isEffect() {}
func (RowActivated) isEffect()     {}
func (SortChanged) isEffect()      {}
func (DragStarted) isEffect()      {}
func (DragEnded) isEffect()        {}
func (ScheduleTimer) isEffect()    {}

// SelectionChanged carries the new selection, ids in row order.
type SelectionChanged struct {
	Ids []string
}

// RowActivated is a row click outside selection mode.
type RowActivated struct {
	Id string
}

// SortChanged carries the new sort.
type SortChanged struct {
	Sort nt.SortState
}

// DragStarted asks the host to listen for a pointer release anywhere.
type DragStarted struct {
	Anchor int
	Mode   DragMode
}

// DragEnded asks the host to stop listening for pointer releases.
type DragEnded struct{}

// ScheduleTimer asks the host to send TimerEvent{Token} after After.
// A token superseded in the meantime is ignored when it arrives.
type ScheduleTimer struct {
	Token uint64
	After time.Duration
}
