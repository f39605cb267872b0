// Package gridpanel hosts a grid in a bubbletea program, turning terminal
// mouse and key input into grid events and grid effects into commands.
package gridpanel

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/bubbles/key"

	nt "workgrid/entity"
	"workgrid/grid"
	"workgrid/message"
)

const (
	headerHeight = 2
	barHeight    = 1
	wheelRows    = 3
)

// press tracks a mouse button held over a row.
type press struct {
	idx    int
	last   int
	moved  bool
	target grid.Target
}

// Panel is a bubbletea component for a grid.
type Panel struct {
	grid grid.Grid
	keys KeyMap

	offset    int // First row shown
	colOffset int // First scrolling column shown
	focusCol  int // Visible column with keyboard focus

	press *press
	empty string

	width  int
	height int

	now    func() time.Time
	ctx    context.Context
	logger nt.Logger
}

// New creates a panel, the returned command schedules any loading timer.
func New(ctx context.Context, props grid.Props, lgr nt.Logger) (pnl Panel, cmd tea.Cmd) {

	pnl = Panel{
		keys:   DefaultKeyMap(),
		empty:  emptyText,
		now:    time.Now,
		ctx:    ctx,
		logger: lgr,
	}

	var effects []grid.Effect
	pnl.grid, effects = grid.New(props, pnl.now())
	cmd = pnl.commands(effects)
	return
}

func (pnl Panel) Init() tea.Cmd {
	return nil
}

// Grid returns the grid hosted.
func (pnl Panel) Grid() grid.Grid {
	return pnl.grid
}

// Keys returns the key bindings.
func (pnl Panel) Keys() KeyMap {
	return pnl.keys
}

func (pnl Panel) Update(msg tea.Msg) (Panel, tea.Cmd) {

	switch msg := msg.(type) {

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height
		pnl = pnl.scroll()
		return pnl, nil

	case RowsMsg:
		props := pnl.grid.Props()
		props.Rows = msg.Rows
		props.Loading = false
		return pnl.props(props)

	case LoadingMsg:
		props := pnl.grid.Props()
		props.Loading = true
		return pnl.props(props)

	case LayoutMsg:
		current := pnl.grid.Props()
		props := msg.Props
		props.Rows = current.Rows
		props.Loading = current.Loading

		pnl.empty = emptyText
		pnl = pnl.WithEmpty(msg.Empty)
		pnl.colOffset = 0

		var cmd tea.Cmd
		pnl, cmd = pnl.dispatch(
			grid.PropsEvent{Props: props, Now: pnl.now()},
			grid.SortEvent{Sort: props.InitialSort},
		)
		return pnl.focus(pnl.focusCol), cmd

	case tickMsg:
		return pnl.dispatch(grid.TimerEvent{Token: msg.token, Now: msg.at})

	case tea.MouseClickMsg:
		return pnl.mouseDown(msg.X, msg.Y, msg.Button)

	case tea.MouseMotionMsg:
		return pnl.mouseMove(msg.Y)

	case tea.MouseReleaseMsg:
		return pnl.mouseUp(msg.Y)

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			pnl.offset = max(pnl.offset-wheelRows, 0)
		case tea.MouseWheelDown:
			pnl.offset = max(min(pnl.offset+wheelRows, len(pnl.grid.Rows())-pnl.PageSize()), 0)
		}
		return pnl, nil

	case tea.KeyPressMsg:
		return pnl.keyPress(msg)
	}

	return pnl, nil
}

// PageSize returns the number of rows that fit on panel
func (pnl Panel) PageSize() int {
	return max(pnl.height-headerHeight-barHeight, 0)
}

// Stop ends any drag and cancels loading timers.
func (pnl Panel) Stop() (Panel, tea.Cmd) {
	pnl.press = nil
	return pnl.dispatch(grid.UnmountEvent{})
}

// unexported

func (pnl Panel) props(props grid.Props) (Panel, tea.Cmd) {
	return pnl.dispatch(grid.PropsEvent{Props: props, Now: pnl.now()})
}

func (pnl Panel) dispatch(events ...grid.Event) (Panel, tea.Cmd) {

	var all []grid.Effect
	for _, ev := range events {
		var effects []grid.Effect
		pnl.grid, effects = pnl.grid.Update(ev)
		all = append(all, effects...)

		if changed, ok := findSort(effects); ok {
			pnl.grid, effects = pnl.reorder(changed.Sort)
			all = append(all, effects...)
		}
	}

	pnl = pnl.scroll()
	return pnl, pnl.commands(all)
}

// reorder sorts the rows on hand so a new sort shows while rows are refetched.
func (pnl Panel) reorder(sort nt.SortState) (grid.Grid, []grid.Effect) {

	props := pnl.grid.Props()
	props.Rows = grid.SortRows(props.Rows, sort, props.Columns)
	return pnl.grid.Update(grid.PropsEvent{Props: props, Now: pnl.now()})
}

func findSort(effects []grid.Effect) (changed grid.SortChanged, ok bool) {
	for _, eff := range effects {
		if changed, ok = eff.(grid.SortChanged); ok {
			return
		}
	}
	return
}

// scroll keeps the active row on the page.
func (pnl Panel) scroll() Panel {

	active := pnl.grid.ActiveRowIndex()
	size := pnl.PageSize()

	switch {
	case active < 0 || size == 0:
	case active < pnl.offset:
		pnl.offset = active
	case active >= pnl.offset+size:
		pnl.offset = active - size + 1
	}

	count := len(pnl.grid.Rows())
	if pnl.offset > 0 && pnl.offset >= count {
		pnl.offset = max(count-size, 0)
	}
	return pnl
}

// rowAt maps a panel y coordinate to a row index.
func (pnl Panel) rowAt(y int) (idx int, ok bool) {

	if y < headerHeight || y >= headerHeight+pnl.PageSize() {
		return
	}

	idx = pnl.offset + y - headerHeight
	if _, ok = pnl.grid.Row(idx); !ok || pnl.grid.Loading() {
		return 0, false
	}
	return
}

func (pnl Panel) mouseDown(x, y int, button tea.MouseButton) (Panel, tea.Cmd) {

	sp, onCol := pnl.hit(x)

	if y == 0 && onCol {
		if sp.selector {
			return pnl.dispatch(grid.ToggleAllEvent{})
		}
		pnl = pnl.focusId(sp.col.Id)
		return pnl.dispatch(grid.HeaderClickEvent{ColumnId: sp.col.Id})
	}

	idx, ok := pnl.rowAt(y)
	if !ok {
		return pnl, nil
	}

	if onCol && sp.selector {
		return pnl.dispatch(grid.ToggleRowEvent{Index: idx})
	}

	var target grid.Target
	if onCol {
		target = grid.CellTarget(sp.col.Id)
	}

	if button == tea.MouseLeft {
		pnl.press = &press{idx: idx, last: idx, target: target}
	}
	return pnl.dispatch(grid.PointerDownEvent{
		Index:  idx,
		Button: mouseButton(button),
		Target: target,
	})
}

func (pnl Panel) mouseMove(y int) (Panel, tea.Cmd) {

	if pnl.press == nil {
		return pnl, nil
	}

	idx, ok := pnl.rowAt(y)
	if !ok || idx == pnl.press.last {
		return pnl, nil
	}

	pr := *pnl.press
	pr.last = idx
	pr.moved = true
	pnl.press = &pr

	return pnl.dispatch(grid.PointerEnterEvent{Index: idx})
}

func (pnl Panel) mouseUp(y int) (Panel, tea.Cmd) {

	pr := pnl.press
	pnl.press = nil

	events := []grid.Event{grid.PointerUpEvent{}}

	idx, ok := pnl.rowAt(y)
	if pr != nil && !pr.moved && ok && idx == pr.idx {
		events = append(events, grid.RowClickEvent{Index: idx, Target: pr.target})
	}
	return pnl.dispatch(events...)
}

func (pnl Panel) keyPress(msg tea.KeyPressMsg) (Panel, tea.Cmd) {

	switch {
	case key.Matches(msg, pnl.keys.Up):
		return pnl.dispatch(grid.KeyEvent{Key: grid.ArrowUp})

	case key.Matches(msg, pnl.keys.Down):
		return pnl.dispatch(grid.KeyEvent{Key: grid.ArrowDown})

	case key.Matches(msg, pnl.keys.PageUp):
		return pnl.dispatch(repeat(grid.ArrowUp, pnl.PageSize())...)

	case key.Matches(msg, pnl.keys.PageDown):
		return pnl.dispatch(repeat(grid.ArrowDown, pnl.PageSize())...)

	case key.Matches(msg, pnl.keys.Activate):
		return pnl.dispatch(grid.KeyEvent{Key: grid.Enter})

	case key.Matches(msg, pnl.keys.Toggle):
		return pnl.dispatch(grid.KeyEvent{Key: grid.Space})

	case key.Matches(msg, pnl.keys.ToggleAll):
		return pnl.dispatch(grid.ToggleAllEvent{})

	case key.Matches(msg, pnl.keys.Clear):
		return pnl.dispatch(grid.ClearSelectionEvent{})

	case key.Matches(msg, pnl.keys.Sort):
		col, ok := pnl.focused()
		if !ok {
			return pnl, nil
		}
		return pnl.dispatch(grid.HeaderClickEvent{ColumnId: col.Id})

	case key.Matches(msg, pnl.keys.Left):
		return pnl.focus(pnl.focusCol - 1), nil

	case key.Matches(msg, pnl.keys.Right):
		return pnl.focus(pnl.focusCol + 1), nil

	case key.Matches(msg, pnl.keys.Copy):
		row, ok := pnl.grid.Row(pnl.grid.ActiveRowIndex())
		if !ok {
			return pnl, nil
		}
		return pnl, copyCmd(row.Id)

	case key.Matches(msg, pnl.keys.Filter):
		row, ok := pnl.grid.Row(pnl.grid.ActiveRowIndex())
		col, colOk := pnl.focused()
		if !ok || !colOk {
			return pnl, nil
		}
		return pnl, message.OpenFilterCmd(col.Id, col.Display(row))

	case key.Matches(msg, pnl.keys.Delete):
		ids := pnl.grid.SelectedIds()
		if len(ids) == 0 {
			return pnl, nil
		}
		return pnl, message.DeleteCmd(ids)
	}

	return pnl, nil
}

func repeat(k grid.Key, n int) []grid.Event {

	events := make([]grid.Event, max(n, 1))
	for i := range events {
		events[i] = grid.KeyEvent{Key: k}
	}
	return events
}

func mouseButton(button tea.MouseButton) grid.MouseButton {

	switch button {
	case tea.MouseLeft:
		return grid.Primary
	case tea.MouseMiddle:
		return grid.Middle
	}
	return grid.Secondary
}
