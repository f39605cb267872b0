package workgrid

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"workgrid/detail"
	nt "workgrid/entity"
	"workgrid/filter"
	"workgrid/gridpanel"
	"workgrid/message"
	"workgrid/style"
)

const (
	footerHeight = 2
)

// Model is the top-level bubbletea model.
type Model struct {
	Store  Store
	Layout Layout

	Grid   gridpanel.Panel
	Detail detail.DetailPanel
	Filter filter.FilterPanel

	CurrentScreen Screen

	layoutPath  string
	initCmd     tea.Cmd
	selected    int
	status      string
	errorString string

	width  int
	height int

	ctx    context.Context
	logger nt.Logger
}

// NewModel creates a model over store laid out per layout, which is
// reloaded from layoutPath on request.
func NewModel(ctx context.Context, store Store, layout Layout, layoutPath string, lgr nt.Logger) (model Model, err error) {

	layout, err = layout.Resolve(ctx, store)
	if err != nil {
		return
	}

	err = store.SetView(layout.Filter, layout.Sort)
	if err != nil {
		return
	}

	model = Model{
		Store:         store,
		Layout:        layout,
		Detail:        detail.NewDetailPanel(layout.Columns),
		Filter:        filter.NewFilterPanel(ctx, lgr),
		CurrentScreen: GridScreen,
		layoutPath:    layoutPath,
		ctx:           ctx,
		logger:        lgr,
	}

	model.Grid, model.initCmd = gridpanel.New(ctx, layout.Props(), lgr)
	model.Grid = model.Grid.WithEmpty(layout.Empty)

	return
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, func() tea.Msg {
		return message.ReloadMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case message.ReloadMsg:
		return m.fetch()

	case rowsMsg:
		rows := msg.rows
		if msg.err != nil {
			m.logger.Error(m.ctx, "failed to fetch rows", msg.err)
			m.errorString = msg.err.Error()
			rows = m.Grid.Grid().Rows()
		}
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(gridpanel.RowsMsg{Rows: rows})
		return m, cmd

	case message.SortMsg:
		m.logger.Info(m.ctx, "sort requested", "column", msg.Sort.ColumnId, "direction", string(msg.Sort.Direction))
		return m.sort(msg)

	case message.SelectionMsg:
		m.selected = len(msg.Ids)
		return m, nil

	case message.ActivateMsg:
		var cmd tea.Cmd
		m.Detail, cmd = m.Detail.Update(detail.RowMsg{Id: msg.Id, Row: msg.Row})
		m = m.show(DetailScreen)
		return m, cmd

	case message.OpenFilterMsg:
		m.Filter, _ = m.Filter.Update(filter.OpenMsg{Filter: m.Layout.Filter})
		m.Filter, _ = m.Filter.Update(msg)
		return m.show(FilterScreen), nil

	case message.FilterMsg:
		m = m.show(GridScreen)
		return m.filter(msg.Filter)

	case message.DeleteMsg:
		m.status = fmt.Sprintf("deleting %d", len(msg.Ids))
		return m, m.remove(msg.Ids)

	case deletedMsg:
		m.status = fmt.Sprintf("deleted %d", msg.count)
		return m.fetch()

	case message.CopiedMsg:
		m.status = "copied " + msg.Id
		return m, nil

	case message.ErrorMsg:
		m.logger.Error(m.ctx, "error msg", msg.Err)
		m.errorString = msg.Err.Error()
		return m, nil

	case tea.KeyPressMsg:
		m.errorString = ""

		if m.CurrentScreen == FilterScreen {
			switch msg.String() {
			case "ctrl+c":
				return m.quit()
			case "esc":
				return m.show(GridScreen), nil
			}
			return m.toScreen(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m.quit()

		case "q":
			if m.CurrentScreen == GridScreen {
				return m.quit()
			}

		case "esc":
			if m.CurrentScreen != GridScreen {
				return m.show(GridScreen), nil
			}
			return m.quit()

		case "tab":
			if m.CurrentScreen == GridScreen {
				return m.show(DetailScreen), nil
			}
			return m.show(GridScreen), nil

		case "r":
			return m.reloadLayout()

		case "/":
			m.Filter, _ = m.Filter.Update(filter.OpenMsg{Filter: m.Layout.Filter})
			return m.show(FilterScreen), nil
		}

		return m.toScreen(msg)

	case tea.MouseMsg:
		return m.toScreen(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		var cmd1, cmd2 tea.Cmd
		m.Grid, cmd1 = m.Grid.Update(gridpanel.SizeMsg{Width: msg.Width, Height: msg.Height - footerHeight})
		m.Detail, cmd2 = m.Detail.Update(detail.SizeMsg{Width: msg.Width, Height: msg.Height - footerHeight})
		m.Filter, _ = m.Filter.Update(filter.SizeMsg{Width: msg.Width, Height: msg.Height - footerHeight})
		return m, tea.Batch(cmd1, cmd2)
	}

	// timers and anything else belong to the grid
	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {

	if m.width == 0 {
		return tea.NewView("Loading...")
	}

	var screenContent string
	switch m.CurrentScreen {
	case DetailScreen:
		screenContent = m.Detail.Render()
	case FilterScreen:
		screenContent = m.Filter.Render()
	default:
		screenContent = m.Grid.Render()
	}

	screenLayer := lipgloss.NewLayer("screen", screenContent)

	grd := m.Grid.Grid()
	footerContent := RenderFooter(
		grd.ActiveRowIndex()+1,
		len(grd.Rows()),
		m.selected,
		m.Store.Name(),
		m.status,
		m.Grid.Keys().ShortHelp(),
		m.width,
	)
	if m.errorString != "" {
		footerContent = style.ErrorStyle.Render(m.errorString)
	}
	footerLayer := lipgloss.NewLayer("footer", footerContent).Y(m.height - footerHeight)

	canvas := lipgloss.NewCanvas(m.width, m.height)
	canvas.Compose(screenLayer)
	canvas.Compose(footerLayer)

	view := tea.NewView(canvas)
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	return view
}

// unexported

func (m Model) show(screen Screen) Model {
	m.CurrentScreen = screen
	m.Detail.Focused = screen == DetailScreen
	return m
}

func (m Model) toScreen(msg tea.Msg) (tea.Model, tea.Cmd) {

	var cmd tea.Cmd
	switch m.CurrentScreen {
	case DetailScreen:
		if _, isMouse := msg.(tea.MouseMsg); isMouse {
			return m, nil
		}
		m.Detail, cmd = m.Detail.Update(msg)
	case FilterScreen:
		if _, isMouse := msg.(tea.MouseMsg); isMouse {
			return m, nil
		}
		m.Filter, cmd = m.Filter.Update(msg)
	default:
		m.Grid, cmd = m.Grid.Update(msg)
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Grid, _ = m.Grid.Stop()
	return m, tea.Quit
}
