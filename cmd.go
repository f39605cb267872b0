package workgrid

import (
	tea "charm.land/bubbletea/v2"

	"workgrid/detail"
	nt "workgrid/entity"
	"workgrid/gridpanel"
	"workgrid/message"
)

// fetch marks the grid loading and gets rows from the store
func (m Model) fetch() (Model, tea.Cmd) {

	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(gridpanel.LoadingMsg{})

	store, ctx := m.Store, m.ctx
	return m, tea.Batch(cmd, func() tea.Msg {
		rows, err := store.Rows(ctx)
		return rowsMsg{rows: rows, err: err}
	})
}

// sort sets the store's order and refetches
func (m Model) sort(msg message.SortMsg) (Model, tea.Cmd) {

	m.Layout.Sort = msg.Sort
	err := m.Store.SetView(m.Layout.Filter, m.Layout.Sort)
	if err != nil {
		return m, message.ErrorCmd(err)
	}
	return m.fetch()
}

// filter sets the store's filter and refetches
func (m Model) filter(filter nt.Filter) (Model, tea.Cmd) {

	err := m.Store.SetView(filter, m.Layout.Sort)
	if err != nil {
		return m, message.ErrorCmd(err)
	}
	m.Layout.Filter = filter

	where, _ := filter.Where()
	m.status = "where " + where
	if filter.Empty() {
		m.status = "no filter"
	}
	return m.fetch()
}

// remove deletes ids from the store
func (m Model) remove(ids []string) tea.Cmd {

	store, ctx := m.Store, m.ctx
	return func() tea.Msg {
		count, err := store.Delete(ctx, ids)
		if err != nil {
			return message.ErrorMsg{Err: err}
		}
		return deletedMsg{count: count}
	}
}

// reloadLayout rereads the layout file, updating columns, filter and sort
func (m Model) reloadLayout() (Model, tea.Cmd) {

	layout, err := LoadLayout(m.layoutPath)
	if err != nil {
		return m, message.ErrorCmd(err)
	}

	layout, err = layout.Resolve(m.ctx, m.Store)
	if err != nil {
		return m, message.ErrorCmd(err)
	}

	err = m.Store.SetView(layout.Filter, layout.Sort)
	if err != nil {
		return m, message.ErrorCmd(err)
	}
	m.Layout = layout

	var cmd1, cmd2, cmd3 tea.Cmd
	m.Grid, cmd1 = m.Grid.Update(gridpanel.LayoutMsg{Props: layout.Props(), Empty: layout.Empty})
	m.Detail, cmd2 = m.Detail.Update(detail.ColumnsMsg{Columns: layout.Columns})
	m, cmd3 = m.fetch()

	return m, tea.Batch(cmd1, cmd2, cmd3)
}
