package message

import (
	tea "charm.land/bubbletea/v2"

	nt "workgrid/entity"
)

// ErrorCmd returns a command carrying err
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// SelectionCmd returns a command reporting selected ids
func SelectionCmd(ids []string) tea.Cmd {
	return func() tea.Msg {
		return SelectionMsg{Ids: ids}
	}
}

// ActivateCmd returns a command reporting an activated row
func ActivateCmd(row nt.Row) tea.Cmd {
	return func() tea.Msg {
		return ActivateMsg{
			Id:  row.Id,
			Row: row.Map(),
		}
	}
}

// SortCmd returns a command reporting a sort change
func SortCmd(sort nt.SortState) tea.Cmd {
	return func() tea.Msg {
		return SortMsg{Sort: sort}
	}
}

// DeleteCmd returns a command requesting deletion of ids
func DeleteCmd(ids []string) tea.Cmd {
	return func() tea.Msg {
		return DeleteMsg{Ids: ids}
	}
}

// OpenFilterCmd returns a command asking to filter on field's value
func OpenFilterCmd(field, value string) tea.Cmd {
	return func() tea.Msg {
		return OpenFilterMsg{Field: field, Value: value}
	}
}

// FilterCmd returns a command carrying filter
func FilterCmd(filter nt.Filter) tea.Cmd {
	return func() tea.Msg {
		return FilterMsg{Filter: filter}
	}
}
