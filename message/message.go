// Package message holds messages passed between panels and the top-level model.
package message

import (
	nt "workgrid/entity"
)

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}

// SelectionMsg reports the grid's selection, ids in row order
type SelectionMsg struct {
	Ids []string
}

// ActivateMsg reports a row opened by click or enter
type ActivateMsg struct {
	Id  string
	Row map[string]any
}

// SortMsg reports a new sort, the rows are to be refetched in that order
type SortMsg struct {
	Sort nt.SortState
}

// DeleteMsg asks for rows to be removed from the store
type DeleteMsg struct {
	Ids []string
}

// CopiedMsg reports a row id placed on the clipboard
type CopiedMsg struct {
	Id string
}

// ReloadMsg asks for rows to be fetched again
type ReloadMsg struct{}

// OpenFilterMsg asks for the filter dialog with a field = value term added
type OpenFilterMsg struct {
	Field string
	Value string
}

// FilterMsg carries a filter to apply to the store's view
type FilterMsg struct {
	Filter nt.Filter
}
