// Package workgrid is a terminal data grid over a pluggable row store:
// sortable, selectable, drag-selectable rows with a detail view.
package workgrid

import (
	"context"

	nt "workgrid/entity"
)

// Store specifies a backing datastore.
type Store interface {
	// Name returns the name of the data source
	Name() string
	// SetView sets the filter and sort applied by Rows
	SetView(filter nt.Filter, sort nt.SortState) (err error)
	// Columns describes the fields rows carry
	Columns(ctx context.Context) (columns []nt.Column, err error)
	// Rows returns the current view
	Rows(ctx context.Context) (rows []nt.Row, err error)
	// Delete removes rows by id
	Delete(ctx context.Context, ids []string) (count int, err error)
	// Close releases the store
	Close() error
}
