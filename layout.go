package workgrid

import (
	"context"
	"time"

	"github.com/pkg/errors"

	nt "workgrid/entity"
	"workgrid/grid"
	"workgrid/util"
)

// Layout is the user editable description of a grid, yaml or toml.
type Layout struct {
	Columns       []nt.Column  `yaml:"columns,omitempty" toml:"columns,omitempty"`
	Filter        nt.Filter    `yaml:"filter,omitempty" toml:"filter,omitempty"`
	Sort          nt.SortState `yaml:"sort,omitempty" toml:"sort,omitempty"`
	Selectable    bool         `yaml:"selectable" toml:"selectable"`
	SelectionMode bool         `yaml:"selection_mode,omitempty" toml:"selection_mode,omitempty"`
	DelayMs       int          `yaml:"delay_ms,omitempty" toml:"delay_ms,omitempty"`
	MinDisplayMs  int          `yaml:"min_display_ms,omitempty" toml:"min_display_ms,omitempty"`
	Empty         string       `yaml:"empty,omitempty" toml:"empty,omitempty"`
}

// LoadLayout reads a layout file.
func LoadLayout(path string) (layout Layout, err error) {

	layout = Layout{Selectable: true}
	err = util.LoadConfig(&layout, path)
	return
}

// Resolve fills in columns from the store when the layout names none, and
// checks that named columns exist.
func (layout Layout) Resolve(ctx context.Context, store Store) (resolved Layout, err error) {

	resolved = layout

	available, err := store.Columns(ctx)
	if err != nil {
		return
	}

	if len(layout.Columns) == 0 {
		resolved.Columns = available
		return
	}

	known := map[string]bool{}
	for _, col := range available {
		known[col.Id] = true
	}
	for _, col := range layout.Columns {
		if col.Render == nil && !known[col.Id] {
			err = errors.Errorf("layout column %q not found in %s", col.Id, store.Name())
			return
		}
	}
	return
}

// Props returns grid props for the layout.
func (layout Layout) Props() grid.Props {
	return grid.Props{
		Columns:           layout.Columns,
		Selectable:        layout.Selectable,
		SelectionMode:     layout.SelectionMode,
		LoadingDelay:      time.Duration(layout.DelayMs) * time.Millisecond,
		LoadingMinDisplay: time.Duration(layout.MinDisplayMs) * time.Millisecond,
		InitialSort:       layout.Sort,
	}
}
