package entity

// Align positions content within a header or cell.
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// Pin fixes a column to one side regardless of horizontal scroll.
type Pin string

const (
	PinNone  Pin = ""
	PinLeft  Pin = "left"
	PinRight Pin = "right"
)

// Column describes one grid column.
// Ids are expected to be unique within a grid.
type Column struct {
	Id          string `yaml:"id" toml:"id"`
	Label       string `yaml:"label,omitempty" toml:"label,omitempty"`
	Width       int    `yaml:"width,omitempty" toml:"width,omitempty"`
	Sortable    bool   `yaml:"sortable,omitempty" toml:"sortable,omitempty"`
	HeaderAlign Align  `yaml:"header_align,omitempty" toml:"header_align,omitempty"`
	CellAlign   Align  `yaml:"cell_align,omitempty" toml:"cell_align,omitempty"`
	Pinned      Pin    `yaml:"pinned,omitempty" toml:"pinned,omitempty"`
	Interactive bool   `yaml:"interactive,omitempty" toml:"interactive,omitempty"`
	Format      string `yaml:"format,omitempty" toml:"format,omitempty"`
	Hidden      bool   `yaml:"hidden,omitempty" toml:"hidden,omitempty"`
	Json        bool   `yaml:"json,omitempty" toml:"json,omitempty"` // Expanded in the detail view

	// Render overrides the display of a cell, Format and the raw value are
	// used when nil.
	Render func(Row) string `yaml:"-" toml:"-"`
}

// Display returns the text shown in this column's cell for row.
func (col Column) Display(row Row) string {

	if col.Render != nil {
		return col.Render(row)
	}

	val := row.Get(col.Id)
	if col.Id == "id" && val.Raw == nil {
		return row.Id
	}

	if col.Format != "" {
		t, err := val.Time()
		if err == nil {
			return t.Format(col.Format)
		}
	}
	return val.String()
}

// Heading returns the label, falling back to the id.
func (col Column) Heading() string {
	if col.Label != "" {
		return col.Label
	}
	return col.Id
}
