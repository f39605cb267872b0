package entity

// Direction of an active sort.
type Direction string

const (
	None Direction = ""
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the single active sort of a grid.
// A None direction means no sort, whatever ColumnId holds.
type SortState struct {
	ColumnId  string    `yaml:"column,omitempty" toml:"column,omitempty"`
	Direction Direction `yaml:"direction,omitempty" toml:"direction,omitempty"`
}

// Active reports whether a sort applies.
func (sort SortState) Active() bool {
	return sort.Direction != None && sort.ColumnId != ""
}

// Desc reports a descending sort.
func (sort SortState) Desc() bool {
	return sort.Direction == Desc
}
