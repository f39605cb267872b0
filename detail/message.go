package detail

import nt "workgrid/entity"

type DetailMsg interface {
	isDetailMsg()
}

func (SizeMsg) isDetailMsg()    {}
func (RowMsg) isDetailMsg()     {}
func (ColumnsMsg) isDetailMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

// RowMsg carries the activated row's raw values.
type RowMsg struct {
	Id  string
	Row map[string]any
}

type ColumnsMsg struct {
	Columns []nt.Column
}
