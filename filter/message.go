package filter

import nt "workgrid/entity"

type FilterMsg interface {
	isFilterMsg()
}

func (SizeMsg) isFilterMsg() {}
func (OpenMsg) isFilterMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

// OpenMsg starts editing from the filter in effect.
type OpenMsg struct {
	Filter nt.Filter
}
