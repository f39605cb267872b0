package gridpanel

import (
	"time"

	nt "workgrid/entity"
	"workgrid/grid"
)

type GridMsg interface {
	isGridMsg()
}

func (SizeMsg) isGridMsg()    {}
func (RowsMsg) isGridMsg()    {}
func (LoadingMsg) isGridMsg() {}
func (LayoutMsg) isGridMsg()  {}
func (tickMsg) isGridMsg()    {}

type SizeMsg struct {
	Width  int
	Height int
}

// RowsMsg delivers a fresh row sequence and ends loading.
type RowsMsg struct {
	Rows []nt.Row
}

// LoadingMsg marks rows as being fetched.
type LoadingMsg struct{}

// LayoutMsg replaces columns, selection options, loading timings, sort
// and empty text, keeping the rows on hand.
type LayoutMsg struct {
	Props grid.Props
	Empty string
}

type tickMsg struct {
	token uint64
	at    time.Time
}
