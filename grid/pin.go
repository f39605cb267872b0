package grid

import nt "workgrid/entity"

const (
	// SelectorWidth is the width of the checkbox column shown when selectable.
	SelectorWidth = 40
	// DefaultPinWidth stands in for pinned columns without a width hint.
	DefaultPinWidth = 120
)

// PinOffsets computes the fixed offset of each pinned column.
// Left pinned columns stack left to right after the selector column and
// right pinned columns stack right to left from the edge, both in
// declaration order. A repeated id takes the offset of its last occurrence.
func PinOffsets(columns []nt.Column, selectable bool) map[string]int {

	byIdx := make([]int, len(columns))

	left := 0
	if selectable {
		left = SelectorWidth
	}
	for i, col := range columns {
		if col.Pinned == nt.PinLeft {
			byIdx[i] = left
			left += pinWidth(col)
		}
	}

	right := 0
	for i := len(columns) - 1; i >= 0; i-- {
		if columns[i].Pinned == nt.PinRight {
			byIdx[i] = right
			right += pinWidth(columns[i])
		}
	}

	offsets := map[string]int{}
	for i, col := range columns {
		if col.Pinned == nt.PinLeft || col.Pinned == nt.PinRight {
			offsets[col.Id] = byIdx[i]
		}
	}
	return offsets
}

// unexported

func pinWidth(col nt.Column) int {
	if col.Width > 0 {
		return col.Width
	}
	return DefaultPinWidth
}
