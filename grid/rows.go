package grid

import nt "workgrid/entity"

// RowStore holds the current row sequence as supplied by the caller.
// It is replaced wholesale and never patched.
type RowStore struct {
	rows []nt.Row
}

// Replace swaps in a new row sequence.
func (rs RowStore) Replace(rows []nt.Row) RowStore {
	rs.rows = rows
	return rs
}

// Get returns the row at index.
func (rs RowStore) Get(idx int) (row nt.Row, ok bool) {
	if idx < 0 || idx >= len(rs.rows) {
		return
	}
	return rs.rows[idx], true
}

// Count returns the number of rows.
func (rs RowStore) Count() int {
	return len(rs.rows)
}

// Rows returns the underlying sequence, callers must not modify it.
func (rs RowStore) Rows() []nt.Row {
	return rs.rows
}

// Ids returns row ids in row order.
func (rs RowStore) Ids() []string {
	ids := make([]string, len(rs.rows))
	for i, row := range rs.rows {
		ids[i] = row.Id
	}
	return ids
}

// Range returns the ids of rows between a and b inclusive, in either order.
// Bounds are clamped to the sequence.
func (rs RowStore) Range(a, b int) []string {

	lo, hi := min(a, b), max(a, b)
	lo = max(lo, 0)
	hi = min(hi, len(rs.rows)-1)

	var ids []string
	for i := lo; i <= hi; i++ {
		ids = append(ids, rs.rows[i].Id)
	}
	return ids
}

// Index returns the position of the first row with id, or -1.
func (rs RowStore) Index(id string) int {
	for i, row := range rs.rows {
		if row.Id == id {
			return i
		}
	}
	return -1
}

// present returns the set of ids in the sequence.
func (rs RowStore) present() map[string]bool {
	ids := make(map[string]bool, len(rs.rows))
	for _, row := range rs.rows {
		ids[row.Id] = true
	}
	return ids
}
