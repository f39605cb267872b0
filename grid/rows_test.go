package grid

import (
	"slices"
	"testing"

	nt "workgrid/entity"
)

func mkRows(ids ...string) []nt.Row {
	rows := make([]nt.Row, len(ids))
	for i, id := range ids {
		rows[i] = nt.Row{Id: id, Values: map[string]nt.Value{}}
	}
	return rows
}

func TestRowStore(t *testing.T) {

	rs := RowStore{}.Replace(mkRows("a", "b", "c"))

	if rs.Count() != 3 {
		t.Errorf("got count %d, want 3", rs.Count())
	}

	row, ok := rs.Get(1)
	if !ok || row.Id != "b" {
		t.Errorf("got %q %t, want b true", row.Id, ok)
	}

	for _, idx := range []int{-1, 3} {
		if _, ok := rs.Get(idx); ok {
			t.Errorf("get %d should be out of range", idx)
		}
	}

	if rs.Index("c") != 2 || rs.Index("z") != -1 {
		t.Errorf("unexpected index results")
	}

	empty := rs.Replace(nil)
	if empty.Count() != 0 || rs.Count() != 3 {
		t.Errorf("replace should not affect the receiver")
	}
}

func TestRowStoreRange(t *testing.T) {

	rs := RowStore{}.Replace(mkRows("a", "b", "c", "d"))

	tests := []struct {
		name string
		a, b int
		want []string
	}{
		{"forward", 1, 3, []string{"b", "c", "d"}},
		{"backward", 2, 0, []string{"a", "b", "c"}},
		{"single", 2, 2, []string{"c"}},
		{"clamped", -2, 9, []string{"a", "b", "c", "d"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := rs.Range(tc.a, tc.b)
			if !slices.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
