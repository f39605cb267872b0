package workgrid

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	nt "workgrid/entity"
	"workgrid/message"
)

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, msg string, kv ...any)             {}
func (nopLogger) Error(ctx context.Context, msg string, err error, kv ...any) {}

type fakeStore struct {
	rows    []nt.Row
	filter  nt.Filter
	sort    nt.SortState
	deleted []string
}

func (fs *fakeStore) Name() string { return "fake" }

func (fs *fakeStore) SetView(filter nt.Filter, sort nt.SortState) error {
	fs.filter = filter
	fs.sort = sort
	return nil
}

func (fs *fakeStore) Columns(ctx context.Context) ([]nt.Column, error) {
	return []nt.Column{{Id: "id"}, {Id: "client", Label: "Client"}, {Id: "amount", Sortable: true}}, nil
}

func (fs *fakeStore) Rows(ctx context.Context) ([]nt.Row, error) {
	var rows []nt.Row
	for _, row := range fs.rows {
		if !slices.Contains(fs.deleted, row.Id) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (fs *fakeStore) Delete(ctx context.Context, ids []string) (int, error) {
	fs.deleted = append(fs.deleted, ids...)
	return len(ids), nil
}

func (fs *fakeStore) Close() error { return nil }

func newStore() *fakeStore {
	store := &fakeStore{}
	for _, id := range []string{"inv-1", "inv-2", "inv-3"} {
		store.rows = append(store.rows, nt.Row{Id: id, Values: map[string]nt.Value{
			"client": {Raw: "client " + id},
			"amount": {Raw: 100},
		}})
	}
	return store
}

// run feeds msg to the model along with everything its commands produce.
func run(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()

	queue := slices.Clone(msgs)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, cmd := range batch {
				if cmd != nil {
					queue = append(queue, cmd())
				}
			}
			continue
		}

		next, cmd := m.Update(msg)
		m = next.(Model)
		if cmd != nil {
			queue = append(queue, cmd())
		}
	}
	return m
}

func newModel(t *testing.T, store Store) Model {
	t.Helper()

	layout := Layout{Selectable: true, DelayMs: 1, MinDisplayMs: 1}
	m, err := NewModel(context.Background(), store, layout, "", nopLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return run(t, m, tea.WindowSizeMsg{Width: 100, Height: 20}, m.Init()())
}

func TestLoadRows(t *testing.T) {

	m := newModel(t, newStore())

	if got := len(m.Grid.Grid().Rows()); got != 3 {
		t.Fatalf("got %d rows, want 3", got)
	}
	if len(m.Layout.Columns) != 3 {
		t.Errorf("expected columns from store, got %v", m.Layout.Columns)
	}
	if !strings.Contains(m.Grid.Render(), "client inv-2") {
		t.Errorf("render missing rows:\n%s", m.Grid.Render())
	}
}

func TestSortRefetches(t *testing.T) {

	store := newStore()
	m := newModel(t, store)

	want := nt.SortState{ColumnId: "amount", Direction: nt.Desc}
	m = run(t, m, message.SortMsg{Sort: want})

	if store.sort != want || m.Layout.Sort != want {
		t.Errorf("got store %+v layout %+v, want %+v", store.sort, m.Layout.Sort, want)
	}
}

func TestDeleteSelected(t *testing.T) {

	store := newStore()
	m := newModel(t, store)

	m = run(t, m,
		tea.KeyPressMsg{Code: tea.KeyDown},
		tea.KeyPressMsg{Code: ' ', Text: " "},
		tea.KeyPressMsg{Code: 'd', Text: "d"},
	)

	if !slices.Equal(store.deleted, []string{"inv-1"}) {
		t.Errorf("got deleted %v, want [inv-1]", store.deleted)
	}
	if got := len(m.Grid.Grid().Rows()); got != 2 {
		t.Errorf("got %d rows after delete, want 2", got)
	}
	if m.selected != 0 {
		t.Errorf("deleted rows should leave the selection, got %d", m.selected)
	}
	if m.status != "deleted 1" {
		t.Errorf("got status %q", m.status)
	}
}

func TestActivateOpensDetail(t *testing.T) {

	m := newModel(t, newStore())

	m = run(t, m, tea.KeyPressMsg{Code: tea.KeyDown}, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.CurrentScreen != DetailScreen || m.Detail.Id() != "inv-1" {
		t.Fatalf("got screen %d id %q", m.CurrentScreen, m.Detail.Id())
	}
	if !strings.Contains(m.Detail.Render(), `"client": "client inv-1"`) {
		t.Errorf("detail missing row:\n%s", m.Detail.Render())
	}

	m = run(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.CurrentScreen != GridScreen {
		t.Errorf("esc should return to the grid")
	}
}

func TestFilterDialog(t *testing.T) {

	store := newStore()
	m := newModel(t, store)

	m = run(t, m, tea.KeyPressMsg{Code: '/', Text: "/"})
	if m.CurrentScreen != FilterScreen {
		t.Fatalf("got screen %d, want filter", m.CurrentScreen)
	}

	var typed []tea.Msg
	for _, r := range "amount>50" {
		typed = append(typed, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	m = run(t, m, typed...)
	m = run(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.CurrentScreen != GridScreen {
		t.Errorf("applying should return to the grid")
	}
	if got, _ := store.filter.Where(); got != "amount>50" {
		t.Errorf("got store filter %q, want amount>50", got)
	}
	if m.status != "where amount>50" {
		t.Errorf("got status %q", m.status)
	}
}

func TestFilterOnCell(t *testing.T) {

	store := newStore()
	m := newModel(t, store)

	m = run(t, m,
		tea.KeyPressMsg{Code: tea.KeyDown},
		tea.KeyPressMsg{Code: 'l', Text: "l"},
		tea.KeyPressMsg{Code: 'f', Text: "f"},
	)
	if m.CurrentScreen != FilterScreen || m.Filter.Expr() != "client=client inv-1" {
		t.Fatalf("got screen %d expr %q", m.CurrentScreen, m.Filter.Expr())
	}

	m = run(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.CurrentScreen != GridScreen || !store.filter.Empty() {
		t.Errorf("esc should cancel without filtering")
	}
}

func TestReloadLayout(t *testing.T) {

	path := filepath.Join(t.TempDir(), "layout.yaml")
	err := os.WriteFile(path, []byte("sort:\n  column: amount\n  direction: desc\nselectable: false\nempty: Nothing\n"), 0644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := newStore()
	m, err := NewModel(context.Background(), store, Layout{Selectable: true}, path, nopLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m = run(t, m, tea.WindowSizeMsg{Width: 100, Height: 20}, m.Init()())

	m = run(t, m, tea.KeyPressMsg{Code: 'r', Text: "r"})

	want := nt.SortState{ColumnId: "amount", Direction: nt.Desc}
	if store.sort != want {
		t.Errorf("got store sort %+v, want %+v", store.sort, want)
	}
	if got := m.Grid.Grid().Sort(); got != want {
		t.Errorf("got grid sort %+v, want %+v", got, want)
	}
	if m.Grid.Grid().Props().Selectable {
		t.Errorf("reloaded layout should turn selection off")
	}
	if got := len(m.Grid.Grid().Rows()); got != 3 {
		t.Errorf("got %d rows after reload, want 3", got)
	}
}
