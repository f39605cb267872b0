// Package detail shows one row as indented json.
package detail

import (
	"encoding/json"
	"maps"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	nt "workgrid/entity"
	"workgrid/style"
)

// DetailPanel displays the full record of an activated row
type DetailPanel struct {
	columns []nt.Column // For json field expansion and labels

	id           string
	row          map[string]any
	contentLines []string // Rendered content split into lines (cached)

	Width        int
	height       int
	Focused      bool
	ScrollOffset int
}

func NewDetailPanel(columns []nt.Column) DetailPanel {
	return DetailPanel{
		columns: columns,
	}
}

// Id returns the id of the row shown.
func (pnl DetailPanel) Id() string {
	return pnl.id
}

func (pnl DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd) {

	switch msg := msg.(type) {

	case RowMsg:
		pnl.id = msg.Id
		pnl.row = msg.Row
		pnl.computeContentLines()
		pnl.ScrollOffset = 0

	case SizeMsg:
		pnl.Width = msg.Width
		pnl.height = msg.Height
		pnl.ScrollOffset = min(pnl.ScrollOffset, pnl.maxScroll())

	case ColumnsMsg:
		pnl.columns = msg.Columns
		if pnl.row != nil {
			pnl.computeContentLines()
		}

	case tea.KeyPressMsg:
		if !pnl.Focused {
			return pnl, nil
		}

		switch msg.String() {
		case "up", "k":
			pnl.ScrollOffset = max(pnl.ScrollOffset-1, 0)

		case "down", "j":
			pnl.ScrollOffset = min(pnl.ScrollOffset+1, pnl.maxScroll())

		case "pgup", "ctrl+u":
			pnl.ScrollOffset = max(pnl.ScrollOffset-pnl.height, 0)

		case "pgdown", "ctrl+d":
			pnl.ScrollOffset = min(pnl.ScrollOffset+pnl.height, pnl.maxScroll())
		}
	}

	return pnl, nil
}

// View renders the detail view
func (pnl DetailPanel) View() tea.View {
	return tea.NewView(pnl.Render())
}

// Render returns the visible portion of the record
func (pnl DetailPanel) Render() string {

	if pnl.contentLines == nil {
		return style.MutedStyle.Render("No row open")
	}

	visibleLines := pnl.contentLines[pnl.ScrollOffset:]
	if pnl.height > 0 && len(visibleLines) > pnl.height {
		visibleLines = visibleLines[:pnl.height]
	}

	return strings.Join(visibleLines, "\n")
}

// unexported

func (pnl DetailPanel) maxScroll() int {
	if pnl.height <= 0 {
		return 0
	}
	return max(len(pnl.contentLines)-pnl.height, 0)
}

// computeContentLines renders the row as json and splits into lines
func (pnl *DetailPanel) computeContentLines() {

	if pnl.row == nil {
		pnl.contentLines = nil
		return
	}

	data, err := expandJson(pnl.row, pnl.columns)
	if err != nil {
		pnl.contentLines = []string{"Error expanding json fields: " + err.Error()}
		return
	}

	var buf strings.Builder
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	err = encoder.Encode(data)
	if err != nil {
		pnl.contentLines = []string{"Error pretty-printing json: " + err.Error()}
		return
	}

	content := strings.TrimSuffix(buf.String(), "\n")
	pnl.contentLines = strings.Split(content, "\n")
}

// expandJson decodes json held in string values of columns flagged Json,
// and formats timestamps per their column.
func expandJson(data map[string]any, columns []nt.Column) (map[string]any, error) {

	byId := make(map[string]nt.Column)
	for _, col := range columns {
		byId[col.Id] = col
	}

	result := make(map[string]any, len(data))
	maps.Copy(result, data)

	for key, val := range result {
		col, ok := byId[key]
		if !ok {
			continue
		}

		if ts, isTime := val.(time.Time); isTime && col.Format != "" {
			result[key] = ts.Format(col.Format)
			continue
		}

		if !col.Json {
			continue
		}

		str, ok := val.(string)
		if !ok {
			return nil, errors.Errorf("field %q marked as json but is not a string", key)
		}
		if str == "" {
			continue
		}

		var parsed any
		err := json.Unmarshal([]byte(str), &parsed)
		if err == nil {
			result[key] = parsed
		}
	}

	return result, nil
}
