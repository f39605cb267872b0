// Package plain writes rows for non-terminal output.
package plain

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/pkg/errors"

	nt "workgrid/entity"
)

const gap = "  "

// Json writes rows as an indented array of objects, one key per shown column.
func Json(w io.Writer, columns []nt.Column, rows []nt.Row) error {

	shown := visible(columns)

	objs := make([]map[string]any, len(rows))
	for i, row := range rows {
		obj := map[string]any{"id": row.Id}
		for _, col := range shown {
			if col.Id != "id" {
				obj[col.Id] = row.Get(col.Id).Raw
			}
		}
		objs[i] = obj
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(objs)
	return errors.Wrapf(err, "failed to encode %d rows", len(rows))
}

// Table writes an aligned table showing full cell content.
func Table(w io.Writer, columns []nt.Column, rows []nt.Row) (err error) {

	shown := visible(columns)
	if len(shown) == 0 {
		_, err = fmt.Fprintln(w, "(0 rows)")
		return errors.Wrapf(err, "failed to write table")
	}

	cells := make([][]string, len(rows))
	widths := make([]int, len(shown))
	for i, col := range shown {
		widths[i] = lipgloss.Width(col.Heading())
	}
	for i, row := range rows {
		cells[i] = make([]string, len(shown))
		for j, col := range shown {
			text := strings.ReplaceAll(col.Display(row), "\n", " ")
			cells[i][j] = text
			widths[j] = max(widths[j], lipgloss.Width(text))
		}
	}

	var out strings.Builder

	for i, col := range shown {
		out.WriteString(sep(i))
		out.WriteString(pad(col.Heading(), widths[i], col.HeaderAlign))
	}
	out.WriteString("\n")

	for i, width := range widths {
		out.WriteString(sep(i))
		out.WriteString(strings.Repeat("─", width))
	}
	out.WriteString("\n")

	for _, line := range cells {
		for j, text := range line {
			out.WriteString(sep(j))
			out.WriteString(pad(text, widths[j], shown[j].CellAlign))
		}
		out.WriteString("\n")
	}

	fmt.Fprintf(&out, "\n(%d rows)\n", len(rows))

	_, err = io.WriteString(w, trimLines(out.String()))
	return errors.Wrapf(err, "failed to write table")
}

// unexported

func visible(columns []nt.Column) (shown []nt.Column) {
	for _, col := range columns {
		if !col.Hidden {
			shown = append(shown, col)
		}
	}
	return
}

func sep(i int) string {
	if i == 0 {
		return ""
	}
	return gap
}

func pad(text string, width int, align nt.Align) string {

	fill := width - lipgloss.Width(text)
	if fill <= 0 {
		return text
	}

	switch align {
	case nt.AlignEnd:
		return strings.Repeat(" ", fill) + text
	case nt.AlignCenter:
		left := fill / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", fill-left)
	}
	return text + strings.Repeat(" ", fill)
}

func trimLines(text string) string {

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
