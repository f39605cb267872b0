// Package html renders a grid snapshot as a static html page.
package html

import (
	"embed"
	"fmt"
	"io"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/google/safehtml/uncheckedconversions"
	"github.com/pkg/errors"

	nt "workgrid/entity"
	"workgrid/grid"
)

//go:embed templates/*
var templateFS embed.FS

// Renderer renders grids to html
type Renderer struct {
	gridTemplate *template.Template
}

// NewRenderer parses the embedded template
func NewRenderer() (*Renderer, error) {

	trustedFS := template.TrustedFSFromEmbed(templateFS)

	gridTemplate, err := template.New("grid.html").ParseFS(trustedFS, "templates/grid.html")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse grid template")
	}

	return &Renderer{gridTemplate: gridTemplate}, nil
}

// Render writes grd as a page titled title
func (rdr *Renderer) Render(w io.Writer, grd grid.Grid, title, empty string) error {

	err := rdr.gridTemplate.Execute(w, newPage(grd, title, empty))
	return errors.Wrapf(err, "failed to render grid")
}

type page struct {
	Title         string
	Sheet         safehtml.StyleSheet
	Selectable    bool
	AllSelected   bool
	SomeSelected  bool
	Headers       []header
	Rows          []row
	Empty         string
	Loading       bool
	Count         int
	SelectedCount int
}

type header struct {
	Label string
	Arrow string
	Class string
}

type row struct {
	Selected bool
	Active   bool
	Cells    []cell
}

type cell struct {
	Text  string
	Class string
}

func newPage(grd grid.Grid, title, empty string) page {

	props := grd.Props()

	var shown []nt.Column
	for _, col := range grd.Columns() {
		if !col.Hidden {
			shown = append(shown, col)
		}
	}

	if empty == "" {
		empty = "No rows"
	}

	pg := page{
		Title:         title,
		Sheet:         sheet(shown, props.Selectable),
		Selectable:    props.Selectable,
		AllSelected:   grd.AllSelected(),
		SomeSelected:  grd.SomeSelected(),
		Empty:         empty,
		Loading:       grd.Loading(),
		Count:         len(grd.Rows()),
		SelectedCount: len(grd.SelectedIds()),
	}

	sort := grd.Sort()
	for _, col := range shown {
		hdr := header{
			Label: col.Heading(),
			Class: class(col, col.HeaderAlign),
		}
		if sort.Active() && sort.ColumnId == col.Id {
			hdr.Arrow = string(sort.Direction)
		}
		pg.Headers = append(pg.Headers, hdr)
	}

	for i, rec := range grd.Rows() {
		r := row{
			Selected: grd.Selected(rec.Id),
			Active:   i == grd.ActiveRowIndex(),
		}
		for _, col := range shown {
			r.Cells = append(r.Cells, cell{
				Text:  col.Display(rec),
				Class: class(col, col.CellAlign),
			})
		}
		pg.Rows = append(pg.Rows, r)
	}

	return pg
}

// class names come only from fixed sets
func class(col nt.Column, align nt.Align) string {

	classes := []string{}
	switch col.Pinned {
	case nt.PinLeft:
		classes = append(classes, "pin-left")
	case nt.PinRight:
		classes = append(classes, "pin-right")
	}

	switch align {
	case nt.AlignCenter:
		classes = append(classes, "center")
	case nt.AlignEnd:
		classes = append(classes, "end")
	default:
		classes = append(classes, "start")
	}
	return strings.Join(classes, " ")
}

// sheet positions pinned columns, built only from integers.
func sheet(shown []nt.Column, selectable bool) safehtml.StyleSheet {

	offsets := grid.PinOffsets(shown, selectable)

	var css strings.Builder
	first := 1
	if selectable {
		fmt.Fprintf(&css, "tr > :nth-child(1) { position: sticky; left: 0; z-index: 1; width: %dpx; min-width: %dpx; }\n",
			grid.SelectorWidth, grid.SelectorWidth)
		first = 2
	}

	for i, col := range shown {
		offset, ok := offsets[col.Id]
		if !ok {
			continue
		}

		side := "left"
		if col.Pinned == nt.PinRight {
			side = "right"
		}

		width := col.Width
		if width <= 0 {
			width = grid.DefaultPinWidth
		}

		fmt.Fprintf(&css, "tr > :nth-child(%d) { position: sticky; %s: %dpx; z-index: 1; width: %dpx; min-width: %dpx; box-sizing: border-box; }\n",
			first+i, side, offset, width, width)
	}

	return uncheckedconversions.StyleSheetFromStringKnownToSatisfyTypeContract(css.String())
}
