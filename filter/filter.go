package filter

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nt "workgrid/entity"
	"workgrid/message"
	"workgrid/style"
)

const (
	dialogWidth = 64
	helpText    = "enter: apply  ctrl+u: clear  esc: cancel"
)

var opTokens = map[nt.FilterOp]string{
	nt.Eq:       "=",
	nt.Ne:       "!=",
	nt.Gt:       ">",
	nt.Gte:      ">=",
	nt.Lt:       "<",
	nt.Lte:      "<=",
	nt.Contains: "contains",
	nt.Match:    "matches",
}

// FilterPanel is a dialog editing the filter as a where expression,
// ex: "status=open,amount>=100,client~ac".
type FilterPanel struct {
	expr        []rune
	cursor      int
	errorString string

	width  int
	height int

	ctx    context.Context
	logger nt.Logger
}

func NewFilterPanel(ctx context.Context, lgr nt.Logger) FilterPanel {
	return FilterPanel{
		ctx:    ctx,
		logger: lgr,
	}
}

// Expr returns the expression being edited.
func (pnl FilterPanel) Expr() string {
	return string(pnl.expr)
}

func (pnl FilterPanel) Update(msg tea.Msg) (FilterPanel, tea.Cmd) {

	switch msg := msg.(type) {

	case OpenMsg:
		expr, ok := msg.Filter.Where()
		if !ok {
			pnl.logger.Info(pnl.ctx, "filter has no where form, starting over")
		}
		pnl = pnl.set(expr)

	case message.OpenFilterMsg:
		term := msg.Field + "=" + msg.Value
		expr := strings.TrimSpace(pnl.Expr())
		if expr != "" {
			term = expr + "," + term
		}
		pnl = pnl.set(term)

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

	case tea.KeyPressMsg:
		return pnl.keyPress(msg)
	}

	return pnl, nil
}

func (pnl FilterPanel) View() tea.View {
	return tea.NewView(pnl.Render())
}

// Render centers the dialog in the panel's area.
func (pnl FilterPanel) Render() string {

	var content strings.Builder

	content.WriteString("Where: ")
	content.WriteString(string(pnl.expr[:pnl.cursor]))
	cursor := " "
	rest := ""
	if pnl.cursor < len(pnl.expr) {
		cursor = string(pnl.expr[pnl.cursor])
		rest = string(pnl.expr[pnl.cursor+1:])
	}
	content.WriteString(lipgloss.NewStyle().Reverse(true).Render(cursor))
	content.WriteString(rest)
	content.WriteString("\n")

	filter, err := nt.ParseWhere(pnl.Expr())
	switch {
	case pnl.errorString != "":
		content.WriteString("\n" + style.ErrorStyle.Render(pnl.errorString) + "\n")
	case err == nil && len(filter.Children) > 0:
		content.WriteString("\n")
		for _, term := range filter.Children {
			content.WriteString(fmt.Sprintf("  %s %s %v\n", term.Field, opTokens[term.Op], term.Value))
		}
	}

	content.WriteString("\n" + style.MutedStyle.Render(helpText))

	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Width(dialogWidth).
		Render(content.String())

	if pnl.width == 0 || pnl.height == 0 {
		return dialog
	}
	return lipgloss.Place(pnl.width, pnl.height, lipgloss.Center, lipgloss.Center, dialog)
}

// unexported

func (pnl FilterPanel) set(expr string) FilterPanel {

	pnl.expr = []rune(expr)
	pnl.cursor = len(pnl.expr)
	pnl.errorString = ""
	return pnl
}

func (pnl FilterPanel) keyPress(msg tea.KeyPressMsg) (FilterPanel, tea.Cmd) {

	switch msg.String() {
	case "enter":
		filter, err := nt.ParseWhere(pnl.Expr())
		if err != nil {
			pnl.errorString = err.Error()
			return pnl, nil
		}
		pnl.logger.Info(pnl.ctx, "applying filter", "where", pnl.Expr())
		return pnl, message.FilterCmd(filter)

	case "left":
		pnl.cursor = max(pnl.cursor-1, 0)

	case "right":
		pnl.cursor = min(pnl.cursor+1, len(pnl.expr))

	case "home", "ctrl+a":
		pnl.cursor = 0

	case "end", "ctrl+e":
		pnl.cursor = len(pnl.expr)

	case "backspace":
		if pnl.cursor > 0 {
			pnl.expr = slices.Delete(slices.Clone(pnl.expr), pnl.cursor-1, pnl.cursor)
			pnl.cursor--
		}

	case "delete":
		if pnl.cursor < len(pnl.expr) {
			pnl.expr = slices.Delete(slices.Clone(pnl.expr), pnl.cursor, pnl.cursor+1)
		}

	case "ctrl+u":
		pnl = pnl.set("")

	default:
		if msg.Text == "" {
			return pnl, nil
		}
		text := []rune(msg.Text)
		pnl.expr = slices.Insert(slices.Clone(pnl.expr), pnl.cursor, text...)
		pnl.cursor += len(text)
	}

	pnl.errorString = ""
	return pnl, nil
}
