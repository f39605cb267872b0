package workgrid

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/bubbles/key"

	"workgrid/style"
)

// RenderFooter renders position, selection and source on one line and key
// help on the next.
func RenderFooter(current, total, selected int, name, status string, help []key.Binding, width int) string {

	left := fmt.Sprintf("%d/%d", current, total)
	if selected > 0 {
		left += fmt.Sprintf(" · %d selected", selected)
	}

	right := name
	if status != "" {
		right = status + " · " + name
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	info := style.FooterStyle.Render(left + strings.Repeat(" ", padding) + right)

	var hints []string
	for _, binding := range help {
		h := binding.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	keys := style.MutedStyle.Render(strings.Join(hints, " · "))

	return info + "\n" + keys
}
