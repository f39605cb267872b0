package gridpanel

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/pkg/errors"

	"workgrid/grid"
	"workgrid/message"
)

// commands turns grid effects into bubbletea commands.
func (pnl Panel) commands(effects []grid.Effect) tea.Cmd {

	var cmds []tea.Cmd
	for _, effect := range effects {
		switch eff := effect.(type) {

		case grid.SelectionChanged:
			cmds = append(cmds, message.SelectionCmd(eff.Ids))

		case grid.RowActivated:
			row, ok := pnl.grid.Row(pnl.grid.Index(eff.Id))
			if !ok {
				continue
			}
			cmds = append(cmds, message.ActivateCmd(row))

		case grid.SortChanged:
			cmds = append(cmds, message.SortCmd(eff.Sort))

		case grid.DragStarted:
			pnl.logger.Info(pnl.ctx, "drag started", "anchor", eff.Anchor, "mode", eff.Mode.String())

		case grid.DragEnded:
			pnl.logger.Info(pnl.ctx, "drag ended", "selected", len(pnl.grid.SelectedIds()))

		case grid.ScheduleTimer:
			cmds = append(cmds, tickCmd(eff.Token, eff.After))
		}
	}

	return tea.Batch(cmds...)
}

func tickCmd(token uint64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(at time.Time) tea.Msg {
		return tickMsg{token: token, at: at}
	})
}

func copyCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(id)
		if err != nil {
			return message.ErrorMsg{Err: errors.Wrapf(err, "failed to copy %s", id)}
		}
		return message.CopiedMsg{Id: id}
	}
}
