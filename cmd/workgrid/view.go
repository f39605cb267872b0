package main

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"workgrid"
	"workgrid/util"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Browse rows interactively",
		Long: `Browse rows interactively, falling back to a plain table when
stdout is not a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runView,
	}
}

func runView(cmd *cobra.Command, args []string) (err error) {

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return runPrint(cmd, args)
	}

	ctx, lgr, logFile := logger(context.Background())
	defer util.CloseLog(logFile)

	layout, err := loadLayout()
	if err != nil {
		return
	}

	store, err := openStore(ctx, args, lgr)
	if err != nil {
		return
	}
	defer store.Close()

	model, err := workgrid.NewModel(ctx, store, layout, opts.layout, lgr)
	if err != nil {
		return
	}

	lgr.Info(ctx, "starting view", "store", store.Name())

	_, err = tea.NewProgram(model).Run()
	err = errors.Wrapf(err, "failed to run view")
	return
}
