package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"workgrid/render/html"
	"workgrid/render/plain"
	"workgrid/util"
)

var asJson bool

func newPrintCmd() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "print [file]",
		Short: "Print rows as an aligned table",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPrint,
	}
	cmd.Flags().BoolVar(&asJson, "json", false, "print a json array instead")

	return cmd
}

func newHtmlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "html [file]",
		Short: "Write rows as a static html page to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHtml,
	}
}

func runPrint(cmd *cobra.Command, args []string) (err error) {

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

	grd, err := snapshot(ctx, store, layout)
	if err != nil {
		return
	}

	if asJson {
		return plain.Json(os.Stdout, grd.Columns(), grd.Rows())
	}
	return plain.Table(os.Stdout, grd.Columns(), grd.Rows())
}

func runHtml(cmd *cobra.Command, args []string) (err error) {

	ctx, lgr, logFile := logger(context.Background())
	defer util.CloseLog(logFile)

	rdr, err := html.NewRenderer()
	if err != nil {
		return
	}

	layout, err := loadLayout()
	if err != nil {
		return
	}

	store, err := openStore(ctx, args, lgr)
	if err != nil {
		return
	}
	defer store.Close()

	grd, err := snapshot(ctx, store, layout)
	if err != nil {
		return
	}

	err = rdr.Render(os.Stdout, grd, store.Name(), layout.Empty)
	if err != nil {
		return
	}

	lgr.Info(ctx, "wrote html", "rows", len(grd.Rows()))
	return
}
