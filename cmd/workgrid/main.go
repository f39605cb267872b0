package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/clarktrimble/sabot"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"workgrid"
	nt "workgrid/entity"
	"workgrid/grid"
	"workgrid/store/duck"
	"workgrid/store/pg"
	"workgrid/util"
)

const (
	logMode = 0644
	maxLen  = 999
)

type options struct {
	layout  string
	where   string
	sort    string
	pgUrl   string
	table   string
	db      string
	logFile string
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "workgrid",
	Short: "A terminal data grid over csv, json, parquet or postgres tables",
	Long: `workgrid shows rows from a file loaded into duckdb, or from a postgres
table, as a sortable, selectable grid.

Columns, filter and sort come from an optional yaml or toml layout and
can be overridden with --where and --sort.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func init() {

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.layout, "layout", "", "yaml or toml layout file")
	flags.StringVar(&opts.where, "where", "", `filter terms, ex: "status=open,amount>100"`)
	flags.StringVar(&opts.sort, "sort", "", `sort column, ex: "amount" or "amount:desc"`)
	flags.StringVar(&opts.pgUrl, "pg", "", "postgres connection url, rows come from --table")
	flags.StringVar(&opts.table, "table", "invoices", "postgres table")
	flags.StringVar(&opts.db, "db", "", "duckdb database file, in-memory when empty")
	flags.StringVar(&opts.logFile, "log", "workgrid.log", "log file")

	rootCmd.AddCommand(
		newViewCmd(),
		newPrintCmd(),
		newHtmlCmd(),
		newSampleCmd(),
	)
}

// unexported

func logger(ctx context.Context) (context.Context, *sabot.Sabot, io.Writer) {

	logFile := util.OpenLog(opts.logFile, logMode)
	lgr := &sabot.Sabot{Writer: logFile, MaxLen: maxLen}
	ctx = lgr.WithFields(ctx, "run_id", util.NewID())

	return ctx, lgr, logFile
}

func openStore(ctx context.Context, args []string, lgr nt.Logger) (store workgrid.Store, err error) {

	if opts.pgUrl != "" {
		store, err = pg.New(ctx, opts.pgUrl, opts.table, lgr)
		return
	}

	if len(args) != 1 {
		err = errors.Errorf("need a file to load or --pg")
		return
	}

	dk, err := duck.New(opts.db, lgr)
	if err != nil {
		return
	}

	err = dk.Load(ctx, args[0])
	if err != nil {
		dk.Close()
		return
	}

	store = dk
	return
}

// loadLayout reads the layout file, if any, and applies flag overrides.
func loadLayout() (layout workgrid.Layout, err error) {

	layout = workgrid.Layout{Selectable: true}
	if opts.layout != "" {
		layout, err = workgrid.LoadLayout(opts.layout)
		if err != nil {
			return
		}
	}

	if opts.where != "" {
		layout.Filter, err = nt.ParseWhere(opts.where)
		if err != nil {
			return
		}
	}

	if opts.sort != "" {
		layout.Sort, err = parseSort(opts.sort)
	}
	return
}

func parseSort(text string) (sort nt.SortState, err error) {

	column, direction, _ := strings.Cut(text, ":")

	sort = nt.SortState{ColumnId: strings.TrimSpace(column), Direction: nt.Asc}
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", "asc":
	case "desc":
		sort.Direction = nt.Desc
	default:
		err = errors.Errorf("unknown sort direction %q", direction)
	}

	if sort.ColumnId == "" {
		err = errors.Errorf("sort needs a column")
	}
	return
}

// snapshot fetches the current view into a grid.
func snapshot(ctx context.Context, store workgrid.Store, layout workgrid.Layout) (grd grid.Grid, err error) {

	layout, err = layout.Resolve(ctx, store)
	if err != nil {
		return
	}

	err = store.SetView(layout.Filter, layout.Sort)
	if err != nil {
		return
	}

	rows, err := store.Rows(ctx)
	if err != nil {
		return
	}

	props := layout.Props()
	props.Rows = rows

	grd, _ = grid.New(props, time.Now())
	return
}
