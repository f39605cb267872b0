package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"workgrid"
	nt "workgrid/entity"
	"workgrid/util"
)

const (
	sampleMode  = 0644
	sampleCount = 40
)

var (
	clients  = []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Stark"}
	statuses = []string{"draft", "open", "paid", "overdue"}
)

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample [csv] [layout]",
		Short: "Write sample invoices and a layout to try things out",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runSample,
	}
}

func runSample(cmd *cobra.Command, args []string) (err error) {

	csvPath, layoutPath := "invoices.csv", "invoices.yaml"
	if len(args) > 0 {
		csvPath = args[0]
	}
	if len(args) > 1 {
		layoutPath = args[1]
	}

	err = writeInvoices(csvPath)
	if err != nil {
		return
	}

	err = util.WriteConfig(sampleLayout(), layoutPath, sampleMode)
	if err != nil {
		return
	}

	fmt.Printf("wrote %s and %s, try: workgrid view --layout %s %s\n", csvPath, layoutPath, layoutPath, csvPath)
	return
}

func writeInvoices(path string) (err error) {

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer file.Close()

	issued := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	wtr := csv.NewWriter(file)
	wtr.Write([]string{"id", "number", "client", "status", "amount", "issued", "meta"})
	for i := range sampleCount {
		wtr.Write([]string{
			util.NewID(),
			fmt.Sprintf("INV-%04d", 1001+i),
			clients[i%len(clients)],
			statuses[(i*7)%len(statuses)],
			fmt.Sprintf("%d.%02d", 100+(i*137)%2400, (i*31)%100),
			issued.AddDate(0, 0, i*3).Format(time.DateOnly),
			fmt.Sprintf(`{"terms":"net %d","lines":%d}`, 15*(1+i%3), 1+i%5),
		})
	}
	wtr.Flush()

	err = wtr.Error()
	return errors.Wrapf(err, "failed to write csv to %s", path)
}

func sampleLayout() workgrid.Layout {
	return workgrid.Layout{
		Columns: []nt.Column{
			{Id: "number", Label: "Invoice", Width: 96, Pinned: nt.PinLeft, Sortable: true},
			{Id: "client", Label: "Client", Sortable: true},
			{Id: "status", Label: "Status", Width: 80, Sortable: true, HeaderAlign: nt.AlignCenter, CellAlign: nt.AlignCenter},
			{Id: "issued", Label: "Issued", Sortable: true, Format: time.DateOnly},
			{Id: "amount", Label: "Amount", Width: 96, Sortable: true, HeaderAlign: nt.AlignEnd, CellAlign: nt.AlignEnd, Pinned: nt.PinRight},
			{Id: "meta", Hidden: true, Json: true},
		},
		Sort:       nt.SortState{ColumnId: "issued", Direction: nt.Desc},
		Selectable: true,
		Empty:      "No invoices",
	}
}
