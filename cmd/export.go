package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"device_inventory/internal/models"
	"device_inventory/internal/service"

	"github.com/spf13/cobra"
)

// cliOperator owns sessions opened by the export command. Export log entries
// written from the CLI carry no operator.
const cliOperator = 0

type exportFlags struct {
	chartType string
	label     string
	query     string
	window    string
}

func newExportCmd() *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch a list and write it to an Excel file without the API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), f, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&f.chartType, "type", "t", "", "chart type (error, userByRoom, deviceByRoom, deviceByUser)")
	cmd.Flags().StringVarP(&f.label, "label", "l", "", "room, device or user label")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "text filter applied before export")
	cmd.Flags().StringVarP(&f.window, "window", "w", "", "range window for error lists (last_7_days, last_1_month, last_3_months)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("label")
	return cmd
}

// exportEvents is the dialog path a user would click through for f.
func exportEvents(f exportFlags) []service.DialogEvent {
	evs := []service.DialogEvent{{Kind: service.EventExportRequested}}
	if f.window == "" {
		return append(evs, service.DialogEvent{Kind: service.EventConfirmed})
	}
	return append(evs,
		service.DialogEvent{Kind: service.EventRangeRequested},
		service.DialogEvent{Kind: service.EventRangeChosen, Window: models.RangeWindow(f.window)},
	)
}

func runExport(ctx context.Context, f exportFlags, out io.Writer) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	lists := a.services.Lists
	view, err := lists.Open(ctx, cliOperator, models.ChartSelector{Type: models.ChartType(f.chartType), Label: f.label})
	if err != nil {
		return err
	}
	defer lists.Close(cliOperator, view.SessionID)

	if f.query != "" {
		if view, err = lists.Search(cliOperator, view.SessionID, f.query); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "%s: %d of %d records\n", view.Title, view.Count, view.Total)

	var step service.DialogStep
	for _, ev := range exportEvents(f) {
		if step, err = lists.Dispatch(ctx, cliOperator, view.SessionID, ev); err != nil {
			return err
		}
	}
	if step.Outcome == nil {
		return errors.New("export did not run")
	}
	fmt.Fprintf(out, "%s: %s\n", step.Outcome.Title, step.Outcome.Message)
	if !step.Outcome.OK {
		return errors.New("export failed")
	}
	return nil
}
