/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labdash/labdata"
	"github.com/humaidq/labdash/store"
)

var CmdInspect = &cli.Command{
	Name:  "inspect",
	Usage: "Load the lab sources and print a summary",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "database-url",
			Sources: cli.EnvVars("DATABASE_URL"),
			Usage:   "optional PostgreSQL connection string; prints recent logins when set",
		},
		&cli.IntFlag{
			Name:  "logins",
			Value: 10,
			Usage: "number of recent login events to print",
		},
	}, datasetFlags()...),
	Action: inspect,
}

func inspect(ctx context.Context, cmd *cli.Command) error {
	d, err := loadDataset(ctx, cmd)
	if err != nil {
		return err
	}

	if err := writeDatasetSummary(os.Stdout, d); err != nil {
		return err
	}

	databaseURL := cmd.String("database-url")
	if databaseURL == "" {
		return nil
	}

	if err := openStore(ctx, databaseURL); err != nil {
		return err
	}
	defer store.Close()

	return writeStoreReport(ctx, os.Stdout, int(cmd.Int("logins")))
}

func writeStoreReport(ctx context.Context, out io.Writer, limit int) error {
	events, err := store.RecentLoginEvents(ctx, limit)
	if err != nil {
		return err
	}

	active, err := store.CountActiveSessions(ctx)
	if err != nil {
		return err
	}

	return writeLoginEvents(out, events, active)
}

func writeDatasetSummary(out io.Writer, d *labdata.Dataset) error {
	table := d.Table()
	profile := d.Profile()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Primary source:\t%s\n", d.PrimarySource())
	fmt.Fprintf(w, "Aggregation:\t%s\n", d.Aggregation())
	fmt.Fprintf(w, "Default metric:\t%s\n", d.DefaultMetric())
	fmt.Fprintf(w, "Patients:\t%d\n", len(table.Keys()))
	fmt.Fprintf(w, "Rows:\t%d\n", table.Len())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SOURCE\tLABEL\tROWS\tCOLUMNS")
	for _, source := range table.Sources() {
		columns, _ := table.Columns(source)
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n",
			source, profile.SourceLabel(source), len(table.SourceRows(source)), len(columns))
	}

	return w.Flush()
}

func writeLoginEvents(out io.Writer, events []store.LoginEvent, active int) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Active sessions:\t%d\n", active)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TIME\tUSER\tOUTCOME\tIP")
	for _, ev := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			ev.CreatedAt.Format(time.DateTime), ev.Username, ev.Outcome, ev.IP)
	}

	return w.Flush()
}
