package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/calvinmclean/touchandgo/config"
	"github.com/calvinmclean/touchandgo/flightlog"
	"github.com/calvinmclean/touchandgo/monitor"
)

var (
	flightsDBPath string
	flightsLimit  int
)

func newFlightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flights",
		Short: "List recorded flights, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyStringConfig(cmd, "db-path", &flightsDBPath, fileCfg.Storage.DBPath)
			if flightsLimit < 0 {
				return fmt.Errorf("invalid --limit %d", flightsLimit)
			}

			store, err := flightlog.Open(flightsDBPath)
			if err != nil {
				return fmt.Errorf("failed to open flight log: %w", err)
			}
			defer store.Close()

			flights, err := store.ListFlights(cmd.Context(), flightsLimit)
			if err != nil {
				return err
			}
			if len(flights) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no flights recorded")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tOUTCOME\tMOTOR\tMAX\tPARAMETERS")
			for _, f := range flights {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\t%s\n",
					humanize.Time(f.StartedAt),
					f.Outcome,
					f.MotorTime.Round(100*time.Millisecond),
					f.MaxThrottle*100,
					monitor.FormatParameters(f.Params),
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&flightsDBPath, "db-path", config.DefaultDBPath(), "flight log database")
	cmd.Flags().IntVar(&flightsLimit, "limit", 20, "number of flights to list, 0 for all")
	return cmd
}
