package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/calvinmclean/touchandgo"
	"github.com/calvinmclean/touchandgo/config"
	"github.com/calvinmclean/touchandgo/flight"
	"github.com/calvinmclean/touchandgo/flightlog"
	"github.com/calvinmclean/touchandgo/monitor"
	"github.com/calvinmclean/touchandgo/params"
	"github.com/calvinmclean/touchandgo/ui"
)

var (
	simParamsPath string
	simTick       time.Duration
	simDBPath     string
	simRecord     bool
)

func newSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the timer in a desktop window with a virtual pushbutton",
		Args:  cobra.NoArgs,
		RunE:  runSimCmd,
	}
	cmd.Flags().StringVar(&simParamsPath, "params-path", config.DefaultParamsPath(), "parameter record used by the simulator")
	cmd.Flags().DurationVar(&simTick, "tick", config.DefaultSimTick, "control loop interval")
	cmd.Flags().StringVar(&simDBPath, "db-path", config.DefaultDBPath(), "flight log database")
	cmd.Flags().BoolVar(&simRecord, "record", false, "record simulated flights in the flight log")
	return cmd
}

func runSimCmd(cmd *cobra.Command, _ []string) error {
	applyStringConfig(cmd, "params-path", &simParamsPath, fileCfg.Storage.ParamsPath)
	applyStringConfig(cmd, "db-path", &simDBPath, fileCfg.Storage.DBPath)

	tick := simTick
	if !cmd.Flags().Changed("tick") {
		var err error
		tick, err = fileCfg.SimTick()
		if err != nil {
			return err
		}
	}
	if tick <= 0 {
		return fmt.Errorf("invalid --tick %s", tick)
	}

	if err := os.MkdirAll(filepath.Dir(simParamsPath), 0o755); err != nil {
		return fmt.Errorf("failed to create params directory: %w", err)
	}
	storage := params.NewFileStorage(simParamsPath)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	timerUI := ui.NewTimerUI()
	sinks := []monitor.Sink{timerUI}

	if simRecord {
		store, err := flightlog.Open(simDBPath)
		if err != nil {
			return fmt.Errorf("failed to open flight log: %w", err)
		}
		defer store.Close()
		sinks = append(sinks, flightlog.NewRecorder(store))
	}

	simLogger := logger.With(slog.String("component", "sim"))
	out := cmd.OutOrStdout()

	c := flight.New(
		params.NewStore(storage),
		flight.WithLogger(simLogger),
		flight.WithSettle(time.Sleep),
		flight.WithEventHandler(func(e touchandgo.Event) {
			fmt.Fprintln(out, monitor.Format(e))
			now := time.Now()
			for _, sink := range sinks {
				if err := sink.HandleEvent(ctx, now, e); err != nil {
					simLogger.Error("error handling event", slog.String("error", err.Error()))
				}
			}
		}),
	)

	simLogger.Info("starting simulator", slog.String("params_path", storage.Path), slog.Duration("tick", tick))
	timerUI.RunSimulator(ctx, c, tick)
	return nil
}
