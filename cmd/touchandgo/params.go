package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/calvinmclean/touchandgo"
	"github.com/calvinmclean/touchandgo/config"
	"github.com/calvinmclean/touchandgo/monitor"
	"github.com/calvinmclean/touchandgo/params"
)

var (
	paramsDelay  time.Duration
	paramsFlight time.Duration
	paramsCruise int
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Read or write a parameter record",
		Long: "Read or write a parameter record. PATH is the record file or the mounted board " +
			"drive and defaults to the simulator's record.",
	}

	showCmd := &cobra.Command{
		Use:   "show [PATH]",
		Short: "Print the saved parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storage := params.NewFileStorage(paramsPath(args))
			raw, err := storage.Read()
			if errors.Is(err, params.ErrNotExist) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no record, the timer will use %s\n",
					storage.Path, monitor.FormatParameters(touchandgo.DefaultParameters()))
				return nil
			}
			if err != nil {
				return err
			}

			p, err := params.Decode(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", storage.Path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: % x\n", monitor.Swatch(touchandgo.Green), storage.Path, raw)
			fmt.Fprintln(cmd.OutOrStdout(), monitor.FormatParameters(p))
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set [PATH]",
		Short: "Change saved parameters, keeping the values that are not given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := paramsPath(args)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("failed to create params directory: %w", err)
			}
			store := params.NewStore(params.NewFileStorage(path))

			p, err := store.Load()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("delay") {
				p.DelaySeconds, err = toUnits("delay", paramsDelay, time.Second)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("flight") {
				p.FlightDeciseconds, err = toUnits("flight", paramsFlight, 10*time.Second)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("cruise") {
				if paramsCruise < 0 || paramsCruise > 100 {
					return fmt.Errorf("invalid --cruise %d: must be 0-100", paramsCruise)
				}
				p.CruiseThrottlePercent = uint8(paramsCruise)
			}

			if err := store.Commit(p); err != nil {
				return err
			}
			logger.Info("saved parameters", slog.String("path", path), slog.String("params", monitor.FormatParameters(p)))
			fmt.Fprintln(cmd.OutOrStdout(), monitor.FormatParameters(p))
			return nil
		},
	}
	setCmd.Flags().DurationVar(&paramsDelay, "delay", 0, "delay before take-off, whole seconds up to 4m15s")
	setCmd.Flags().DurationVar(&paramsFlight, "flight", 0, "flight time, multiples of 10s up to 42m30s")
	setCmd.Flags().IntVar(&paramsCruise, "cruise", 0, "cruise throttle percent")

	cmd.AddCommand(showCmd)
	cmd.AddCommand(setCmd)
	return cmd
}

func paramsPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	path := config.DefaultParamsPath()
	if fileCfg.Storage.ParamsPath != nil {
		path = *fileCfg.Storage.ParamsPath
	}
	return path
}

// toUnits converts d into a count of unit that fits in a record byte
func toUnits(name string, d, unit time.Duration) (uint8, error) {
	if d < 0 || d%unit != 0 || d/unit > 255 {
		return 0, fmt.Errorf("invalid --%s %s: must be a multiple of %s up to %s", name, d, unit, 255*unit)
	}
	return uint8(d / unit), nil
}
