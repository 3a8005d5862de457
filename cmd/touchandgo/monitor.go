package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/calvinmclean/touchandgo/config"
	"github.com/calvinmclean/touchandgo/flightlog"
	"github.com/calvinmclean/touchandgo/monitor"
	"github.com/calvinmclean/touchandgo/twchart"
	"github.com/calvinmclean/touchandgo/ui"
)

var (
	monitorPort        string
	monitorBaudRate    int
	monitorTWChartAddr string
	monitorSession     string
	monitorDBPath      string
	monitorNoLog       bool
	monitorUI          bool
)

func newMonitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Follow a connected timer over serial and record its flights",
		Long: "Follow a connected timer over serial and record its flights. Console commands " +
			"typed on stdin (D, P, V, H) are sent to the board.",
		Args: cobra.NoArgs,
		RunE: runMonitorCmd,
	}
	cmd.Flags().StringVar(&monitorPort, "port", "", "serial port of the board (default from "+config.EnvSerialPort+")")
	cmd.Flags().IntVar(&monitorBaudRate, "baud-rate", config.DefaultBaudRate, "serial baud rate")
	cmd.Flags().StringVar(&monitorTWChartAddr, "twchart", "", "TWChart address to record flights as sessions")
	cmd.Flags().StringVar(&monitorSession, "session", "Flight", "TWChart session name prefix")
	cmd.Flags().StringVar(&monitorDBPath, "db-path", config.DefaultDBPath(), "flight log database")
	cmd.Flags().BoolVar(&monitorNoLog, "no-log", false, "do not record flights in the flight log")
	cmd.Flags().BoolVar(&monitorUI, "ui", false, "show the board in a desktop window")
	return cmd
}

func runMonitorCmd(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("port") {
		monitorPort = fileCfg.SerialPort()
	}
	applyIntConfig(cmd, "baud-rate", &monitorBaudRate, fileCfg.Serial.BaudRate)
	applyStringConfig(cmd, "twchart", &monitorTWChartAddr, fileCfg.TWChart.Addr)
	applyStringConfig(cmd, "db-path", &monitorDBPath, fileCfg.Storage.DBPath)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg := monitor.Config{
		SerialPort:  monitorPort,
		BaudRate:    strconv.Itoa(monitorBaudRate),
		TWChartAddr: monitorTWChartAddr,
		SessionName: monitorSession,
	}

	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	// connect is shared by the headless monitor and the window
	connect := func(extra ...monitor.Sink) ui.Connector {
		return func(cfg monitor.Config) (io.Writer, func(context.Context) error, error) {
			baudRate, err := monitor.ParseBaudRate(cfg.BaudRate)
			if err != nil {
				return nil, nil, err
			}
			port, err := monitor.OpenSerial(cfg.SerialPort, baudRate)
			if err != nil {
				return nil, nil, err
			}
			closers = append(closers, port)

			sinks, store, err := monitorSinks(cfg)
			if err != nil {
				return nil, nil, err
			}
			if store != nil {
				closers = append(closers, store)
			}

			m := monitor.New(port,
				monitor.WithLogger(logger.With(slog.String("component", "monitor"))),
				monitor.WithSinks(append(sinks, extra...)...),
			)
			logger.Info("monitoring board", slog.String("port", cfg.SerialPort), slog.Int("baud_rate", baudRate))

			var in io.Reader
			if !monitorUI {
				in = cmd.InOrStdin()
			}
			run := func(ctx context.Context) error {
				return m.Run(ctx, in, cmd.OutOrStdout())
			}
			return port, run, nil
		}
	}

	if monitorUI {
		timerUI := ui.NewTimerUI()
		timerUI.RunLive(ctx, cfg, connect(timerUI))
		return nil
	}

	if cfg.SerialPort == "" {
		return errors.New("no serial port: use --port, " + config.EnvSerialPort + " or [serial] port in the config file")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	_, run, err := connect()(cfg)
	if err != nil {
		return err
	}
	return run(ctx)
}

func monitorSinks(cfg monitor.Config) ([]monitor.Sink, *flightlog.Store, error) {
	var (
		sinks []monitor.Sink
		store *flightlog.Store
	)

	if !monitorNoLog {
		var err error
		store, err = flightlog.Open(monitorDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open flight log: %w", err)
		}
		sinks = append(sinks, flightlog.NewRecorder(store))
	}

	if cfg.TWChartAddr != "" {
		sinks = append(sinks, twchart.NewRecorder(twchart.NewClient(cfg.TWChartAddr), cfg.SessionName))
	}

	return sinks, store, nil
}

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List USB serial ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ports, err := monitor.GetSerialPorts()
			if errors.Is(err, monitor.ErrNoUSBSerial) {
				fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
				return nil
			}
			if err != nil {
				return err
			}
			for _, p := range ports {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
