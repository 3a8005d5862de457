// Package main provides the host CLI for the touchandgo flight timer.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/calvinmclean/touchandgo/config"
)

var (
	configPath string
	logLevel   string

	fileCfg config.FileConfig
	logger  *slog.Logger
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "touchandgo",
		Short:             "Host tools for the touchandgo electric control line timer",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "path to the TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")

	rootCmd.AddCommand(newSimCmd())
	rootCmd.AddCommand(newMonitorCmd())
	rootCmd.AddCommand(newFlightsCmd())
	rootCmd.AddCommand(newParamsCmd())
	rootCmd.AddCommand(newPortsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error
	fileCfg, err = config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	level, err := config.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create the config file if it does not exist and print its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if _, err := os.Stat(configPath); err != nil {
				if !os.IsNotExist(err) {
					return fmt.Errorf("failed to stat config: %w", err)
				}
				if err := os.WriteFile(configPath, []byte(config.DefaultConfigTemplate()), 0o644); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), configPath)
			return nil
		},
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
