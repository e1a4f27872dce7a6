// fraudlens-tui renders the fraud dashboard in a terminal
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fraudlens/fraudlens/internal/logging"
	"github.com/fraudlens/fraudlens/internal/simulator"
	"github.com/fraudlens/fraudlens/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fraudlens-tui",
		Short: "Terminal view of the simulated fraud dashboard",
		Long: `Renders the FraudLens widgets in the terminal. By default the simulator
runs in-process; with --remote the view polls a running server instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	// FRAUDLENS_REMOTE, FRAUDLENS_SEED, ...
	viper.SetEnvPrefix("FRAUDLENS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	flags := cmd.Flags()
	flags.Bool("local", true, "Run the simulator in-process")
	flags.String("remote", "", "Base URL of a running server to poll instead of simulating locally")
	flags.Int64("seed", 0, "Random seed for the local simulator (0 seeds from the clock)")
	flags.Float64("alert-probability", simulator.DefaultAlertProbability, "Chance that an alert tick produces an alert")
	flags.Duration("refresh", tui.DefaultRefresh, "How often the view refreshes")
	flags.Duration("timeout", 5*time.Second, "HTTP timeout for remote mode")
	flags.String("log-file", "", "Write logs to this file (logs are discarded otherwise)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")

	for _, name := range []string{"local", "remote", "seed", "alert-probability", "refresh", "timeout", "log-file", "log-level"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", name, err))
		}
	}

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fraudlens-tui %s (%s)\n", version, commit)
		},
	}
}

func run() error {
	logger, closeLog, err := newLogger(viper.GetString("log-file"), viper.GetString("log-level"))
	if err != nil {
		return err
	}
	defer closeLog()

	if remote := viper.GetString("remote"); remote != "" {
		src, err := tui.NewRemoteSource(remote, viper.GetDuration("timeout"))
		if err != nil {
			return err
		}
		logger.Info("polling remote dashboard", "url", src.Name())
		return tui.Run(src, viper.GetDuration("refresh"))
	}

	if !viper.GetBool("local") {
		return fmt.Errorf("either --local or --remote is required")
	}

	dash := simulator.NewDashboard(simulator.Config{
		Seed:             viper.GetInt64("seed"),
		Intervals:        simulator.DefaultIntervals(),
		AlertProbability: viper.GetFloat64("alert-probability"),
	}, logger)
	dash.Seed()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := dash.Run(ctx); err != nil {
			logger.Error("simulator stopped", "error", err)
		}
	}()

	return tui.Run(tui.NewLocalSource(dash), viper.GetDuration("refresh"))
}

// newLogger keeps log output off the terminal the view draws on.
func newLogger(path, level string) (*slog.Logger, func(), error) {
	if path == "" {
		return logging.NewWithWriter(io.Discard, level, "text"), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.NewWithWriter(f, level, "text"), func() { _ = f.Close() }, nil
}
