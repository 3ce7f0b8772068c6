// Package cmd is the picoclock host command line.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"picoclock/internal/buildinfo"
	"picoclock/internal/config"
	"picoclock/internal/logger"
	"picoclock/internal/runner"
)

var (
	// configPath to the optional configuration YAML file.
	configPath string

	// flagValues mirrors the config fields that can be overridden on the command line.
	flagValues config.Config
	backlight  uint8

	// rootCmd runs the clock simulator.
	rootCmd = &cobra.Command{
		Use:   "picoclock",
		Short: "Run the Pico Explorer analog clock on the desktop.",
		Long: `Runs the analog clock in a desktop window, or headless for scripted runs.

Keys A, B, X and Y stand in for the Pico Explorer buttons: X/Y step the
minute, A/B step the hour, X+Y snaps to the minute, A+B toggles 12/24-hour
display and all four together quit. Q holds all four.

Settings come from the YAML file given with --config; flags override it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			applyFlags(cmd, cfg)

			return runner.Run(ctx, cfg)
		},
	}
)

// applyFlags copies explicitly set flags over the loaded settings.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("start") {
		cfg.Start = flagValues.Start
	}

	if flags.Changed("twelve-hour") {
		cfg.TwelveHour = flagValues.TwelveHour
	}

	if flags.Changed("headless") {
		cfg.Headless = flagValues.Headless
	}

	if flags.Changed("hz") {
		cfg.Hz = flagValues.Hz
	}

	if flags.Changed("ticks") {
		cfg.Ticks = flagValues.Ticks
	}

	if flags.Changed("scale") {
		cfg.WindowScale = flagValues.WindowScale
	}

	if flags.Changed("backlight") {
		level := backlight
		cfg.Backlight = &level
	}

	if flags.Changed("log-level") {
		cfg.LogLevel = flagValues.LogLevel
	}

	if flags.Changed("debug-addr") {
		cfg.DebugAddr = flagValues.DebugAddr
	}
}

// Execute runs the picoclock CLI and exits with non-zero status on error.
func Execute() {
	buildinfo.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Logger().Error(err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "path to configuration file")
	flags.StringVar(&flagValues.Start, "start", config.DefaultStart, `start time, HH:MM:SS or "now"`)
	flags.BoolVar(&flagValues.TwelveHour, "twelve-hour", false, "start with the 12-hour readout")
	flags.BoolVar(&flagValues.Headless, "headless", false, "run without a window")
	flags.IntVar(&flagValues.Hz, "hz", config.DefaultHz, "loop rate in headless mode")
	flags.Uint64Var(&flagValues.Ticks, "ticks", 0, "stop after N loop iterations in headless mode (0 = run forever)")
	flags.IntVar(&flagValues.WindowScale, "scale", config.DefaultWindowScale, "window zoom factor")
	flags.Uint8Var(&backlight, "backlight", config.DefaultBacklight, "initial backlight level in percent")
	flags.StringVar(&flagValues.LogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&flagValues.DebugAddr, "debug-addr", "", "serve /display.png and /metrics on this address")
}
