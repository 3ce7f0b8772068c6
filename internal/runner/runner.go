// Package runner starts the clock on the desktop host HAL.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"picoclock/app"
	"picoclock/face"
	"picoclock/hal"
	"picoclock/internal/config"
	"picoclock/internal/debugsrv"
	"picoclock/internal/logger"
	"picoclock/internal/metrics"
)

// Run builds the host HAL from cfg and blocks until the clock stops, the
// window closes or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	logger.SetLevel(level)
	ctx = logger.WithName(ctx, "picoclock")

	start, err := cfg.StartSeconds(time.Now())
	if err != nil {
		return err
	}

	script, err := cfg.ScriptSteps()
	if err != nil {
		return err
	}

	h := hal.NewHost(hal.HostConfig{
		Logger: logger.NewLines(logger.FromContext(ctx)),
		Script: script,
	})
	m := metrics.New()

	c, err := app.New(h, app.Config{
		Start:      start,
		TwelveHour: cfg.TwelveHour,
		Backlight:  *cfg.Backlight,
		Palette:    face.DefaultPalette,
		Observer:   m,
	})
	if err != nil {
		return fmt.Errorf("start clock: %w", err)
	}

	logger.InfoKV(ctx, "clock configured",
		"headless", cfg.Headless,
		"hz", cfg.Hz,
		"ticks", cfg.Ticks,
		"format", h.Display().Framebuffer().Format().String(),
		"script_steps", len(script),
	)

	if cfg.DebugAddr != "" {
		srv, err := debugsrv.Start(ctx, cfg.DebugAddr, debugsrv.Handler(h, m.Registry()))
		if err != nil {
			return fmt.Errorf("start debug server: %w", err)
		}

		defer func() {
			if err := srv.Shutdown(context.WithoutCancel(ctx)); err != nil {
				logger.Errorf(ctx, "%v", err)
			}
		}()
	}

	step := func() error {
		if ctx.Err() != nil {
			return hal.ErrShutdown
		}

		return c.Step()
	}

	if cfg.Headless {
		err = hal.RunHeadless(ctx, h, step, hal.HeadlessConfig{Hz: cfg.Hz, Ticks: cfg.Ticks})
	} else {
		err = hal.RunWindow(h, step, hal.WindowConfig{Scale: cfg.WindowScale})
	}

	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.Infof(ctx, "clock stopped at %d presented frames", h.Presents())

		return nil
	default:
		return fmt.Errorf("run clock: %w", err)
	}
}
