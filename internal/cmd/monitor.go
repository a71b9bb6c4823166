package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/ic3zy/padcursor/pad"
)

// Monitor polls the gamepad and prints its mapped state. Useful for checking
// which raw indices a controller exposes before committing to a mapping, and
// for eyeballing how noisy the centered sticks are when tuning deadzones.
type Monitor struct {
	Device          int           `help:"Joystick device id" default:"0" env:"PADCURSOR_DEVICE"`
	Interval        time.Duration `help:"Refresh interval" default:"100ms"`
	DisconnectAfter int           `help:"Consecutive failed polls before giving up" default:"50"`

	Mapping pad.Mapping `embed:"" prefix:"map."`
}

// Run is called by Kong when the monitor command is executed.
func (m *Monitor) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if m.Interval <= 0 {
		return fmt.Errorf("interval must be > 0, got %s", m.Interval)
	}
	if m.DisconnectAfter <= 0 {
		return fmt.Errorf("disconnect-after must be > 0, got %d", m.DisconnectAfter)
	}

	dev, err := pad.Open(m.Device, m.Mapping)
	if err != nil {
		return err
	}
	defer func() { _ = dev.Close() }()
	logger.Info("monitoring gamepad", "device", m.Device, "name", dev.Name())

	// Redraw in place on a real terminal, one line per sample otherwise.
	inline := term.IsTerminal(int(os.Stdout.Fd()))
	return m.watch(ctx, dev, logger, os.Stdout, inline)
}

// watch polls the source on the refresh interval and writes one formatted
// state line per sample. It stops cleanly on cancellation and stops with an
// error once the device looks gone, mirroring the run loop's cutoff.
func (m *Monitor) watch(ctx context.Context, src pad.Source, logger *slog.Logger, out io.Writer, inline bool) error {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			if inline {
				fmt.Fprintln(out)
			}
			return nil
		case <-ticker.C:
		}

		snap, err := src.Poll()
		if err != nil {
			failures++
			if errors.Is(err, pad.ErrDisconnected) || failures >= m.DisconnectAfter {
				if inline {
					fmt.Fprintln(out)
				}
				return fmt.Errorf("after %d failed polls: %w: %w", failures, pad.ErrDisconnected, err)
			}
			logger.Warn("poll failed", "consecutive", failures, "error", err)
			continue
		}
		failures = 0

		line := fmt.Sprintf("L(%+.2f,%+.2f) R(%+.2f,%+.2f) LT %.2f RT %.2f LB %-5v RB %-5v",
			snap.Left.X, snap.Left.Y,
			snap.Right.X, snap.Right.Y,
			snap.Triggers.Left, snap.Triggers.Right,
			snap.Buttons.LeftClick, snap.Buttons.RightClick)
		if inline {
			fmt.Fprintf(out, "\r\033[K%s", line)
		} else {
			fmt.Fprintln(out, line)
		}
	}
}
