// Package cmd holds the kong command implementations.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ic3zy/padcursor/action"
	"github.com/ic3zy/padcursor/loop"
	"github.com/ic3zy/padcursor/motion"
	"github.com/ic3zy/padcursor/pad"
	"github.com/ic3zy/padcursor/pointer"
)

// FastStick configures the left stick, the coarse cursor stick.
type FastStick struct {
	Deadzone float64 `help:"Deflection magnitude treated as centered, in [0,1)" default:"0.1"`
	MaxSpeed float64 `help:"Pixels per tick at full deflection" default:"14"`
	Exponent float64 `help:"Acceleration power curve, >= 1" default:"2"`
}

// SlowStick configures the right stick, the precision stick.
type SlowStick struct {
	Deadzone float64 `help:"Deflection magnitude treated as centered, in [0,1)" default:"0.1"`
	MaxSpeed float64 `help:"Pixels per tick at full deflection" default:"4"`
	Exponent float64 `help:"Acceleration power curve, >= 1" default:"1.5"`
}

// ScrollOptions tune the trigger-held scroll auto-repeat.
type ScrollOptions struct {
	RepeatInitial time.Duration `help:"Delay after the first scroll tick" default:"120ms"`
	RepeatMin     time.Duration `help:"Fastest repeat interval" default:"20ms"`
	RepeatDecay   float64       `help:"Interval multiplier per tick, in (0,1]" default:"0.9"`
}

// Run is the daemon command: poll the gamepad, move the mouse.
type Run struct {
	Device       int           `help:"Joystick device id" default:"0" env:"PADCURSOR_DEVICE"`
	PollInterval time.Duration `help:"Pipeline cycle period" default:"10ms" env:"PADCURSOR_POLL_INTERVAL"`

	Left  FastStick `embed:"" prefix:"left."`
	Right SlowStick `embed:"" prefix:"right."`

	TriggerThreshold float64       `help:"Trigger value at which scrolling engages, in [0,1]" default:"0.5"`
	Scroll           ScrollOptions `embed:"" prefix:"scroll."`

	DisconnectAfter   int           `help:"Consecutive failed polls before the device counts as gone" default:"50"`
	ReconnectAttempts int           `help:"Times to reopen a lost device before giving up" default:"5"`
	ReconnectDelay    time.Duration `help:"Wait between reopen attempts" default:"500ms"`

	Mapping pad.Mapping `embed:"" prefix:"map."`

	// Collaborator constructors, nil outside of tests.
	openSource func() (pad.Source, error)
	newSink    func() (pointer.Sink, error)
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.drive(ctx, logger)
}

func (r *Run) loopConfig() loop.Config {
	return loop.Config{
		PollInterval: r.PollInterval,
		Left: motion.StickConfig{
			Deadzone: r.Left.Deadzone,
			MaxSpeed: r.Left.MaxSpeed,
			Exponent: r.Left.Exponent,
		},
		Right: motion.StickConfig{
			Deadzone: r.Right.Deadzone,
			MaxSpeed: r.Right.MaxSpeed,
			Exponent: r.Right.Exponent,
		},
		TriggerThreshold: r.TriggerThreshold,
		Repeat: action.RepeatConfig{
			Initial: r.Scroll.RepeatInitial,
			Min:     r.Scroll.RepeatMin,
			Decay:   r.Scroll.RepeatDecay,
		},
		DisconnectThreshold: r.DisconnectAfter,
	}
}

// drive runs the loop and reopens the device after a disconnect, up to the
// attempt budget. Configuration errors and an exhausted budget are terminal;
// cancellation is a clean stop.
func (r *Run) drive(ctx context.Context, logger *slog.Logger) error {
	cfg := r.loopConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	open := r.openSource
	if open == nil {
		open = func() (pad.Source, error) { return pad.Open(r.Device, r.Mapping) }
	}
	newSink := r.newSink
	if newSink == nil {
		newSink = func() (pointer.Sink, error) { return pointer.NewSink("padcursor") }
	}

	sink, err := newSink()
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	attempts := 0
	for {
		src, err := open()
		if err == nil && !src.Connected() {
			// Opened but not answering; counts against the budget like a
			// failed open.
			_ = src.Close()
			err = fmt.Errorf("device %d is not responding: %w", r.Device, pad.ErrDisconnected)
		}
		if err != nil {
			attempts++
			if attempts > r.ReconnectAttempts {
				return fmt.Errorf("no usable gamepad: %w", err)
			}
			logger.Warn("opening gamepad failed, retrying", "device", r.Device, "attempt", attempts, "error", err)
			if !sleepCtx(ctx, r.ReconnectDelay) {
				return nil
			}
			continue
		}
		name := fmt.Sprintf("device %d", r.Device)
		if n, ok := src.(interface{ Name() string }); ok {
			name = n.Name()
		}
		logger.Info("gamepad connected", "device", r.Device, "name", name)

		drv, err := loop.New(cfg, src, sink, logger)
		if err != nil {
			_ = src.Close()
			return err
		}

		err = drv.Run(ctx)
		if err == nil || ctx.Err() != nil {
			logger.Info("stopped")
			return nil
		}

		attempts++
		if attempts > r.ReconnectAttempts {
			return err
		}
		logger.Warn("device lost, reconnecting", "attempt", attempts, "error", err)
		if !sleepCtx(ctx, r.ReconnectDelay) {
			return nil
		}
	}
}

// sleepCtx waits for d, reporting false if the context ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
