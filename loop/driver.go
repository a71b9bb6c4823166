// Package loop ties the input sampler, motion shaper, action mapper and
// output dispatcher into one poll-compute-dispatch cycle running at a fixed
// interval. The whole pipeline is sequential: one goroutine owns the device
// handle and the mapper's edge memory, so no locking is needed, and cycle N's
// dispatch always finishes before cycle N+1's poll starts.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ic3zy/padcursor/action"
	"github.com/ic3zy/padcursor/internal/log"
	"github.com/ic3zy/padcursor/motion"
	"github.com/ic3zy/padcursor/pad"
	"github.com/ic3zy/padcursor/pointer"
)

// State is the driver lifecycle state.
type State uint32

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// ErrNotIdle is returned by Run when the driver has already been started.
// A driver runs exactly once; make a new one to start over.
var ErrNotIdle = errors.New("loop: driver is not idle")

// Config holds everything the driver needs beyond its collaborators.
type Config struct {
	// PollInterval is the cycle period, > 0.
	PollInterval time.Duration
	// Left and Right shape the fast and the precision stick respectively.
	Left  motion.StickConfig
	Right motion.StickConfig
	// TriggerThreshold is the normalized trigger value at or above which a
	// trigger counts as held, in [0, 1].
	TriggerThreshold float64
	// Repeat controls scroll auto-repeat while a trigger stays held.
	Repeat action.RepeatConfig
	// DisconnectThreshold is how many consecutive poll failures count as a
	// permanent disconnect, > 0.
	DisconnectThreshold int
}

// Validate reports the first configuration rule the config breaks.
func (c Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("loop: poll interval must be > 0, got %s", c.PollInterval)
	}
	for name, sc := range map[string]motion.StickConfig{"left": c.Left, "right": c.Right} {
		if sc.Deadzone < 0 || sc.Deadzone >= 1 {
			return fmt.Errorf("loop: %s deadzone must be in [0, 1), got %g", name, sc.Deadzone)
		}
		if sc.MaxSpeed <= 0 {
			return fmt.Errorf("loop: %s max speed must be > 0, got %g", name, sc.MaxSpeed)
		}
		if sc.Exponent < 1 {
			return fmt.Errorf("loop: %s exponent must be >= 1, got %g", name, sc.Exponent)
		}
	}
	if c.TriggerThreshold < 0 || c.TriggerThreshold > 1 {
		return fmt.Errorf("loop: trigger threshold must be in [0, 1], got %g", c.TriggerThreshold)
	}
	if c.Repeat.Initial <= 0 || c.Repeat.Min <= 0 {
		return fmt.Errorf("loop: scroll repeat intervals must be > 0")
	}
	if c.Repeat.Decay <= 0 || c.Repeat.Decay > 1 {
		return fmt.Errorf("loop: scroll repeat decay must be in (0, 1], got %g", c.Repeat.Decay)
	}
	if c.DisconnectThreshold <= 0 {
		return fmt.Errorf("loop: disconnect threshold must be > 0, got %d", c.DisconnectThreshold)
	}
	return nil
}

// Driver runs the pipeline. It owns the source handle and closes it when the
// loop exits, on every path.
type Driver struct {
	cfg        Config
	source     pad.Source
	dispatcher *pointer.Dispatcher
	mapper     *action.Mapper
	logger     *slog.Logger
	state      atomic.Uint32
}

// New validates the config and builds a driver around the collaborators.
func New(cfg Config, source pad.Source, sink pointer.Sink, logger *slog.Logger) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Driver{
		cfg:        cfg,
		source:     source,
		dispatcher: pointer.NewDispatcher(sink),
		mapper:     action.NewMapper(cfg.Repeat),
		logger:     logger,
	}, nil
}

// State returns the current lifecycle state. Safe from any goroutine.
func (d *Driver) State() State {
	return State(d.state.Load())
}

// Run polls, shapes, maps and dispatches until the context is cancelled or
// the device disconnects for good. Cancellation is only checked at cycle
// boundaries, so shutdown takes at most one cycle. A transient poll failure
// skips the cycle and retries; DisconnectThreshold consecutive failures (or
// a pad.ErrDisconnected from the source) end the loop with a terminal error.
// Dispatch failures are logged and never end the loop.
func (d *Driver) Run(ctx context.Context) error {
	if !d.state.CompareAndSwap(uint32(StateIdle), uint32(StateRunning)) {
		return ErrNotIdle
	}
	defer d.state.Store(uint32(StateStopped))
	defer func() {
		if err := d.source.Close(); err != nil {
			d.logger.Warn("closing input device failed", "error", err)
		}
	}()

	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	failures := 0
	for {
		// A cancelled context never reaches another poll, even when the
		// ticker fired in the same instant.
		if ctx.Err() != nil {
			d.state.Store(uint32(StateStopping))
			d.logger.Info("stop requested")
			return nil
		}
		select {
		case <-ctx.Done():
			d.state.Store(uint32(StateStopping))
			d.logger.Info("stop requested")
			return nil
		case <-ticker.C:
		}

		snap, err := d.source.Poll()
		if err != nil {
			failures++
			if errors.Is(err, pad.ErrDisconnected) || failures >= d.cfg.DisconnectThreshold {
				d.state.Store(uint32(StateStopping))
				d.logger.Error("device gone, stopping", "failedPolls", failures, "error", err)
				return fmt.Errorf("after %d failed polls: %w: %w", failures, pad.ErrDisconnected, err)
			}
			d.logger.Warn("poll failed, skipping cycle", "consecutive", failures, "error", err)
			continue
		}
		failures = 0

		disp := motion.Shape(snap.Left, d.cfg.Left).Add(motion.Shape(snap.Right, d.cfg.Right))
		events := d.mapper.Update(action.Inputs{
			LeftClick:  snap.Buttons.LeftClick,
			RightClick: snap.Buttons.RightClick,
			ScrollUp:   snap.Triggers.Left >= d.cfg.TriggerThreshold,
			ScrollDown: snap.Triggers.Right >= d.cfg.TriggerThreshold,
		}, time.Now())

		if !disp.IsZero() || len(events) > 0 {
			d.logger.Log(ctx, log.LevelTrace, "cycle",
				"dx", disp.DX, "dy", disp.DY, "events", len(events))
		}

		if err := d.dispatcher.Dispatch(disp, events); err != nil {
			d.logger.Error("dispatch failed", "error", err)
		}
	}
}
