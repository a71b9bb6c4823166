package pointer

import (
	"errors"
	"fmt"

	"github.com/ic3zy/padcursor/action"
	"github.com/ic3zy/padcursor/motion"
)

// Dispatcher translates one cycle's displacement and events into sink calls.
// It performs no shaping of its own.
type Dispatcher struct {
	sink Sink
}

func NewDispatcher(sink Sink) *Dispatcher {
	return &Dispatcher{sink: sink}
}

// Dispatch applies the displacement first (skipped entirely when zero), then
// the events in the order the mapper produced them, so the cursor never
// teleports after a click lands. Every call is attempted even if an earlier
// one failed; the failures come back joined and the cycle is free to go on.
func (d *Dispatcher) Dispatch(disp motion.Displacement, events []action.Event) error {
	var errs []error
	if !disp.IsZero() {
		if err := d.sink.MoveRelative(disp.DX, disp.DY); err != nil {
			errs = append(errs, fmt.Errorf("move (%d,%d): %w", disp.DX, disp.DY, err))
		}
	}
	for _, ev := range events {
		if err := d.apply(ev); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ev, err))
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) apply(ev action.Event) error {
	switch ev {
	case action.LeftClickDown:
		return d.sink.ButtonDown(ButtonLeft)
	case action.LeftClickUp:
		return d.sink.ButtonUp(ButtonLeft)
	case action.RightClickDown:
		return d.sink.ButtonDown(ButtonRight)
	case action.RightClickUp:
		return d.sink.ButtonUp(ButtonRight)
	case action.ScrollUp:
		return d.sink.Scroll(1)
	case action.ScrollDown:
		return d.sink.Scroll(-1)
	}
	return fmt.Errorf("pointer: unhandled event %d", uint8(ev))
}
