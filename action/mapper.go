// Package action turns per-cycle button and trigger states into discrete
// mouse action events. Clicks are edge-triggered; scroll repeats while the
// trigger is held, with the repeat interval shrinking toward a floor so long
// holds scroll progressively faster.
package action

import "time"

// Event is one discrete mouse action produced by the mapper.
type Event uint8

const (
	LeftClickDown Event = iota
	LeftClickUp
	RightClickDown
	RightClickUp
	ScrollUp
	ScrollDown
)

func (e Event) String() string {
	switch e {
	case LeftClickDown:
		return "left-click-down"
	case LeftClickUp:
		return "left-click-up"
	case RightClickDown:
		return "right-click-down"
	case RightClickUp:
		return "right-click-up"
	case ScrollUp:
		return "scroll-up"
	case ScrollDown:
		return "scroll-down"
	}
	return "unknown"
}

// Inputs is the boolean view of the tracked controls for one cycle. The
// caller thresholds analog triggers before building it, so the mapper only
// ever compares booleans.
type Inputs struct {
	LeftClick  bool
	RightClick bool
	ScrollUp   bool
	ScrollDown bool
}

// RepeatConfig controls the scroll auto-repeat rate.
type RepeatConfig struct {
	// Initial is the delay between the first and second tick of a hold.
	Initial time.Duration
	// Min is the floor the interval shrinks to.
	Min time.Duration
	// Decay multiplies the interval after every tick, in (0, 1].
	Decay float64
}

// DefaultRepeat matches a comfortable scroll feel: starts slow, speeds up.
var DefaultRepeat = RepeatConfig{
	Initial: 120 * time.Millisecond,
	Min:     20 * time.Millisecond,
	Decay:   0.9,
}

// Mapper tracks the previous cycle's input states and emits events on
// transitions. Not safe for concurrent use; it is owned by the loop driver.
type Mapper struct {
	repeat RepeatConfig
	prev   Inputs
	up     repeatState
	down   repeatState
}

type repeatState struct {
	next     time.Time
	interval time.Duration
}

func NewMapper(repeat RepeatConfig) *Mapper {
	return &Mapper{repeat: repeat}
}

// Update compares the current inputs against the previous cycle and returns
// the events for this cycle, always in the order left click, right click,
// scroll up, scroll down. The previous-state memory is overwritten exactly
// once, after all comparisons.
func (m *Mapper) Update(in Inputs, now time.Time) []Event {
	var events []Event

	if in.LeftClick != m.prev.LeftClick {
		if in.LeftClick {
			events = append(events, LeftClickDown)
		} else {
			events = append(events, LeftClickUp)
		}
	}
	if in.RightClick != m.prev.RightClick {
		if in.RightClick {
			events = append(events, RightClickDown)
		} else {
			events = append(events, RightClickUp)
		}
	}
	if m.up.tick(in.ScrollUp, m.prev.ScrollUp, now, m.repeat) {
		events = append(events, ScrollUp)
	}
	if m.down.tick(in.ScrollDown, m.prev.ScrollDown, now, m.repeat) {
		events = append(events, ScrollDown)
	}

	m.prev = in
	return events
}

// tick reports whether a scroll tick fires this cycle. The first tick fires
// on the press edge; later ticks fire when the repeat deadline passes, each
// shortening the interval until it hits the floor.
func (r *repeatState) tick(active, wasActive bool, now time.Time, cfg RepeatConfig) bool {
	if !active {
		return false
	}
	if !wasActive {
		r.interval = cfg.Initial
		r.next = now.Add(r.interval)
		return true
	}
	if now.Before(r.next) {
		return false
	}
	r.interval = time.Duration(float64(r.interval) * cfg.Decay)
	if r.interval < cfg.Min {
		r.interval = cfg.Min
	}
	r.next = now.Add(r.interval)
	return true
}
