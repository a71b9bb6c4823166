// Package pad samples a single gamepad and exposes one snapshot of its named
// controls per poll cycle. The raw device surface (axis indices, button
// bitmasks, value ranges) stays behind the Source interface; everything
// downstream sees normalized floats and named booleans.
package pad

import (
	"errors"

	"github.com/ic3zy/padcursor/motion"
)

// ErrDisconnected is returned by Poll once the device is gone for good.
// Any other poll error is transient and worth retrying next cycle.
var ErrDisconnected = errors.New("pad: device disconnected")

// ButtonState holds the digital inputs tracked for click mapping.
type ButtonState struct {
	LeftClick  bool
	RightClick bool
}

// TriggerState holds the analog triggers, each normalized to [0, 1].
type TriggerState struct {
	Left  float64
	Right float64
}

// Snapshot is one poll cycle's view of the device. It is a value type and
// never mutated after Poll returns it.
type Snapshot struct {
	Left     motion.AxisSample
	Right    motion.AxisSample
	Buttons  ButtonState
	Triggers TriggerState
}

// Source is the input collaborator: anything that can produce snapshots.
type Source interface {
	// Poll reads the device once. A failed read returns a zero Snapshot;
	// ErrDisconnected (possibly wrapped) means the device will not come back.
	Poll() (Snapshot, error)
	// Connected reports the result of the most recent poll.
	Connected() bool
	Close() error
}
