package pad

import (
	"fmt"
	"sync/atomic"

	"github.com/0xcafed00d/joystick"

	"github.com/ic3zy/padcursor/motion"
)

// Device is a Source backed by a system joystick.
type Device struct {
	js        joystick.Joystick
	mapping   Mapping
	name      string
	connected atomic.Bool
}

// Open opens the joystick with the given id and wraps it with the mapping.
func Open(id int, m Mapping) (*Device, error) {
	js, err := joystick.Open(id)
	if err != nil {
		return nil, fmt.Errorf("pad: open joystick %d: %w", id, err)
	}
	d := &Device{js: js, mapping: m, name: js.Name()}
	d.connected.Store(true)
	return d, nil
}

// Name returns the device name reported by the system.
func (d *Device) Name() string { return d.name }

// Poll reads the device once and maps the raw state to a Snapshot.
func (d *Device) Poll() (Snapshot, error) {
	st, err := d.js.Read()
	if err != nil {
		d.connected.Store(false)
		return Snapshot{}, fmt.Errorf("pad: read %q: %w", d.name, err)
	}
	d.connected.Store(true)

	m := d.mapping
	return Snapshot{
		Left: motion.AxisSample{
			X: normalizeAxis(axisAt(st.AxisData, m.LeftX)),
			Y: normalizeAxis(axisAt(st.AxisData, m.LeftY)),
		},
		Right: motion.AxisSample{
			X: normalizeAxis(axisAt(st.AxisData, m.RightX)),
			Y: normalizeAxis(axisAt(st.AxisData, m.RightY)),
		},
		Buttons: ButtonState{
			LeftClick:  buttonAt(st.Buttons, m.LeftButton),
			RightClick: buttonAt(st.Buttons, m.RightButton),
		},
		Triggers: TriggerState{
			Left:  triggerAt(st.AxisData, m.LeftTrigger, m.TriggerMin, m.TriggerMax),
			Right: triggerAt(st.AxisData, m.RightTrigger, m.TriggerMin, m.TriggerMax),
		},
	}, nil
}

// Connected reports whether the most recent poll succeeded.
func (d *Device) Connected() bool { return d.connected.Load() }

// Close releases the joystick handle.
func (d *Device) Close() error {
	d.connected.Store(false)
	d.js.Close()
	return nil
}

// axisAt returns the raw value of an axis, or 0 when the device does not have
// that many axes. A mapped stick with no hardware behind it stays centered.
func axisAt(axes []int, idx int) int {
	if idx < 0 || idx >= len(axes) {
		return 0
	}
	return axes[idx]
}

// triggerAt normalizes a trigger axis. An absent axis reads as permanently
// released, not as its raw rest value, so a bad index can never scroll.
func triggerAt(axes []int, idx, rawMin, rawMax int) float64 {
	if idx < 0 || idx >= len(axes) {
		return 0
	}
	return normalizeTrigger(axes[idx], rawMin, rawMax)
}

// buttonAt reports whether a button bit is set, false when out of range.
func buttonAt(buttons uint32, idx int) bool {
	if idx < 0 || idx > 31 {
		return false
	}
	return buttons&(1<<uint(idx)) != 0
}
