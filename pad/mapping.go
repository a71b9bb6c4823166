package pad

// Mapping binds the raw axis/button indices of a device to the named controls
// in a Snapshot. Indices follow the usual Xbox-style layout by default but
// every slot is configurable, since generic controllers disagree about order.
type Mapping struct {
	LeftX  int `help:"Raw axis index for the left stick X" default:"0"`
	LeftY  int `help:"Raw axis index for the left stick Y" default:"1"`
	RightX int `help:"Raw axis index for the right stick X" default:"2"`
	RightY int `help:"Raw axis index for the right stick Y" default:"3"`

	LeftTrigger  int `help:"Raw axis index for the left trigger" default:"4"`
	RightTrigger int `help:"Raw axis index for the right trigger" default:"5"`
	// Trigger rest/full raw values. Some devices report -32767..32767,
	// others 0..32767.
	TriggerMin int `help:"Raw trigger value at rest" default:"-32767"`
	TriggerMax int `help:"Raw trigger value fully pressed" default:"32767"`

	LeftButton  int `help:"Button index for the left click (left bumper)" default:"4"`
	RightButton int `help:"Button index for the right click (right bumper)" default:"5"`
}

// maxAxis is the raw full-deflection magnitude reported by the joystick layer.
const maxAxis = 32767

// normalizeAxis converts a raw stick value to [-1, 1].
func normalizeAxis(raw int) float64 {
	v := float64(raw) / maxAxis
	if v < -1.0 {
		v = -1.0
	}
	if v > 1.0 {
		v = 1.0
	}
	return v
}

// normalizeTrigger converts a raw trigger value to [0, 1] given its rest and
// full-press raw bounds.
func normalizeTrigger(raw, rawMin, rawMax int) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := float64(raw-rawMin) / float64(rawMax-rawMin)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}
