package pad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAxis(t *testing.T) {
	cases := []struct {
		name string
		raw  int
		want float64
	}{
		{"centered", 0, 0},
		{"full positive", 32767, 1},
		{"full negative", -32767, -1},
		{"half", 16384, 0.50001},
		{"overshoot clamps", 40000, 1},
		{"undershoot clamps", -40000, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, normalizeAxis(tc.raw), 0.001)
		})
	}
}

func TestNormalizeTrigger(t *testing.T) {
	// Signed-range device: rest at -32767, fully pressed at 32767.
	assert.InDelta(t, 0, normalizeTrigger(-32767, -32767, 32767), 0.001)
	assert.InDelta(t, 0.5, normalizeTrigger(0, -32767, 32767), 0.001)
	assert.InDelta(t, 1, normalizeTrigger(32767, -32767, 32767), 0.001)

	// Unsigned-range device.
	assert.InDelta(t, 0, normalizeTrigger(0, 0, 32767), 0.001)
	assert.InDelta(t, 1, normalizeTrigger(32767, 0, 32767), 0.001)

	// Out of range clamps, degenerate range reads released.
	assert.Equal(t, 0.0, normalizeTrigger(-40000, -32767, 32767))
	assert.Equal(t, 1.0, normalizeTrigger(40000, -32767, 32767))
	assert.Equal(t, 0.0, normalizeTrigger(123, 5, 5))
}

func TestAxisAtOutOfRange(t *testing.T) {
	axes := []int{100, 200}
	assert.Equal(t, 200, axisAt(axes, 1))
	assert.Equal(t, 0, axisAt(axes, 2))
	assert.Equal(t, 0, axisAt(axes, -1))
}

func TestTriggerAtAbsentAxisReadsReleased(t *testing.T) {
	// A missing trigger axis must read 0, not the normalized rest value,
	// or a misconfigured index would scroll forever.
	axes := []int{0, 0}
	assert.Equal(t, 0.0, triggerAt(axes, 5, -32767, 32767))
	assert.InDelta(t, 0.5, triggerAt(axes, 0, -32767, 32767), 0.001)
}

func TestButtonAt(t *testing.T) {
	var buttons uint32 = 1<<4 | 1<<5
	assert.True(t, buttonAt(buttons, 4))
	assert.True(t, buttonAt(buttons, 5))
	assert.False(t, buttonAt(buttons, 0))
	assert.False(t, buttonAt(buttons, 32))
	assert.False(t, buttonAt(buttons, -1))
}
