package cmd

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigTemplate(t *testing.T) {
	root := buildMapFromStruct(reflect.TypeOf(Run{}))

	assert.Equal(t, int64(0), root["device"])
	assert.Equal(t, "10ms", root["pollInterval"])
	assert.Equal(t, 0.5, root["triggerThreshold"])

	left, ok := root["left"].(map[string]any)
	require.True(t, ok, "left stick options should nest under their prefix")
	assert.Equal(t, 0.1, left["deadzone"])
	assert.Equal(t, 14.0, left["maxSpeed"])

	right, ok := root["right"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 4.0, right["maxSpeed"])

	scroll, ok := root["scroll"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "120ms", scroll["repeatInitial"])

	mapping, ok := root["map"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(0), mapping["leftX"])
	assert.Equal(t, int64(5), mapping["rightButton"])
	assert.Equal(t, int64(-32767), mapping["triggerMin"])
}

func TestMonitorConfigTemplate(t *testing.T) {
	root := buildMapFromStruct(reflect.TypeOf(Monitor{}))
	assert.Equal(t, "100ms", root["interval"])
	assert.Equal(t, int64(50), root["disconnectAfter"])
	_, ok := root["map"].(map[string]any)
	assert.True(t, ok)
}

func TestLoopConfigTranslation(t *testing.T) {
	r := Run{
		PollInterval:     8 * time.Millisecond,
		Left:             FastStick{Deadzone: 0.2, MaxSpeed: 12, Exponent: 2},
		Right:            SlowStick{Deadzone: 0.05, MaxSpeed: 3, Exponent: 1},
		TriggerThreshold: 0.6,
		Scroll: ScrollOptions{
			RepeatInitial: 100 * time.Millisecond,
			RepeatMin:     10 * time.Millisecond,
			RepeatDecay:   0.8,
		},
		DisconnectAfter: 25,
	}

	cfg := r.loopConfig()
	assert.Equal(t, 8*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 0.2, cfg.Left.Deadzone)
	assert.Equal(t, 12.0, cfg.Left.MaxSpeed)
	assert.Equal(t, 1.0, cfg.Right.Exponent)
	assert.Equal(t, 0.6, cfg.TriggerThreshold)
	assert.Equal(t, 100*time.Millisecond, cfg.Repeat.Initial)
	assert.Equal(t, 0.8, cfg.Repeat.Decay)
	assert.Equal(t, 25, cfg.DisconnectThreshold)
	assert.NoError(t, cfg.Validate())
}

func TestNormalizeFormat(t *testing.T) {
	assert.Equal(t, "yaml", normalizeFormat("YML"))
	assert.Equal(t, "toml", normalizeFormat("toml"))
	assert.Equal(t, "", normalizeFormat("ini"))
}
