package loop_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ic3zy/padcursor/action"
	padtesting "github.com/ic3zy/padcursor/internal/testing"
	"github.com/ic3zy/padcursor/loop"
	"github.com/ic3zy/padcursor/motion"
	"github.com/ic3zy/padcursor/pad"
)

func testConfig() loop.Config {
	return loop.Config{
		PollInterval:        time.Millisecond,
		Left:                motion.StickConfig{Deadzone: 0.1, MaxSpeed: 5, Exponent: 1},
		Right:               motion.StickConfig{Deadzone: 0.1, MaxSpeed: 2, Exponent: 1},
		TriggerThreshold:    0.5,
		Repeat:              action.DefaultRepeat,
		DisconnectThreshold: 3,
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runDriver(t *testing.T, d *loop.Driver, ctx context.Context) <-chan error {
	t.Helper()
	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(ctx) }()
	return errCh
}

func waitFor(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("driver did not stop in time")
		return nil
	}
}

func TestConfigValidate(t *testing.T) {
	mutate := func(f func(*loop.Config)) loop.Config {
		c := testConfig()
		f(&c)
		return c
	}
	cases := []struct {
		name string
		cfg  loop.Config
	}{
		{"zero poll interval", mutate(func(c *loop.Config) { c.PollInterval = 0 })},
		{"deadzone too big", mutate(func(c *loop.Config) { c.Left.Deadzone = 1 })},
		{"negative deadzone", mutate(func(c *loop.Config) { c.Right.Deadzone = -0.1 })},
		{"zero speed", mutate(func(c *loop.Config) { c.Left.MaxSpeed = 0 })},
		{"sublinear exponent", mutate(func(c *loop.Config) { c.Right.Exponent = 0.5 })},
		{"threshold out of range", mutate(func(c *loop.Config) { c.TriggerThreshold = 1.5 })},
		{"zero repeat interval", mutate(func(c *loop.Config) { c.Repeat.Initial = 0 })},
		{"decay above one", mutate(func(c *loop.Config) { c.Repeat.Decay = 1.5 })},
		{"zero disconnect threshold", mutate(func(c *loop.Config) { c.DisconnectThreshold = 0 })},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.cfg.Validate())
		})
	}
	assert.NoError(t, testConfig().Validate())
}

func TestRunDispatchesAndStopsCleanly(t *testing.T) {
	// Full left deflection: (1-0.1)/0.9 = 1, x5 = 5 pixels per tick.
	source := padtesting.NewScriptedSource(padtesting.PollStep{
		Snap: pad.Snapshot{Left: motion.AxisSample{X: 1}},
	})
	sink := &padtesting.RecordingSink{}

	d, err := loop.New(testConfig(), source, sink, discard())
	require.NoError(t, err)
	assert.Equal(t, loop.StateIdle, d.State())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runDriver(t, d, ctx)

	assert.Eventually(t, func() bool {
		return len(sink.Calls()) > 0
	}, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, waitFor(t, errCh))
	assert.Equal(t, loop.StateStopped, d.State())
	assert.True(t, source.Closed())
	assert.Contains(t, sink.Calls(), "move 5 0")
}

func TestTransientPollErrorRetries(t *testing.T) {
	source := padtesting.NewScriptedSource(
		padtesting.PollStep{Err: assert.AnError},
		padtesting.PollStep{Err: assert.AnError},
		padtesting.PollStep{Snap: pad.Snapshot{Left: motion.AxisSample{X: 1}}},
	)
	sink := &padtesting.RecordingSink{}

	d, err := loop.New(testConfig(), source, sink, discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runDriver(t, d, ctx)

	// Two failures stay under the threshold of 3; the loop recovers.
	assert.Eventually(t, func() bool {
		return len(sink.Calls()) > 0
	}, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, waitFor(t, errCh))
}

func TestDisconnectIsTerminal(t *testing.T) {
	source := padtesting.NewScriptedSource(padtesting.PollStep{Err: assert.AnError})
	sink := &padtesting.RecordingSink{}

	d, err := loop.New(testConfig(), source, sink, discard())
	require.NoError(t, err)

	errCh := runDriver(t, d, context.Background())
	runErr := waitFor(t, errCh)

	require.Error(t, runErr)
	assert.ErrorIs(t, runErr, pad.ErrDisconnected)
	assert.Equal(t, loop.StateStopped, d.State())
	assert.True(t, source.Closed())
	// Disconnect detection on the third failed poll, then nothing more.
	assert.Equal(t, 3, source.Polls())
	assert.Empty(t, sink.Calls())
}

func TestExplicitDisconnectErrorShortCircuits(t *testing.T) {
	source := padtesting.NewScriptedSource(padtesting.PollStep{Err: pad.ErrDisconnected})
	sink := &padtesting.RecordingSink{}

	d, err := loop.New(testConfig(), source, sink, discard())
	require.NoError(t, err)

	runErr := waitFor(t, runDriver(t, d, context.Background()))
	require.Error(t, runErr)
	assert.ErrorIs(t, runErr, pad.ErrDisconnected)
	// The source said disconnected; no need to burn through the threshold.
	assert.Equal(t, 1, source.Polls())
}

func TestClickRoundTrip(t *testing.T) {
	pressed := pad.Snapshot{Buttons: pad.ButtonState{LeftClick: true}}
	source := padtesting.NewScriptedSource(
		padtesting.PollStep{Snap: pressed},
		padtesting.PollStep{Snap: pressed},
		padtesting.PollStep{Snap: pressed},
		padtesting.PollStep{Snap: pad.Snapshot{}},
	)
	sink := &padtesting.RecordingSink{}

	d, err := loop.New(testConfig(), source, sink, discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runDriver(t, d, ctx)

	assert.Eventually(t, func() bool {
		calls := sink.Calls()
		return contains(calls, "up left")
	}, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, waitFor(t, errCh))

	// Held for several cycles: exactly one down and one up, no duplicates.
	assert.Equal(t, 1, count(sink.Calls(), "down left"))
	assert.Equal(t, 1, count(sink.Calls(), "up left"))
}

func TestScrollFromTriggers(t *testing.T) {
	source := padtesting.NewScriptedSource(padtesting.PollStep{
		Snap: pad.Snapshot{Triggers: pad.TriggerState{Left: 0.9}},
	})
	sink := &padtesting.RecordingSink{}

	d, err := loop.New(testConfig(), source, sink, discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runDriver(t, d, ctx)

	assert.Eventually(t, func() bool {
		return contains(sink.Calls(), "scroll 1")
	}, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, waitFor(t, errCh))
}

func TestAlreadyCancelledContextNeverPolls(t *testing.T) {
	source := padtesting.NewScriptedSource(padtesting.PollStep{})
	d, err := loop.New(testConfig(), source, &padtesting.RecordingSink{}, discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, waitFor(t, runDriver(t, d, ctx)))
	assert.Equal(t, loop.StateStopped, d.State())
	assert.Equal(t, 0, source.Polls())
}

func TestDriverRunsOnce(t *testing.T) {
	source := padtesting.NewScriptedSource(padtesting.PollStep{})
	d, err := loop.New(testConfig(), source, &padtesting.RecordingSink{}, discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, waitFor(t, runDriver(t, d, ctx)))

	assert.ErrorIs(t, d.Run(context.Background()), loop.ErrNotIdle)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.PollInterval = -1
	_, err := loop.New(cfg, padtesting.NewScriptedSource(), &padtesting.RecordingSink{}, discard())
	assert.Error(t, err)
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

func count(ss []string, want string) int {
	n := 0
	for _, s := range ss {
		if s == want {
			n++
		}
	}
	return n
}
