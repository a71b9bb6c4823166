package testing

import (
	"fmt"
	"sync"

	"github.com/ic3zy/padcursor/pad"
	"github.com/ic3zy/padcursor/pointer"
)

// PollStep is one scripted Poll result.
type PollStep struct {
	Snap pad.Snapshot
	Err  error
}

// ScriptedSource is a pad.Source that replays a fixed script. Once the script
// runs out it keeps returning the last step, so a finite script can stand in
// for a held controller.
type ScriptedSource struct {
	mu     sync.Mutex
	steps  []PollStep
	idx    int
	polls  int
	closed bool
}

func NewScriptedSource(steps ...PollStep) *ScriptedSource {
	return &ScriptedSource{steps: steps}
}

func (s *ScriptedSource) Poll() (pad.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	if len(s.steps) == 0 {
		return pad.Snapshot{}, nil
	}
	step := s.steps[s.idx]
	if s.idx < len(s.steps)-1 {
		s.idx++
	}
	return step.Snap, step.Err
}

func (s *ScriptedSource) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.steps) == 0 {
		return true
	}
	return s.steps[s.idx].Err == nil
}

func (s *ScriptedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Polls reports how many times Poll ran.
func (s *ScriptedSource) Polls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

// Closed reports whether the source was released.
func (s *ScriptedSource) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// RecordingSink is a pointer.Sink that records every call in order as a
// readable string, optionally failing specific call kinds.
type RecordingSink struct {
	mu    sync.Mutex
	calls []string

	FailMove   error
	FailButton error
	FailScroll error
}

func (r *RecordingSink) record(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *RecordingSink) MoveRelative(dx, dy int) error {
	r.record("move %d %d", dx, dy)
	return r.FailMove
}

func (r *RecordingSink) ButtonDown(b pointer.Button) error {
	r.record("down %s", b)
	return r.FailButton
}

func (r *RecordingSink) ButtonUp(b pointer.Button) error {
	r.record("up %s", b)
	return r.FailButton
}

func (r *RecordingSink) Scroll(ticks int) error {
	r.record("scroll %d", ticks)
	return r.FailScroll
}

func (r *RecordingSink) Close() error {
	r.record("close")
	return nil
}

// Calls returns a copy of the recorded call log.
func (r *RecordingSink) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}
