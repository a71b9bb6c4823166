//go:build linux

package pointer

import (
	"fmt"

	"github.com/bendahl/uinput"
)

// uinputSink injects mouse input through a virtual uinput device. Requires
// write access to /dev/uinput (root, or an udev rule granting the user).
type uinputSink struct {
	mouse uinput.Mouse
}

// NewSink creates the platform pointer sink. The name shows up as the virtual
// device name in the input subsystem.
func NewSink(name string) (Sink, error) {
	m, err := uinput.CreateMouse("/dev/uinput", []byte(name))
	if err != nil {
		return nil, fmt.Errorf("pointer: create uinput mouse: %w", err)
	}
	return &uinputSink{mouse: m}, nil
}

func (s *uinputSink) MoveRelative(dx, dy int) error {
	return s.mouse.Move(int32(dx), int32(dy))
}

func (s *uinputSink) ButtonDown(b Button) error {
	switch b {
	case ButtonLeft:
		return s.mouse.LeftPress()
	case ButtonRight:
		return s.mouse.RightPress()
	}
	return fmt.Errorf("pointer: unknown button %d", uint8(b))
}

func (s *uinputSink) ButtonUp(b Button) error {
	switch b {
	case ButtonLeft:
		return s.mouse.LeftRelease()
	case ButtonRight:
		return s.mouse.RightRelease()
	}
	return fmt.Errorf("pointer: unknown button %d", uint8(b))
}

func (s *uinputSink) Scroll(ticks int) error {
	return s.mouse.Wheel(false, int32(ticks))
}

func (s *uinputSink) Close() error {
	return s.mouse.Close()
}
