//go:build windows

package pointer

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	procMouseEvent = user32.NewProc("mouse_event")
)

const (
	flagMove      = 0x0001
	flagLeftDown  = 0x0002
	flagLeftUp    = 0x0004
	flagRightDown = 0x0008
	flagRightUp   = 0x0010
	flagWheel     = 0x0800

	// One wheel detent.
	wheelDelta = 120
)

// eventSink injects mouse input through the User32 mouse_event API.
type eventSink struct{}

// NewSink creates the platform pointer sink. The name is unused on Windows;
// injected input carries no device identity.
func NewSink(name string) (Sink, error) {
	_ = name
	return &eventSink{}, nil
}

func (s *eventSink) MoveRelative(dx, dy int) error {
	return mouseEvent(flagMove, int32(dx), int32(dy), 0)
}

func (s *eventSink) ButtonDown(b Button) error {
	switch b {
	case ButtonLeft:
		return mouseEvent(flagLeftDown, 0, 0, 0)
	case ButtonRight:
		return mouseEvent(flagRightDown, 0, 0, 0)
	}
	return fmt.Errorf("pointer: unknown button %d", uint8(b))
}

func (s *eventSink) ButtonUp(b Button) error {
	switch b {
	case ButtonLeft:
		return mouseEvent(flagLeftUp, 0, 0, 0)
	case ButtonRight:
		return mouseEvent(flagRightUp, 0, 0, 0)
	}
	return fmt.Errorf("pointer: unknown button %d", uint8(b))
}

func (s *eventSink) Scroll(ticks int) error {
	return mouseEvent(flagWheel, 0, 0, int32(ticks*wheelDelta))
}

func (s *eventSink) Close() error { return nil }

func mouseEvent(flags uint32, dx, dy, data int32) error {
	_, _, err := procMouseEvent.Call(
		uintptr(flags),
		uintptr(uint32(dx)),
		uintptr(uint32(dy)),
		uintptr(uint32(data)),
		0,
	)
	if err != syscall.Errno(0) {
		return err
	}
	return nil
}
