// Package pointer injects synthetic mouse input into the operating system.
// The Sink interface is the injection collaborator; the Dispatcher translates
// the pipeline's displacement and action events into sink calls without
// buffering or reordering them.
package pointer

// Button identifies a mouse button for press/release injection.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	}
	return "unknown"
}

// Sink is the pointer-injection collaborator. Implementations perform the
// actual OS calls; Scroll takes signed wheel ticks (positive is up/away).
type Sink interface {
	MoveRelative(dx, dy int) error
	ButtonDown(b Button) error
	ButtonUp(b Button) error
	Scroll(ticks int) error
	Close() error
}
