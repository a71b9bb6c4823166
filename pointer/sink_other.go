//go:build !linux && !windows

package pointer

import (
	"fmt"
	"runtime"
)

// NewSink creates the platform pointer sink. No injection backend exists for
// this platform.
func NewSink(name string) (Sink, error) {
	_ = name
	return nil, fmt.Errorf("pointer: no injection backend for %s", runtime.GOOS)
}
