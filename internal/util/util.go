//go:build !windows

package util

// IsRunFromGUI reports whether the process was started by double-click rather
// than from a shell. Only meaningful on Windows; elsewhere a daemon belongs
// to systemd or a terminal anyway.
func IsRunFromGUI() bool {
	return false
}

// HideConsoleWindow is a no-op outside Windows.
func HideConsoleWindow() {}
