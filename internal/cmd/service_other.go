//go:build !linux

package cmd

import (
	"fmt"
	"log/slog"
	"runtime"
)

func installService(logger *slog.Logger) error {
	_ = logger
	return fmt.Errorf("service management is only supported on linux (systemd), not %s", runtime.GOOS)
}

func uninstallService(logger *slog.Logger) error {
	_ = logger
	return fmt.Errorf("service management is only supported on linux (systemd), not %s", runtime.GOOS)
}
