package cmd

import "log/slog"

// ServiceCommand installs or removes the daemon as a system service, so the
// cursor keeps working without a terminal session. Linux/systemd only; the
// service runs as root, which also covers /dev/uinput access.
type ServiceCommand struct {
	Install   ServiceInstall   `cmd:"" help:"Install and start the systemd service"`
	Uninstall ServiceUninstall `cmd:"" help:"Stop and remove the systemd service"`
}

type ServiceInstall struct{}

type ServiceUninstall struct{}

// Run is called by Kong when the service install command is executed.
func (s *ServiceInstall) Run(logger *slog.Logger) error {
	return installService(logger)
}

// Run is called by Kong when the service uninstall command is executed.
func (s *ServiceUninstall) Run(logger *slog.Logger) error {
	return uninstallService(logger)
}
