// Package config defines the top-level CLI grammar.
package config

import "github.com/ic3zy/padcursor/internal/cmd"

// LogOptions are shared by every command.
type LogOptions struct {
	Level string `help:"Log level (trace|debug|info|warn|error)" default:"info" env:"PADCURSOR_LOG_LEVEL"`
	File  string `help:"Also write logs to this file" env:"PADCURSOR_LOG_FILE"`
}

// CLI is the kong root. Values come from flags, environment variables and any
// discovered JSON/YAML/TOML config file, in that priority order.
type CLI struct {
	ConfigFile string     `name:"config" help:"Path to a configuration file" env:"PADCURSOR_CONFIG"`
	Log        LogOptions `embed:"" prefix:"log."`

	Run       cmd.Run            `cmd:"" default:"withargs" help:"Drive the mouse cursor from a gamepad"`
	Monitor   cmd.Monitor        `cmd:"" help:"Print live gamepad state, for picking mapping indices and deadzones"`
	Service   cmd.ServiceCommand `cmd:"" help:"Install or remove the systemd service"`
	ConfigCmd cmd.ConfigCommand  `cmd:"" name:"config" help:"Configuration helpers"`
}
