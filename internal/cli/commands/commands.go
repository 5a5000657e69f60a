// Package commands implements the dbglance subcommands.
package commands

import (
	"github.com/dbglance/dbglance/internal/cli/config"
)

// currentConfig is set by the root command's PersistentPreRunE before
// any subcommand runs.
var currentConfig *config.Config

// SetConfig installs the loaded configuration for subcommands.
func SetConfig(cfg *config.Config) {
	currentConfig = cfg
}

func getConfig() *config.Config {
	if currentConfig != nil {
		return currentConfig
	}
	return &config.Config{
		Host:           config.DefaultHost,
		Port:           config.DefaultPort,
		MaxUploadBytes: config.DefaultMaxUploadBytes,
		QueryTimeout:   config.DefaultQueryTimeout,
		MaxRows:        config.DefaultMaxRows,
		SampleLimit:    config.DefaultSampleLimit,
		SessionTTL:     config.DefaultSessionTTL,
	}
}
