package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/glorpus-work/pkginstall/pkg/config"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	NoColor      *bool
	OutputFormat *string
)

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	setupLogging(cfg)
	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}
	return config.GetDefaultConfigPath()
}

func colorDisabled() bool {
	return NoColor != nil && *NoColor
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
