package cli

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/glorpus-work/pkginstall/internal/logger"
	"github.com/glorpus-work/pkginstall/pkg/config"
)

// setupLogging initializes the global logger from the configuration and
// turns off terminal styling when it cannot be shown.
func setupLogging(cfg *config.Config) {
	format := logger.FormatText
	if cfg.Settings.OutputFormat == FormatJSON {
		format = logger.FormatJSON
	}
	logger.InitLogger(cfg.Settings.LogLevel, format)

	if colorDisabled() || !isTerminal(os.Stdout) {
		pterm.DisableColor()
		pterm.DisableStyling()
	}
}
