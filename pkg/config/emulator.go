package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/glorpus-work/pkginstall/internal/logger"
	"github.com/glorpus-work/pkginstall/pkg/errutils"
)

// EmulatorConfig is the subset of a shadPS4 config.toml that names the
// game and add-on folders.
type EmulatorConfig struct {
	General struct {
		SeparateUpdateEnabled *bool `toml:"separateUpdateEnabled"`
	} `toml:"General"`
	GUI struct {
		InstallDirs     []string `toml:"installDirs"`
		InstallDir      string   `toml:"installDir"`
		AddonInstallDir string   `toml:"addonInstallDir"`
	} `toml:"GUI"`
}

// InstallDir returns the first configured game folder. Older files carry a
// single installDir instead of the installDirs list.
func (e *EmulatorConfig) InstallDir() string {
	for _, dir := range e.GUI.InstallDirs {
		if dir != "" {
			return dir
		}
	}
	return e.GUI.InstallDir
}

// LoadEmulatorConfig reads and parses a shadPS4 config.toml.
func LoadEmulatorConfig(path string) (*EmulatorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errutils.ErrEmulatorConfig, err)
	}

	var emu EmulatorConfig
	if err := toml.Unmarshal(data, &emu); err != nil {
		return nil, fmt.Errorf("%w: failed to parse TOML: %w", errutils.ErrEmulatorConfig, err)
	}
	return &emu, nil
}

// ImportEmulatorConfig copies the game and add-on folders, and the update
// folder layout when present, from a shadPS4 config.toml. The file must name
// at least one game folder.
func (c *Config) ImportEmulatorConfig(path string) error {
	emu, err := LoadEmulatorConfig(path)
	if err != nil {
		return err
	}

	installDir := emu.InstallDir()
	if installDir == "" {
		return fmt.Errorf("%w: %s has no installDirs", errutils.ErrEmulatorConfig, path)
	}

	c.Settings.InstallDir = installDir
	if emu.GUI.AddonInstallDir != "" {
		c.Settings.AddonDir = emu.GUI.AddonInstallDir
	}
	if emu.General.SeparateUpdateEnabled != nil {
		c.Settings.SeparateUpdateFolder = *emu.General.SeparateUpdateEnabled
	}

	logger.Debug("Imported emulator config", logger.Fields{
		"path":        path,
		"install_dir": c.Settings.InstallDir,
		"addon_dir":   c.Settings.AddonDir,
	})
	return nil
}
