// Package config provides configuration management for pkginstall.
// It handles loading, validating and saving the YAML settings file that
// holds the install and add-on folders, the update-folder layout and the
// hook scripts, and can import the folders from an emulator configuration.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/pkginstall/pkg/errutils"
	"github.com/glorpus-work/pkginstall/pkg/fsutil"
	"github.com/glorpus-work/pkginstall/pkg/model"
)

// Config represents the application configuration.
type Config struct {
	// ConfigVersion is the schema version of the file.
	ConfigVersion string `yaml:"config_version"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// HookSettings holds paths to Tengo hook scripts.
type HookSettings struct {
	PreInstall  string `yaml:"pre_install"`
	PostInstall string `yaml:"post_install"`
}

// Settings represents general application settings.
type Settings struct {
	// Installation settings
	InstallDir           string `yaml:"install_dir,omitempty"`
	AddonDir             string `yaml:"addon_dir,omitempty"`
	SeparateUpdateFolder bool   `yaml:"separate_update_folder"`
	ScanDepth            int    `yaml:"scan_depth"`

	// Extraction settings
	MaxConcurrent int `yaml:"max_concurrent"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // json, text
	LogLevel     string `yaml:"log_level"`     // error, warn, info, debug

	Hooks HookSettings `yaml:"hooks"`
}

// Default configuration values.
const (
	// CurrentConfigVersion is written to new configuration files.
	CurrentConfigVersion = "1.0"

	// SupportedConfigVersions is the constraint config_version must satisfy.
	SupportedConfigVersions = ">= 1.0, < 2.0"

	// DefaultMaxConcurrent is the default number of extraction workers.
	DefaultMaxConcurrent = 8

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ConfigVersion: CurrentConfigVersion,
		Settings: Settings{
			InstallDir:           fsutil.GetDefaultInstallDir(),
			AddonDir:             fsutil.GetDefaultAddonDir(),
			SeparateUpdateFolder: true,
			ScanDepth:            model.DefaultScanDepth,
			MaxConcurrent:        DefaultMaxConcurrent,
			OutputFormat:         "text",
			LogLevel:             "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errutils.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errutils.Wrap(errutils.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errutils.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to read config data")
	}

	// Keys absent from the file keep their default values.
	config := *DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errutils.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errutils.Wrap(errutils.ErrInvalidConfigPath, err.Error())
	}

	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return errutils.Wrap(errutils.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errutils.Wrap(errutils.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errutils.Wrap(errutils.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	// Atomically replace the config file
	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errutils.Wrap(errutils.ErrConfigFileRename, err.Error())
	}

	if err := os.Chmod(absPath, fsutil.FileModeDefault); err != nil {
		return errutils.Wrap(errutils.ErrConfigFileChmod, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigMarshal, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errutils.ErrConfigValidation
	}
	if err := validateConfigVersion(c.ConfigVersion); err != nil {
		return err
	}
	return validateSettings(c.Settings)
}

func validateConfigVersion(raw string) error {
	v, err := version.NewVersion(raw)
	if err != nil {
		return errutils.ErrUnsupportedConfigVersionWithDetails(raw, SupportedConfigVersions)
	}
	constraint, err := version.NewConstraint(SupportedConfigVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return errutils.ErrUnsupportedConfigVersionWithDetails(raw, SupportedConfigVersions)
	}
	return nil
}

func validateSettings(s Settings) error {
	if s.InstallDir == "" {
		return errutils.ErrInstallDirEmpty
	}
	if s.ScanDepth < 0 {
		return errutils.ErrScanDepthNegative
	}
	if s.MaxConcurrent < 1 {
		return errutils.ErrMaxConcurrentInvalid
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[s.OutputFormat] {
		return errutils.ErrInvalidOutputFormatWithDetails(s.OutputFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errutils.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(fsutil.GetConfigDir(), ConfigFileName)
}

// InstallConfig returns the planner view of the settings.
func (c *Config) InstallConfig() model.InstallConfig {
	return model.InstallConfig{
		InstallRoot:          c.Settings.InstallDir,
		AddonRoot:            c.Settings.AddonDir,
		SeparateUpdateFolder: c.Settings.SeparateUpdateFolder,
	}
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.ConfigVersion == "" {
		c.ConfigVersion = defaults.ConfigVersion
	}
	if c.Settings.InstallDir == "" {
		c.Settings.InstallDir = defaults.Settings.InstallDir
	}
	if c.Settings.AddonDir == "" {
		c.Settings.AddonDir = defaults.Settings.AddonDir
	}
	if c.Settings.MaxConcurrent == 0 {
		c.Settings.MaxConcurrent = defaults.Settings.MaxConcurrent
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}
