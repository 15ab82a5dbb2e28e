package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/pkginstall/pkg/errutils"
	"github.com/glorpus-work/pkginstall/pkg/fsutil"
	"github.com/glorpus-work/pkginstall/pkg/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.ConfigVersion)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, DefaultMaxConcurrent, cfg.Settings.MaxConcurrent)
	assert.Equal(t, model.DefaultScanDepth, cfg.Settings.ScanDepth)
	assert.True(t, cfg.Settings.SeparateUpdateFolder)
	assert.Equal(t, fsutil.GetDefaultInstallDir(), cfg.Settings.InstallDir)
	assert.Equal(t, fsutil.GetDefaultAddonDir(), cfg.Settings.AddonDir)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `config_version: "1.0"
settings:
  install_dir: /games
  addon_dir: /addcont
  separate_update_folder: false
  scan_depth: 0
  log_level: debug
  hooks:
    pre_install: /hooks/pre.tengo`

	err := os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/games", cfg.Settings.InstallDir)
	assert.Equal(t, "/addcont", cfg.Settings.AddonDir)
	assert.False(t, cfg.Settings.SeparateUpdateFolder)
	assert.Equal(t, 0, cfg.Settings.ScanDepth)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, "/hooks/pre.tengo", cfg.Settings.Hooks.PreInstall)

	// keys absent from the file keep their defaults
	assert.Equal(t, DefaultMaxConcurrent, cfg.Settings.MaxConcurrent)
	assert.Equal(t, "text", cfg.Settings.OutputFormat)
}

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errutils.ErrEmptyConfigPath)
}

func TestLoadConfigFromReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		errMsg  string
	}{
		{
			name:    "malformed yaml",
			content: "settings: [",
			wantErr: errutils.ErrConfigParse,
		},
		{
			name:    "unsupported config version",
			content: "config_version: \"2.1\"",
			wantErr: errutils.ErrConfigValidation,
			errMsg:  "unsupported config version",
		},
		{
			name:    "garbage config version",
			content: "config_version: latest",
			wantErr: errutils.ErrConfigValidation,
			errMsg:  "latest",
		},
		{
			name:    "negative scan depth",
			content: "settings:\n  scan_depth: -2",
			wantErr: errutils.ErrConfigValidation,
			errMsg:  "scan_depth",
		},
		{
			name:    "bad output format",
			content: "settings:\n  output_format: yaml",
			wantErr: errutils.ErrConfigValidation,
			errMsg:  "must be one of: text, json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromReader(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	cfg.Settings.InstallDir = "/srv/games"
	cfg.Settings.Hooks.PostInstall = "/hooks/post.tengo"

	configPath := filepath.Join(t.TempDir(), "nested", "test-config.yaml")
	require.NoError(t, cfg.SaveConfig(configPath))

	assert.NoFileExists(t, configPath+".tmp")

	loadedCfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loadedCfg)
}

func TestSaveConfig_EmptyPath(t *testing.T) {
	assert.ErrorIs(t, DefaultConfig().SaveConfig(""), errutils.ErrEmptyConfigPath)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "empty install dir", mutate: func(c *Config) { c.Settings.InstallDir = "" }, wantErr: errutils.ErrInstallDirEmpty},
		{name: "zero workers", mutate: func(c *Config) { c.Settings.MaxConcurrent = 0 }, wantErr: errutils.ErrMaxConcurrentInvalid},
		{name: "bad log level", mutate: func(c *Config) { c.Settings.LogLevel = "trace" }, wantErr: errutils.ErrInvalidLogLevel},
		{name: "old config version", mutate: func(c *Config) { c.ConfigVersion = "0.9" }, wantErr: errutils.ErrUnsupportedConfigVersion},
		{name: "uppercase log level", mutate: func(c *Config) { c.Settings.LogLevel = "WARN" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilCfg *Config
	assert.ErrorIs(t, nilCfg.Validate(), errutils.ErrConfigValidation)
}

func TestInstallConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.InstallDir = "/games"
	cfg.Settings.AddonDir = "/addcont"

	assert.Equal(t, model.InstallConfig{
		InstallRoot:          "/games",
		AddonRoot:            "/addcont",
		SeparateUpdateFolder: true,
	}, cfg.InstallConfig())
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.Equal(t, ConfigFileName, filepath.Base(path))
	assert.Equal(t, fsutil.AppName, filepath.Base(filepath.Dir(path)))
}
