package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/pkginstall/pkg/errutils"
)

func TestSetGetValue(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"install_dir", "/games"},
		{"addon_dir", "/addcont"},
		{"separate_update_folder", "false"},
		{"scan_depth", "2"},
		{"max_concurrent", "16"},
		{"output_format", "json"},
		{"log_level", "debug"},
		{"hooks.pre_install", "/hooks/pre.tengo"},
		{"hooks.post_install", "/hooks/post.tengo"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, cfg.SetValue(tt.key, tt.value))

			got, err := cfg.GetValue(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestSetValue_Errors(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr error
	}{
		{"separate_update_folder", "maybe", errutils.ErrInvalidBoolValue},
		{"scan_depth", "deep", errutils.ErrInvalidIntValue},
		{"scan_depth", "-1", errutils.ErrScanDepthNegative},
		{"max_concurrent", "0", errutils.ErrMaxConcurrentInvalid},
		{"install_dir", "", errutils.ErrInstallDirEmpty},
		{"cache_dir", "/tmp", errutils.ErrUnknownConfigKey},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			before := *cfg

			err := cfg.SetValue(tt.key, tt.value)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, *cfg)
		})
	}
}

func TestGetValue_UnknownKey(t *testing.T) {
	_, err := DefaultConfig().GetValue("hooks")
	assert.ErrorIs(t, err, errutils.ErrUnknownConfigKey)
}

func TestToMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.InstallDir = "/games"
	cfg.Settings.Hooks.PreInstall = "/hooks/pre.tengo"

	m := cfg.ToMap()
	assert.Equal(t, "/games", m["install_dir"])
	assert.Equal(t, "true", m["separate_update_folder"])
	assert.Equal(t, "5", m["scan_depth"])
	assert.Equal(t, "/hooks/pre.tengo", m["hooks.pre_install"])
	assert.Equal(t, "", m["hooks.post_install"])
	assert.NotContains(t, m, "hooks")
	assert.Len(t, m, 9)
}
