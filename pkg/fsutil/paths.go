package fsutil

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppName is the name of the application used in paths
	AppName = "pkginstall"
)

// GetConfigDir returns the configuration directory of the application.
// On Linux: ~/.config/pkginstall/
// On macOS: ~/Library/Application Support/pkginstall/
// On Windows: %LOCALAPPDATA%\pkginstall\
func GetConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// GetDataDir returns the data directory of the application.
// On Linux: ~/.local/share/pkginstall/
func GetDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// GetDefaultInstallDir returns the default games folder.
// Format: <data_dir>/games/
func GetDefaultInstallDir() string {
	return filepath.Join(GetDataDir(), "games")
}

// GetDefaultAddonDir returns the default add-on content folder.
// Format: <data_dir>/addcont/
func GetDefaultAddonDir() string {
	return filepath.Join(GetDataDir(), "addcont")
}
