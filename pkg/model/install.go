package model

// DefaultScanDepth bounds the search for an existing installation.
const DefaultScanDepth = 5

// InstallConfig holds the folders a package may be installed to.
type InstallConfig struct {
	InstallRoot          string `json:"install_root"`
	AddonRoot            string `json:"addon_root"`
	SeparateUpdateFolder bool   `json:"separate_update_folder"`
}

// NewInstallConfig returns an install configuration.
func NewInstallConfig(installRoot, addonRoot string, separateUpdate bool) InstallConfig {
	return InstallConfig{
		InstallRoot:          installRoot,
		AddonRoot:            addonRoot,
		SeparateUpdateFolder: separateUpdate,
	}
}
