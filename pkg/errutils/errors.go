// Package errutils provides the shared error vocabulary of pkginstall.
// It defines the sentinel errors used across packages, grouped by the failure
// class a caller is expected to report, and small helpers for wrapping errors
// with context while keeping them comparable with errors.Is.
//
// The classes are:
//   - validation errors: a required field is missing from the package metadata
//   - not-found errors: an operation needs a base installation that is absent
//   - declined errors: the operator answered "No" to a required confirmation
//   - I/O errors: filesystem access failed outside the tolerated scan skips
//   - format errors: a value is present but cannot be interpreted
package errutils

import (
	"fmt"
)

// Failure classes. Concrete sentinels wrap one of these so callers can test
// either the precise cause or the class.
var (
	ErrValidation = fmt.Errorf("validation failed")
	ErrNotFound   = fmt.Errorf("not found")
	ErrDeclined   = fmt.Errorf("declined by user")
	ErrIO         = fmt.Errorf("i/o error")
	ErrFormat     = fmt.Errorf("invalid format")
)

// Planning errors.
var (
	// ErrEmptyTitleID is returned when a package carries no title identifier.
	ErrEmptyTitleID = newClassError(ErrValidation, "title identifier cannot be empty")

	// ErrMissingContentID is the abort cause when CONTENT_ID is absent.
	ErrMissingContentID = newClassError(ErrValidation, "missing content identifier")

	// ErrMissingVersion is the abort cause when APP_VER is absent from the
	// package or from the installed game.
	ErrMissingVersion = newClassError(ErrValidation, "missing version field")

	// ErrInstallRootNotSet is returned when no install folder is configured.
	ErrInstallRootNotSet = newClassError(ErrValidation, "install folder is not set")

	// ErrAddonRootNotSet is returned when an add-on is planned without an add-on folder.
	ErrAddonRootNotSet = newClassError(ErrValidation, "add-on folder is not set")

	// ErrMalformedContentID is the abort cause when CONTENT_ID has fewer than
	// three dash-delimited segments.
	ErrMalformedContentID = newClassError(ErrFormat, "malformed content identifier")

	// ErrBaseNotInstalled is the abort cause for a patch or add-on whose base
	// game cannot be found.
	ErrBaseNotInstalled = newClassError(ErrNotFound, "base game not installed")

	// ErrUserDeclined is the abort cause when a confirmation was answered "No".
	ErrUserDeclined = newClassError(ErrDeclined, "user declined overwrite")

	// ErrScanRoot is returned when the install root itself cannot be listed.
	ErrScanRoot = newClassError(ErrIO, "failed to scan install root")

	// ErrReadInstalledMetadata is returned when the installed param.sfo exists
	// but cannot be read.
	ErrReadInstalledMetadata = newClassError(ErrIO, "failed to read installed metadata")

	// ErrReadAddonRoot is returned when the add-on folder exists but cannot be listed.
	ErrReadAddonRoot = newClassError(ErrIO, "failed to read add-on folder")

	// ErrInvalidVersion is returned when a version string is not a number.
	ErrInvalidVersion = newClassError(ErrFormat, "invalid version")
)

// Config errors are related to configuration file operations and validation.
var (
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")

	// ErrConfigValidation is returned when configuration values fail validation.
	ErrConfigValidation = fmt.Errorf("invalid configuration")
	ErrConfigEncode     = fmt.Errorf("failed to encode config")
	ErrConfigDirectory  = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate = fmt.Errorf("failed to create config file")

	// ErrConfigFileExists is returned when attempting to create a configuration file that already exists.
	ErrConfigFileExists = fmt.Errorf("configuration file already exists (use --force to overwrite)")

	// ErrConfigFileRename is returned when renaming the temporary config file fails.
	ErrConfigFileRename = fmt.Errorf("failed to rename temporary config file")

	// ErrConfigFileChmod is returned when changing file permissions for the config file fails.
	ErrConfigFileChmod = fmt.Errorf("failed to set config file permissions")

	// ErrConfigMarshal is returned when marshaling the config to YAML fails.
	ErrConfigMarshal = fmt.Errorf("failed to marshal config to YAML")

	// ErrUnsupportedConfigVersion is returned when config_version is outside
	// the range this build understands.
	ErrUnsupportedConfigVersion = fmt.Errorf("unsupported config version")

	ErrScanDepthNegative    = fmt.Errorf("scan_depth cannot be negative")
	ErrMaxConcurrentInvalid = fmt.Errorf("max_concurrent must be at least 1")
	ErrInstallDirEmpty      = fmt.Errorf("install_dir cannot be empty")
	ErrInvalidOutputFormat  = fmt.Errorf("invalid output format")
	ErrInvalidLogLevel      = fmt.Errorf("invalid log level")
	ErrInvalidBoolValue     = fmt.Errorf("invalid boolean value")
	ErrInvalidIntValue      = fmt.Errorf("invalid integer value")
	ErrUnknownConfigKey     = fmt.Errorf("unknown configuration key")

	// ErrEmulatorConfig is returned when an emulator configuration cannot be imported.
	ErrEmulatorConfig = fmt.Errorf("failed to import emulator config")
)

// CLI and path errors.
var (
	ErrInvalidPath = fmt.Errorf("invalid path")

	// ErrConflictingAnswers is returned when both --yes and --no are passed.
	ErrConflictingAnswers = fmt.Errorf("--yes and --no cannot be used together")
)

// classError is a sentinel that belongs to a failure class. Its message
// omits the class so it can be shown to the operator as is.
type classError struct {
	msg   string
	class error
}

func newClassError(class error, msg string) error {
	return &classError{msg: msg, class: class}
}

func (e *classError) Error() string {
	return e.msg
}

func (e *classError) Unwrap() error {
	return e.class
}

// Wrap wraps an error with additional context.
// If the error is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
// If the error is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrInvalidOutputFormatWithDetails is a helper to create a wrapped error with the invalid format and valid options.
func ErrInvalidOutputFormatWithDetails(format string) error {
	return fmt.Errorf("%w: '%s', must be one of: text, json", ErrInvalidOutputFormat, format)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: error, warn, info, debug", ErrInvalidLogLevel, level)
}

// ErrUnsupportedConfigVersionWithDetails reports the version found and the supported range.
func ErrUnsupportedConfigVersionWithDetails(found, constraint string) error {
	return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedConfigVersion, found, constraint)
}

// ErrUnknownConfigKeyWithName reports the offending key.
func ErrUnknownConfigKeyWithName(key string) error {
	return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
}
