// Package model provides the data structures exchanged between the package
// reader, the install planner and the extractor: package metadata, install
// configuration and the resulting plan.
package model

import (
	"slices"
	"strings"
)

// Keys read from a system metadata file.
const (
	KeyCategory  = "CATEGORY"
	KeyContentID = "CONTENT_ID"
	KeyAppVer    = "APP_VER"
	KeyTitleID   = "TITLE_ID"
	KeyTitle     = "TITLE"
	KeyVersion   = "VERSION"
)

const (
	// CategoryAddon marks add-on content.
	CategoryAddon = "ac"
	// CategoryPatch is the category of an unpacked game patch.
	CategoryPatch = "gp"
	// FlagPatch is the package-type token that marks a patch.
	FlagPatch = "PATCH"
)

// Fields exposes string values of a system metadata file.
type Fields interface {
	GetString(key string) (string, bool)
}

// PackageKind is the classification of a package.
type PackageKind string

const (
	// KindGame is a base game.
	KindGame PackageKind = "game"
	// KindPatch is an update for an installed base game.
	KindPatch PackageKind = "patch"
	// KindAddon is add-on content for an installed base game.
	KindAddon PackageKind = "addon"
)

// PackageMetadata is the per-call view of a package used for planning.
// An empty string means the field was absent.
type PackageMetadata struct {
	TitleID    string   `json:"title_id"`
	Category   string   `json:"category,omitempty"`
	Flags      []string `json:"flags,omitempty"`
	ContentID  string   `json:"content_id,omitempty"`
	AppVersion string   `json:"app_version,omitempty"`
}

// NewPackageMetadata builds the metadata bundle from the container's title
// identifier and type flags and the fields of its embedded param.sfo.
// fields may be nil.
func NewPackageMetadata(titleID string, flags []string, fields Fields) PackageMetadata {
	meta := PackageMetadata{
		TitleID: strings.TrimSpace(titleID),
		Flags:   slices.Clone(flags),
	}
	if fields == nil {
		return meta
	}
	if v, ok := fields.GetString(KeyCategory); ok {
		meta.Category = strings.TrimSpace(v)
	}
	if v, ok := fields.GetString(KeyContentID); ok {
		meta.ContentID = strings.TrimSpace(v)
	}
	if v, ok := fields.GetString(KeyAppVer); ok {
		meta.AppVersion = strings.TrimSpace(v)
	}
	return meta
}

// IsPatch reports whether the PATCH token is among the type flags.
func (m PackageMetadata) IsPatch() bool {
	return slices.Contains(m.Flags, FlagPatch)
}

// IsAddon reports whether the category denotes add-on content.
func (m PackageMetadata) IsAddon() bool {
	return m.Category == CategoryAddon
}

// Kind classifies the package. The patch flag wins over the category.
func (m PackageMetadata) Kind() PackageKind {
	switch {
	case m.IsPatch():
		return KindPatch
	case m.IsAddon():
		return KindAddon
	default:
		return KindGame
	}
}

// EntitlementLabel returns the third dash-delimited segment of the content
// identifier.
func EntitlementLabel(contentID string) (string, bool) {
	parts := strings.Split(contentID, "-")
	if len(parts) < 3 {
		return "", false
	}
	return parts[2], true
}
