package model

import (
	"fmt"
)

// Action is what the caller should do with a package.
type Action string

const (
	ActionInstallNew     Action = "install-new"
	ActionOverwriteGame  Action = "overwrite-game"
	ActionApplyPatch     Action = "apply-patch"
	ActionInstallAddon   Action = "install-addon"
	ActionOverwriteAddon Action = "overwrite-addon"
	ActionAbort          Action = "abort"
)

// Writes reports whether the action extracts files.
func (a Action) Writes() bool {
	return a != ActionAbort && a != ""
}

// ErrorKind groups abort causes for presentation.
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindNotFound   ErrorKind = "not-found"
	ErrorKindDeclined   ErrorKind = "user-declined"
	ErrorKindIO         ErrorKind = "io"
	ErrorKindFormat     ErrorKind = "format"
)

// AbortReason explains an aborted plan.
type AbortReason struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	// Err is the sentinel the abort maps to.
	Err error `json:"-"`
}

// AbortError is the error form of an aborted plan.
type AbortError struct {
	TitleID string
	Reason  AbortReason
}

// Error implements the error interface for AbortError.
func (e *AbortError) Error() string {
	if e.TitleID == "" {
		return fmt.Sprintf("installation aborted: %s", e.Reason.Message)
	}
	return fmt.Sprintf("installation of %s aborted: %s", e.TitleID, e.Reason.Message)
}

// Unwrap returns the sentinel behind the abort.
func (e *AbortError) Unwrap() error {
	return e.Reason.Err
}

// Plan is the outcome of planning one package.
type Plan struct {
	TitleID          string      `json:"title_id"`
	EntitlementLabel string      `json:"entitlement_label,omitempty"`
	Kind             PackageKind `json:"kind"`
	// GameDir is the resolved base game folder.
	GameDir          string       `json:"game_dir,omitempty"`
	TargetPath       string       `json:"target_path,omitempty"`
	Action           Action       `json:"action"`
	PackageVersion   string       `json:"package_version,omitempty"`
	InstalledVersion string       `json:"installed_version,omitempty"`
	Abort            *AbortReason `json:"abort,omitempty"`
}

// Aborted reports whether the plan stops the installation.
func (p Plan) Aborted() bool {
	return p.Action == ActionAbort
}

// Err returns an *AbortError for aborted plans and nil otherwise.
func (p Plan) Err() error {
	if !p.Aborted() || p.Abort == nil {
		return nil
	}
	return &AbortError{TitleID: p.TitleID, Reason: *p.Abort}
}

// Aborting returns a copy of p with the action set to abort.
func (p Plan) Aborting(kind ErrorKind, err error) Plan {
	p.Action = ActionAbort
	p.TargetPath = ""
	p.Abort = &AbortReason{Kind: kind, Message: err.Error(), Err: err}
	return p
}
