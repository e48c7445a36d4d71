package core

import "errors"

// Sentinel errors for conditions that abort the run.
// Per-entry failures are never sentinels: they are recovered locally and
// recorded in the Failed log.
var (
	// ErrRootUnreadable indicates the walk root itself cannot be enumerated.
	// This is the only error class that aborts a sweep.
	ErrRootUnreadable = errors.New("cannot enumerate walk root")
)

// Reason templates for per-entry outcome records.
// Use with fmt.Sprintf; the formatted string becomes the record's reason.
const (
	// ReasonModeChanged is recorded when a mode fix succeeds.
	ReasonModeChanged = "mode changed to %o"

	// ReasonModeChangeFailed is recorded when a mode fix fails.
	ReasonModeChangeFailed = "mode change to %o failed: %v"

	// ReasonOwnershipFailed is recorded when an ownership change fails.
	ReasonOwnershipFailed = "ownership change failed: %v"

	// ReasonConformant is recorded when an entry already matches the policy.
	ReasonConformant = "already conforms (mode=%o owner=%s group=%s)"

	// ReasonStatFailed is recorded when an entry cannot be stat'd.
	ReasonStatFailed = "stat failed: %v"

	// ReasonListFailed is recorded when a directory's contents cannot be listed.
	ReasonListFailed = "read dir failed: %v"
)
