package core

import "io/fs"

// Whitelisted names, evaluated as exact matches relative to the walk root.
// A whitelisted directory is pruned before descent: its contents never enter
// the candidate set.
const (
	// VCSDirName is the version-control directory.
	VCSDirName = ".git"
	// WellKnownDirName holds ACME challenge files and similar served metadata.
	WellKnownDirName = ".well-known"
	// KeepDotfileName is the one dotfile left untouched in the web root.
	KeepDotfileName = ".htaccess"
	// TmpBuildDirName is the temporary build directory.
	TmpBuildDirName = "tmp"
)

// Target policy defaults.
const (
	// DefaultDirMode is the normalized mode for directories.
	DefaultDirMode = fs.FileMode(0o755)
	// DefaultFileMode is the normalized mode for regular files.
	DefaultFileMode = fs.FileMode(0o644)
	// DefaultOwner is the target owner name.
	DefaultOwner = "www-data"
	// DefaultGroup is the target group name.
	DefaultGroup = "www-data"
)

// SelfKeptReason is the fixed reason recorded for the running binary, which
// is never mode-changed.
const SelfKeptReason = "own program file, skipped"
