// Package types contains the shared data structures for permsweep: filesystem
// entries discovered during a walk, per-entry outcome records, and the final
// run report.
package types

import "io/fs"

// EntryType classifies a filesystem entry by its lstat type bits.
type EntryType int

// Entry type constants. Symlinks are identified by their own type bit and
// never dereferenced.
const (
	EntryDirectory EntryType = iota
	EntryRegularFile
	EntrySymlink
	EntryOther
)

// String returns a short human-readable name for the entry type.
func (t EntryType) String() string {
	switch t {
	case EntryDirectory:
		return "directory"
	case EntryRegularFile:
		return "file"
	case EntrySymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Entry is a filesystem path discovered during a walk, together with a
// snapshot of its state at read time. Entries are ephemeral: state is read
// fresh in each pass and never cached across passes.
type Entry struct {
	Path    string      // path relative to the walk root, "." for the root itself
	AbsPath string      // absolute path, used for syscalls and self-file detection
	Type    EntryType   // lstat type, link targets are never followed
	Mode    fs.FileMode // permission bits only
	UID     int         // current owner id
	GID     int         // current group id
}

// Action is the outcome classification for one processed entry.
type Action string

// Action values. Every record lands in exactly one of the three report logs.
const (
	ActionChanged Action = "changed"
	ActionKept    Action = "kept"
	ActionFailed  Action = "failed"
)

// OutcomeRecord is the result of processing one entry in one pass. Records
// are created once, appended to exactly one log, and never mutated.
type OutcomeRecord struct {
	Path   string `yaml:"path" json:"path"`
	Action Action `yaml:"action" json:"action"`
	Reason string `yaml:"reason" json:"reason"`
}

// Summary holds the terminal counts of a run. Counts are always derived from
// log lengths, never tracked separately.
type Summary struct {
	Modified int `yaml:"modified" json:"modified"`
	Kept     int `yaml:"kept" json:"kept"`
	Failed   int `yaml:"failed" json:"failed"`
}

// RunReport is the complete result of one sweep: the three ordered logs plus
// identifying metadata. Built incrementally during the passes and rendered
// once at the end.
type RunReport struct {
	RunID   string          `yaml:"run_id" json:"run_id"`
	Root    string          `yaml:"root" json:"root"`
	Changed []OutcomeRecord `yaml:"changed" json:"changed"`
	Kept    []OutcomeRecord `yaml:"kept" json:"kept"`
	Failed  []OutcomeRecord `yaml:"failed" json:"failed"`
}

// Summary computes the terminal counts from the log lengths.
func (r *RunReport) Summary() Summary {
	return Summary{
		Modified: len(r.Changed),
		Kept:     len(r.Kept),
		Failed:   len(r.Failed),
	}
}
