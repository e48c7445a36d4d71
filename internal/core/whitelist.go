package core

import (
	"path/filepath"
	"strings"
)

// Whitelist is the fixed set of names excluded from a sweep. Membership is
// decided by path identity relative to the walk root, before descent, so a
// whitelisted directory's contents are never visited.
type Whitelist struct {
	names map[string]struct{}
}

// NewWhitelist returns the default whitelist: version control directory,
// well-known directory, the kept dotfile, and the temporary build directory.
func NewWhitelist() *Whitelist {
	return &Whitelist{
		names: map[string]struct{}{
			VCSDirName:       {},
			WellKnownDirName: {},
			KeepDotfileName:  {},
			TmpBuildDirName:  {},
		},
	}
}

// Excluded reports whether relPath (forward-slash or OS-native, relative to
// the walk root) is a whitelist entry or descends from one. The walk root
// itself ("." or "") is never excluded.
func (w *Whitelist) Excluded(relPath string) bool {
	rel := filepath.ToSlash(filepath.Clean(relPath))
	if rel == "." || rel == "" {
		return false
	}
	// Only top-level names are whitelisted; a match on the first segment
	// covers the entry itself and everything beneath it.
	first := rel
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		first = rel[:i]
	}
	_, ok := w.names[first]
	return ok
}
