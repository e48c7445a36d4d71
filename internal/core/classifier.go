package core

import (
	"io/fs"
	"os"
	"path/filepath"

	"permsweep/internal/types"
)

// Classifier decides whether a filesystem entry is in scope for remediation
// and snapshots its current state. Symlinks and whitelisted paths are out of
// scope; whitelist pruning itself is enforced earlier, by the walker, so
// that excluded subtrees are never even listed.
type Classifier struct {
	fs FileSystem
	wl *Whitelist
}

// NewClassifier creates a classifier over the given filesystem and whitelist.
func NewClassifier(fsys FileSystem, wl *Whitelist) *Classifier {
	return &Classifier{fs: fsys, wl: wl}
}

// Classify reads the current state of the path and returns the entry and
// whether it is in scope. State is read fresh on every call; nothing is
// cached across passes. The returned error is a per-entry stat failure, to
// be recorded, never propagated.
func (c *Classifier) Classify(root, relPath string) (types.Entry, bool, error) {
	if c.wl.Excluded(relPath) {
		return types.Entry{}, false, nil
	}

	abs := filepath.Join(root, relPath)
	if relPath == "." {
		abs = root
	}

	info, err := c.fs.Lstat(abs)
	if err != nil {
		return types.Entry{Path: relPath, AbsPath: abs}, false, err
	}

	entry := types.Entry{
		Path:    relPath,
		AbsPath: abs,
		Type:    entryTypeOf(info.Mode()),
		Mode:    info.Mode().Perm(),
	}

	// Symlinks are out of scope: the link is never chmod'd or chown'd and
	// the target is never consulted.
	if entry.Type == types.EntrySymlink {
		return entry, false, nil
	}

	uid, gid, err := c.fs.Owner(abs)
	if err != nil {
		return entry, false, err
	}
	entry.UID = uid
	entry.GID = gid
	return entry, true, nil
}

func entryTypeOf(mode fs.FileMode) types.EntryType {
	switch {
	case mode&os.ModeSymlink != 0:
		return types.EntrySymlink
	case mode.IsDir():
		return types.EntryDirectory
	case mode.IsRegular():
		return types.EntryRegularFile
	default:
		return types.EntryOther
	}
}
