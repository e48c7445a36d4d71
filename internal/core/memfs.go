package core

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"
)

// MemFileSystem is an in-memory FileSystem built on afero's MemMapFs with an
// ownership overlay and symlink emulation. It exists so ownership and
// failure paths can be exercised in tests without root privileges.
type MemFileSystem struct {
	fs afero.Fs

	mu        sync.Mutex
	owners    map[string]idPair
	symlinks  map[string]struct{}
	chownErrs map[string]error
	chmodErrs map[string]error
	lstatErrs map[string]error
}

type idPair struct {
	uid int
	gid int
}

// NewMemFileSystem creates an empty in-memory filesystem.
func NewMemFileSystem() *MemFileSystem {
	return &MemFileSystem{
		fs:        afero.NewMemMapFs(),
		owners:    map[string]idPair{},
		symlinks:  map[string]struct{}{},
		chownErrs: map[string]error{},
		chmodErrs: map[string]error{},
		lstatErrs: map[string]error{},
	}
}

// MkdirAll creates a directory tree with the given mode and owner.
func (m *MemFileSystem) MkdirAll(path string, mode os.FileMode, uid, gid int) error {
	if err := m.fs.MkdirAll(path, mode); err != nil {
		return err
	}
	// MkdirAll applies the umask-less mode only to missing components, so
	// pin the leaf explicitly.
	if err := m.fs.Chmod(path, mode); err != nil {
		return err
	}
	m.setOwner(path, uid, gid)
	return nil
}

// WriteFile creates a regular file with the given mode and owner.
func (m *MemFileSystem) WriteFile(path string, data []byte, mode os.FileMode, uid, gid int) error {
	if err := afero.WriteFile(m.fs, path, data, mode); err != nil {
		return err
	}
	if err := m.fs.Chmod(path, mode); err != nil {
		return err
	}
	m.setOwner(path, uid, gid)
	return nil
}

// AddSymlink records a symlink at path. MemMapFs has no native symlinks, so
// the link is a placeholder file whose lstat mode carries the symlink bit.
func (m *MemFileSystem) AddSymlink(path string) error {
	if err := afero.WriteFile(m.fs, path, nil, 0o777); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.symlinks[filepath.Clean(path)] = struct{}{}
	return nil
}

// FailChown makes subsequent Chown calls on path return err.
func (m *MemFileSystem) FailChown(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chownErrs[filepath.Clean(path)] = err
}

// FailLstat makes subsequent Lstat calls on path return err, simulating an
// entry vanishing between enumeration and classification.
func (m *MemFileSystem) FailLstat(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lstatErrs[filepath.Clean(path)] = err
}

// FailChmod makes subsequent Chmod calls on path return err.
func (m *MemFileSystem) FailChmod(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chmodErrs[filepath.Clean(path)] = err
}

func (m *MemFileSystem) setOwner(path string, uid, gid int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[filepath.Clean(path)] = idPair{uid: uid, gid: gid}
}

func (m *MemFileSystem) isSymlink(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.symlinks[filepath.Clean(path)]
	return ok
}

// Lstat stats path, reporting emulated symlinks through their mode bits.
func (m *MemFileSystem) Lstat(path string) (os.FileInfo, error) {
	m.mu.Lock()
	injected := m.lstatErrs[filepath.Clean(path)]
	m.mu.Unlock()
	if injected != nil {
		return nil, injected
	}
	info, err := m.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if m.isSymlink(path) {
		return symlinkInfo{info}, nil
	}
	return info, nil
}

// ReadDir lists the contents of a directory, sorted by name.
func (m *MemFileSystem) ReadDir(path string) ([]os.FileInfo, error) {
	infos, err := afero.ReadDir(m.fs, path)
	if err != nil {
		return nil, err
	}
	out := make([]os.FileInfo, 0, len(infos))
	for _, info := range infos {
		if m.isSymlink(filepath.Join(path, info.Name())) {
			out = append(out, symlinkInfo{info})
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// Chmod changes the permission bits of path, honoring injected failures.
func (m *MemFileSystem) Chmod(path string, mode os.FileMode) error {
	m.mu.Lock()
	err := m.chmodErrs[filepath.Clean(path)]
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return m.fs.Chmod(path, mode)
}

// Chown changes the recorded ownership of path, honoring injected failures.
func (m *MemFileSystem) Chown(path string, uid, gid int) error {
	m.mu.Lock()
	err := m.chownErrs[filepath.Clean(path)]
	m.mu.Unlock()
	if err != nil {
		return err
	}
	if _, statErr := m.fs.Stat(path); statErr != nil {
		return statErr
	}
	m.setOwner(path, uid, gid)
	return nil
}

// Owner returns the recorded owner/group ids for path.
func (m *MemFileSystem) Owner(path string) (int, int, error) {
	if _, err := m.fs.Stat(path); err != nil {
		return 0, 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pair := m.owners[filepath.Clean(path)]
	return pair.uid, pair.gid, nil
}

// symlinkInfo overlays the symlink type bit on a MemMapFs file info.
type symlinkInfo struct {
	os.FileInfo
}

func (s symlinkInfo) Mode() os.FileMode { return s.FileInfo.Mode() | os.ModeSymlink }
func (s symlinkInfo) IsDir() bool       { return false }

// Compile-time interface satisfaction checks.
var (
	_ FileSystem = (*OSFileSystem)(nil)
	_ FileSystem = (*MemFileSystem)(nil)
)
