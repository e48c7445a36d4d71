package core

import (
	"os"
	"sort"
	"syscall"

	"github.com/spf13/afero"
)

// FileSystem abstracts the filesystem operations a sweep needs, so tests can
// run against an in-memory tree without root privileges. Lstat must not
// follow symlinks.
type FileSystem interface {
	Lstat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.FileInfo, error)
	Chmod(path string, mode os.FileMode) error
	Chown(path string, uid, gid int) error
	// Owner returns the current owner/group ids for path without following
	// symlinks.
	Owner(path string) (uid, gid int, err error)
}

// OSFileSystem implements FileSystem against the real filesystem through an
// afero OsFs backend.
type OSFileSystem struct {
	fs afero.Fs
}

// NewOSFileSystem creates a FileSystem backed by the operating system.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{fs: afero.NewOsFs()}
}

// Lstat stats path without following symlinks.
func (o *OSFileSystem) Lstat(path string) (os.FileInfo, error) {
	if lst, ok := o.fs.(afero.Lstater); ok {
		info, _, err := lst.LstatIfPossible(path)
		return info, err
	}
	return o.fs.Stat(path)
}

// ReadDir lists the contents of a directory, sorted by name.
func (o *OSFileSystem) ReadDir(path string) ([]os.FileInfo, error) {
	infos, err := afero.ReadDir(o.fs, path)
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	return infos, nil
}

// Chmod changes the permission bits of path.
func (o *OSFileSystem) Chmod(path string, mode os.FileMode) error {
	return o.fs.Chmod(path, mode)
}

// Chown changes the ownership of path. Callers must never pass a symlink:
// the underlying call follows links.
func (o *OSFileSystem) Chown(path string, uid, gid int) error {
	return o.fs.Chown(path, uid, gid)
}

// Owner reads the owner/group ids from the lstat result.
func (o *OSFileSystem) Owner(path string) (int, int, error) {
	info, err := o.Lstat(path)
	if err != nil {
		return 0, 0, err
	}
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return int(st.Uid), int(st.Gid), nil
	}
	return 0, 0, nil
}
