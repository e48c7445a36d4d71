package core

import (
	"io/fs"
	"runtime"
)

// Policy is the immutable target configuration for a sweep: the ownership
// pair, the two fixed modes, the worker count, and the path of the running
// binary (which is exempt from mode changes).
type Policy struct {
	Owner    string      // target owner name
	Group    string      // target group name
	DirMode  fs.FileMode // normalized directory mode
	FileMode fs.FileMode // normalized file mode
	Workers  int         // worker pool size, always >= 1
	SelfPath string      // absolute path of the running binary, may be empty
}

// DefaultPolicy returns the fixed target policy with the detected default
// concurrency level.
func DefaultPolicy() Policy {
	return Policy{
		Owner:    DefaultOwner,
		Group:    DefaultGroup,
		DirMode:  DefaultDirMode,
		FileMode: DefaultFileMode,
		Workers:  DefaultWorkers(),
	}
}

// DefaultWorkers returns the detected CPU count, falling back to 4 when
// detection yields nothing usable.
func DefaultWorkers() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 4
}

// ClampWorkers normalizes a requested concurrency level to the minimum of 1.
func ClampWorkers(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
