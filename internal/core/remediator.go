package core

import (
	"fmt"
	"io/fs"

	"permsweep/internal/types"
)

// Remediator applies the target policy to individual in-scope entries and
// classifies each outcome. Operations are idempotent; ownership is always
// normalized before modes, matching the pass order of the sweep.
type Remediator struct {
	fs     FileSystem
	policy Policy

	// Resolved once per run. When resolveErr is set, every ownership
	// attempt fails with it and conformance can never be confirmed.
	uid        int
	gid        int
	resolveErr error
}

// NewRemediator creates a remediator, resolving the policy's owner and group
// names through the given resolver. Resolution failure is not fatal: it is
// carried into per-entry ownership failures.
func NewRemediator(fsys FileSystem, policy Policy, resolver IdentityResolver) *Remediator {
	r := &Remediator{fs: fsys, policy: policy}
	r.uid, r.gid, r.resolveErr = resolver.Resolve(policy.Owner, policy.Group)
	return r
}

// ResolveErr returns the identity resolution error, if any. Used for the
// advisory pre-flight warning.
func (r *Remediator) ResolveErr() error {
	return r.resolveErr
}

// NormalizeOwnership sets the target owner and group on the entry. It is
// applied unconditionally: the call is idempotent, so no read-before-write
// check is needed. Success is silent (nil record) because correct ownership
// becomes visible later through the conformant classification; only failure
// produces a record.
func (r *Remediator) NormalizeOwnership(entry types.Entry) *types.OutcomeRecord {
	if r.resolveErr != nil {
		return &types.OutcomeRecord{
			Path:   entry.Path,
			Action: types.ActionFailed,
			Reason: fmt.Sprintf(ReasonOwnershipFailed, r.resolveErr),
		}
	}
	if err := r.fs.Chown(entry.AbsPath, r.uid, r.gid); err != nil {
		return &types.OutcomeRecord{
			Path:   entry.Path,
			Action: types.ActionFailed,
			Reason: fmt.Sprintf(ReasonOwnershipFailed, err),
		}
	}
	return nil
}

// NormalizeMode fixes the entry's permission bits when they differ from the
// target for its type, returning Changed or Failed. When the mode already
// matches, nil is returned and Conformant decides whether a Kept record is
// due. The running binary never reaches this method.
func (r *Remediator) NormalizeMode(entry types.Entry) *types.OutcomeRecord {
	target := r.targetMode(entry)
	if entry.Mode == target {
		return nil
	}
	if err := r.fs.Chmod(entry.AbsPath, target); err != nil {
		return &types.OutcomeRecord{
			Path:   entry.Path,
			Action: types.ActionFailed,
			Reason: fmt.Sprintf(ReasonModeChangeFailed, target, err),
		}
	}
	return &types.OutcomeRecord{
		Path:   entry.Path,
		Action: types.ActionChanged,
		Reason: fmt.Sprintf(ReasonModeChanged, target),
	}
}

// Conformant reports the entry as Kept when its mode and ownership already
// match the target policy. Ownership is re-read rather than trusted from the
// entry snapshot, since the ownership step of the same pass may just have
// rewritten it. Returns nil when the entry does not fully conform.
func (r *Remediator) Conformant(entry types.Entry) *types.OutcomeRecord {
	if r.resolveErr != nil {
		return nil
	}
	if entry.Mode != r.targetMode(entry) {
		return nil
	}
	uid, gid, err := r.fs.Owner(entry.AbsPath)
	if err != nil || uid != r.uid || gid != r.gid {
		return nil
	}
	return &types.OutcomeRecord{
		Path:   entry.Path,
		Action: types.ActionKept,
		Reason: fmt.Sprintf(ReasonConformant, r.targetMode(entry), r.policy.Owner, r.policy.Group),
	}
}

// KeepSelf returns the fixed Kept record for the running binary, which is
// exempt from mode changes regardless of its current state.
func (r *Remediator) KeepSelf(entry types.Entry) *types.OutcomeRecord {
	return &types.OutcomeRecord{
		Path:   entry.Path,
		Action: types.ActionKept,
		Reason: SelfKeptReason,
	}
}

// IsSelf reports whether the entry is the running binary.
func (r *Remediator) IsSelf(entry types.Entry) bool {
	return r.policy.SelfPath != "" && entry.AbsPath == r.policy.SelfPath
}

func (r *Remediator) targetMode(entry types.Entry) fs.FileMode {
	if entry.Type == types.EntryDirectory {
		return r.policy.DirMode
	}
	return r.policy.FileMode
}
