package core

import (
	"context"

	"permsweep/internal/types"
)

// UICallback receives progress and advisory output during a sweep. The
// report itself is returned, not printed, so callers choose the rendering.
type UICallback interface {
	AnnouncePhase(name string)
	Warn(title, message string)
}

// SilentUICallback discards all progress output.
type SilentUICallback struct{}

// AnnouncePhase is a no-op.
func (SilentUICallback) AnnouncePhase(string) {}

// Warn is a no-op.
func (SilentUICallback) Warn(string, string) {}

// Sweeper orchestrates a full sweep: two traversal passes with a barrier
// between them. Pass one normalizes ownership everywhere and directory
// modes; pass two normalizes file modes. Ownership always precedes mode
// handling, and the file pass observes the finished directory pass.
type Sweeper struct {
	fs       FileSystem
	policy   Policy
	resolver IdentityResolver
	ui       UICallback
}

// NewSweeper creates a sweeper with explicit dependencies.
func NewSweeper(fsys FileSystem, policy Policy, resolver IdentityResolver, ui UICallback) *Sweeper {
	if ui == nil {
		ui = SilentUICallback{}
	}
	return &Sweeper{fs: fsys, policy: policy, resolver: resolver, ui: ui}
}

// NewDefaultSweeper wires the OS-backed dependencies.
func NewDefaultSweeper(policy Policy, ui UICallback) *Sweeper {
	return NewSweeper(NewOSFileSystem(), policy, NewOSIdentityResolver(), ui)
}

// Run executes the full sweep rooted at root and returns the report. The
// returned error is non-nil only when the root itself cannot be enumerated;
// per-entry failures are visible in the report, never in the error.
func (s *Sweeper) Run(ctx context.Context, root string) (types.RunReport, error) {
	wl := NewWhitelist()
	agg := NewReportAggregator(root)
	walker := NewConcurrentWalker(s.fs, wl, agg, s.policy.Workers)
	remediator := NewRemediator(s.fs, s.policy, s.resolver)

	// Advisory only: the run proceeds and resolution failures surface as
	// per-entry ownership failures.
	if err := remediator.ResolveErr(); err != nil {
		s.ui.Warn("target identity not resolvable", err.Error())
	}

	s.ui.AnnouncePhase("normalizing ownership and directory modes")
	if err := walker.Walk(ctx, root, func(entry types.Entry) {
		s.ownershipAndDirPass(remediator, agg, entry)
	}); err != nil {
		return agg.Report(), err
	}

	s.ui.AnnouncePhase("normalizing file modes")
	if err := walker.Walk(ctx, root, func(entry types.Entry) {
		s.filePass(remediator, agg, entry)
	}); err != nil {
		return agg.Report(), err
	}

	return agg.Report(), nil
}

// ownershipAndDirPass normalizes ownership for every in-scope entry and
// handles directory modes inline: fix when off-target, otherwise classify as
// conformant. The running binary is left to the file pass, where it gets its
// fixed Kept record.
func (s *Sweeper) ownershipAndDirPass(r *Remediator, agg *ReportAggregator, entry types.Entry) {
	if r.IsSelf(entry) {
		return
	}
	if rec := r.NormalizeOwnership(entry); rec != nil {
		agg.Record(*rec)
	}
	if entry.Type != types.EntryDirectory {
		return
	}
	if rec := r.NormalizeMode(entry); rec != nil {
		agg.Record(*rec)
		return
	}
	if rec := r.Conformant(entry); rec != nil {
		agg.Record(*rec)
	}
}

// filePass normalizes regular file modes: fix when off-target, otherwise
// classify as conformant. The running binary is never mode-changed and is
// unconditionally recorded as kept.
func (s *Sweeper) filePass(r *Remediator, agg *ReportAggregator, entry types.Entry) {
	if entry.Type != types.EntryRegularFile {
		return
	}
	if r.IsSelf(entry) {
		agg.Record(*r.KeepSelf(entry))
		return
	}
	if rec := r.NormalizeMode(entry); rec != nil {
		agg.Record(*rec)
		return
	}
	if rec := r.Conformant(entry); rec != nil {
		agg.Record(*rec)
	}
}
