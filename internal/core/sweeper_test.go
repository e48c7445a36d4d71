package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"permsweep/internal/types"
)

func newTestSweeper(fs FileSystem, workers int) *Sweeper {
	policy := DefaultPolicy()
	policy.Workers = workers
	return NewSweeper(fs, policy, &StaticIdentityResolver{UID: 33, GID: 33}, nil)
}

func findRecord(recs []types.OutcomeRecord, path string) *types.OutcomeRecord {
	for i := range recs {
		if recs[i].Path == path {
			return &recs[i]
		}
	}
	return nil
}

// TestSweeper_Scenario runs the canonical scenario: a/ (mode 700, correct
// owner), a/f.txt (mode 600, wrong owner), .git/x (mode 777). Expected: a/
// changed to 755, a/f.txt ownership fixed silently then mode changed to 644,
// .git/x never visited.
func TestSweeper_Scenario(t *testing.T) {
	fs := NewMemFileSystem()
	if err := fs.MkdirAll("/site", 0o755, 33, 33); err != nil {
		t.Fatal(err)
	}
	if err := fs.MkdirAll("/site/a", 0o700, 33, 33); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("/site/a/f.txt", nil, 0o600, 1000, 1000); err != nil {
		t.Fatal(err)
	}
	if err := fs.MkdirAll("/site/.git", 0o755, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("/site/.git/x", nil, 0o777, 0, 0); err != nil {
		t.Fatal(err)
	}

	report, err := newTestSweeper(fs, 4).Run(context.Background(), "/site")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	rec := findRecord(report.Changed, "a")
	if rec == nil || !strings.Contains(rec.Reason, "mode changed to 755") {
		t.Errorf("expected a/ changed to 755, got %+v", rec)
	}

	rec = findRecord(report.Changed, "a/f.txt")
	if rec == nil || !strings.Contains(rec.Reason, "mode changed to 644") {
		t.Errorf("expected a/f.txt changed to 644, got %+v", rec)
	}

	// Ownership was fixed silently: verify state, not records.
	uid, gid, err := fs.Owner("/site/a/f.txt")
	if err != nil {
		t.Fatal(err)
	}
	if uid != 33 || gid != 33 {
		t.Errorf("expected a/f.txt owned 33:33, got %d:%d", uid, gid)
	}

	// Nothing under .git appears in any log.
	for _, log := range [][]types.OutcomeRecord{report.Changed, report.Kept, report.Failed} {
		for _, rec := range log {
			if strings.HasPrefix(rec.Path, ".git") {
				t.Errorf(".git entry leaked into report: %+v", rec)
			}
		}
	}

	// .git/x state untouched.
	info, err := fs.Lstat("/site/.git/x")
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o777 {
		t.Errorf("whitelisted file was modified: mode %o", info.Mode().Perm())
	}

	if len(report.Failed) != 0 {
		t.Errorf("expected no failures, got %+v", report.Failed)
	}
}

// TestSweeper_Idempotence tests that a second run produces zero Changed
// records and classifies conforming entries as Kept.
func TestSweeper_Idempotence(t *testing.T) {
	fs := NewMemFileSystem()
	if err := fs.MkdirAll("/site", 0o700, 1000, 1000); err != nil {
		t.Fatal(err)
	}
	if err := fs.MkdirAll("/site/docs", 0o750, 1000, 1000); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("/site/docs/readme.txt", nil, 0o600, 1000, 1000); err != nil {
		t.Fatal(err)
	}

	sweeper := newTestSweeper(fs, 2)

	first, err := sweeper.Run(context.Background(), "/site")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(first.Changed) == 0 {
		t.Fatal("expected changes on first run")
	}

	second, err := sweeper.Run(context.Background(), "/site")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second.Changed) != 0 {
		t.Errorf("expected zero Changed on second run, got %+v", second.Changed)
	}
	if len(second.Failed) != 0 {
		t.Errorf("expected zero Failed on second run, got %+v", second.Failed)
	}

	// All three entries (root, docs, readme.txt) now conform.
	for _, path := range []string{".", "docs", "docs/readme.txt"} {
		rec := findRecord(second.Kept, path)
		if rec == nil || !strings.Contains(rec.Reason, "already conforms") {
			t.Errorf("expected Kept record for %s, got %+v", path, rec)
		}
	}
}

// TestSweeper_SelfFile tests that the running binary is never mode-changed
// and always gets its fixed Kept record.
func TestSweeper_SelfFile(t *testing.T) {
	fs := NewMemFileSystem()
	if err := fs.MkdirAll("/site", 0o755, 33, 33); err != nil {
		t.Fatal(err)
	}
	// Wrong mode on purpose: the self-file must still not be touched.
	if err := fs.WriteFile("/site/permsweep", nil, 0o750, 0, 0); err != nil {
		t.Fatal(err)
	}

	policy := DefaultPolicy()
	policy.Workers = 2
	policy.SelfPath = "/site/permsweep"
	sweeper := NewSweeper(fs, policy, &StaticIdentityResolver{UID: 33, GID: 33}, nil)

	report, err := sweeper.Run(context.Background(), "/site")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	rec := findRecord(report.Kept, "permsweep")
	if rec == nil || rec.Reason != SelfKeptReason {
		t.Fatalf("expected self Kept record, got %+v", rec)
	}
	if findRecord(report.Changed, "permsweep") != nil {
		t.Error("self-file appeared in the Changed log")
	}

	info, err := fs.Lstat("/site/permsweep")
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o750 {
		t.Errorf("self-file mode was changed to %o", info.Mode().Perm())
	}
	uid, gid, err := fs.Owner("/site/permsweep")
	if err != nil {
		t.Fatal(err)
	}
	if uid != 0 || gid != 0 {
		t.Errorf("self-file ownership was changed to %d:%d", uid, gid)
	}
}

// TestSweeper_FailuresAreNotFatal tests that per-entry failures land in the
// report while the run itself succeeds.
func TestSweeper_FailuresAreNotFatal(t *testing.T) {
	fs := NewMemFileSystem()
	if err := fs.MkdirAll("/site", 0o755, 33, 33); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("/site/locked.txt", nil, 0o600, 1000, 1000); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("/site/fine.txt", nil, 0o600, 33, 33); err != nil {
		t.Fatal(err)
	}
	fs.FailChown("/site/locked.txt", errors.New("operation not permitted"))
	fs.FailChmod("/site/locked.txt", errors.New("operation not permitted"))

	report, err := newTestSweeper(fs, 2).Run(context.Background(), "/site")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if findRecord(report.Failed, "locked.txt") == nil {
		t.Error("expected Failed records for locked.txt")
	}
	if rec := findRecord(report.Changed, "fine.txt"); rec == nil {
		t.Error("expected fine.txt to still be fixed")
	}
}

// TestSweeper_UnresolvedIdentityWarnsAndProceeds tests the advisory
// pre-flight: resolution failure warns, the sweep runs, and ownership
// failures surface per entry.
func TestSweeper_UnresolvedIdentityWarnsAndProceeds(t *testing.T) {
	fs := NewMemFileSystem()
	if err := fs.MkdirAll("/site", 0o755, 33, 33); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("/site/f.txt", nil, 0o600, 33, 33); err != nil {
		t.Fatal(err)
	}

	ui := &recordingUI{}
	policy := DefaultPolicy()
	policy.Workers = 1
	resolver := &StaticIdentityResolver{Err: errors.New(`unknown user "www-data"`)}
	sweeper := NewSweeper(fs, policy, resolver, ui)

	report, err := sweeper.Run(context.Background(), "/site")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(ui.warnings) == 0 {
		t.Error("expected a pre-flight warning")
	}
	if len(ui.phases) != 2 {
		t.Errorf("expected two phase announcements, got %v", ui.phases)
	}
	// Ownership fails for both entries; the mode fix still goes through.
	if len(report.Failed) == 0 {
		t.Error("expected per-entry ownership failures")
	}
	if findRecord(report.Changed, "f.txt") == nil {
		t.Error("expected the mode fix to proceed despite unresolved identity")
	}
}

// TestSweeper_WorkersClampedToOne tests the concurrency edge case: level 0
// still completes and produces a full report.
func TestSweeper_WorkersClampedToOne(t *testing.T) {
	fs := NewMemFileSystem()
	if err := fs.MkdirAll("/site", 0o755, 33, 33); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("/site/f.txt", nil, 0o644, 33, 33); err != nil {
		t.Fatal(err)
	}

	report, err := newTestSweeper(fs, 0).Run(context.Background(), "/site")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(report.Kept) == 0 {
		t.Error("expected Kept records from the clamped run")
	}
}

// recordingUI captures UI callbacks for assertions.
type recordingUI struct {
	phases   []string
	warnings []string
}

func (r *recordingUI) AnnouncePhase(name string) { r.phases = append(r.phases, name) }
func (r *recordingUI) Warn(title, message string) {
	r.warnings = append(r.warnings, title+": "+message)
}
