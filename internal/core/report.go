package core

import (
	"sync"

	"github.com/google/uuid"

	"permsweep/internal/types"
)

// ReportAggregator collects outcome records from concurrent workers into
// three append-only ordered logs. Each append is one atomic unit: records
// are never interleaved or lost. Ordering within a log follows append order,
// which under concurrency is unspecified.
type ReportAggregator struct {
	runID string
	root  string

	mu      sync.Mutex
	changed []types.OutcomeRecord
	kept    []types.OutcomeRecord
	failed  []types.OutcomeRecord
}

// NewReportAggregator creates an empty aggregator for a run over root.
func NewReportAggregator(root string) *ReportAggregator {
	return &ReportAggregator{runID: uuid.NewString(), root: root}
}

// Record appends rec to the log matching its action. Safe for concurrent use.
func (a *ReportAggregator) Record(rec types.OutcomeRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch rec.Action {
	case types.ActionChanged:
		a.changed = append(a.changed, rec)
	case types.ActionKept:
		a.kept = append(a.kept, rec)
	case types.ActionFailed:
		a.failed = append(a.failed, rec)
	}
}

// Report returns the accumulated run report. Counts are derived from the log
// lengths by the report itself, so they can never drift from the logs.
func (a *ReportAggregator) Report() types.RunReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	report := types.RunReport{
		RunID:   a.runID,
		Root:    a.root,
		Changed: make([]types.OutcomeRecord, len(a.changed)),
		Kept:    make([]types.OutcomeRecord, len(a.kept)),
		Failed:  make([]types.OutcomeRecord, len(a.failed)),
	}
	copy(report.Changed, a.changed)
	copy(report.Kept, a.kept)
	copy(report.Failed, a.failed)
	return report
}
