package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"permsweep/internal/types"
)

// EntryFunc is the per-entry operation of one pass. Implementations must be
// independent and commutative across entries: no entry's outcome may depend
// on another's.
type EntryFunc func(entry types.Entry)

// ConcurrentWalker enumerates the directory tree once per pass, pruning
// whitelisted subtrees before descent, and dispatches each in-scope entry to
// a bounded worker pool. Walk returns only after every worker has finished,
// which is the barrier between passes.
type ConcurrentWalker struct {
	fs         FileSystem
	wl         *Whitelist
	classifier *Classifier
	agg        *ReportAggregator
	workers    int
}

// NewConcurrentWalker creates a walker with the given worker count (clamped
// to a minimum of 1).
func NewConcurrentWalker(fsys FileSystem, wl *Whitelist, agg *ReportAggregator, workers int) *ConcurrentWalker {
	return &ConcurrentWalker{
		fs:         fsys,
		wl:         wl,
		classifier: NewClassifier(fsys, wl),
		agg:        agg,
		workers:    ClampWorkers(workers),
	}
}

// Walk performs one full pre-order traversal of root, calling fn for every
// in-scope entry. Per-entry stat and list failures are recorded in the
// Failed log and do not stop the walk; only a root that cannot be listed is
// fatal.
func (w *ConcurrentWalker) Walk(ctx context.Context, root string, fn EntryFunc) error {
	jobs := make(chan string, 64)

	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go w.worker(ctx, &wg, root, jobs, fn)
	}

	err := w.enumerate(ctx, root, jobs)
	close(jobs)
	wg.Wait()
	return err
}

// enumerate lists the tree single-threaded and feeds candidate relative
// paths to the workers. Whitelisted names are pruned here, before descent,
// so excluded subtrees are never listed at all.
func (w *ConcurrentWalker) enumerate(ctx context.Context, root string, jobs chan<- string) error {
	rootInfos, err := w.fs.ReadDir(root)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRootUnreadable, err)
	}

	// The root itself is normalized too.
	jobs <- "."

	var descend func(rel string, infos []os.FileInfo)
	descend = func(rel string, infos []os.FileInfo) {
		for _, info := range infos {
			if ctx.Err() != nil {
				return
			}
			childRel := filepath.Join(rel, info.Name())
			if w.wl.Excluded(childRel) {
				continue
			}
			jobs <- childRel
			if info.IsDir() && info.Mode()&os.ModeSymlink == 0 {
				childInfos, err := w.fs.ReadDir(filepath.Join(root, childRel))
				if err != nil {
					// The directory entry itself was already dispatched;
					// only its listing failed.
					w.agg.Record(types.OutcomeRecord{
						Path:   childRel,
						Action: types.ActionFailed,
						Reason: fmt.Sprintf(ReasonListFailed, err),
					})
					continue
				}
				descend(childRel, childInfos)
			}
		}
	}
	descend(".", rootInfos)
	return nil
}

// worker classifies each dispatched path and hands in-scope entries to fn.
// Stat failures become Failed records; symlinks and whitelisted paths are
// dropped without a record.
func (w *ConcurrentWalker) worker(ctx context.Context, wg *sync.WaitGroup, root string, jobs <-chan string, fn EntryFunc) {
	defer wg.Done()

	for rel := range jobs {
		if ctx.Err() != nil {
			continue
		}
		entry, inScope, err := w.classifier.Classify(root, rel)
		if err != nil {
			w.agg.Record(types.OutcomeRecord{
				Path:   rel,
				Action: types.ActionFailed,
				Reason: fmt.Sprintf(ReasonStatFailed, err),
			})
			continue
		}
		if !inScope {
			continue
		}
		fn(entry)
	}
}
