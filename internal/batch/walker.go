// Package batch applies search or replace across every file under a
// directory, sequentially, with live progress and cooperative cancellation.
package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/SEPLEMBER/Oxy-test/internal/fileio"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/google/uuid"
)

// ErrRootNotDirectory is reported when a walk is started on a file.
var ErrRootNotDirectory = errors.New("root is not a directory")

// Job is the state of one walk, shared with the visitor.
type Job struct {
	ID       string
	Counters Counters
	sink     Sink
}

// Report pushes the current counters to the sink.
func (j *Job) Report() {
	j.sink.Progress(j.Counters)
}

// Visitor processes one file. It must return ctx.Err() promptly once ctx is
// done; any other error is logged and the file skipped.
type Visitor interface {
	VisitFile(ctx context.Context, job *Job, f fileio.Entry) error
}

// Walker holds the traversal options.
type Walker struct {
	FS         fileio.FS
	SkipDirs   map[string]bool // directory names never descended into
	SkipBinary bool
}

// DefaultSkipDirs are left out unless configured otherwise.
var DefaultSkipDirs = []string{".git"}

// NewWalker creates a walker over fsys that skips binary files and the
// given directory names.
func NewWalker(fsys fileio.FS, skipDirs []string) *Walker {
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = true
	}
	return &Walker{FS: fsys, SkipDirs: skip, SkipBinary: true}
}

// Walk visits every file below root depth-first, each directory's entries in
// name order. Sink.Done is always called before Walk returns.
func (w *Walker) Walk(ctx context.Context, root string, v Visitor, sink Sink) Result {
	return w.WalkJob(ctx, uuid.NewString(), root, v, sink)
}

// WalkJob is Walk under a caller-chosen job ID, e.g. one issued by a Runner.
func (w *Walker) WalkJob(ctx context.Context, id, root string, v Visitor, sink Sink) Result {
	if sink == nil {
		sink = NopSink
	}
	job := &Job{ID: id, sink: sink}
	res := w.run(ctx, job, root, v)
	logger.Infof("Batch %s on %q %v", job.ID, root, res)
	sink.Done(res)
	return res
}

func (w *Walker) run(ctx context.Context, job *Job, root string, v Visitor) Result {
	res := Result{JobID: job.ID}

	entry, err := w.FS.Stat(root)
	if err != nil {
		res.Outcome, res.Err = Failed, err
		return res
	}
	if !entry.IsDir {
		res.Outcome, res.Err = Failed, fmt.Errorf("%s: %w", root, ErrRootNotDirectory)
		return res
	}
	// An unlistable root is a setup failure, unlike an unlistable subdirectory
	if _, err := w.FS.ReadDir(root); err != nil {
		res.Outcome, res.Err = Failed, err
		return res
	}

	err = w.walkDir(ctx, job, root, v)
	res.Counters = job.Counters
	if err != nil {
		res.Outcome = Cancelled
	}
	return res
}

// walkDir only returns an error when the walk was cancelled.
func (w *Walker) walkDir(ctx context.Context, job *Job, dir string, v Visitor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := w.FS.ReadDir(dir)
	if err != nil {
		logger.DebugTagf("walk", "Skipping directory %s: %v", dir, err)
		return nil
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.IsDir {
			if w.SkipDirs[e.Name] {
				continue
			}
			if err := w.walkDir(ctx, job, e.Path, v); err != nil {
				return err
			}
			continue
		}
		if err := w.visit(ctx, job, v, e); err != nil {
			return err
		}
	}
	return nil
}

// visit runs the visitor on one file and absorbs its failures.
func (w *Walker) visit(ctx context.Context, job *Job, v Visitor, f fileio.Entry) error {
	if w.SkipBinary {
		binary, err := fileio.Sniff(w.FS, f.Path)
		switch {
		case err != nil:
			logger.DebugTagf("walk", "Skipping %s (%s): %v", f.Path, fileio.KindOf(err), err)
			w.scanned(job)
			return nil
		case binary:
			logger.DebugTagf("walk", "Skipping binary file %s", f.Path)
			w.scanned(job)
			return nil
		}
	}

	err := v.VisitFile(ctx, job, f)
	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		return ctxErr
	}
	if err != nil {
		logger.DebugTagf("walk", "Skipping %s (%s): %v", f.Path, fileio.KindOf(err), err)
	}
	w.scanned(job)
	return nil
}

func (w *Walker) scanned(job *Job) {
	job.Counters.FilesScanned++
	job.Report()
}
