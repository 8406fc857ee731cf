package batch

import (
	"fmt"
	"sync"
)

// Counters are the running totals of a walk.
type Counters struct {
	FilesScanned      int
	FilesChanged      int
	MatchesFound      int
	ReplacementsTotal int
}

// Outcome is how a walk ended.
type Outcome int

const (
	Completed Outcome = iota
	Cancelled
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return "completed"
}

// Result is the terminal report of a walk. Counters are valid for every
// outcome; Err is set only when the walk Failed.
type Result struct {
	JobID    string
	Outcome  Outcome
	Counters Counters
	Err      error
}

func (r Result) String() string {
	if r.Outcome == Failed {
		return fmt.Sprintf("%s: %v", r.Outcome, r.Err)
	}
	c := r.Counters
	return fmt.Sprintf("%s: scanned=%d matches=%d changed=%d replacements=%d",
		r.Outcome, c.FilesScanned, c.MatchesFound, c.FilesChanged, c.ReplacementsTotal)
}

// Sink receives live progress and the final result of a walk. Done is
// called exactly once.
type Sink interface {
	Progress(c Counters)
	Done(r Result)
}

// SinkFuncs adapts functions to Sink; nil fields are skipped.
type SinkFuncs struct {
	OnProgress func(Counters)
	OnDone     func(Result)
}

func (s SinkFuncs) Progress(c Counters) {
	if s.OnProgress != nil {
		s.OnProgress(c)
	}
}

func (s SinkFuncs) Done(r Result) {
	if s.OnDone != nil {
		s.OnDone(r)
	}
}

// NopSink discards everything.
var NopSink Sink = SinkFuncs{}

// Recorder is a Sink that keeps every update. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	updates []Counters
	result  *Result
}

func (r *Recorder) Progress(c Counters) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, c)
}

func (r *Recorder) Done(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = &res
}

// Updates returns the progress updates received so far.
func (r *Recorder) Updates() []Counters {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Counters(nil), r.updates...)
}

// Result returns the final result, if the walk has ended.
func (r *Recorder) Result() (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.result == nil {
		return Result{}, false
	}
	return *r.result, true
}
