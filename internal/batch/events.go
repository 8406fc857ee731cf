package batch

import "github.com/SEPLEMBER/Oxy-test/internal/event"

// EventSink publishes a job's progress and result on bus as JobProgress and
// JobFinished events.
func EventSink(bus *event.Manager, jobID string) Sink {
	return SinkFuncs{
		OnProgress: func(c Counters) {
			bus.Dispatch(event.TypeJobProgress, event.JobProgressData{
				JobID:             jobID,
				FilesScanned:      c.FilesScanned,
				MatchesFound:      c.MatchesFound,
				FilesChanged:      c.FilesChanged,
				ReplacementsTotal: c.ReplacementsTotal,
			})
		},
		OnDone: func(r Result) {
			bus.Dispatch(event.TypeJobFinished, event.JobFinishedData{
				JobID:   r.JobID,
				Outcome: r.Outcome.String(),
				Summary: r.String(),
				Err:     r.Err,
			})
		},
	}
}
