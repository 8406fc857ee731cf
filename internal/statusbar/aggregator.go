package statusbar

import (
	"sync"
	"time"

	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/SEPLEMBER/Oxy-test/internal/utils"
)

// DefaultDelay is how long edits must pause before counts are recomputed.
const DefaultDelay = 200 * time.Millisecond

// Aggregator recomputes the summary of a changing text off the hot path.
// Bursts of updates collapse into one computation after the delay.
type Aggregator struct {
	delay     time.Duration
	publish   func(string)
	debouncer utils.Debouncer

	mu         sync.Mutex
	counts     Counts
	matchIndex int
	matchTotal int
}

// NewAggregator creates an aggregator that hands each summary to publish.
// A non-positive delay selects DefaultDelay.
func NewAggregator(delay time.Duration, publish func(string)) *Aggregator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Aggregator{delay: delay, publish: publish}
}

// TextChanged schedules a recount of text. The text function is called
// when the delay expires, so it should read the latest state.
func (a *Aggregator) TextChanged(text func() string) {
	a.debouncer.Debounce(a.delay, func() {
		c := Count(text())
		a.mu.Lock()
		a.counts = c
		a.mu.Unlock()
		logger.DebugTagf("status", "Recounted: %+v", c)
		a.emit()
	})
}

// MatchesChanged updates the match indicator immediately, reusing the last
// counts.
func (a *Aggregator) MatchesChanged(index, total int) {
	a.mu.Lock()
	a.matchIndex, a.matchTotal = index, total
	a.mu.Unlock()
	a.emit()
}

// Flush recounts text now, dropping any pending recount, and returns the
// summary it published.
func (a *Aggregator) Flush(text string) string {
	a.debouncer.Stop()
	a.mu.Lock()
	a.counts = Count(text)
	a.mu.Unlock()
	return a.emit()
}

// Summary returns the last computed summary without recounting.
func (a *Aggregator) Summary() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Summary(a.counts, a.matchIndex, a.matchTotal)
}

// Stop drops a pending recount.
func (a *Aggregator) Stop() {
	a.debouncer.Stop()
}

func (a *Aggregator) emit() string {
	s := a.Summary()
	if a.publish != nil {
		a.publish(s)
	}
	return s
}
