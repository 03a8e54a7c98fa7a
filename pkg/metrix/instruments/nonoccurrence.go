package instruments

import (
	"time"

	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix"
)

// NonOccurrenceTracker reports how long it has been since the last
// observation, and whether that counts as "recent" against a
// threshold. A tracker that has never observed anything reports
// "not happened recently" rather than an off-by-one false positive.
type NonOccurrenceTracker struct {
	named
	clock          metrixutil.Clock
	threshold      time.Duration
	lastOccurrence time.Time
}

// NewNonOccurrenceTracker creates a tracker named name, considering an
// observation "recent" while it is no older than threshold.
func NewNonOccurrenceTracker(name string, threshold time.Duration, clock metrixutil.Clock) *NonOccurrenceTracker {
	return &NonOccurrenceTracker{named: named{name: name}, threshold: threshold, clock: clock}
}

func (n *NonOccurrenceTracker) Accept(u metrix.Update) {
	ts := u.Timestamp
	if ts.IsZero() {
		ts = n.clock.Now()
	}
	n.lastOccurrence = ts
}

func (n *NonOccurrenceTracker) Tick(time.Time) {}

func (n *NonOccurrenceTracker) PutSnapshot(into *metrix.Snapshot, descriptive bool) {
	metrix.PutDescriptiveFields(n, n.name, into, descriptive)
	var level metrix.Snapshot
	if n.lastOccurrence.IsZero() {
		level.Push("happened_recently", metrix.BoolItem(false))
		into.Push(n.name, level.AsGroup())
		return
	}
	elapsed := n.clock.Now().Sub(n.lastOccurrence)
	level.Push("elapsed_ms", metrix.IntItem(elapsed.Milliseconds()))
	level.Push("happened_recently", metrix.BoolItem(elapsed <= n.threshold))
	into.Push(n.name, level.AsGroup())
}
