package driver

import (
	"time"

	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix"
)

// strategyKind selects how a Strategy drains one processor on one
// tick.
type strategyKind int

const (
	kindDrainAll strategyKind = iota
	kindDrainBounded
	kindDrainFor
)

// drainChunk bounds each individual Process call under DrainFor, so
// the wall-clock budget can be checked between chunks rather than
// only after an unbounded drain.
const drainChunk = 256

// Strategy controls how much work the driver does per processor on
// each tick. DrainAll maximises freshness but can starve other
// processors under sustained load; DrainBounded trades some freshness
// for fairness and is the recommended default (spec.md §9 Open
// Questions); DrainFor bounds wall-clock time spent per processor
// instead of item count.
type Strategy struct {
	kind strategyKind
	n    int
	d    time.Duration
}

// DrainAll drains every queued observation on each tick, regardless of
// how many there are.
func DrainAll() Strategy { return Strategy{kind: kindDrainAll} }

// DrainBounded drains at most n observations per processor per tick.
func DrainBounded(n int) Strategy { return Strategy{kind: kindDrainBounded, n: n} }

// DrainFor drains a processor repeatedly, in chunks, until its queue
// empties or the wall-clock budget d is exhausted.
func DrainFor(d time.Duration) Strategy { return Strategy{kind: kindDrainFor, d: d} }

// drain runs the strategy against one processor and returns the
// combined outcome.
func (s Strategy) drain(p metrix.Processor, clock metrixutil.Clock) metrix.ProcessingOutcome {
	switch s.kind {
	case kindDrainBounded:
		return p.Process(s.n)
	case kindDrainFor:
		var combined metrix.ProcessingOutcome
		start := clock.Now()
		for {
			sub := p.Process(drainChunk)
			combined.Processed += sub.Processed
			combined.Dropped += sub.Dropped
			if sub.Disconnected {
				combined.Disconnected = true
				return combined
			}
			if sub.Processed+sub.Dropped < uint64(drainChunk) {
				return combined
			}
			if clock.Now().Sub(start) >= s.d {
				return combined
			}
		}
	default: // kindDrainAll
		return p.Process(-1)
	}
}
