// Package instruments provides the streaming aggregation primitives a
// Panel holds: Counter, Meter, Gauge, Histogram, Flag,
// NonOccurrenceTracker and DataDisplay. Each implements
// metrix.Instrument and is mutated only from its owning Driver's
// goroutine, so none of them carry internal locks.
package instruments

import (
	"github.com/G-Research/metrix/pkg/metrix"
)

// named is the embeddable name + Descriptives pair shared by every
// instrument in this package.
type named struct {
	metrix.Descriptives
	name string
}

func (n *named) Name() string { return n.name }
