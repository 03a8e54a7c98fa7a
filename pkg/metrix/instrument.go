package metrix

import "time"

// PutsSnapshot is implemented by every node that can contribute a subtree
// to a Snapshot: instruments, panels, cockpits, processors, mounts and
// the driver itself.
type PutsSnapshot interface {
	PutSnapshot(into *Snapshot, descriptive bool)
}

// Update is the label-erased form of an Observation, handed to an
// Instrument once a Panel has matched and (optionally) remapped the
// label. It mirrors the original's `Update` enum: a bare occurrence
// (count, no value), or an occurrence carrying a value.
type Update struct {
	Value     ObservedValue
	Count     uint64
	Timestamp time.Time
}

// UpdateFromObservation converts a matched Observation into the
// label-erased Update instruments operate on.
func UpdateFromObservation[L comparable](obs Observation[L]) Update {
	count := obs.Count
	if count == 0 {
		count = 1
	}
	return Update{Value: obs.Value, Count: count, Timestamp: obs.Timestamp}
}

// Instrument is the uniform capability set every aggregation primitive
// implements: accept an Update, contribute a snapshot fragment, and
// (for instruments whose semantics are time-driven: the Meter's rates,
// the Gauge's window pruning, the Histogram's inactivity reset)
// advance on the driver's tick. Tick is a no-op for instruments that do
// not need it, matching the original's single `Instrument` trait with
// the meter's ticking folded into the uniform interface rather than
// requiring a side channel.
type Instrument interface {
	PutsSnapshot
	Descriptive
	Name() string
	Accept(u Update)
	Tick(now time.Time)
}
