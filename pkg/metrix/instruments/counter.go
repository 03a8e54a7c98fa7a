package instruments

import (
	"math"
	"time"

	"github.com/G-Research/metrix/pkg/metrix"
)

// Counter is a monotonically increasing, saturating u64 accumulator.
// A bare occurrence adds its count; it also accepts UnsignedInt,
// non-negative SignedInt, non-negative finite Float (rounded), and
// non-negative ChangedBy deltas. Anything else, including negative
// deltas, is ignored rather than underflowing or panicking.
type Counter struct {
	named
	value uint64
}

// NewCounter creates a counter named name, initially zero.
func NewCounter(name string) *Counter {
	return &Counter{named: named{name: name}}
}

func (c *Counter) Value() uint64 { return c.value }

func (c *Counter) Accept(u metrix.Update) {
	delta, ok := deltaFor(u.Value, u.Count)
	if !ok {
		return
	}
	c.value = saturatingAdd(c.value, delta)
}

// deltaFor extracts the non-negative amount an Update contributes to a
// Counter. A bare occurrence (KindNone) contributes its Count.
func deltaFor(v metrix.ObservedValue, count uint64) (uint64, bool) {
	switch v.Kind() {
	case metrix.KindNone:
		return count, true
	case metrix.KindChangedBy:
		d, _ := v.AsChangedBy()
		if d < 0 {
			return 0, false
		}
		return uint64(d) * max1(count), true
	default:
		n, ok := v.AsUint64()
		if !ok {
			return 0, false
		}
		return n * max1(count), true
	}
}

func max1(count uint64) uint64 {
	if count == 0 {
		return 1
	}
	return count
}

func saturatingAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a || sum < b {
		return math.MaxUint64
	}
	return sum
}

func (c *Counter) Tick(time.Time) {}

func (c *Counter) PutSnapshot(into *metrix.Snapshot, descriptive bool) {
	metrix.PutDescriptiveFields(c, c.name, into, descriptive)
	into.Push(c.name, metrix.UIntItem(c.value))
}
