package instruments

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix"
)

// DefaultReservoirSize is the capacity used when none is given to
// NewHistogram, matching the spec's suggested "e.g. 1024".
const DefaultReservoirSize = 1024

var defaultQuantiles = []float64{0.5, 0.75, 0.95, 0.99, 0.999}

// Histogram is a streaming min/max/mean/quantile estimator backed by a
// fixed-capacity reservoir, filled using Vitter's Algorithm R so every
// observation has an equal chance of surviving regardless of stream
// length. An optional inactivity reset clears the reservoir once the
// last observation is older than resetAfter.
type Histogram struct {
	named
	clock      metrixutil.Clock
	capacity   int
	reservoir  []float64
	count      uint64
	min        float64
	max        float64
	sum        float64
	lastUpdate time.Time
	resetAfter time.Duration
	rng        *rand.Rand
}

// NewHistogram creates a histogram named name with the given
// reservoir capacity.
func NewHistogram(name string, capacity int, clock metrixutil.Clock) *Histogram {
	if capacity <= 0 {
		capacity = DefaultReservoirSize
	}
	return &Histogram{
		named:    named{name: name},
		clock:    clock,
		capacity: capacity,
		rng:      rand.New(rand.NewSource(1)),
	}
}

// WithInactivityReset clears the reservoir once resetAfter elapses
// with no new observation.
func (h *Histogram) WithInactivityReset(resetAfter time.Duration) *Histogram {
	h.resetAfter = resetAfter
	return h
}

func (h *Histogram) Accept(u metrix.Update) {
	v, ok := u.Value.AsFloat64()
	if !ok {
		if d, durOk := u.Value.AsDuration(); durOk {
			v, ok = float64(d.Microseconds()), true
		}
	}
	if !ok {
		return
	}
	now := u.Timestamp
	if now.IsZero() {
		now = h.clock.Now()
	}
	h.lastUpdate = now

	if h.count == 0 {
		h.min, h.max = v, v
	} else {
		h.min = math.Min(h.min, v)
		h.max = math.Max(h.max, v)
	}
	h.sum += v
	h.count++

	switch {
	case len(h.reservoir) < h.capacity:
		h.reservoir = append(h.reservoir, v)
	default:
		j := h.rng.Int63n(int64(h.count))
		if j < int64(h.capacity) {
			h.reservoir[j] = v
		}
	}
}

func (h *Histogram) reset() {
	h.reservoir = nil
	h.count = 0
	h.min, h.max, h.sum = 0, 0, 0
}

func (h *Histogram) Tick(now time.Time) {
	if h.resetAfter > 0 && h.count > 0 && !h.lastUpdate.IsZero() && now.Sub(h.lastUpdate) > h.resetAfter {
		h.reset()
	}
}

// quantile returns the q-th quantile (0..1) of the reservoir using
// nearest-rank interpolation over a sorted copy.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(q*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func (h *Histogram) PutSnapshot(into *metrix.Snapshot, descriptive bool) {
	metrix.PutDescriptiveFields(h, h.name, into, descriptive)
	// Inactivity reset is evaluated lazily on snapshot too, in case the
	// driver's tick hasn't run since the last observation went stale.
	h.Tick(h.clock.Now())

	var level metrix.Snapshot
	level.Push("count", metrix.UIntItem(h.count))
	if h.count == 0 {
		into.Push(h.name, level.AsGroup())
		return
	}
	level.Push("min", metrix.FloatItem(h.min))
	level.Push("max", metrix.FloatItem(h.max))
	level.Push("mean", metrix.FloatItem(h.sum/float64(h.count)))

	sorted := make([]float64, len(h.reservoir))
	copy(sorted, h.reservoir)
	sort.Float64s(sorted)
	for _, q := range defaultQuantiles {
		level.Push(quantileFieldName(q), metrix.FloatItem(quantile(sorted, q)))
	}
	into.Push(h.name, level.AsGroup())
}

func quantileFieldName(q float64) string {
	switch q {
	case 0.5:
		return "p50"
	case 0.75:
		return "p75"
	case 0.95:
		return "p95"
	case 0.99:
		return "p99"
	case 0.999:
		return "p999"
	default:
		return "p"
	}
}
