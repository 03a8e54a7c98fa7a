package instruments

import (
	"time"

	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix"
)

// GaugeStrategy selects how a Gauge folds an incoming Update into its
// current value.
type GaugeStrategy int

const (
	// GaugeSet makes the current value the last observed value.
	GaugeSet GaugeStrategy = iota
	// GaugeIncDec adds a ChangedBy delta to the current value.
	GaugeIncDec
)

type sample struct {
	value float64
	at    time.Time
}

// Gauge holds a current scalar, updated per GaugeStrategy, with
// optional peak/bottom tracking over a wall-clock sliding window and
// an optional inactivity reset back to a configured default.
type Gauge struct {
	named
	clock    metrixutil.Clock
	strategy GaugeStrategy
	current  float64

	trackExtremes bool
	window        time.Duration
	peaks         []sample
	bottoms       []sample

	lastUpdate      time.Time
	inactivityLimit time.Duration
	defaultValue    float64
}

// NewGauge creates a gauge named name with the given update strategy,
// starting at defaultValue (also the value shown after an inactivity
// reset or before any observation).
func NewGauge(name string, strategy GaugeStrategy, defaultValue float64, clock metrixutil.Clock) *Gauge {
	return &Gauge{
		named:        named{name: name},
		clock:        clock,
		strategy:     strategy,
		current:      defaultValue,
		defaultValue: defaultValue,
	}
}

// WithPeakTracking enables peak/bottom tracking over a wall-clock
// window.
func (g *Gauge) WithPeakTracking(window time.Duration) *Gauge {
	g.trackExtremes = true
	g.window = window
	return g
}

// WithInactivityReset reverts the displayed value to the default once
// no update has arrived for limit.
func (g *Gauge) WithInactivityReset(limit time.Duration) *Gauge {
	g.inactivityLimit = limit
	return g
}

func (g *Gauge) Accept(u metrix.Update) {
	now := u.Timestamp
	if now.IsZero() {
		now = g.clock.Now()
	}
	switch g.strategy {
	case GaugeIncDec:
		if delta, ok := u.Value.AsChangedBy(); ok {
			g.current += float64(delta)
		} else if n, ok := u.Value.AsFloat64(); ok {
			g.current += n
		}
	default: // GaugeSet
		if n, ok := u.Value.AsFloat64(); ok {
			g.current = n
		} else if b, ok := u.Value.AsBool(); ok {
			if b {
				g.current = 1
			} else {
				g.current = 0
			}
		}
	}
	g.lastUpdate = now
	if g.trackExtremes {
		g.peaks = append(refreshExtremes(g.peaks, now, g.window, maxCmp), sample{value: g.current, at: now})
		g.bottoms = append(refreshExtremes(g.bottoms, now, g.window, minCmp), sample{value: g.current, at: now})
	}
}

func maxCmp(a, b float64) bool { return b >= a }
func minCmp(a, b float64) bool { return b <= a }

// refreshExtremes discards entries older than window (relative to
// now) and, among the remainder, drops any entry a later (or equal,
// per the >=/<= tie-refresh rule) entry makes redundant, keeping the
// list small without changing the reported extreme.
func refreshExtremes(entries []sample, now time.Time, window time.Duration, better func(a, b float64) bool) []sample {
	cutoff := now.Add(-window)
	kept := entries[:0]
	for _, s := range entries {
		if s.at.Before(cutoff) {
			continue
		}
		for len(kept) > 0 && better(kept[len(kept)-1].value, s.value) {
			kept = kept[:len(kept)-1]
		}
		kept = append(kept, s)
	}
	return kept
}

func extremeValue(entries []sample, now time.Time, window time.Duration, better func(cur, candidate float64) bool, fallback float64) float64 {
	cutoff := now.Add(-window)
	best := fallback
	have := false
	for _, s := range entries {
		if s.at.Before(cutoff) {
			continue
		}
		if !have || better(best, s.value) {
			best = s.value
			have = true
		}
	}
	if !have {
		return fallback
	}
	return best
}

// Peak returns the maximum value observed within the tracking window
// as of now.
func (g *Gauge) Peak(now time.Time) float64 {
	return extremeValue(g.peaks, now, g.window, maxCmp, g.current)
}

// Bottom returns the minimum value observed within the tracking
// window as of now.
func (g *Gauge) Bottom(now time.Time) float64 {
	return extremeValue(g.bottoms, now, g.window, minCmp, g.current)
}

func (g *Gauge) Value(now time.Time) float64 {
	if g.inactivityLimit > 0 && !g.lastUpdate.IsZero() && now.Sub(g.lastUpdate) > g.inactivityLimit {
		return g.defaultValue
	}
	return g.current
}

func (g *Gauge) Tick(now time.Time) {
	if g.trackExtremes {
		g.peaks = refreshExtremes(g.peaks, now, g.window, maxCmp)
		g.bottoms = refreshExtremes(g.bottoms, now, g.window, minCmp)
	}
}

func (g *Gauge) PutSnapshot(into *metrix.Snapshot, descriptive bool) {
	metrix.PutDescriptiveFields(g, g.name, into, descriptive)
	now := g.clock.Now()
	var level metrix.Snapshot
	level.Push("value", metrix.FloatItem(g.Value(now)))
	if g.trackExtremes {
		level.Push("peak", metrix.FloatItem(g.Peak(now)))
		level.Push("bottom", metrix.FloatItem(g.Bottom(now)))
	}
	into.Push(g.name, level.AsGroup())
}
