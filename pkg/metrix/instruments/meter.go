package instruments

import (
	"math"
	"time"

	"github.com/G-Research/metrix/pkg/metrix"
)

// MeterRate identifies one of the three supported EWMA windows.
type MeterRate int

const (
	Rate1Min MeterRate = iota
	Rate5Min
	Rate15Min
)

var meterWindows = map[MeterRate]time.Duration{
	Rate1Min:  time.Minute,
	Rate5Min:  5 * time.Minute,
	Rate15Min: 15 * time.Minute,
}

var meterFields = map[MeterRate]string{
	Rate1Min:  "one_minute_rate",
	Rate5Min:  "five_minute_rate",
	Rate15Min: "fifteen_minute_rate",
}

// Meter computes exponentially weighted moving occurrence rates using
// the classic Unix loadavg decay formulation: alpha = 1 -
// exp(-tickInterval/window), applied once per tick to a running
// average seeded by the first tick's raw rate. Only explicitly
// enabled rates are tracked; per the resolved meter-rate bug (0.8.1),
// enabling one rate must never implicitly enable another.
type Meter struct {
	named
	tickInterval time.Duration
	countByValue bool // when true, a numeric observation contributes its integer value instead of 1

	uncounted uint64 // occurrences since the last tick, not yet folded into the rates
	rates     map[MeterRate]*ewma
}

type ewma struct {
	alpha     float64
	rate      float64
	initiated bool
}

func (e *ewma) tick(instantRatePerSecond float64) {
	if !e.initiated {
		e.rate = instantRatePerSecond
		e.initiated = true
		return
	}
	e.rate += e.alpha * (instantRatePerSecond - e.rate)
}

// NewMeter creates a meter named name, ticking at tickInterval, with
// rates enabled for each of enabledRates.
func NewMeter(name string, tickInterval time.Duration, enabledRates ...MeterRate) *Meter {
	m := &Meter{
		named:        named{name: name},
		tickInterval: tickInterval,
		rates:        make(map[MeterRate]*ewma, len(enabledRates)),
	}
	for _, r := range enabledRates {
		window := meterWindows[r]
		alpha := 1 - math.Exp(-tickInterval.Seconds()/window.Seconds())
		m.rates[r] = &ewma{alpha: alpha}
	}
	return m
}

// WithCountByValue switches the meter from counting occurrences to
// counting the integer part of each observation's numeric value.
func (m *Meter) WithCountByValue() *Meter {
	m.countByValue = true
	return m
}

func (m *Meter) Accept(u metrix.Update) {
	if !m.countByValue {
		m.uncounted += max1(u.Count)
		return
	}
	if n, ok := u.Value.AsUint64(); ok {
		m.uncounted += n
	} else {
		m.uncounted += max1(u.Count)
	}
}

// Tick folds the occurrences accumulated since the last tick into
// every enabled rate. Called by the driver once per tickInterval.
func (m *Meter) Tick(time.Time) {
	instantRate := float64(m.uncounted) / m.tickInterval.Seconds()
	m.uncounted = 0
	for _, e := range m.rates {
		e.tick(instantRate)
	}
}

// RatePerSecond returns the currently computed rate for r, or 0 if r
// is not enabled on this meter.
func (m *Meter) RatePerSecond(r MeterRate) float64 {
	e, ok := m.rates[r]
	if !ok {
		return 0
	}
	return e.rate
}

func (m *Meter) PutSnapshot(into *metrix.Snapshot, descriptive bool) {
	metrix.PutDescriptiveFields(m, m.name, into, descriptive)
	var level metrix.Snapshot
	for r, e := range m.rates {
		level.Push(meterFields[r], metrix.FloatItem(e.rate))
	}
	into.Push(m.name, level.AsGroup())
}
