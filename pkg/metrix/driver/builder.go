package driver

import (
	"time"

	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix/instruments"
)

// defaultTickInterval is the driver's default polling cadence, per
// spec.md §6.
const defaultTickInterval = time.Second

// Builder configures and constructs a TelemetryDriver. Fields default
// to DrainBounded(256) (the spec's recommended default under §9's
// open question about DrainAll starvation risk), a 1-second tick
// interval, and the 1-minute meter rate only.
type Builder struct {
	name            string
	clock           metrixutil.Clock
	strategy        Strategy
	tickInterval    time.Duration
	meterRates      []instruments.MeterRate
	selfMetrics     bool
}

// NewBuilder returns a Builder seeded with the recommended defaults.
func NewBuilder() *Builder {
	return &Builder{
		clock:        metrixutil.RealClock{},
		strategy:     DrainBounded(256),
		tickInterval: defaultTickInterval,
		meterRates:   []instruments.MeterRate{instruments.Rate1Min},
		selfMetrics:  true,
	}
}

func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

func (b *Builder) WithStrategy(s Strategy) *Builder {
	b.strategy = s
	return b
}

func (b *Builder) TickInterval(d time.Duration) *Builder {
	b.tickInterval = d
	return b
}

// MeterRates sets the default rate set new meters should enable; it
// does not retroactively change meters the caller already
// constructed. Enabling one rate never implicitly enables another
// (the 0.8.1 fix spec.md §9 calls out).
func (b *Builder) MeterRates(rates ...instruments.MeterRate) *Builder {
	b.meterRates = rates
	return b
}

// WithClock overrides the driver's wall clock, for deterministic
// tests.
func (b *Builder) WithClock(c metrixutil.Clock) *Builder {
	b.clock = c
	return b
}

// DisableSelfMetrics turns off the driver's own `_metrix` self
// observability group.
func (b *Builder) DisableSelfMetrics() *Builder {
	b.selfMetrics = false
	return b
}

// Build constructs the driver. Call Start to begin polling.
func (b *Builder) Build() *TelemetryDriver {
	d := &TelemetryDriver{
		name:         b.name,
		clock:        b.clock,
		strategy:     b.strategy,
		tickInterval: b.tickInterval,
		meterRates:   append([]instruments.MeterRate{}, b.meterRates...),
		byName:       make(map[string]struct{}),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
	if b.selfMetrics {
		d.self = newSelfMetrics(b.tickInterval, b.clock)
	}
	return d
}

// DefaultMeterRates returns the rate set the driver recommends new
// meters be constructed with.
func (d *TelemetryDriver) DefaultMeterRates() []instruments.MeterRate {
	out := make([]instruments.MeterRate, len(d.meterRates))
	copy(out, d.meterRates)
	return out
}
