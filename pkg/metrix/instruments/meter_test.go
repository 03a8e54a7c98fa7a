package instruments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/G-Research/metrix/pkg/metrix"
)

func TestMeter_EnablingOneRateDoesNotEnableAnother(t *testing.T) {
	m := NewMeter("requests", time.Second, Rate1Min)

	for i := 0; i < 60; i++ {
		m.Accept(metrix.Update{Value: metrix.NoValue(), Count: 1})
		m.Tick(time.Time{})
	}

	var snap metrix.Snapshot
	m.PutSnapshot(&snap, false)

	_, ok := snap.Find("requests", "one_minute_rate")
	require.True(t, ok)

	_, ok = snap.Find("requests", "five_minute_rate")
	assert.False(t, ok, "only explicitly enabled rates are tracked")
}

func TestMeter_RateConvergesTowardSteadyOccurrenceRate(t *testing.T) {
	m := NewMeter("requests", time.Second, Rate1Min)

	for i := 0; i < 600; i++ {
		m.Accept(metrix.Update{Value: metrix.NoValue(), Count: 1})
		m.Tick(time.Time{})
	}

	rate := m.RatePerSecond(Rate1Min)
	assert.InDelta(t, 1.0, rate, 0.05)
}

func TestMeter_RateDecaysMonotonicallyTowardZeroOnceOccurrencesStop(t *testing.T) {
	m := NewMeter("requests", time.Second, Rate1Min)

	for i := 0; i < 600; i++ {
		m.Accept(metrix.Update{Value: metrix.NoValue(), Count: 1})
		m.Tick(time.Time{})
	}
	require.InDelta(t, 1.0, m.RatePerSecond(Rate1Min), 0.05, "warmed up to a steady 1/s before occurrences stop")

	prev := m.RatePerSecond(Rate1Min)
	for i := 0; i < 50; i++ {
		m.Tick(time.Time{})
		rate := m.RatePerSecond(Rate1Min)
		assert.Less(t, rate, prev, "rate must strictly decrease every tick once occurrences stop")
		prev = rate
	}
	assert.Less(t, prev, 0.5, "decays substantially toward zero over many idle ticks")
}

func TestMeter_CountByValueUsesObservedMagnitudeInsteadOfOccurrenceCount(t *testing.T) {
	m := NewMeter("bytes", time.Second, Rate1Min).WithCountByValue()

	m.Accept(metrix.Update{Value: metrix.UnsignedInt(100), Count: 1})
	m.Tick(time.Time{})

	assert.InDelta(t, 100.0, m.RatePerSecond(Rate1Min), 0.001)
}
