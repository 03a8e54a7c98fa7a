package instruments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix"
)

func TestHistogram_InactivityReset(t *testing.T) {
	clock := metrixutil.NewFakeClock(time.Unix(0, 0))
	h := NewHistogram("h", 1024, clock).WithInactivityReset(5 * time.Second)

	for i := 0; i < 500; i++ {
		h.Accept(metrix.Update{Value: metrix.FloatValue(float64(i)), Timestamp: clock.Now()})
	}

	clock.Advance(6 * time.Second)

	var snap metrix.Snapshot
	h.PutSnapshot(&snap, false)

	found, ok := snap.Find("h", "count")
	require.True(t, ok)
	assert.Equal(t, uint64(0), found.Kind.UIntValue())

	_, ok = snap.Find("h", "mean")
	assert.False(t, ok, "mean is absent once the reservoir has been cleared")
}

func TestHistogram_CountMinMaxMeanAndMonotoneQuantiles(t *testing.T) {
	clock := metrixutil.NewFakeClock(time.Unix(0, 0))
	h := NewHistogram("h", 128, clock)

	for i := 1; i <= 200; i++ {
		h.Accept(metrix.Update{Value: metrix.FloatValue(float64(i)), Timestamp: clock.Now()})
	}

	var snap metrix.Snapshot
	h.PutSnapshot(&snap, false)

	count, _ := snap.Find("h", "count")
	min, _ := snap.Find("h", "min")
	max, _ := snap.Find("h", "max")
	mean, _ := snap.Find("h", "mean")
	p50, _ := snap.Find("h", "p50")
	p99, _ := snap.Find("h", "p99")

	assert.Equal(t, uint64(200), count.Kind.UIntValue())
	assert.LessOrEqual(t, min.Kind.FloatValue(), mean.Kind.FloatValue())
	assert.LessOrEqual(t, mean.Kind.FloatValue(), max.Kind.FloatValue())
	assert.LessOrEqual(t, p50.Kind.FloatValue(), p99.Kind.FloatValue())
}

func TestHistogram_IgnoresNonNumericValues(t *testing.T) {
	clock := metrixutil.NewFakeClock(time.Unix(0, 0))
	h := NewHistogram("h", 128, clock)
	h.Accept(metrix.Update{Value: metrix.NoValue(), Timestamp: clock.Now()})
	assert.Equal(t, uint64(0), h.count)
}

func TestHistogram_AcceptsDurationsAsMicroseconds(t *testing.T) {
	clock := metrixutil.NewFakeClock(time.Unix(0, 0))
	h := NewHistogram("h", 128, clock)
	h.Accept(metrix.Update{Value: metrix.DurationValue(2 * time.Millisecond), Timestamp: clock.Now()})
	assert.Equal(t, uint64(1), h.count)
	assert.Equal(t, 2000.0, h.max)
}
