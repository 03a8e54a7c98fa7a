package instruments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix"
)

func TestDataDisplay_ShowsDefaultBeforeAnyObservation(t *testing.T) {
	clock := metrixutil.NewFakeClock(time.Unix(0, 0))
	d := NewDataDisplay("status", 5*time.Second, metrix.NoValue(), clock)

	var snap metrix.Snapshot
	d.PutSnapshot(&snap, false)
	found, ok := snap.Find("status")
	require.True(t, ok)
	assert.Equal(t, "", found.Kind.TextValue())
}

func TestDataDisplay_RevertsToDefaultAfterShowDuration(t *testing.T) {
	clock := metrixutil.NewFakeClock(time.Unix(0, 0))
	d := NewDataDisplay("status", 5*time.Second, metrix.SignedInt(-1), clock)

	d.Accept(metrix.Update{Value: metrix.SignedInt(42), Timestamp: clock.Now()})

	var snap metrix.Snapshot
	d.PutSnapshot(&snap, false)
	found, _ := snap.Find("status")
	assert.Equal(t, int64(42), found.Kind.IntValue())

	clock.Advance(6 * time.Second)

	snap = metrix.Snapshot{}
	d.PutSnapshot(&snap, false)
	found, _ = snap.Find("status")
	assert.Equal(t, int64(-1), found.Kind.IntValue())
}
