package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix"
)

func TestStrategy_DrainBoundedCapsPerTick(t *testing.T) {
	tx, proc := metrix.NewProcessorPair[string]("p")
	for i := 0; i < 10; i++ {
		tx.ObservedOne("x")
	}
	clock := metrixutil.NewFakeClock(time.Unix(0, 0))

	outcome := DrainBounded(3).drain(proc, clock)
	assert.Equal(t, uint64(3), outcome.Processed)
}

func TestStrategy_DrainAllDrainsEverythingInOneTick(t *testing.T) {
	tx, proc := metrix.NewProcessorPair[string]("p")
	for i := 0; i < 1000; i++ {
		tx.ObservedOne("x")
	}
	clock := metrixutil.NewFakeClock(time.Unix(0, 0))

	outcome := DrainAll().drain(proc, clock)
	assert.Equal(t, uint64(1000), outcome.Processed)
}

func TestStrategy_DrainForStopsAtWallClockBudget(t *testing.T) {
	tx, proc := metrix.NewProcessorPair[string]("p")
	for i := 0; i < 1000; i++ {
		tx.ObservedOne("x")
	}
	clock := metrixutil.NewFakeClock(time.Unix(0, 0))

	outcome := DrainFor(0).drain(proc, clock)
	assert.LessOrEqual(t, outcome.Processed, uint64(1000))
	assert.Greater(t, outcome.Processed, uint64(0))
}
