package metrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Disconnection(t *testing.T) {
	tx, proc := NewProcessorPair[string]("p")

	outcome := proc.Process(-1)
	assert.False(t, outcome.Disconnected, "still connected while the transmitter is live")

	tx.Close()

	outcome = proc.Process(-1)
	assert.True(t, outcome.Disconnected, "disconnected once the only transmitter closed and the queue is empty")
}

func TestProcessor_CloneKeepsProcessorAliveUntilAllHandlesClose(t *testing.T) {
	tx, proc := NewProcessorPair[string]("p")
	tx2 := tx.Clone()

	tx.Close()
	outcome := proc.Process(-1)
	assert.False(t, outcome.Disconnected, "one handle still open")

	tx2.Close()
	outcome = proc.Process(-1)
	assert.True(t, outcome.Disconnected)
}

func TestProcessor_RoutesToAllAttachedCockpits(t *testing.T) {
	tx, proc := NewProcessorPair[string]("p")
	a := &countingInstrument{name: "a"}
	b := &countingInstrument{name: "b"}
	panelA := NewPanel[string](MatchAll[string]{}, "pa")
	panelB := NewPanel[string](MatchAll[string]{}, "pb")
	require.NoError(t, panelA.AddInstrument(a))
	require.NoError(t, panelB.AddInstrument(b))
	cockpit1 := NewCockpit[string]("c1")
	cockpit2 := NewCockpit[string]("c2")
	require.NoError(t, cockpit1.AddPanel(panelA))
	require.NoError(t, cockpit2.AddPanel(panelB))
	require.NoError(t, proc.AddCockpit(cockpit1))
	require.NoError(t, proc.AddCockpit(cockpit2))

	tx.ObservedOne("x")
	outcome := proc.Process(-1)

	assert.Equal(t, uint64(1), outcome.Processed)
	assert.Equal(t, 1, a.count)
	assert.Equal(t, 1, b.count)
}

func TestProcessor_MaxBoundsOneDrainCall(t *testing.T) {
	tx, proc := NewProcessorPair[string]("p")
	for i := 0; i < 10; i++ {
		tx.ObservedOne("x")
	}

	outcome := proc.Process(3)
	assert.Equal(t, uint64(3), outcome.Processed)

	outcome = proc.Process(-1)
	assert.Equal(t, uint64(7), outcome.Processed)
}

func TestProcessorMount_DuplicateNameFails(t *testing.T) {
	mount := NewProcessorMount("m")
	_, p1 := NewProcessorPair[string]("p")
	_, p2 := NewProcessorPair[int]("p")

	require.NoError(t, mount.AddProcessor(p1))
	err := mount.AddProcessor(p2)
	require.Error(t, err)
}

func TestProcessorMount_EvictsDisconnectedChildren(t *testing.T) {
	mount := NewProcessorMount("m")
	tx, p := NewProcessorPair[string]("p")
	require.NoError(t, mount.AddProcessor(p))

	tx.Close()
	mount.Process(-1)

	assert.Empty(t, mount.Processors())
}
