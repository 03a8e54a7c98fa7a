package metrix

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObservedValue_NumericConversions(t *testing.T) {
	f := FloatValue(3.7)
	i, ok := f.AsInt64()
	assert.True(t, ok)
	assert.Equal(t, int64(4), i)

	neg := SignedInt(-1)
	_, ok = neg.AsUint64()
	assert.False(t, ok, "negative signed int must not convert to uint64")
}

func TestObservedValue_NaNAndInfinityAreIgnored(t *testing.T) {
	nan := FloatValue(math.NaN())
	_, ok := nan.AsInt64()
	assert.False(t, ok)
	_, ok = nan.AsUint64()
	assert.False(t, ok)

	inf := FloatValue(math.Inf(1))
	_, ok = inf.AsInt64()
	assert.False(t, ok)
	_, ok = inf.AsUint64()
	assert.False(t, ok)
}

func TestObservedValue_BoolFromInt(t *testing.T) {
	b, ok := SignedInt(0).AsBool()
	assert.True(t, ok)
	assert.False(t, b)

	b, ok = UnsignedInt(5).AsBool()
	assert.True(t, ok)
	assert.True(t, b)
}

func TestUpdateFromObservation_DefaultsCountToOne(t *testing.T) {
	obs := Observation[string]{Label: "x", Value: NoValue(), Timestamp: time.Now()}
	u := UpdateFromObservation(obs)
	assert.Equal(t, uint64(1), u.Count)
}

func TestUpdateFromObservation_PreservesExplicitCount(t *testing.T) {
	obs := Observed("x", 5, time.Now())
	u := UpdateFromObservation(obs)
	assert.Equal(t, uint64(5), u.Count)
}
