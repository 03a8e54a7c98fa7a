package metrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_FindPresentPath(t *testing.T) {
	var root Snapshot
	var panel Snapshot
	panel.Push("count", IntItem(42))
	root.Push("panel", panel.AsGroup())

	found, ok := root.Find("panel", "count")
	assert.True(t, ok)
	assert.Equal(t, "count", found.Name)
	assert.Equal(t, int64(42), found.Kind.IntValue())
}

func TestSnapshot_FindAbsentPathNotFound(t *testing.T) {
	var root Snapshot
	root.Push("panel", GroupItem())

	_, ok := root.Find("panel", "missing")
	assert.False(t, ok)

	_, ok = root.Find("nope")
	assert.False(t, ok)
}

func TestSnapshot_FindContinuesFromFoundItem(t *testing.T) {
	var inner Snapshot
	inner.Push("leaf", IntItem(7))
	var outer Snapshot
	outer.Push("inner", inner.AsGroup())
	var root Snapshot
	root.Push("outer", outer.AsGroup())

	found, ok := root.Find("outer")
	assert.True(t, ok)
	leaf, ok := found.Find("inner", "leaf")
	assert.True(t, ok)
	assert.Equal(t, int64(7), leaf.Kind.IntValue())
}

func TestSnapshot_Merge(t *testing.T) {
	var a, b, out Snapshot
	a.Push("x", IntItem(1))
	b.Push("y", IntItem(2))
	out.Merge(a)
	out.Merge(b)
	assert.Len(t, out.Items, 2)
}

func TestItemKind_String(t *testing.T) {
	assert.Equal(t, "true", BoolItem(true).String())
	assert.Equal(t, "7", IntItem(7).String())
	assert.Equal(t, "hi", TextItem("hi").String())
}
