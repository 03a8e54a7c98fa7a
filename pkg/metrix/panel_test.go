package metrix

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingInstrument struct {
	name  string
	count int
}

func (c *countingInstrument) Name() string                 { return c.name }
func (c *countingInstrument) Title() string                 { return "" }
func (c *countingInstrument) Description() string           { return "" }
func (c *countingInstrument) Accept(Update)                 { c.count++ }
func (c *countingInstrument) Tick(time.Time)                {}
func (c *countingInstrument) PutSnapshot(into *Snapshot, _ bool) {
	into.Push(c.name, IntItem(int64(c.count)))
}

func TestPanel_AddInstrument_DuplicateNameFails(t *testing.T) {
	p := NewPanel[string](MatchAll[string]{}, "p")
	require.NoError(t, p.AddInstrument(&countingInstrument{name: "a"}))

	err := p.AddInstrument(&countingInstrument{name: "a"})
	require.Error(t, err)
	var dup *ErrDuplicateName
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "instrument", dup.Kind)
	assert.Equal(t, "a", dup.Name)
}

func TestPanel_HandleObservation_RoutesOnlyMatchingLabel(t *testing.T) {
	p := NewPanel[string](MatchValue[string]{Value: "x"}, "p")
	instr := &countingInstrument{name: "a"}
	require.NoError(t, p.AddInstrument(instr))

	p.handle(ObservedOne("x", time.Now()))
	p.handle(ObservedOne("y", time.Now()))
	p.handle(ObservedOne("x", time.Now()))

	assert.Equal(t, 2, instr.count)
}

func TestPanel_Remapper_CanDropOrRewrite(t *testing.T) {
	p := NewPanel[string](MatchValue[string]{Value: "canon"}, "p").
		WithRemapper(RemapFunc[string](func(l string) (string, bool) {
			if l == "drop" {
				return "", false
			}
			return "canon", true
		}))
	instr := &countingInstrument{name: "a"}
	require.NoError(t, p.AddInstrument(instr))

	p.handle(ObservedOne("anything", time.Now()))
	p.handle(ObservedOne("drop", time.Now()))

	assert.Equal(t, 1, instr.count)
}

func TestCockpit_AddPanel_DuplicateNameFails(t *testing.T) {
	c := NewCockpit[string]("c")
	require.NoError(t, c.AddPanel(NewPanel[string](MatchAll[string]{}, "p")))

	err := c.AddPanel(NewPanel[string](MatchValue[string]{Value: "other"}, "p"))
	require.Error(t, err)
	var dup *ErrDuplicateName
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "panel", dup.Kind)
}

func TestCockpit_MultiplePanelsCanMatchSameValue(t *testing.T) {
	c := NewCockpit[string]("c")
	a := &countingInstrument{name: "a"}
	b := &countingInstrument{name: "b"}
	p1 := NewPanel[string](MatchValue[string]{Value: "x"}, "p1")
	p2 := NewPanel[string](MatchValue[string]{Value: "x"}, "p2")
	require.NoError(t, p1.AddInstrument(a))
	require.NoError(t, p2.AddInstrument(b))
	require.NoError(t, c.AddPanel(p1))
	require.NoError(t, c.AddPanel(p2))

	c.HandleObservation(ObservedOne("x", time.Now()))

	assert.Equal(t, 1, a.count)
	assert.Equal(t, 1, b.count)
}
