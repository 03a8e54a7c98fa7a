package metrix

import "time"

// Cockpit is a named collection of panels for a single label type.
// Invariant: panels' label values need not be unique (a cockpit may hold
// multiple panels for the same value), but each panel name is unique.
type Cockpit[L comparable] struct {
	Descriptives
	name    string
	panels  []*Panel[L]
	byName  map[string]struct{}
}

// NewCockpit creates a cockpit named name.
func NewCockpit[L comparable](name string) *Cockpit[L] {
	return &Cockpit[L]{name: name, byName: make(map[string]struct{})}
}

func (c *Cockpit[L]) Name() string { return c.name }

// AddPanel adds panel to the cockpit. Fails with ErrDuplicateName if a
// panel of that name already exists in the cockpit.
func (c *Cockpit[L]) AddPanel(panel *Panel[L]) error {
	if _, exists := c.byName[panel.Name()]; exists {
		return &ErrDuplicateName{Kind: "panel", Name: panel.Name(), Parent: c.name}
	}
	c.byName[panel.Name()] = struct{}{}
	c.panels = append(c.panels, panel)
	return nil
}

func (c *Cockpit[L]) Panels() []*Panel[L] {
	out := make([]*Panel[L], len(c.panels))
	copy(out, c.panels)
	return out
}

// HandleObservation routes obs to every panel whose (remapped) label
// matches. Zero, one, or many panels may match.
func (c *Cockpit[L]) HandleObservation(obs Observation[L]) {
	for _, p := range c.panels {
		p.handle(obs)
	}
}

func (c *Cockpit[L]) Tick(now time.Time) {
	for _, p := range c.panels {
		p.tick(now)
	}
}

func (c *Cockpit[L]) PutSnapshot(into *Snapshot, descriptive bool) {
	PutDescriptiveFields(c, c.name, into, descriptive)
	var level Snapshot
	for _, p := range c.panels {
		p.PutSnapshot(&level, descriptive)
	}
	into.Push(c.name, level.AsGroup())
}
