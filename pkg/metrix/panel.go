package metrix

import "time"

// Panel is a named collection of instruments sharing one label binding.
// Invariant: no two instruments in a panel share a name (enforced by
// AddInstrument).
type Panel[L comparable] struct {
	Descriptives
	name        string
	matcher     LabelMatcher[L]
	remapper    LabelRemapper[L]
	instruments []Instrument
	byName      map[string]struct{}
}

// NewPanel creates a panel bound to matcher, named name.
func NewPanel[L comparable](matcher LabelMatcher[L], name string) *Panel[L] {
	return &Panel[L]{
		name:    name,
		matcher: matcher,
		byName:  make(map[string]struct{}),
	}
}

// WithRemapper installs a label remapper, applied before the panel's
// label match. Returns the panel for chaining.
func (p *Panel[L]) WithRemapper(r LabelRemapper[L]) *Panel[L] {
	p.remapper = r
	return p
}

func (p *Panel[L]) Name() string { return p.name }

// AddInstrument adds i to the panel. Fails with ErrDuplicateName if an
// instrument of that name already exists in the panel.
func (p *Panel[L]) AddInstrument(i Instrument) error {
	if _, exists := p.byName[i.Name()]; exists {
		return &ErrDuplicateName{Kind: "instrument", Name: i.Name(), Parent: p.name}
	}
	p.byName[i.Name()] = struct{}{}
	p.instruments = append(p.instruments, i)
	return nil
}

func (p *Panel[L]) Instruments() []Instrument {
	out := make([]Instrument, len(p.instruments))
	copy(out, p.instruments)
	return out
}

// handle applies the remapper (if any), checks the label match, and on a
// match forwards the update to every instrument in the panel.
func (p *Panel[L]) handle(obs Observation[L]) {
	label := obs.Label
	if p.remapper != nil {
		remapped, ok := p.remapper.Remap(label)
		if !ok {
			return
		}
		label = remapped
	}
	if !p.matcher.Matches(label) {
		return
	}
	update := UpdateFromObservation(obs)
	for _, instr := range p.instruments {
		instr.Accept(update)
	}
}

func (p *Panel[L]) tick(now time.Time) {
	for _, instr := range p.instruments {
		instr.Tick(now)
	}
}

func (p *Panel[L]) PutSnapshot(into *Snapshot, descriptive bool) {
	PutDescriptiveFields(p, p.name, into, descriptive)
	var level Snapshot
	for _, instr := range p.instruments {
		instr.PutSnapshot(&level, descriptive)
	}
	into.Push(p.name, level.AsGroup())
}
