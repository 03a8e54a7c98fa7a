package metrix

import "time"

// ProcessorMount groups type-erased Processors under one name so a
// Driver can own a mixed set of TelemetryProcessor[L] instances across
// different label types. It is itself a Processor, so mounts nest.
type ProcessorMount struct {
	Descriptives
	name       string
	processors []Processor
	byName     map[string]struct{}
}

// NewProcessorMount creates an empty mount named name.
func NewProcessorMount(name string) *ProcessorMount {
	return &ProcessorMount{name: name, byName: make(map[string]struct{})}
}

func (m *ProcessorMount) Name() string { return m.name }

// AddProcessor attaches p to the mount. Fails with ErrDuplicateName if
// a processor of that name is already attached.
func (m *ProcessorMount) AddProcessor(p Processor) error {
	if _, exists := m.byName[p.Name()]; exists {
		return &ErrDuplicateName{Kind: "processor", Name: p.Name(), Parent: m.name}
	}
	m.byName[p.Name()] = struct{}{}
	m.processors = append(m.processors, p)
	return nil
}

func (m *ProcessorMount) Processors() []Processor {
	out := make([]Processor, len(m.processors))
	copy(out, m.processors)
	return out
}

// Process drains max observations from every attached processor and
// evicts any that report Disconnected. A mount never reports itself
// Disconnected; an empty mount is simply a mount with nothing to drain.
func (m *ProcessorMount) Process(max int) ProcessingOutcome {
	var outcome ProcessingOutcome
	live := m.processors[:0]
	for _, p := range m.processors {
		sub := p.Process(max)
		outcome.Processed += sub.Processed
		outcome.Dropped += sub.Dropped
		if sub.Disconnected {
			delete(m.byName, p.Name())
			continue
		}
		live = append(live, p)
	}
	m.processors = live
	return outcome
}

// Tick advances every attached processor's instruments.
func (m *ProcessorMount) Tick(now time.Time) {
	for _, p := range m.processors {
		p.Tick(now)
	}
}

func (m *ProcessorMount) PutSnapshot(into *Snapshot, descriptive bool) {
	PutDescriptiveFields(m, m.name, into, descriptive)
	var level Snapshot
	for _, p := range m.processors {
		p.PutSnapshot(&level, descriptive)
	}
	into.Push(m.name, level.AsGroup())
}
