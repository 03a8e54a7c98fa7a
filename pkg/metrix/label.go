package metrix

// LabelMatcher decides whether a Panel reacts to an Observation's label.
// Rewriting the label before the match is LabelRemapper's job. Panels may
// be bound to a single value, a set of values, or a predicate, per spec.
type LabelMatcher[L comparable] interface {
	Matches(label L) bool
}

// MatchValue binds a panel to exactly one label value.
type MatchValue[L comparable] struct{ Value L }

func (m MatchValue[L]) Matches(label L) bool { return label == m.Value }

// MatchValues binds a panel to any of a set of label values.
type MatchValues[L comparable] struct{ Values map[L]struct{} }

// NewMatchValues builds a MatchValues matcher from a slice of values.
func NewMatchValues[L comparable](values ...L) MatchValues[L] {
	set := make(map[L]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return MatchValues[L]{Values: set}
}

func (m MatchValues[L]) Matches(label L) bool {
	_, ok := m.Values[label]
	return ok
}

// MatchPredicate binds a panel using an arbitrary predicate function.
type MatchPredicate[L comparable] struct{ Predicate func(L) bool }

func (m MatchPredicate[L]) Matches(label L) bool { return m.Predicate(label) }

// MatchAll matches every label, used by handlers that want to observe
// everything passing through a cockpit regardless of label.
type MatchAll[L comparable] struct{}

func (MatchAll[L]) Matches(L) bool { return true }

// LabelRemapper optionally rewrites an observation's label before the
// panel match is attempted, and/or filters it out entirely. Remapping is
// applied before the panel's label match, per spec.
type LabelRemapper[L comparable] interface {
	// Remap returns the (possibly rewritten) label to match against, and
	// ok=false if the observation should be dropped before matching.
	Remap(label L) (L, bool)
}

// RemapFunc adapts a plain function to a LabelRemapper.
type RemapFunc[L comparable] func(L) (L, bool)

func (f RemapFunc[L]) Remap(label L) (L, bool) { return f(label) }
