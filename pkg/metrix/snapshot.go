package metrix

import (
	"fmt"
	"strconv"
)

// ItemKindTag identifies which variant an ItemKind holds.
type ItemKindTag int

const (
	ItemGroup ItemKindTag = iota
	ItemBool
	ItemInt
	ItemUInt
	ItemFloat
	ItemText
)

// ItemKind is a tagged-variant tree node: either a Group of named children
// or one of a handful of scalar leaf kinds. It plays the role the
// original's `ItemKind` enum plays: Group(name, children), and leaves for
// every scalar shape an instrument can emit.
type ItemKind struct {
	tag   ItemKindTag
	items []NamedItem
	b     bool
	i64   int64
	u64   uint64
	f64   float64
	text  string
}

// NamedItem pairs a tree edge name with the ItemKind it leads to.
type NamedItem struct {
	Name string
	Kind ItemKind
}

func GroupItem(items ...NamedItem) ItemKind { return ItemKind{tag: ItemGroup, items: items} }
func BoolItem(v bool) ItemKind              { return ItemKind{tag: ItemBool, b: v} }
func IntItem(v int64) ItemKind              { return ItemKind{tag: ItemInt, i64: v} }
func UIntItem(v uint64) ItemKind            { return ItemKind{tag: ItemUInt, u64: v} }
func FloatItem(v float64) ItemKind          { return ItemKind{tag: ItemFloat, f64: v} }
func TextItem(v string) ItemKind            { return ItemKind{tag: ItemText, text: v} }

func (k ItemKind) Tag() ItemKindTag   { return k.tag }
func (k ItemKind) Items() []NamedItem { return k.items }
func (k ItemKind) BoolValue() bool    { return k.b }
func (k ItemKind) IntValue() int64    { return k.i64 }
func (k ItemKind) UIntValue() uint64  { return k.u64 }
func (k ItemKind) FloatValue() float64 { return k.f64 }
func (k ItemKind) TextValue() string  { return k.text }

// String formats a short human-readable representation, matching the
// original's "ItemKind formats as a short human string for display."
func (k ItemKind) String() string {
	switch k.tag {
	case ItemGroup:
		return fmt.Sprintf("{%d items}", len(k.items))
	case ItemBool:
		return strconv.FormatBool(k.b)
	case ItemInt:
		return strconv.FormatInt(k.i64, 10)
	case ItemUInt:
		return strconv.FormatUint(k.u64, 10)
	case ItemFloat:
		return strconv.FormatFloat(k.f64, 'g', -1, 64)
	case ItemText:
		return k.text
	default:
		return "?"
	}
}

// find descends items looking for path, returning the matched FoundItem.
func find(items []NamedItem, path []string) (FoundItem, bool) {
	if len(path) == 0 {
		return FoundItem{}, false
	}
	head, rest := path[0], path[1:]
	for _, it := range items {
		if it.Name != head {
			continue
		}
		if len(rest) == 0 {
			return FoundItem{Name: it.Name, Kind: it.Kind}, true
		}
		if it.Kind.tag != ItemGroup {
			return FoundItem{}, false
		}
		return find(it.Kind.items, rest)
	}
	return FoundItem{}, false
}

// FoundItem is the result of a successful Find. It exposes Find itself so
// a search can continue from the matched node.
type FoundItem struct {
	Name string
	Kind ItemKind
}

// Find continues the search from this node, as a Group.
func (f FoundItem) Find(path ...string) (FoundItem, bool) {
	if f.Kind.tag != ItemGroup {
		return FoundItem{}, false
	}
	return find(f.Kind.items, path)
}

// Snapshot is the root of the labelled tree produced by a Driver: an
// ordered sequence of named items, built in the background thread and
// handed to the caller through Driver.Snapshot / SnapshotAsync.
type Snapshot struct {
	Items []NamedItem
}

// Push appends a named child to the snapshot, preserving insertion order
// (the original's Vec<(String, ItemKind)> items list).
func (s *Snapshot) Push(name string, kind ItemKind) {
	s.Items = append(s.Items, NamedItem{Name: name, Kind: kind})
}

// Merge appends all items of other's root directly into s, without
// wrapping them in a named group.
func (s *Snapshot) Merge(other Snapshot) {
	s.Items = append(s.Items, other.Items...)
}

// Find descends the tree along path, returning the node whose name
// matches path's last element, or ok=false if no such node exists.
func (s Snapshot) Find(path ...string) (FoundItem, bool) {
	return find(s.Items, path)
}

// AsGroup returns an ItemKind view of the snapshot's root, useful for
// embedding a whole snapshot as a named group in a larger one.
func (s Snapshot) AsGroup() ItemKind {
	return GroupItem(s.Items...)
}
