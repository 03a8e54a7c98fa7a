package instruments

import (
	"time"

	"github.com/G-Research/metrix/pkg/metrix"
)

// Flag is a tri-state indicator: Some(true), Some(false), or None (no
// observation yet, or the last observation carried no value).
type Flag struct {
	named
	trueName    string
	falseName   string
	omitOnNone  bool
	hasValue    bool
	value       bool
}

// NewFlag creates a flag named name, displayed as trueName when true
// and falseName (the "inverted" display name) when false.
func NewFlag(name, trueName, falseName string) *Flag {
	return &Flag{named: named{name: name}, trueName: trueName, falseName: falseName}
}

// WithOmitOnNone makes the snapshot omit this flag entirely while its
// state is None, rather than emitting a placeholder.
func (f *Flag) WithOmitOnNone() *Flag {
	f.omitOnNone = true
	return f
}

func (f *Flag) Accept(u metrix.Update) {
	if b, ok := u.Value.AsBool(); ok {
		f.hasValue = true
		f.value = b
		return
	}
	if u.Value.Kind() == metrix.KindNone {
		f.hasValue = false
	}
}

func (f *Flag) Tick(time.Time) {}

func (f *Flag) PutSnapshot(into *metrix.Snapshot, descriptive bool) {
	metrix.PutDescriptiveFields(f, f.name, into, descriptive)
	if !f.hasValue {
		if f.omitOnNone {
			return
		}
		into.Push(f.name, metrix.TextItem(""))
		return
	}
	if f.value {
		into.Push(f.name, metrix.TextItem(f.trueName))
		return
	}
	into.Push(f.name, metrix.TextItem(f.falseName))
}
