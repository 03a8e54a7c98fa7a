package instruments

import (
	"time"

	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix"
)

// DataDisplay shows the last observed value for showDuration, then
// reverts to a configured default, which also serves as the initial
// value before any observation arrives.
type DataDisplay struct {
	named
	clock        metrixutil.Clock
	showDuration time.Duration
	defaultValue metrix.ObservedValue
	value        metrix.ObservedValue
	shownSince   time.Time
}

// NewDataDisplay creates a data display named name, initially showing
// defaultValue.
func NewDataDisplay(name string, showDuration time.Duration, defaultValue metrix.ObservedValue, clock metrixutil.Clock) *DataDisplay {
	return &DataDisplay{
		named:        named{name: name},
		clock:        clock,
		showDuration: showDuration,
		defaultValue: defaultValue,
		value:        defaultValue,
	}
}

func (d *DataDisplay) Accept(u metrix.Update) {
	d.value = u.Value
	d.shownSince = u.Timestamp
	if d.shownSince.IsZero() {
		d.shownSince = d.clock.Now()
	}
}

func (d *DataDisplay) Tick(time.Time) {}

func (d *DataDisplay) current() metrix.ObservedValue {
	if d.shownSince.IsZero() || d.clock.Now().Sub(d.shownSince) > d.showDuration {
		return d.defaultValue
	}
	return d.value
}

func (d *DataDisplay) PutSnapshot(into *metrix.Snapshot, descriptive bool) {
	metrix.PutDescriptiveFields(d, d.name, into, descriptive)
	into.Push(d.name, itemKindFor(d.current()))
}

// itemKindFor renders an ObservedValue as the matching ItemKind leaf.
func itemKindFor(v metrix.ObservedValue) metrix.ItemKind {
	switch v.Kind() {
	case metrix.KindBool:
		b, _ := v.AsBool()
		return metrix.BoolItem(b)
	case metrix.KindSignedInt:
		i, _ := v.AsInt64()
		return metrix.IntItem(i)
	case metrix.KindUnsignedInt:
		u, _ := v.AsUint64()
		return metrix.UIntItem(u)
	case metrix.KindFloat:
		f, _ := v.AsFloat64()
		return metrix.FloatItem(f)
	case metrix.KindDuration:
		dur, _ := v.AsDuration()
		return metrix.IntItem(int64(dur))
	case metrix.KindChangedBy:
		c, _ := v.AsChangedBy()
		return metrix.IntItem(c)
	default:
		return metrix.TextItem("")
	}
}
