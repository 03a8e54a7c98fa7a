// Package metrixexport adapts a metrix Snapshot tree to
// prometheus.Collector, so a metrix-instrumented application can
// expose its instruments over /metrics without the core library
// depending on any particular export format (spec.md §1: exporters
// "consume the snapshot tree and expose their own interfaces").
package metrixexport

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/G-Research/metrix/pkg/metrix"
)

// SnapshotSource is anything that can render its current state into a
// Snapshot, satisfied by *driver.TelemetryDriver.
type SnapshotSource interface {
	PutSnapshot(into *metrix.Snapshot, descriptive bool)
}

// Collector walks a SnapshotSource's tree on every scrape and exposes
// each numeric leaf as a gauge-typed Prometheus metric, named after
// its path with the segments joined by underscores. It never caches descriptors across scrapes because
// the tree's shape can change as processors connect and disconnect.
type Collector struct {
	namespace string
	source    SnapshotSource
}

// NewCollector builds a Collector over source, prefixing every metric
// name with namespace+"_".
func NewCollector(namespace string, source SnapshotSource) *Collector {
	return &Collector{namespace: namespace, source: source}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	var snap metrix.Snapshot
	c.source.PutSnapshot(&snap, false)
	walk(c.namespace, snap.Items, ch)
}

func walk(prefix string, items []metrix.NamedItem, ch chan<- prometheus.Metric) {
	for _, item := range items {
		name := metricName(prefix, item.Name)
		switch item.Kind.Tag() {
		case metrix.ItemGroup:
			walk(name, item.Kind.Items(), ch)
		case metrix.ItemInt:
			emit(ch, name, float64(item.Kind.IntValue()))
		case metrix.ItemUInt:
			emit(ch, name, float64(item.Kind.UIntValue()))
		case metrix.ItemFloat:
			emit(ch, name, item.Kind.FloatValue())
		case metrix.ItemBool:
			v := 0.0
			if item.Kind.BoolValue() {
				v = 1.0
			}
			emit(ch, name, v)
		case metrix.ItemText:
			// Text leaves (flag display names, titles/descriptions)
			// have no numeric representation and are skipped.
		}
	}
}

// emit always uses GaugeValue: the snapshot tree doesn't distinguish
// a Counter's monotonic uint from a Gauge's current value, and a
// Gauge mistyped as Counter would trip Prometheus' monotonicity
// checks on a legitimate decrease.
func emit(ch chan<- prometheus.Metric, name string, value float64) {
	desc := prometheus.NewDesc(name, "metrix instrument "+name, nil, nil)
	ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, value)
}

func metricName(prefix, segment string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, segment)
	if prefix == "" {
		return clean
	}
	return prefix + "_" + clean
}
