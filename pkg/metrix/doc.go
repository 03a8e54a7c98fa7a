// Package metrix is an in-process application telemetry library.
//
// Application code emits lightweight Observations from arbitrary
// goroutines through a Transmitter. Observations are routed, on a single
// background thread owned by a TelemetryDriver, through a tree of
// Cockpits, Panels and Instruments that aggregate them into counters,
// meters, gauges, histograms, flags and data displays. The Driver
// periodically renders the aggregated state as a Snapshot tree that can
// be walked, searched, or handed to an exporter such as the one in
// pkg/metrixexport.
//
// The library is deliberately approximate: under extreme overload
// observations may be dropped, and no effort is made to persist state or
// aggregate across processes.
package metrix
