package main

import (
	"math/rand"
	"time"

	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix"
	"github.com/G-Research/metrix/pkg/metrix/instruments"
)

// endpointInstruments are the per-endpoint instruments wired into one
// panel: request count, request rate, latency distribution, and the
// endpoint's in-flight gauge.
type endpointInstruments struct {
	requests  *instruments.Counter
	rate      *instruments.Meter
	latencyUs *instruments.Histogram
	inFlight  *instruments.Gauge
	errors    *instruments.NonOccurrenceTracker
	up        *instruments.Flag
}

// buildPipeline constructs one cockpit of endpoint panels, a
// processor pair, and returns the transmitter producers use plus the
// processor the driver owns.
func buildPipeline(clock metrixutil.Clock, tickInterval time.Duration) (metrix.Transmitter[Endpoint], *metrix.TelemetryProcessor[Endpoint], map[Endpoint]*endpointInstruments) {
	cockpit := metrix.NewCockpit[Endpoint]("http")
	perEndpoint := make(map[Endpoint]*endpointInstruments, len(demoEndpoints))

	for _, ep := range demoEndpoints {
		panel := metrix.NewPanel[Endpoint](metrix.MatchValue[Endpoint]{Value: ep}, string(ep))
		ei := &endpointInstruments{
			requests:  instruments.NewCounter("requests_total"),
			rate:      instruments.NewMeter("requests_per_second", tickInterval, instruments.Rate1Min),
			latencyUs: instruments.NewHistogram("latency_us", instruments.DefaultReservoirSize, clock).WithInactivityReset(30 * time.Second),
			inFlight:  instruments.NewGauge("in_flight", instruments.GaugeIncDec, 0, clock).WithPeakTracking(10 * time.Second),
			errors:    instruments.NewNonOccurrenceTracker("last_error", 5*time.Minute, clock),
			up:        instruments.NewFlag("status", "up", "down"),
		}
		_ = panel.AddInstrument(ei.requests)
		_ = panel.AddInstrument(ei.rate)
		_ = panel.AddInstrument(ei.latencyUs)
		_ = panel.AddInstrument(ei.inFlight)
		_ = panel.AddInstrument(ei.errors)
		_ = panel.AddInstrument(ei.up)
		_ = cockpit.AddPanel(panel)
		perEndpoint[ep] = ei
	}

	tx, proc := metrix.NewProcessorPair[Endpoint]("http")
	_ = proc.AddCockpit(cockpit)
	return tx, proc, perEndpoint
}

// simulateTraffic emits synthetic observations until stop is closed,
// exercising the whole producer -> processor -> cockpit -> panel ->
// instrument path end to end.
func simulateTraffic(tx metrix.Transmitter[Endpoint], stop <-chan struct{}) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ep := demoEndpoints[rand.Intn(len(demoEndpoints))]
			start := time.Now()
			tx.ObservedOne(ep)
			tx.Observed(ep, metrix.ChangedByValue(1))
			time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
			tx.ObservedDurationSince(ep, start)
			tx.Observed(ep, metrix.ChangedByValue(-1))
			tx.Observed(ep, metrix.BoolValue(rand.Intn(20) != 0))
		}
	}
}
