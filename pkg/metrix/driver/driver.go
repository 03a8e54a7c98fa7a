// Package driver implements TelemetryDriver: the background polling
// loop that drains processors, ticks instruments, and serves
// coalesced snapshot requests. Grounded on the teacher's
// internal/common/task.BackgroundTaskManager goroutine/ticker/
// stopChannel/WaitGroup idiom, specialised from "N independent
// periodic tasks" to this library's single drain-tick-snapshot loop.
package driver

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/G-Research/metrix/internal/metrixlog"
	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix"
	"github.com/G-Research/metrix/pkg/metrix/instruments"
)

// quietPeriod bounds how often a sustained-drops warning is logged, so
// a busy drop streak produces one line every quietPeriod rather than
// once per tick. Mirrors driver.rs's log_outcome 5-second quiet window.
const quietPeriod = 5 * time.Second

// snapshotWaiter is a one-shot, broadcastable handle for a coalesced
// snapshot request: every caller that arrives before the background
// thread services the pending request shares this same waiter.
// requestID correlates abandoned-request log lines across the
// potentially many callers sharing one waiter.
type snapshotWaiter struct {
	requestID string
	done      chan struct{}
	result    metrix.Snapshot
}

// TelemetryDriver owns a background goroutine, a set of processors
// (including mounts), a processing strategy, and the pending coalesced
// snapshot request. Processors may be added concurrently with the
// running loop, and disconnected ones are evicted by the loop itself;
// everything else is internal to the loop goroutine.
type TelemetryDriver struct {
	metrix.Descriptives
	name         string
	clock        metrixutil.Clock
	strategy     Strategy
	tickInterval time.Duration
	meterRates   []instruments.MeterRate
	self         *selfMetrics

	mu         sync.Mutex
	processors []metrix.Processor
	byName     map[string]struct{}

	snapshotMu sync.Mutex
	pending    *snapshotWaiter

	stopCh  chan struct{}
	doneCh  chan struct{}
	wg      sync.WaitGroup
	started bool

	lastDropWarning time.Time
}

func (d *TelemetryDriver) Name() string { return d.name }

// AddProcessor attaches p to the driver. Fails with ErrDuplicateName
// if a processor of that name is already attached. Safe to call while
// the driver is running.
func (d *TelemetryDriver) AddProcessor(p metrix.Processor) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byName[p.Name()]; exists {
		return &metrix.ErrDuplicateName{Kind: "processor", Name: p.Name(), Parent: d.name}
	}
	d.byName[p.Name()] = struct{}{}
	d.processors = append(d.processors, p)
	return nil
}

// Start begins the background polling loop. Calling Start more than
// once is a no-op.
func (d *TelemetryDriver) Start() {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	d.started = true
	d.mu.Unlock()

	d.wg.Add(1)
	go d.run()
}

// Stop signals the background loop to exit after finishing its
// current tick, and waits up to timeout for it to do so.
func (d *TelemetryDriver) Stop(timeout time.Duration) bool {
	close(d.stopCh)
	c := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(c)
	}()
	select {
	case <-c:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Done returns a channel that closes once the loop has exited, either
// because its processor set became empty or after Stop, for callers that want to observe
// that lifecycle event directly (spec.md §3: "A Driver whose processor
// set is empty exits its thread").
func (d *TelemetryDriver) Done() <-chan struct{} { return d.doneCh }

func (d *TelemetryDriver) run() {
	defer d.wg.Done()
	defer close(d.doneCh)

	ticker := time.NewTicker(d.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopCh:
			return
		case <-ticker.C:
		}

		if d.tick() {
			return
		}
	}
}

// tick runs one iteration of the loop (drain, evict, serve snapshot,
// tick instruments) and reports whether the driver should exit
// because its processor set is now empty.
func (d *TelemetryDriver) tick() bool {
	now := d.clock.Now()
	start := now

	d.mu.Lock()
	procs := append([]metrix.Processor{}, d.processors...)
	d.mu.Unlock()

	var totalProcessed, totalDropped uint64
	var droppedFrom []string
	disconnected := make(map[string]struct{})
	for _, p := range procs {
		outcome := d.strategy.drain(p, d.clock)
		totalProcessed += outcome.Processed
		totalDropped += outcome.Dropped
		if outcome.Dropped > 0 {
			droppedFrom = append(droppedFrom, p.Name())
		}
		if outcome.Disconnected {
			disconnected[p.Name()] = struct{}{}
		}
	}

	// Re-read the live set under the lock rather than trusting procs,
	// so a processor added concurrently during this tick's drain isn't
	// lost when the evicted ones are spliced out.
	d.mu.Lock()
	live := d.processors[:0]
	for _, p := range d.processors {
		if _, bad := disconnected[p.Name()]; bad {
			delete(d.byName, p.Name())
			continue
		}
		live = append(live, p)
	}
	d.processors = live
	empty := len(d.processors) == 0
	d.mu.Unlock()

	d.serveSnapshot(live, now)

	for _, p := range live {
		p.Tick(now)
	}

	if d.self != nil {
		elapsed := d.clock.Now().Sub(start)
		d.self.record(now, elapsed, totalProcessed, totalDropped, droppedFrom)
		d.self.tick(now)
		if totalDropped > 0 && now.Sub(d.lastDropWarning) >= quietPeriod {
			metrixlog.Warnf("dropping observations: %d dropped this tick across %v", totalDropped, droppedFrom)
			d.lastDropWarning = now
		}
	}

	return empty
}


// serveSnapshot fulfils the currently pending coalesced snapshot
// request, if any, by walking the given processor set.
func (d *TelemetryDriver) serveSnapshot(procs []metrix.Processor, now time.Time) {
	d.snapshotMu.Lock()
	w := d.pending
	d.pending = nil
	d.snapshotMu.Unlock()
	if w == nil {
		return
	}

	var snap metrix.Snapshot
	for _, p := range procs {
		p.PutSnapshot(&snap, false)
	}
	if d.self != nil {
		d.self.putSnapshot(&snap, false)
	}
	w.result = snap
	close(w.done)
}

// requestSnapshot returns the currently pending waiter, creating one
// if none is in flight. Concurrent callers before the next tick share
// the same waiter and therefore the same resulting tree.
func (d *TelemetryDriver) requestSnapshot() *snapshotWaiter {
	d.snapshotMu.Lock()
	defer d.snapshotMu.Unlock()
	if d.pending == nil {
		d.pending = &snapshotWaiter{requestID: uuid.NewString(), done: make(chan struct{})}
	}
	return d.pending
}

// Snapshot blocks until the background thread computes and returns
// the next coalesced snapshot, or ctx is cancelled first.
func (d *TelemetryDriver) Snapshot(ctx context.Context) (metrix.Snapshot, error) {
	w := d.requestSnapshot()
	select {
	case <-w.done:
		return w.result, nil
	case <-ctx.Done():
		metrixlog.Warnf("snapshot request %s abandoned waiting for driver %q's next tick: %v", w.requestID, d.name, ctx.Err())
		return metrix.Snapshot{}, ctx.Err()
	}
}

// PutSnapshot renders the driver's current processor set directly,
// bypassing the coalesced background-thread path. Useful for tests
// and for embedding a driver's state into a larger, synchronously
// built tree.
func (d *TelemetryDriver) PutSnapshot(into *metrix.Snapshot, descriptive bool) {
	d.mu.Lock()
	procs := append([]metrix.Processor{}, d.processors...)
	d.mu.Unlock()
	for _, p := range procs {
		p.PutSnapshot(into, descriptive)
	}
	if d.self != nil {
		d.self.putSnapshot(into, descriptive)
	}
}

// SnapshotResult is the payload delivered by SnapshotAsync.
type SnapshotResult struct {
	Snapshot metrix.Snapshot
	Err      error
}

// SnapshotAsync returns immediately with a channel that receives the
// next coalesced snapshot once computed, or an error if ctx is
// cancelled first.
func (d *TelemetryDriver) SnapshotAsync(ctx context.Context) <-chan SnapshotResult {
	out := make(chan SnapshotResult, 1)
	w := d.requestSnapshot()
	go func() {
		select {
		case <-w.done:
			out <- SnapshotResult{Snapshot: w.result}
		case <-ctx.Done():
			metrixlog.Warnf("snapshot request %s abandoned waiting for driver %q's next tick: %v", w.requestID, d.name, ctx.Err())
			out <- SnapshotResult{Err: ctx.Err()}
		}
		close(out)
	}()
	return out
}
