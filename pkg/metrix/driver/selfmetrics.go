package driver

import (
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix"
	"github.com/G-Research/metrix/pkg/metrix/instruments"
)

// selfGroupName is the reserved snapshot group the driver's own
// instruments are published under, matching the original's `_metrix`
// namespace for driver self-observability.
const selfGroupName = "_metrix"

// inactivityAlarmThreshold is how long a driver can go without
// processing any observation before inactivity_alarm flips.
const inactivityAlarmThreshold = 30 * time.Second

// recentDropsCapacity bounds the LRU of recently dropped-observation
// diagnostics kept for the driver's own snapshot, avoiding an
// unbounded slice under sustained drop pressure.
const recentDropsCapacity = 32

// selfMetrics holds the driver's own instruments about itself: how
// often it collects, how long collection takes, and how many
// observations it processed or dropped, grounded on driver.rs's
// DriverInstruments.
type selfMetrics struct {
	collectionsPerSecond     *instruments.Meter
	collectionTimes          *instruments.Histogram
	observationsProcessed    *instruments.Meter
	observationsDropped      *instruments.Meter
	droppedObservationsAlarm *instruments.Flag
	inactivityAlarm          *instruments.NonOccurrenceTracker
	recentDrops              *lru.Cache
}

func newSelfMetrics(tickInterval time.Duration, clock metrixutil.Clock) *selfMetrics {
	cache, _ := lru.New(recentDropsCapacity)
	return &selfMetrics{
		collectionsPerSecond:     instruments.NewMeter("collections_per_second", tickInterval, instruments.Rate1Min),
		collectionTimes:          instruments.NewHistogram("collection_times_us", instruments.DefaultReservoirSize, clock),
		observationsProcessed:    instruments.NewMeter("observations_processed_per_second", tickInterval, instruments.Rate1Min),
		observationsDropped:      instruments.NewMeter("observations_dropped_per_second", tickInterval, instruments.Rate1Min),
		droppedObservationsAlarm: instruments.NewFlag("dropped_observations_alarm", "dropping", "clear"),
		inactivityAlarm:          instruments.NewNonOccurrenceTracker("inactivity_alarm", inactivityAlarmThreshold, clock),
		recentDrops:              cache,
	}
}

// record folds the outcome of one tick's drain pass into the self
// metrics, at the given wall-clock cost.
func (s *selfMetrics) record(now time.Time, elapsed time.Duration, processed, dropped uint64, processorNames []string) {
	s.collectionsPerSecond.Accept(metrix.Update{Count: 1, Timestamp: now})
	s.collectionTimes.Accept(metrix.Update{Value: metrix.FloatValue(float64(elapsed.Microseconds())), Timestamp: now})
	if processed > 0 {
		s.observationsProcessed.Accept(metrix.Update{Count: processed, Timestamp: now})
		s.inactivityAlarm.Accept(metrix.Update{Timestamp: now})
	}
	s.droppedObservationsAlarm.Accept(metrix.Update{Value: metrix.BoolValue(dropped > 0), Timestamp: now})
	if dropped > 0 {
		s.observationsDropped.Accept(metrix.Update{Count: dropped, Timestamp: now})
		for _, name := range processorNames {
			s.recentDrops.Add(name+"@"+now.Format(time.RFC3339Nano), dropped)
		}
	}
}

func (s *selfMetrics) tick(now time.Time) {
	s.collectionsPerSecond.Tick(now)
	s.collectionTimes.Tick(now)
	s.observationsProcessed.Tick(now)
	s.observationsDropped.Tick(now)
}

func (s *selfMetrics) putSnapshot(into *metrix.Snapshot, descriptive bool) {
	var level metrix.Snapshot
	s.collectionsPerSecond.PutSnapshot(&level, descriptive)
	s.collectionTimes.PutSnapshot(&level, descriptive)
	s.observationsProcessed.PutSnapshot(&level, descriptive)
	s.observationsDropped.PutSnapshot(&level, descriptive)
	s.droppedObservationsAlarm.PutSnapshot(&level, descriptive)
	s.inactivityAlarm.PutSnapshot(&level, descriptive)
	level.Push("recent_drops_tracked", metrix.UIntItem(uint64(s.recentDrops.Len())))
	into.Push(selfGroupName, level.AsGroup())
}
