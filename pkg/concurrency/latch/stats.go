package latch

import "sync/atomic"

// stats holds the table's contention counters. All fields are atomics so
// recording never takes the table mutex.
type stats struct {
	pins            atomic.Int64
	reads           atomic.Int64
	readFailures    atomic.Int64
	intents         atomic.Int64
	intentFailures  atomic.Int64
	writes          atomic.Int64
	writeFailures   atomic.Int64
	upgrades        atomic.Int64
	upgradeFailures atomic.Int64
	relockHits      atomic.Int64
	relockMisses    atomic.Int64
}

// Stats is a point-in-time snapshot of a latch table's counters.
//
// Acquisition counters count successful grants; the matching Failure
// counters count failed non-blocking attempts. RelockHits and
// RelockMisses track optimistic re-acquisition through relock handles.
type Stats struct {
	PinnedPages     int
	Pins            int64
	Reads           int64
	ReadFailures    int64
	Intents         int64
	IntentFailures  int64
	Writes          int64
	WriteFailures   int64
	Upgrades        int64
	UpgradeFailures int64
	RelockHits      int64
	RelockMisses    int64
}

func (s *stats) snapshot(pinnedPages int) Stats {
	return Stats{
		PinnedPages:     pinnedPages,
		Pins:            s.pins.Load(),
		Reads:           s.reads.Load(),
		ReadFailures:    s.readFailures.Load(),
		Intents:         s.intents.Load(),
		IntentFailures:  s.intentFailures.Load(),
		Writes:          s.writes.Load(),
		WriteFailures:   s.writeFailures.Load(),
		Upgrades:        s.upgrades.Load(),
		UpgradeFailures: s.upgradeFailures.Load(),
		RelockHits:      s.relockHits.Load(),
		RelockMisses:    s.relockMisses.Load(),
	}
}
