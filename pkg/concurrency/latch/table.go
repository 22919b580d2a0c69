// Package latch provides page-granular six locks for a storage engine.
//
// A [LatchTable] lazily creates one [sixlock.SixLock] per page and hands
// out pin-counted references to it. Pinning a page yields a [PageLatch];
// all pins of the same page share one lock instance, and the table
// discards the instance when the last pin drops, so the table only ever
// holds latches for pages that are actually in use.
//
// The table also keeps contention counters ([Stats]) for the
// acquisitions that flow through it, which the monitor renders live.
package latch

import (
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"

	"sixlatch/pkg/concurrency/sixlock"
	"sixlatch/pkg/primitives"
)

// entry is one page's latch plus its pin count. Pin counts are guarded
// by the table mutex, not the latch itself.
type entry struct {
	lock *sixlock.SixLock
	pins int
}

// LatchTable maps pages to their latches.
type LatchTable struct {
	mu      sync.Mutex
	latches map[primitives.PageID]*entry
	clk     clockwork.Clock
	stats   stats
}

// NewLatchTable creates an empty latch table.
func NewLatchTable() *LatchTable {
	return &LatchTable{
		latches: make(map[primitives.PageID]*entry),
	}
}

// NewLatchTableWithClock creates an empty latch table whose latches
// sleep on the given clock. Tests use this with a fake clock.
func NewLatchTableWithClock(clk clockwork.Clock) *LatchTable {
	return &LatchTable{
		latches: make(map[primitives.PageID]*entry),
		clk:     clk,
	}
}

// Pin takes a reference to the page's latch, creating it on first use.
// Every Pin must be matched by exactly one Unpin on the returned
// PageLatch.
func (t *LatchTable) Pin(pid primitives.PageID) *PageLatch {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.latches[pid]
	if !ok {
		var l *sixlock.SixLock
		if t.clk != nil {
			l = sixlock.NewWithClock(t.clk)
		} else {
			l = sixlock.New()
		}
		e = &entry{lock: l}
		t.latches[pid] = e
	}
	e.pins++
	t.stats.pins.Add(1)

	return &PageLatch{table: t, pid: pid, entry: e}
}

// unpin drops one reference to the page's latch, discarding the entry
// when the last pin goes away.
func (t *LatchTable) unpin(pid primitives.PageID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.latches[pid]
	if !ok {
		return fmt.Errorf("unpin of %v: page is not pinned", pid)
	}
	e.pins--
	if e.pins == 0 {
		delete(t.latches, pid)
	}
	return nil
}

// Len returns the number of pages that currently have a latch entry.
func (t *LatchTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.latches)
}

// Snapshot returns the table's contention counters.
func (t *LatchTable) Snapshot() Stats {
	return t.stats.snapshot(t.Len())
}
