package latch

import (
	"fmt"

	"sixlatch/pkg/concurrency/sixlock"
	"sixlatch/pkg/primitives"
)

// PageLatch is one pinned reference to a page's six lock. Acquisitions
// go through the latch so the table's counters see them; the underlying
// lock is reachable via Lock for callers that need the raw primitive.
type PageLatch struct {
	table    *LatchTable
	pid      primitives.PageID
	entry    *entry
	unpinned bool
}

// PageID returns the page this latch covers.
func (pl *PageLatch) PageID() primitives.PageID {
	return pl.pid
}

// Lock returns the page's underlying six lock.
func (pl *PageLatch) Lock() *sixlock.SixLock {
	return pl.entry.lock
}

// Unpin drops this reference to the page's latch. Guards acquired
// through the latch must be released before the last Unpin. Unpinning
// twice returns an error.
func (pl *PageLatch) Unpin() error {
	if pl.unpinned {
		return fmt.Errorf("unpin of %v: latch already unpinned", pl.pid)
	}
	pl.unpinned = true
	return pl.table.unpin(pl.pid)
}

// Read obtains a read hold on the page, blocking while a write is held.
func (pl *PageLatch) Read() *sixlock.ReadGuard {
	g := pl.entry.lock.Read()
	pl.table.stats.reads.Add(1)
	return g
}

// TryRead attempts a non-blocking read hold.
func (pl *PageLatch) TryRead() (*sixlock.ReadGuard, bool) {
	g, ok := pl.entry.lock.TryRead()
	if !ok {
		pl.table.stats.readFailures.Add(1)
		return nil, false
	}
	pl.table.stats.reads.Add(1)
	return g, true
}

// ReadOrSleep obtains a read hold with the caller's waiting policy.
func (pl *PageLatch) ReadOrSleep(shouldSleep sixlock.ShouldSleepFn) *sixlock.ReadGuard {
	g := pl.entry.lock.ReadOrSleep(shouldSleep)
	pl.table.stats.reads.Add(1)
	return g
}

// Intent obtains an intent hold on the page, blocking while another
// lineage holds intent.
func (pl *PageLatch) Intent() *sixlock.IntentGuard {
	g := pl.entry.lock.Intent()
	pl.table.stats.intents.Add(1)
	return g
}

// TryIntent attempts a non-blocking intent hold.
func (pl *PageLatch) TryIntent() (*sixlock.IntentGuard, bool) {
	g, ok := pl.entry.lock.TryIntent()
	if !ok {
		pl.table.stats.intentFailures.Add(1)
		return nil, false
	}
	pl.table.stats.intents.Add(1)
	return g, true
}

// IntentOrSleep obtains an intent hold with the caller's waiting policy.
func (pl *PageLatch) IntentOrSleep(shouldSleep sixlock.ShouldSleepFn) *sixlock.IntentGuard {
	g := pl.entry.lock.IntentOrSleep(shouldSleep)
	pl.table.stats.intents.Add(1)
	return g
}

// Write obtains a write hold through the given intent guard, recording
// it in the table counters.
func (pl *PageLatch) Write(in *sixlock.IntentGuard) *sixlock.WriteGuard {
	g := in.Write()
	pl.table.stats.writes.Add(1)
	return g
}

// TryWrite attempts a non-blocking write hold through the given intent
// guard.
func (pl *PageLatch) TryWrite(in *sixlock.IntentGuard) (*sixlock.WriteGuard, bool) {
	g, ok := in.TryWrite()
	if !ok {
		pl.table.stats.writeFailures.Add(1)
		return nil, false
	}
	pl.table.stats.writes.Add(1)
	return g, true
}

// TryUpgrade attempts to convert a read hold on this page into an
// intent hold. On failure the read guard stays valid, exactly as with
// sixlock.ReadGuard.TryUpgrade.
func (pl *PageLatch) TryUpgrade(g *sixlock.ReadGuard) (*sixlock.IntentGuard, bool) {
	in, ok := g.TryUpgrade()
	if !ok {
		pl.table.stats.upgradeFailures.Add(1)
		return nil, false
	}
	pl.table.stats.upgrades.Add(1)
	return in, true
}

// DropForRelock is the optimistic descent step of latch crabbing: it
// snapshots a relock handle from g, releases g, runs unlatched (the
// caller's work that must happen without the hold, typically descending
// to a child page), and then attempts to retake the read hold through
// the handle. When ok is false a write intervened; the caller must
// re-validate from scratch and re-acquire with Read.
func (pl *PageLatch) DropForRelock(g *sixlock.ReadGuard, unlatched func()) (*sixlock.ReadGuard, bool) {
	h := g.RelockHandle()
	g.Release()

	if unlatched != nil {
		unlatched()
	}

	g2, ok := h.TryRead()
	if !ok {
		pl.table.stats.relockMisses.Add(1)
		return nil, false
	}
	pl.table.stats.relockHits.Add(1)
	return g2, true
}

// DropForIntentRelock is DropForRelock's intent-mode counterpart: the
// re-acquisition takes the intent slot instead of a read hold, failing
// if a write intervened or another lineage claimed intent meanwhile.
func (pl *PageLatch) DropForIntentRelock(g *sixlock.ReadGuard, unlatched func()) (*sixlock.IntentGuard, bool) {
	h := g.RelockHandle()
	g.Release()

	if unlatched != nil {
		unlatched()
	}

	in, ok := h.TryIntent()
	if !ok {
		pl.table.stats.relockMisses.Add(1)
		return nil, false
	}
	pl.table.stats.relockHits.Add(1)
	return in, true
}
