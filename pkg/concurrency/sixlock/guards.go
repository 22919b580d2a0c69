package sixlock

import "sync/atomic"

// ReadGuard is proof of one held read count. It must be released exactly
// once; duplicate the hold with Clone instead of sharing the guard.
type ReadGuard struct {
	lock     *SixLock
	released atomic.Bool
}

// Release drops this read hold. Releasing a guard twice panics.
func (g *ReadGuard) Release() {
	if g.released.Swap(true) {
		panic("sixlock: ReadGuard released twice")
	}
	g.lock.unlockRead()
}

// Clone duplicates the read hold without re-running the acquisition
// protocol, even while a write is held. The returned guard is released
// independently of this one.
func (g *ReadGuard) Clone() *ReadGuard {
	if g.released.Load() {
		panic("sixlock: Clone of released ReadGuard")
	}
	g.lock.incrementRead()
	return &ReadGuard{lock: g.lock}
}

// TryUpgrade attempts to atomically convert this read hold into an
// intent hold, with no window where the caller holds neither. It fails
// if the intent slot is occupied, in which case the read guard remains
// valid and owned by the caller. On success the read guard is consumed.
func (g *ReadGuard) TryUpgrade() (*IntentGuard, bool) {
	if g.released.Load() {
		panic("sixlock: TryUpgrade of released ReadGuard")
	}
	if !g.lock.tryUpgrade() {
		return nil, false
	}
	g.released.Store(true)
	return &IntentGuard{lock: g.lock}, true
}

// RelockHandle snapshots the lock's sequence number for later optimistic
// re-acquisition. The handle stays usable after this guard is released;
// that is the point of it.
func (g *ReadGuard) RelockHandle() RelockHandle {
	if g.released.Load() {
		panic("sixlock: RelockHandle of released ReadGuard")
	}
	return RelockHandle{lock: g.lock, seq: sequence(g.lock.state.Load())}
}

// IntentGuard is proof that the intent slot is occupied by this caller's
// lineage. It is the only route to the write mode.
type IntentGuard struct {
	lock     *SixLock
	released atomic.Bool
	writes   atomic.Int32
}

// Release drops this intent hold. It panics if released twice, or if a
// WriteGuard carved from this guard is still outstanding: a write hold
// must never outlive the intent hold it borrows.
func (g *IntentGuard) Release() {
	if g.writes.Load() != 0 {
		panic("sixlock: IntentGuard released with outstanding WriteGuard")
	}
	if g.released.Swap(true) {
		panic("sixlock: IntentGuard released twice")
	}
	g.lock.unlockIntent()
}

// Clone duplicates the intent hold within the same lineage. Each clone
// is released independently.
func (g *IntentGuard) Clone() *IntentGuard {
	if g.released.Load() {
		panic("sixlock: Clone of released IntentGuard")
	}
	g.lock.incrementIntent()
	return &IntentGuard{lock: g.lock}
}

// Downgrade atomically trades this intent hold for a read hold. It never
// fails and leaves no window where the lock is fully unlocked. The
// intent guard is consumed. Panics if a write carved from this guard is
// still outstanding.
func (g *IntentGuard) Downgrade() *ReadGuard {
	if g.writes.Load() != 0 {
		panic("sixlock: Downgrade with outstanding WriteGuard")
	}
	if g.released.Swap(true) {
		panic("sixlock: Downgrade of released IntentGuard")
	}
	g.lock.downgrade()
	return &ReadGuard{lock: g.lock}
}

// Write obtains a write hold, blocking until the write slot is free. It
// does not wait for readers to drain: readers granted before the write
// keep their holds, but no new reader is admitted until the write guard
// is released.
func (g *IntentGuard) Write() *WriteGuard {
	if g.released.Load() {
		panic("sixlock: Write on released IntentGuard")
	}
	g.lock.acquire(g.lock.tryWrite, nil)
	g.writes.Add(1)
	return &WriteGuard{intent: g}
}

// TryWrite attempts to obtain a write hold without blocking.
func (g *IntentGuard) TryWrite() (*WriteGuard, bool) {
	if g.released.Load() {
		panic("sixlock: TryWrite on released IntentGuard")
	}
	if !g.lock.tryWrite() {
		return nil, false
	}
	g.writes.Add(1)
	return &WriteGuard{intent: g}, true
}

// WriteOrSleep obtains a write hold, consulting shouldSleep while
// waiting to choose between spinning and sleeping.
func (g *IntentGuard) WriteOrSleep(shouldSleep ShouldSleepFn) *WriteGuard {
	if g.released.Load() {
		panic("sixlock: WriteOrSleep on released IntentGuard")
	}
	g.lock.acquire(g.lock.tryWrite, shouldSleep)
	g.writes.Add(1)
	return &WriteGuard{intent: g}
}

// WriteGuard is proof that the write slot is occupied. It borrows the
// IntentGuard it was carved from: the intent hold stays intact when the
// write guard is released, for the caller to continue, downgrade, or
// release separately.
type WriteGuard struct {
	intent   *IntentGuard
	released atomic.Bool
}

// Intent returns the intent guard this write hold borrows. The returned
// guard is still owned by the original caller; this accessor does not
// transfer or duplicate it.
func (g *WriteGuard) Intent() *IntentGuard {
	return g.intent
}

// Release clears the write slot and advances the sequence, leaving the
// borrowed intent hold in place.
func (g *WriteGuard) Release() {
	if g.released.Swap(true) {
		panic("sixlock: WriteGuard released twice")
	}
	g.intent.lock.unlockWrite()
	g.intent.writes.Add(-1)
}

// RelockHandle is a sequence snapshot taken while a read hold was
// active. After the original guard is dropped, the handle re-acquires
// the lock optimistically: the attempt succeeds only if no write
// happened since the snapshot, letting the caller skip re-validation it
// already performed. A handle may be used any number of times.
type RelockHandle struct {
	lock *SixLock
	seq  uint64
}

// Sequence returns the snapshotted sequence number.
func (h RelockHandle) Sequence() uint64 {
	return h.seq
}

// TryRead attempts to re-acquire a read hold. It fails if the sequence
// has advanced (a write happened since the snapshot) or a write is
// currently held.
func (h RelockHandle) TryRead() (*ReadGuard, bool) {
	if !h.lock.relockRead(h.seq) {
		return nil, false
	}
	return &ReadGuard{lock: h.lock}, true
}

// TryIntent attempts to re-acquire an intent hold. It fails if the
// sequence has advanced or the intent slot is occupied. The gate here is
// the intent slot, not the read condition: the two modes have different
// compatibility rules and need different relock checks.
func (h RelockHandle) TryIntent() (*IntentGuard, bool) {
	if !h.lock.relockIntent(h.seq) {
		return nil, false
	}
	return &IntentGuard{lock: h.lock}, true
}
