package sixlock

// Lock state is packed into a single uint64 so that every transition is
// one compare-and-swap and no torn intermediate state is ever observable:
//
//	|63            32|31    25|  24  |23     16|15          0|
//	 \   sequence   /  unused   write \ intent / \   read    /
//
// The read field counts outstanding read holds, the intent field counts
// recursive holds of the single intent lineage (clones), and the write
// bit marks the exclusive slot. The sequence advances on every transition
// into and out of the write mode, so it is odd exactly while write is
// held.
const (
	readOffset   = 0
	readMask     = uint64(1)<<16 - 1
	intentOffset = 16
	intentMask   = (uint64(1)<<24 - 1) &^ readMask
	writeBit     = uint64(1) << 24
	seqOffset    = 32

	readIncr   = uint64(1) << readOffset
	intentIncr = uint64(1) << intentOffset
	seqIncr    = uint64(1) << seqOffset

	maxReaders = readMask >> readOffset
	maxIntents = intentMask >> intentOffset
)

func readCount(state uint64) uint64 {
	return (state & readMask) >> readOffset
}

func intentCount(state uint64) uint64 {
	return (state & intentMask) >> intentOffset
}

func writeHeld(state uint64) bool {
	return state&writeBit != 0
}

func sequence(state uint64) uint64 {
	return state >> seqOffset
}

// tryRead performs one non-blocking read acquisition attempt. Read is
// compatible with other readers and with an intent holder; only a held
// write blocks it.
func (l *SixLock) tryRead() bool {
	for {
		state := l.state.Load()
		if writeHeld(state) {
			return false
		}
		if readCount(state) == maxReaders {
			panic("sixlock: read hold count overflow")
		}
		if l.state.CompareAndSwap(state, state+readIncr) {
			return true
		}
	}
}

// tryIntent performs one non-blocking intent acquisition attempt. Intent
// is exclusive across lineages but ignores readers entirely.
func (l *SixLock) tryIntent() bool {
	for {
		state := l.state.Load()
		if intentCount(state) != 0 {
			return false
		}
		if l.state.CompareAndSwap(state, state+intentIncr) {
			return true
		}
	}
}

// tryWrite performs one non-blocking write acquisition attempt. The
// caller must already hold intent. Write does not wait for readers to
// drain: it only requires the write slot itself to be free. Taking the
// slot advances the sequence.
func (l *SixLock) tryWrite() bool {
	for {
		state := l.state.Load()
		if writeHeld(state) {
			return false
		}
		if l.state.CompareAndSwap(state, (state|writeBit)+seqIncr) {
			return true
		}
	}
}

// tryUpgrade atomically trades one read hold for the intent slot. Fails
// if any intent lineage already holds the slot. There is no window where
// the caller holds neither mode.
func (l *SixLock) tryUpgrade() bool {
	for {
		state := l.state.Load()
		if intentCount(state) != 0 {
			return false
		}
		if readCount(state) == 0 {
			panic("sixlock: upgrade without a read hold")
		}
		if l.state.CompareAndSwap(state, state-readIncr+intentIncr) {
			return true
		}
	}
}

// downgrade atomically trades one intent hold for a read hold. Never
// fails and never leaves the lock fully unlocked in between.
func (l *SixLock) downgrade() {
	for {
		state := l.state.Load()
		if intentCount(state) == 0 {
			panic("sixlock: downgrade without an intent hold")
		}
		if readCount(state) == maxReaders {
			panic("sixlock: read hold count overflow")
		}
		if l.state.CompareAndSwap(state, state-intentIncr+readIncr) {
			return
		}
	}
}

// incrementRead duplicates an already-granted read hold. Unlike tryRead
// it does not check the write bit: a reader that predates a writer may
// clone itself while the write is held.
func (l *SixLock) incrementRead() {
	for {
		state := l.state.Load()
		if readCount(state) == maxReaders {
			panic("sixlock: read hold count overflow")
		}
		if l.state.CompareAndSwap(state, state+readIncr) {
			return
		}
	}
}

// incrementIntent duplicates an already-granted intent hold.
func (l *SixLock) incrementIntent() {
	for {
		state := l.state.Load()
		if intentCount(state) == 0 {
			panic("sixlock: intent clone without an intent hold")
		}
		if intentCount(state) == maxIntents {
			panic("sixlock: intent hold count overflow")
		}
		if l.state.CompareAndSwap(state, state+intentIncr) {
			return
		}
	}
}

func (l *SixLock) unlockRead() {
	for {
		state := l.state.Load()
		if readCount(state) == 0 {
			panic("sixlock: release of unheld read mode")
		}
		if l.state.CompareAndSwap(state, state-readIncr) {
			return
		}
	}
}

func (l *SixLock) unlockIntent() {
	for {
		state := l.state.Load()
		if intentCount(state) == 0 {
			panic("sixlock: release of unheld intent mode")
		}
		if l.state.CompareAndSwap(state, state-intentIncr) {
			return
		}
	}
}

// unlockWrite clears the write bit and advances the sequence, leaving
// the intent hold the write was carved from intact.
func (l *SixLock) unlockWrite() {
	for {
		state := l.state.Load()
		if !writeHeld(state) {
			panic("sixlock: release of unheld write mode")
		}
		if l.state.CompareAndSwap(state, (state&^writeBit)+seqIncr) {
			return
		}
	}
}

// relockRead grants a read hold iff the sequence still matches seq and
// no write is held. The sequence check and the increment are one CAS, so
// a write cannot slip in between them.
func (l *SixLock) relockRead(seq uint64) bool {
	for {
		state := l.state.Load()
		if sequence(state) != seq || writeHeld(state) {
			return false
		}
		if readCount(state) == maxReaders {
			panic("sixlock: read hold count overflow")
		}
		if l.state.CompareAndSwap(state, state+readIncr) {
			return true
		}
	}
}

// relockIntent grants an intent hold iff the sequence still matches seq
// and the intent slot is free. This is deliberately a separate primitive
// from relockRead: the gate is the intent slot, not the write bit.
func (l *SixLock) relockIntent(seq uint64) bool {
	for {
		state := l.state.Load()
		if sequence(state) != seq || intentCount(state) != 0 {
			return false
		}
		if l.state.CompareAndSwap(state, state+intentIncr) {
			return true
		}
	}
}
