package sixlock

import (
	"sync/atomic"

	"github.com/jonboulle/clockwork"
)

// SixLock is a sleepable shared/intent/exclusive lock. The zero value is
// an unlocked lock ready for use.
//
// A SixLock must not be copied after first use.
type SixLock struct {
	state atomic.Uint64
	clk   clockwork.Clock
}

// New creates an unlocked SixLock.
func New() *SixLock {
	return &SixLock{}
}

// NewWithClock creates an unlocked SixLock whose blocked waiters sleep on
// the given clock. Tests use this with a fake clock to drive waiting
// deterministically; production code uses New.
func NewWithClock(clk clockwork.Clock) *SixLock {
	return &SixLock{clk: clk}
}

var realClock = clockwork.NewRealClock()

func (l *SixLock) clock() clockwork.Clock {
	if l.clk != nil {
		return l.clk
	}
	return realClock
}

// Read obtains a read hold, blocking until no write is held.
func (l *SixLock) Read() *ReadGuard {
	l.acquire(l.tryRead, nil)
	return &ReadGuard{lock: l}
}

// TryRead attempts to obtain a read hold without blocking. It performs
// exactly one attempt and reports false if a write is currently held.
func (l *SixLock) TryRead() (*ReadGuard, bool) {
	if !l.tryRead() {
		return nil, false
	}
	return &ReadGuard{lock: l}, true
}

// ReadOrSleep obtains a read hold, consulting shouldSleep while waiting
// to choose between spinning and sleeping. See [ShouldSleepFn].
func (l *SixLock) ReadOrSleep(shouldSleep ShouldSleepFn) *ReadGuard {
	l.acquire(l.tryRead, shouldSleep)
	return &ReadGuard{lock: l}
}

// Intent obtains an intent hold, blocking until the intent slot is free.
// Readers do not block intent acquisition.
func (l *SixLock) Intent() *IntentGuard {
	l.acquire(l.tryIntent, nil)
	return &IntentGuard{lock: l}
}

// TryIntent attempts to obtain an intent hold without blocking. It
// performs exactly one attempt and reports false if another lineage
// holds the intent slot.
func (l *SixLock) TryIntent() (*IntentGuard, bool) {
	if !l.tryIntent() {
		return nil, false
	}
	return &IntentGuard{lock: l}, true
}

// IntentOrSleep obtains an intent hold, consulting shouldSleep while
// waiting to choose between spinning and sleeping.
func (l *SixLock) IntentOrSleep(shouldSleep ShouldSleepFn) *IntentGuard {
	l.acquire(l.tryIntent, shouldSleep)
	return &IntentGuard{lock: l}
}

// Sequence returns the current sequence number. The sequence advances on
// every transition into and out of the write mode; it never changes for
// read or intent churn. This is an advisory snapshot, not
// synchronization.
func (l *SixLock) Sequence() uint64 {
	return sequence(l.state.Load())
}

// ReaderCount reports the current number of outstanding read holds.
// Advisory only.
func (l *SixLock) ReaderCount() int {
	return int(readCount(l.state.Load()))
}

// IntentHeld reports whether the intent slot is currently occupied.
// Advisory only.
func (l *SixLock) IntentHeld() bool {
	return intentCount(l.state.Load()) != 0
}

// WriteHeld reports whether the write slot is currently occupied.
// Advisory only.
func (l *SixLock) WriteHeld() bool {
	return writeHeld(l.state.Load())
}
