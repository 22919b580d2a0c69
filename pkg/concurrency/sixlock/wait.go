package sixlock

import (
	"runtime"
	"time"
)

// ShouldSleepFn steers the waiting strategy of a blocked acquisition.
// It is invoked with the lock at bounded intervals while the caller
// waits: returning true moves the waiter from busy-spinning to a
// blocking sleep, returning false keeps it spinning. The return value is
// not a veto; the acquisition continues either way.
//
// The function must return quickly and must not mutate lock state. It
// may read external state; a caller that needs to abandon its wait must
// arrange that outside this package (for example by panicking through
// the predicate), since the lock itself has no cancellation.
type ShouldSleepFn func(l *SixLock) bool

const (
	// spinBudget is how many failed attempts the default policy spends
	// yielding the processor before it starts sleeping.
	spinBudget = 64

	// baseDelay and maxDelay bound the capped exponential backoff used
	// once a waiter starts sleeping.
	baseDelay = 50 * time.Microsecond
	maxDelay  = 2 * time.Millisecond
)

// acquire retries try until it succeeds. With a nil predicate it spins
// through spinBudget attempts and then sleeps with capped exponential
// backoff. With a predicate it probes shouldSleep on every failed
// attempt, sleeping when told to and yielding otherwise, so the
// bounded-interval contract of ShouldSleepFn holds for the whole wait.
func (l *SixLock) acquire(try func() bool, shouldSleep ShouldSleepFn) {
	if try() {
		return
	}

	delay := baseDelay
	for spins := 0; ; spins++ {
		if try() {
			return
		}

		sleep := false
		switch {
		case shouldSleep != nil:
			sleep = shouldSleep(l)
		default:
			sleep = spins >= spinBudget
		}

		if sleep {
			l.clock().Sleep(delay)
			delay = nextDelay(delay)
		} else {
			runtime.Gosched()
		}
	}
}

// nextDelay doubles the backoff delay up to the cap.
func nextDelay(delay time.Duration) time.Duration {
	delay *= 2
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}
