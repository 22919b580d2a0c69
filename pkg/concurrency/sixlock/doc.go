// Package sixlock implements a sleepable shared/intent/exclusive lock
// ("six lock") for protecting B-tree nodes and pages under concurrent
// read/write traffic.
//
// # Overview
//
// A six lock is a read/write lock with a third, intermediate mode: intent.
// Intent signals an upcoming write without blocking readers; it only
// excludes other intent seekers. This lets a tree operation announce that
// it will modify a node, keep readers flowing while it prepares, and then
// briefly take the exclusive write mode for the actual mutation.
//
// Three modes are supported, with the following compatibility matrix.
// "Yes" means a new acquisition in the requested mode succeeds while the
// lock is held in the listed mode:
//
//	+----------------+----------+-------------+------------+
//	| Request \ Held | Read(n)  | Intent      | Write      |
//	+----------------+----------+-------------+------------+
//	| Read           |   Yes    |    Yes      |    No      |
//	| Intent         |   Yes    |    No *     |    No      |
//	| Write          |   Yes ** |  own lineage|    No      |
//	+----------------+----------+-------------+------------+
//
// (*) the current intent holder may duplicate its own hold via Clone.
// (**) write acquisition does not wait for readers to drain: readers that
// were granted before the write are unaffected, but no new reader is
// admitted while write is held. This asymmetry gives writers priority over
// new readers without revoking already-granted reads.
//
// # Guards
//
// Successful acquisitions return guard values ([ReadGuard], [IntentGuard],
// [WriteGuard]) that must each be released exactly once. Releasing a guard
// twice panics, in the manner of sync.RWMutex misuse. Guards of the read
// and intent modes may be duplicated with Clone; every clone is released
// independently.
//
// Write mode is reachable only through an [IntentGuard]. The resulting
// [WriteGuard] borrows its intent hold: releasing or downgrading the
// intent guard while a write carved from it is still outstanding panics.
//
// # Sequence numbers and relocking
//
// The lock carries a sequence number that advances on every transition
// into and out of the write mode (so it is odd exactly while write is
// held). [ReadGuard.RelockHandle] snapshots the sequence; after the guard
// is dropped, the handle's TryRead/TryIntent re-acquire the lock without
// re-validation provided no write happened in between. A stale handle
// fails and the caller re-validates from scratch.
//
// # Blocking
//
// Blocking acquisitions spin, yielding the processor, and fall back to
// clock sleeps with capped exponential backoff. The OrSleep variants take
// a [ShouldSleepFn] that is probed at bounded intervals while waiting and
// steers the spin-vs-sleep choice; it cannot veto the acquisition. There
// is no built-in timeout: a blocking call returns only on success, and
// the Try variants never block at all.
package sixlock
