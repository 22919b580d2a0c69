package sixlock

import (
	"testing"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

func TestReadGuard_CloneDropBalance(t *testing.T) {
	l := New()
	g := l.Read()

	const clones = 5
	dups := make([]*ReadGuard, 0, clones)
	for i := 0; i < clones; i++ {
		dups = append(dups, g.Clone())
	}
	if got := l.ReaderCount(); got != clones+1 {
		t.Fatalf("ReaderCount = %d after %d clones, want %d", got, clones, clones+1)
	}

	for _, d := range dups {
		d.Release()
	}
	g.Release()
	if got := l.ReaderCount(); got != 0 {
		t.Errorf("ReaderCount = %d after releasing all guards, want 0", got)
	}
}

func TestReadGuard_CloneWhileWriteHeld(t *testing.T) {
	l := New()
	rd := l.Read()
	in := l.Intent()
	wr := in.Write()

	// Cloning an already-granted hold bypasses the write gate.
	dup := rd.Clone()
	if got := l.ReaderCount(); got != 2 {
		t.Errorf("ReaderCount = %d, want 2", got)
	}

	dup.Release()
	rd.Release()
	wr.Release()
	in.Release()
}

func TestReadGuard_DoubleReleasePanics(t *testing.T) {
	l := New()
	g := l.Read()
	g.Release()

	mustPanic(t, "second Release", g.Release)
	mustPanic(t, "Clone after Release", func() { g.Clone() })
	mustPanic(t, "TryUpgrade after Release", func() { g.TryUpgrade() })
	mustPanic(t, "RelockHandle after Release", func() { g.RelockHandle() })
}

func TestTryUpgrade_FailureReturnsOwnership(t *testing.T) {
	l := New()
	rd := l.Read()
	in := l.Intent()

	if _, ok := rd.TryUpgrade(); ok {
		t.Fatal("TryUpgrade should fail while intent is held")
	}

	// The read guard is still live: it releases without panicking and
	// the count drops.
	rd.Release()
	if got := l.ReaderCount(); got != 0 {
		t.Errorf("ReaderCount = %d, want 0", got)
	}
	in.Release()
}

func TestDowngradeUpgrade_RoundTrip(t *testing.T) {
	l := New()
	before := l.Read()
	in := l.Intent()

	rd := in.Downgrade()
	if l.IntentHeld() {
		t.Error("intent slot should be free after downgrade")
	}
	if got := l.ReaderCount(); got != 2 {
		t.Fatalf("ReaderCount = %d after downgrade, want 2", got)
	}

	in2, ok := rd.TryUpgrade()
	if !ok {
		t.Fatal("TryUpgrade back to intent failed with no contention")
	}
	if got := l.ReaderCount(); got != 1 {
		t.Errorf("ReaderCount = %d after round trip, want 1 (unchanged)", got)
	}

	in2.Release()
	before.Release()
}

func TestIntentGuard_CloneReleasedIndependently(t *testing.T) {
	l := New()
	a := l.Intent()
	b := a.Clone()

	// The slot stays occupied until every clone is released.
	a.Release()
	if !l.IntentHeld() {
		t.Fatal("intent slot freed while a clone is outstanding")
	}
	if _, ok := l.TryIntent(); ok {
		t.Fatal("TryIntent from another lineage succeeded against a clone")
	}

	b.Release()
	if l.IntentHeld() {
		t.Error("intent slot still held after all clones released")
	}
}

func TestWriteGuard_BorrowsIntent(t *testing.T) {
	l := New()
	in := l.Intent()
	wr := in.Write()

	// The intent hold must outlive the write carved from it.
	mustPanic(t, "Release of borrowed intent", in.Release)
	mustPanic(t, "Downgrade of borrowed intent", func() { in.Downgrade() })

	wr.Release()
	if !l.IntentHeld() {
		t.Error("intent hold should remain after write release")
	}
	if l.WriteHeld() {
		t.Error("write slot should be free after write release")
	}

	// With the write gone, the intent guard is usable again.
	wr2, ok := in.TryWrite()
	if !ok {
		t.Fatal("TryWrite after previous write release failed")
	}
	wr2.Release()
	in.Release()
}

func TestWriteGuard_IntentAccessor(t *testing.T) {
	l := New()
	in := l.Intent()
	wr := in.Write()

	if wr.Intent() != in {
		t.Error("Intent() should return the borrowed guard")
	}
	wr.Release()
	in.Release()
}

func TestRelockHandle_SucceedsWithoutInterveningWrite(t *testing.T) {
	l := New()
	rd := l.Read()
	h := rd.RelockHandle()
	rd.Release()

	// Read and intent churn in between does not invalidate the handle.
	g := l.Read()
	g.Release()
	in := l.Intent()
	in.Release()

	rd2, ok := h.TryRead()
	if !ok {
		t.Fatal("TryRead on handle failed with no intervening write")
	}
	rd2.Release()

	in2, ok := h.TryIntent()
	if !ok {
		t.Fatal("TryIntent on handle failed with no intervening write")
	}
	in2.Release()
}

func TestRelockHandle_StaleAfterWrite(t *testing.T) {
	l := New()
	rd := l.Read()
	h := rd.RelockHandle()
	rd.Release()

	in := l.Intent()
	wr := in.Write()
	wr.Release()
	in.Release()

	if _, ok := h.TryRead(); ok {
		t.Error("TryRead on stale handle succeeded")
	}
	if _, ok := h.TryIntent(); ok {
		t.Error("TryIntent on stale handle succeeded")
	}
}

func TestRelockHandle_TryIntentGatedByIntentSlot(t *testing.T) {
	l := New()
	rd := l.Read()
	h := rd.RelockHandle()
	rd.Release()

	// Fresh sequence, but the slot is taken: intent relock must fail
	// even though a read relock would succeed.
	in := l.Intent()
	if _, ok := h.TryIntent(); ok {
		t.Error("TryIntent should fail while intent is held elsewhere")
	}
	rd2, ok := h.TryRead()
	if !ok {
		t.Error("TryRead should still succeed; readers are compatible with intent")
	} else {
		rd2.Release()
	}
	in.Release()
}

func TestRelockHandle_Reusable(t *testing.T) {
	l := New()
	rd := l.Read()
	h := rd.RelockHandle()
	rd.Release()

	for i := 0; i < 3; i++ {
		g, ok := h.TryRead()
		if !ok {
			t.Fatalf("TryRead attempt %d failed", i)
		}
		g.Release()
	}
	if h.Sequence() != l.Sequence() {
		t.Error("handle sequence drifted without any write")
	}
}

func TestWriteGuard_DoubleReleasePanics(t *testing.T) {
	l := New()
	in := l.Intent()
	wr := in.Write()
	wr.Release()

	mustPanic(t, "second WriteGuard Release", wr.Release)
	in.Release()
}
