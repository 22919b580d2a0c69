package latch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sixlatch/pkg/primitives"
)

func pinned(t *testing.T) (*LatchTable, *PageLatch) {
	t.Helper()
	table := NewLatchTable()
	pl := table.Pin(primitives.NewPageID(1, 1))
	t.Cleanup(func() {
		if err := pl.Unpin(); err != nil {
			t.Errorf("Unpin failed: %v", err)
		}
	})
	return table, pl
}

func TestPageLatch_AcquisitionsAreCounted(t *testing.T) {
	table, pl := pinned(t)

	g := pl.Read()
	g.Release()
	in := pl.Intent()
	wr := pl.Write(in)
	wr.Release()
	in.Release()

	snap := table.Snapshot()
	require.Equal(t, int64(1), snap.Reads)
	require.Equal(t, int64(1), snap.Intents)
	require.Equal(t, int64(1), snap.Writes)
	require.Zero(t, snap.ReadFailures)
}

func TestPageLatch_TryFailuresAreCounted(t *testing.T) {
	table, pl := pinned(t)

	in := pl.Intent()
	wr := pl.Write(in)

	if _, ok := pl.TryRead(); ok {
		t.Fatal("TryRead should fail while write is held")
	}
	if _, ok := pl.TryIntent(); ok {
		t.Fatal("TryIntent should fail while intent is held")
	}
	dup := in.Clone()
	if _, ok := pl.TryWrite(dup); ok {
		t.Fatal("TryWrite should fail while write is held")
	}
	dup.Release()

	wr.Release()
	in.Release()

	snap := table.Snapshot()
	require.Equal(t, int64(1), snap.ReadFailures)
	require.Equal(t, int64(1), snap.IntentFailures)
	require.Equal(t, int64(1), snap.WriteFailures)
}

func TestPageLatch_UpgradeCounting(t *testing.T) {
	table, pl := pinned(t)

	rd := pl.Read()
	in, ok := pl.TryUpgrade(rd)
	require.True(t, ok, "upgrade with free intent slot failed")

	rd2 := pl.Read()
	if _, ok := pl.TryUpgrade(rd2); ok {
		t.Fatal("upgrade should fail while intent is held")
	}
	rd2.Release()
	in.Release()

	snap := table.Snapshot()
	require.Equal(t, int64(1), snap.Upgrades)
	require.Equal(t, int64(1), snap.UpgradeFailures)
}

func TestDropForRelock_HitWithoutInterveningWrite(t *testing.T) {
	table, pl := pinned(t)

	g := pl.Read()
	ran := false
	g2, ok := pl.DropForRelock(g, func() {
		ran = true
		if got := pl.Lock().ReaderCount(); got != 0 {
			t.Errorf("ReaderCount = %d inside unlatched section, want 0", got)
		}
	})
	require.True(t, ok, "relock missed with no intervening write")
	require.True(t, ran, "unlatched section did not run")
	g2.Release()

	snap := table.Snapshot()
	require.Equal(t, int64(1), snap.RelockHits)
	require.Zero(t, snap.RelockMisses)
}

func TestDropForRelock_MissAfterInterveningWrite(t *testing.T) {
	table, pl := pinned(t)

	g := pl.Read()
	g2, ok := pl.DropForRelock(g, func() {
		in := pl.Intent()
		wr := pl.Write(in)
		wr.Release()
		in.Release()
	})
	require.False(t, ok, "relock hit despite an intervening write")
	require.Nil(t, g2)

	snap := table.Snapshot()
	require.Equal(t, int64(1), snap.RelockMisses)
}

func TestDropForIntentRelock_GatedByIntentSlot(t *testing.T) {
	_, pl := pinned(t)

	// No contention: the handle converts straight to intent.
	g := pl.Read()
	in, ok := pl.DropForIntentRelock(g, nil)
	require.True(t, ok)
	in.Release()

	// Intent claimed in the unlatched window: the relock must miss even
	// though no write happened.
	other := pl.Intent()
	g = pl.Read()
	_, ok = pl.DropForIntentRelock(g, nil)
	require.False(t, ok, "intent relock succeeded while the slot was taken")
	other.Release()
}
