package primitives

import "testing"

func TestPageID_Equality(t *testing.T) {
	a := NewPageID(1, 2)
	b := NewPageID(1, 2)
	c := NewPageID(1, 3)

	if a != b {
		t.Error("identical page IDs compare unequal")
	}
	if a == c {
		t.Error("distinct page IDs compare equal")
	}
}

func TestPageID_HashDiffersAcrossPages(t *testing.T) {
	a := NewPageID(1, 2).Hash()
	b := NewPageID(1, 3).Hash()
	c := NewPageID(2, 2).Hash()

	if a == b || a == c {
		t.Errorf("hash collisions across trivial page IDs: %v %v %v", a, b, c)
	}
}

func TestPageID_String(t *testing.T) {
	got := NewPageID(7, 42).String()
	if got != "Page(7:42)" {
		t.Errorf("String() = %q, want %q", got, "Page(7:42)")
	}
}

func TestFilepath_HashDeterministic(t *testing.T) {
	p := Filepath("/data/users.tbl")
	if p.Hash() != p.Hash() {
		t.Error("same path hashed to different table IDs")
	}
	if p.Hash() == Filepath("/data/orders.tbl").Hash() {
		t.Error("different paths hashed to the same table ID")
	}
}

func TestTableID_IsValid(t *testing.T) {
	if InvalidTableID.IsValid() {
		t.Error("InvalidTableID reported valid")
	}
	if !TableID(1).IsValid() {
		t.Error("non-zero TableID reported invalid")
	}
}
