package dedup

import "testing"

func TestSet_KeepThenDrop(t *testing.T) {
	s := NewSet()

	if s.Contains("a") {
		t.Fatal("empty set must not contain anything")
	}
	s.Add("a")
	if !s.Contains("a") {
		t.Fatal("added id must be contained")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	// Second sighting of the same id is a drop.
	if !s.Contains("a") {
		t.Error("duplicate must be reported as seen")
	}
	s.Add("a")
	if s.Len() != 1 {
		t.Errorf("re-adding must not grow the set, Len() = %d", s.Len())
	}
}

func TestFromIDs(t *testing.T) {
	s := FromIDs([]string{"x", "y", "x"})
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Contains("x") || !s.Contains("y") {
		t.Error("FromIDs must contain every listed id")
	}
	if s.Contains("z") {
		t.Error("FromIDs must not contain unlisted ids")
	}
}
