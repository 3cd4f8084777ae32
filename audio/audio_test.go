package audio

import "testing"

func TestRingRegisterAndDrainPreservesOrder(t *testing.T) {
	r := NewRing(4)
	r.RegisterNote(1, 2)
	r.RegisterNote(3, 4)
	r.RegisterNote(5, 6)

	notes := r.Drain()
	want := []Note{{1, 2}, {3, 4}, {5, 6}}
	if len(notes) != len(want) {
		t.Fatalf("len(notes) = %d, want %d", len(notes), len(want))
	}
	for i, n := range notes {
		if n != want[i] {
			t.Errorf("notes[%d] = %+v, want %+v", i, n, want[i])
		}
	}
	if r.Len() != 0 {
		t.Fatal("Drain should empty the buffer")
	}
}

func TestRingOverwritesOldestWhenFull(t *testing.T) {
	r := NewRing(2)
	r.RegisterNote(1, 0)
	r.RegisterNote(2, 0)
	r.RegisterNote(3, 0) // overwrites the 1,0 entry

	notes := r.Drain()
	want := []Note{{2, 0}, {3, 0}}
	if len(notes) != len(want) {
		t.Fatalf("len(notes) = %d, want %d", len(notes), len(want))
	}
	for i, n := range notes {
		if n != want[i] {
			t.Errorf("notes[%d] = %+v, want %+v", i, n, want[i])
		}
	}
}

func TestNewRingPanicsOnNonPositiveCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for capacity <= 0")
		}
	}()
	NewRing(0)
}
