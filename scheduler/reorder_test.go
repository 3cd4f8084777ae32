package scheduler

import (
	"testing"

	"github.com/gatesim/core/chip"
)

type stubIOChip struct{ *chip.Chip }

func newStubSubChips(n int, typ chip.Type) []*chip.Chip {
	out := make([]*chip.Chip, n)
	for i := range out {
		out[i] = chip.New(string(rune('a'+i)), typ)
	}
	return out
}

func TestAnyNonBusOriginDetectsMixedSlice(t *testing.T) {
	allBusOrigin := newStubSubChips(3, chip.BusOrigin1)
	if anyNonBusOrigin(allBusOrigin) {
		t.Fatal("a slice of only bus-origin chips should report false")
	}
	mixed := append(newStubSubChips(2, chip.BusOrigin1), chip.New("x", chip.NAND))
	if !anyNonBusOrigin(mixed) {
		t.Fatal("a slice containing a non-bus-origin chip should report true")
	}
}

func TestApplyDynamicSwapHeuristicNeverMovesBusOriginOutOfLeadSlot(t *testing.T) {
	root := chip.New("root", chip.Custom)
	origin := chip.New("origin", chip.BusOrigin1)
	other := chip.New("other", chip.NAND)
	root.AddSubChip(origin)
	root.AddSubChip(other)

	rng := NewRNG(1)
	for frame := uint64(0); frame < 50; frame++ {
		applyDynamicSwapHeuristic(root, frame, rng)
		if root.SubChips[0] != origin {
			t.Fatalf("frame %d: bus-origin chip was swapped out of slot 0", frame)
		}
	}
}

func TestReorderInvalidateForcesFullPassNextFrame(t *testing.T) {
	s := newReorderStrategy()
	s.needsOrderPass = false
	s.Invalidate()
	if !s.needsOrderPass {
		t.Fatal("Invalidate should force the next Frame call to run a full reorder-step pass")
	}
}

func TestDynamicReorderThisFrameEveryHundredFrames(t *testing.T) {
	if !dynamicReorderThisFrame(0) || !dynamicReorderThisFrame(100) || !dynamicReorderThisFrame(200) {
		t.Fatal("frames 0, 100, and 200 should all be dynamic-reorder frames")
	}
	if dynamicReorderThisFrame(1) || dynamicReorderThisFrame(99) || dynamicReorderThisFrame(150) {
		t.Fatal("frames 1, 99, and 150 should not be dynamic-reorder frames")
	}
}

func TestNANDSettlesWithinTenFramesUnderReorder(t *testing.T) {
	s := newTestScheduler(Reorder)
	c := build(t, s, "NAND")
	setInput(c, "in0", true)
	setInput(c, "in1", true)
	runFrames(s, c, 10)
	if outputBool(t, c, "out0") {
		t.Fatal("NAND(1,1) should have settled low within 10 frames under Reorder")
	}
}
