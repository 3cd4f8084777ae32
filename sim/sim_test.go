package sim

import (
	"testing"

	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/pinstate"
	"github.com/gatesim/core/scheduler"
)

func fixedSeed(seed uint32) *uint32 { return &seed }

func TestInitRejectsUnknownSubChipType(t *testing.T) {
	_, err := Init(&Def{Description: chip.Description{
		Name: "broken", Type: chip.Custom,
		SubChips: []chip.SubChipDescription{{TypeName: "NOT-A-CHIP", ID: "x"}},
	}})
	if err == nil {
		t.Fatal("expected an error for an unresolvable sub-chip type")
	}
}

func TestFrameDrivesNANDThroughInputHandles(t *testing.T) {
	s, err := Init(&Def{
		Description: chip.Description{Name: "NAND", Type: chip.NAND,
			Inputs:  []chip.PinDescription{{ID: "in0", BitWidth: 1}, {ID: "in1", BitWidth: 1}},
			Outputs: []chip.PinDescription{{ID: "out0", BitWidth: 1}}},
		DeterministicSeed: fixedSeed(1),
	})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	in0 := NewInputHandle(chip.PinAddress{PinID: "in0"})
	in1 := NewInputHandle(chip.PinAddress{PinID: "in1"})
	in0.SetBool(true)
	in1.SetBool(true)

	for i := 0; i < 3; i++ {
		s.Frame(in0, in1)
	}

	out, ok := s.Pin("out0")
	if !ok {
		t.Fatal("missing out0 pin")
	}
	if pinstate.FirstBitHigh(out.State()) {
		t.Fatal("NAND(1,1) should settle low")
	}
	if s.FrameCount() != 3 {
		t.Fatalf("FrameCount = %d, want 3", s.FrameCount())
	}
}

func TestSubmitAppliesBeforeNextFrame(t *testing.T) {
	s, err := Init(&Def{
		Description: chip.Description{
			Name: "host", Type: chip.Custom,
		},
		DeterministicSeed: fixedSeed(1),
	})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.Submit(scheduler.Command{Kind: scheduler.AddPin, PinID: "led", Dir: 1, BitWidth: 1})
	s.Frame()
	if _, ok := s.Pin("led"); !ok {
		t.Fatal("AddPin command should have installed the pin before the frame ran")
	}
}
