package builder

import (
	"testing"

	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/chiplib"
)

func testBuilder() *Builder {
	seq := uint32(0)
	return New(chiplib.Standard(), func() bool { return false }, func() uint32 {
		seq++
		return seq
	})
}

func TestBuildLeafPrimitive(t *testing.T) {
	b := testBuilder()
	desc, ok := b.Library.Lookup("NAND")
	if !ok {
		t.Fatal("NAND not in standard library")
	}
	c, err := b.Build("g1", desc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Type != chip.NAND {
		t.Fatalf("type = %s, want NAND", c.Type)
	}
	if len(c.Inputs) != 2 || len(c.Outputs) != 1 {
		t.Fatalf("pin counts = %d/%d, want 2/1", len(c.Inputs), len(c.Outputs))
	}
}

func TestBuildUnknownTypeFails(t *testing.T) {
	b := testBuilder()
	desc := chip.Description{
		Name: "broken", Type: chip.Custom,
		SubChips: []chip.SubChipDescription{{TypeName: "NOT-A-REAL-CHIP", ID: "x"}},
	}
	_, err := b.Build("root", desc)
	if err == nil {
		t.Fatal("expected chip-not-found error")
	}
}

func TestBuildDuplicatePinIDFails(t *testing.T) {
	b := testBuilder()
	desc := chip.Description{
		Name: "dup", Type: chip.NAND,
		Inputs: []chip.PinDescription{{ID: "a", BitWidth: 1}, {ID: "a", BitWidth: 1}},
	}
	_, err := b.Build("root", desc)
	if err == nil {
		t.Fatal("expected duplicate pin id error")
	}
}

func TestBuildWiresSRLatchFeedback(t *testing.T) {
	b := testBuilder()
	desc, ok := b.Library.Lookup("SR_LATCH")
	if !ok {
		t.Fatal("SR_LATCH not in standard library")
	}
	c, err := b.Build("latch", desc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	nor1, ok := c.SubChip("nor1")
	if !ok {
		t.Fatal("missing nor1 sub-chip")
	}
	nor2, ok := c.SubChip("nor2")
	if !ok {
		t.Fatal("missing nor2 sub-chip")
	}
	if nor1.ConnectedInputCount() != 2 {
		t.Fatalf("nor1 connected inputs = %d, want 2 (r and qbar feedback)", nor1.ConnectedInputCount())
	}
	if nor2.ConnectedInputCount() != 2 {
		t.Fatalf("nor2 connected inputs = %d, want 2 (s and q feedback)", nor2.ConnectedInputCount())
	}
}

func TestBuildAllocatesDevRAMRandomized(t *testing.T) {
	b := testBuilder()
	desc, ok := b.Library.Lookup("DEV_RAM_8")
	if !ok {
		t.Fatal("DEV_RAM_8 not in standard library")
	}
	c, err := b.Build("ram", desc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c.Memory) != chip.MemorySize(chip.DevRAM8) {
		t.Fatalf("memory size = %d, want %d", len(c.Memory), chip.MemorySize(chip.DevRAM8))
	}
	nonZero := false
	for _, w := range c.Memory[:len(c.Memory)-1] {
		if w != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Fatal("dev-RAM cells should be randomized at construction, all came back zero")
	}
}

func TestBuildROMRequiresMatchingPersistentDataLength(t *testing.T) {
	b := testBuilder()
	desc, ok := b.Library.Lookup("ROM_256X16")
	if !ok {
		t.Fatal("ROM_256X16 not in standard library")
	}
	desc.PersistentData = make([]uint32, 10) // wrong length
	if _, err := b.Build("rom", desc); err == nil {
		t.Fatal("expected a construction error for mismatched ROM data length")
	}

	desc.PersistentData = make([]uint32, chip.MemorySize(chip.ROM256x16))
	desc.PersistentData[0] = 0xBEEF
	c, err := b.Build("rom", desc)
	if err != nil {
		t.Fatalf("Build with matching data length: %v", err)
	}
	if c.Memory[0] != 0xBEEF {
		t.Fatalf("ROM memory[0] = %#x, want 0xBEEF", c.Memory[0])
	}
}

func TestBuildWithInstanceLevelInternalDataOverridesLibraryTemplate(t *testing.T) {
	b := testBuilder()
	root := chip.Description{
		Name: "host", Type: chip.Custom,
		SubChips: []chip.SubChipDescription{
			{TypeName: "ROM_256X16", ID: "rom0", InternalData: make([]uint32, chip.MemorySize(chip.ROM256x16))},
		},
	}
	root.SubChips[0].InternalData[3] = 7
	c, err := b.Build("host", root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	rom, ok := c.SubChip("rom0")
	if !ok {
		t.Fatal("missing rom0 sub-chip")
	}
	if rom.Memory[3] != 7 {
		t.Fatalf("rom0.Memory[3] = %d, want 7", rom.Memory[3])
	}
}

func TestBuildMissingWireEndpointsAreSkippedSilently(t *testing.T) {
	b := testBuilder()
	desc := chip.Description{
		Name: "broken-wire", Type: chip.NAND,
		Inputs:  []chip.PinDescription{{ID: "in0", BitWidth: 1}},
		Outputs: []chip.PinDescription{{ID: "out0", BitWidth: 1}},
		Wires: []chip.WireDescription{
			{Source: chip.PinAddress{OwnerChipID: chip.HostChipID, PinID: "in0"},
				Target: chip.PinAddress{OwnerChipID: "no-such-sub-chip", PinID: "x"}},
		},
	}
	c, err := b.Build("root", desc)
	if err != nil {
		t.Fatalf("a wire with a missing endpoint should be silently skipped, not fail construction: %v", err)
	}
	in, _ := c.Pin("in0")
	if len(in.Fanout()) != 0 {
		t.Fatalf("unresolved wire should not have installed a fan-out target")
	}
}
