package chiplib

import (
	"testing"

	"github.com/gatesim/core/chip"
)

func TestLookupCaseInsensitive(t *testing.T) {
	l := Standard()
	for _, name := range []string{"nand", "NAND", "Nand", "nAnD"} {
		d, ok := l.Lookup(name)
		if !ok {
			t.Fatalf("lookup %q failed", name)
		}
		if d.Type != chip.NAND {
			t.Fatalf("lookup %q returned type %s, want NAND", name, d.Type)
		}
	}
}

func TestLookupMissing(t *testing.T) {
	l := Standard()
	if _, ok := l.Lookup("no-such-chip"); ok {
		t.Fatalf("expected lookup of an unregistered name to fail")
	}
}

func TestStandardLibraryCoversEveryPrimitiveType(t *testing.T) {
	l := Standard()
	required := []chip.Type{
		chip.NAND, chip.TriStateBuffer, chip.Clock, chip.Pulse, chip.Key,
		chip.BusOrigin1, chip.BusOrigin4, chip.BusOrigin8,
		chip.BusTerminus1, chip.BusTerminus4, chip.BusTerminus8,
		chip.Split4to1, chip.Split8to4, chip.Split8to1,
		chip.Merge1to4, chip.Merge1to8, chip.Merge4to8,
		chip.ROM256x16, chip.DevRAM8, chip.DisplayRGB, chip.DisplayDot,
		chip.Display7Segment, chip.LED, chip.Buzzer,
	}
	found := map[chip.Type]bool{}
	for _, d := range primitiveDescriptions() {
		found[d.Type] = true
	}
	for _, rt := range required {
		if !found[rt] {
			t.Errorf("no primitive description registered for type %s", rt)
		}
	}
	// Spot check one primitive resolves through the library itself.
	if d, ok := l.Lookup("BUS_ORIGIN_8"); !ok || d.Type != chip.BusOrigin8 {
		t.Fatalf("BUS_ORIGIN_8 lookup = %+v, %v", d, ok)
	}
}

func TestCompositeDescriptionsReferenceKnownSubChipTypes(t *testing.T) {
	l := Standard()
	for _, d := range compositeDescriptions() {
		for _, s := range d.SubChips {
			if _, ok := l.Lookup(s.TypeName); !ok {
				t.Errorf("%s sub-chip %q references unknown type %q", d.Name, s.ID, s.TypeName)
			}
		}
		ids := map[string]bool{}
		for _, s := range d.SubChips {
			if ids[s.ID] {
				t.Errorf("%s has duplicate sub-chip id %q", d.Name, s.ID)
			}
			ids[s.ID] = true
		}
	}
}

func TestRippleCounterWiresEachStageToTheNext(t *testing.T) {
	d := rippleCounter4Description()
	if len(d.SubChips) != 4 {
		t.Fatalf("ripple counter should have 4 flip-flop stages, got %d", len(d.SubChips))
	}
	wantChain := []struct{ from, to string }{
		{"ff0", "ff1"}, {"ff1", "ff2"}, {"ff2", "ff3"},
	}
	for _, want := range wantChain {
		ok := false
		for _, w := range d.Wires {
			if w.Source.OwnerChipID == want.from && w.Source.PinID == "q" &&
				w.Target.OwnerChipID == want.to && w.Target.PinID == "clk" {
				ok = true
				break
			}
		}
		if !ok {
			t.Errorf("expected a wire from %s.q to %s.clk", want.from, want.to)
		}
	}
}
