package chiplib

import "github.com/gatesim/core/chip"

// compositeDescriptions returns the supplemental circuits shipped
// alongside the bare primitive set: a synthesized NOR, a cross-coupled
// SR latch, a gated D latch, a master-slave toggle flip-flop, and a
// 4 bit ripple counter built from the flip-flop. Each is a Custom
// container expanded from NAND (and from each other) by the builder,
// the same way a real circuit library grows from gates to latches to
// counters.
func compositeDescriptions() []chip.Description {
	return []chip.Description{norDescription(), srLatchDescription(), dLatchDescription(),
		toggleFlipFlopDescription(), rippleCounter4Description()}
}

// norDescription: out := NOT(a OR b), built from four NAND gates via De
// Morgan's law (NAND(NOT a, NOT b) = a OR b).
func norDescription() chip.Description {
	return chip.Description{
		Name: "NOR",
		Type: chip.Custom,
		Inputs: []chip.PinDescription{
			pin("a", 1), pin("b", 1),
		},
		Outputs: []chip.PinDescription{pin("out", 1)},
		SubChips: []chip.SubChipDescription{
			sub("NAND", "nota"), sub("NAND", "notb"),
			sub("NAND", "orgate"), sub("NAND", "norgate"),
		},
		Wires: []chip.WireDescription{
			wire("", "a", "nota", "in0"),
			wire("", "a", "nota", "in1"),
			wire("", "b", "notb", "in0"),
			wire("", "b", "notb", "in1"),
			wire("nota", "out0", "orgate", "in0"),
			wire("notb", "out0", "orgate", "in1"),
			wire("orgate", "out0", "norgate", "in0"),
			wire("orgate", "out0", "norgate", "in1"),
			wire("norgate", "out0", "", "out"),
		},
	}
}

// srLatchDescription: the classic cross-coupled NOR latch. q := NOR(r,
// qbar); qbar := NOR(s, q).
func srLatchDescription() chip.Description {
	return chip.Description{
		Name: "SR_LATCH",
		Type: chip.Custom,
		Inputs: []chip.PinDescription{
			pin("s", 1), pin("r", 1),
		},
		Outputs: []chip.PinDescription{pin("q", 1), pin("qbar", 1)},
		SubChips: []chip.SubChipDescription{
			sub("NOR", "nor1"), sub("NOR", "nor2"),
		},
		Wires: []chip.WireDescription{
			wire("", "r", "nor1", "a"),
			wire("nor2", "out", "nor1", "b"),
			wire("", "s", "nor2", "a"),
			wire("nor1", "out", "nor2", "b"),
			wire("nor1", "out", "", "q"),
			wire("nor2", "out", "", "qbar"),
		},
	}
}

// dLatchDescription: a gated D latch (transparent while clk is high),
// five NAND gates.
func dLatchDescription() chip.Description {
	return chip.Description{
		Name: "D_LATCH",
		Type: chip.Custom,
		Inputs: []chip.PinDescription{
			pin("d", 1), pin("clk", 1),
		},
		Outputs: []chip.PinDescription{pin("q", 1), pin("qbar", 1)},
		SubChips: []chip.SubChipDescription{
			sub("NAND", "notd"), sub("NAND", "n1"), sub("NAND", "n2"),
			sub("NAND", "qgate"), sub("NAND", "qbargate"),
		},
		Wires: []chip.WireDescription{
			wire("", "d", "notd", "in0"),
			wire("", "d", "notd", "in1"),
			wire("", "d", "n1", "in0"),
			wire("", "clk", "n1", "in1"),
			wire("notd", "out0", "n2", "in0"),
			wire("", "clk", "n2", "in1"),
			wire("n1", "out0", "qgate", "in0"),
			wire("qbargate", "out0", "qgate", "in1"),
			wire("n2", "out0", "qbargate", "in0"),
			wire("qgate", "out0", "qbargate", "in1"),
			wire("qgate", "out0", "", "q"),
			wire("qbargate", "out0", "", "qbar"),
		},
	}
}

// toggleFlipFlopDescription: a master-slave toggle flip-flop built from
// two D latches, master opaque while clk is high. Q feeds back into its
// own D input via Qbar so every rising edge of clk toggles Q.
func toggleFlipFlopDescription() chip.Description {
	return chip.Description{
		Name:    "TOGGLE_FF",
		Type:    chip.Custom,
		Inputs:  []chip.PinDescription{pin("clk", 1)},
		Outputs: []chip.PinDescription{pin("q", 1), pin("qbar", 1)},
		SubChips: []chip.SubChipDescription{
			sub("NAND", "notclk"), sub("D_LATCH", "master"), sub("D_LATCH", "slave"),
		},
		Wires: []chip.WireDescription{
			wire("", "clk", "notclk", "in0"),
			wire("", "clk", "notclk", "in1"),
			wire("slave", "qbar", "master", "d"),
			wire("notclk", "out0", "master", "clk"),
			wire("master", "q", "slave", "d"),
			wire("", "clk", "slave", "clk"),
			wire("slave", "q", "", "q"),
			wire("slave", "qbar", "", "qbar"),
		},
	}
}

// rippleCounter4Description: four toggle flip-flops chained so each
// stage's Q clocks the next, giving a 4 bit asynchronous binary counter.
func rippleCounter4Description() chip.Description {
	return chip.Description{
		Name:   "RIPPLE_COUNTER_4",
		Type:   chip.Custom,
		Inputs: []chip.PinDescription{pin("clk", 1)},
		Outputs: []chip.PinDescription{
			pin("q0", 1), pin("q1", 1), pin("q2", 1), pin("q3", 1),
		},
		SubChips: []chip.SubChipDescription{
			sub("TOGGLE_FF", "ff0"), sub("TOGGLE_FF", "ff1"),
			sub("TOGGLE_FF", "ff2"), sub("TOGGLE_FF", "ff3"),
		},
		Wires: []chip.WireDescription{
			wire("", "clk", "ff0", "clk"),
			wire("ff0", "q", "ff1", "clk"),
			wire("ff1", "q", "ff2", "clk"),
			wire("ff2", "q", "ff3", "clk"),
			wire("ff0", "q", "", "q0"),
			wire("ff1", "q", "", "q1"),
			wire("ff2", "q", "", "q2"),
			wire("ff3", "q", "", "q3"),
		},
	}
}
