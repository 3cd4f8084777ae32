package primitive

import (
	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/pinstate"
)

// evalNAND: out = NOT(in0 AND in1), bit 0 only.
func evalNAND(c *chip.Chip, collab Collaborators) {
	a := pinstate.BitStates(in(c, 0))
	b := pinstate.BitStates(in(c, 1))
	nand := pinstate.State(1) ^ (a & b & 1)
	writeOut(c, 0, collab.Frame, nand)
}

// evalTriStateBuffer: if enable's low bit is high, out := data verbatim;
// otherwise out is fully disconnected.
func evalTriStateBuffer(c *chip.Chip, collab Collaborators) {
	data := in(c, 0)
	enable := in(c, 1)
	if pinstate.FirstBitHigh(enable) {
		writeOut(c, 0, collab.Frame, data)
		return
	}
	writeOut(c, 0, collab.Frame, pinstate.SetAllDisconnected(0))
}
