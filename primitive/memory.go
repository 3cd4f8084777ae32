package primitive

import (
	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/pinstate"
)

// evalROM256x16: word := memory[addr]; hi8 := (word>>8)&0xFF; lo8 := word&0xFF.
// ROM contents are supplied externally at construction and never
// mutated by evaluation.
func evalROM256x16(c *chip.Chip, collab Collaborators) {
	addr := pinstate.Value(in(c, 0), 8)
	word := c.Memory[addr]
	writeOut(c, 0, collab.Frame, pinstate.State((word>>8)&0xFF))
	writeOut(c, 1, collab.Frame, pinstate.State(word&0xFF))
}

// Dev-RAM internal memory layout: 256 cells followed by a 1 bit
// clock-edge latch.
const devRAMLatchIdx = 256

// evalDevRAM8: inputs are [addr, data, writeEn, reset, clock]. On a clock
// rising edge, reset clears every cell, else writeEn stores data at addr;
// the cell at addr is always read out combinationally regardless of
// edge.
func evalDevRAM8(c *chip.Chip, collab Collaborators) {
	addr := pinstate.Value(in(c, 0), 8)
	data := pinstate.Value(in(c, 1), 8)
	writeEn := pinstate.FirstBitHigh(in(c, 2))
	reset := pinstate.FirstBitHigh(in(c, 3))
	clock := in(c, 4)

	if risingEdge(c.Memory, devRAMLatchIdx, clock) {
		if reset {
			for i := 0; i < devRAMLatchIdx; i++ {
				c.Memory[i] = 0
			}
		} else if writeEn {
			c.Memory[addr] = uint32(data)
		}
	}

	writeOut(c, 0, collab.Frame, pinstate.State(c.Memory[addr]))
}
