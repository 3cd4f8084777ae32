package primitive

import (
	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/pinstate"
)

// Display internal memory layout: 256 front-buffer words, 256 back-buffer
// words, then a 1 bit clock-edge latch.
const (
	displayFrontBase = 0
	displayBackBase  = 256
	displayLatchIdx  = 512
)

// evalDisplayRGB: inputs are [addr, r, g, b, reset, write, refresh,
// clock]; outputs are [r-out, g-out, b-out]. On a clock rising edge:
// reset clears the back buffer, else write stores the packed r|g<<4|b<<8
// word into the back buffer at addr; refresh (checked independently, on
// the same edge) copies the back buffer onto the front buffer. Outputs
// always reflect the current front buffer's pixel at addr.
func evalDisplayRGB(c *chip.Chip, collab Collaborators) {
	addr := pinstate.Value(in(c, 0), 8)
	r := pinstate.Value(in(c, 1), 4)
	g := pinstate.Value(in(c, 2), 4)
	b := pinstate.Value(in(c, 3), 4)
	reset := pinstate.FirstBitHigh(in(c, 4))
	write := pinstate.FirstBitHigh(in(c, 5))
	refresh := pinstate.FirstBitHigh(in(c, 6))
	clock := in(c, 7)

	if risingEdge(c.Memory, displayLatchIdx, clock) {
		if reset {
			clearRange(c.Memory, displayBackBase, displayBackBase+256)
		} else if write {
			c.Memory[displayBackBase+int(addr)] = uint32(r) | uint32(g)<<4 | uint32(b)<<8
		}
		if refresh {
			copy(c.Memory[displayFrontBase:displayFrontBase+256], c.Memory[displayBackBase:displayBackBase+256])
		}
	}

	word := c.Memory[displayFrontBase+int(addr)]
	writeOut(c, 0, collab.Frame, pinstate.State(word&0xF))
	writeOut(c, 1, collab.Frame, pinstate.State((word>>4)&0xF))
	writeOut(c, 2, collab.Frame, pinstate.State((word>>8)&0xF))
}

// evalDisplayDot is evalDisplayRGB's single-channel analog: inputs are
// [addr, pixel, reset, write, refresh, clock], one output [pixel-out].
func evalDisplayDot(c *chip.Chip, collab Collaborators) {
	addr := pinstate.Value(in(c, 0), 8)
	pixel := pinstate.Value(in(c, 1), 8)
	reset := pinstate.FirstBitHigh(in(c, 2))
	write := pinstate.FirstBitHigh(in(c, 3))
	refresh := pinstate.FirstBitHigh(in(c, 4))
	clock := in(c, 5)

	if risingEdge(c.Memory, displayLatchIdx, clock) {
		if reset {
			clearRange(c.Memory, displayBackBase, displayBackBase+256)
		} else if write {
			c.Memory[displayBackBase+int(addr)] = uint32(pixel)
		}
		if refresh {
			copy(c.Memory[displayFrontBase:displayFrontBase+256], c.Memory[displayBackBase:displayBackBase+256])
		}
	}

	writeOut(c, 0, collab.Frame, pinstate.State(c.Memory[displayFrontBase+int(addr)]))
}

func clearRange(mem []uint32, from, to int) {
	for i := from; i < to; i++ {
		mem[i] = 0
	}
}
