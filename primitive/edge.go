package primitive

import "github.com/gatesim/core/pinstate"

// risingEdge implements the shared clock-edge-detection contract used by
// every clocked primitive (Dev-RAM, both displays): the last word of
// internal memory is a 1 bit latch. Rising edge is (clock-low-bit-high
// AND latch == 0); the latch is then updated unconditionally to the
// clock's current low-bit value, every evaluation.
func risingEdge(mem []uint32, latchIdx int, clock pinstate.State) bool {
	high := pinstate.FirstBitHigh(clock)
	rising := high && mem[latchIdx] == 0
	if high {
		mem[latchIdx] = 1
	} else {
		mem[latchIdx] = 0
	}
	return rising
}
