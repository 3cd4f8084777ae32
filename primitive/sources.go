package primitive

import (
	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/pinstate"
)

// evalClock: out := high for frames 0..steps-1, low for steps..2*steps-1,
// repeating, via ((frame/steps) & 1) == 0. A StepsPerClockTransition of 0
// disables oscillation: the clock output is held fully disconnected,
// since no period is defined.
func evalClock(c *chip.Chip, collab Collaborators) {
	steps := collab.StepsPerClockTransition
	if steps == 0 {
		writeOut(c, 0, collab.Frame, pinstate.SetAllDisconnected(0))
		return
	}
	high := ((collab.Frame / uint64(steps)) & 1) == 0
	writeOut(c, 0, collab.Frame, pinstate.FromBool(high))
}

// Pulse internal memory layout.
const (
	pulseMemDuration  = 0
	pulseMemTicksLeft = 1
	pulseMemPrevLatch = 2
)

// evalPulse drives its output high for a fixed number of frames after a
// rising edge on its input, then drops low until the next edge. A
// tri-stated input mid-pulse aborts the remaining pulse rather than
// holding it in flight (see DESIGN.md).
func evalPulse(c *chip.Chip, collab Collaborators) {
	input := in(c, 0)
	mem := c.Memory
	duration := mem[pulseMemDuration]
	prevLatch := mem[pulseMemPrevLatch]

	rising := pinstate.FirstBitHigh(input) && prevLatch == 0
	if rising {
		mem[pulseMemTicksLeft] = duration
	}

	inputTristated := pinstate.TristateFlags(input)&1 != 0
	if inputTristated && mem[pulseMemTicksLeft] > 0 {
		mem[pulseMemTicksLeft] = 0
	}

	var outValue pinstate.State
	if mem[pulseMemTicksLeft] > 0 {
		outValue = 1
		mem[pulseMemTicksLeft]--
	}

	var outTristate pinstate.State
	if inputTristated {
		outTristate = 1
	}

	if pinstate.BitStates(input)&1 != 0 {
		mem[pulseMemPrevLatch] = 1
	} else {
		mem[pulseMemPrevLatch] = 0
	}

	writeOut(c, 0, collab.Frame, outValue|(outTristate<<16))
}

// evalKey: out := high iff the character stored in internal-state[0] is
// currently held, per the keyboard collaborator contract.
func evalKey(c *chip.Chip, collab Collaborators) {
	if collab.KeyHeld == nil {
		writeOut(c, 0, collab.Frame, pinstate.FromBool(false))
		return
	}
	key := rune(c.Memory[0])
	writeOut(c, 0, collab.Frame, pinstate.FromBool(collab.KeyHeld(key)))
}
