package primitive

import (
	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/pinstate"
)

// evalBusCopy backs every bus origin/terminus width (1/4/8 bit): the
// output is a verbatim state copy of the input, tristate flags included.
func evalBusCopy(c *chip.Chip, collab Collaborators) {
	writeOut(c, 0, collab.Frame, in(c, 0))
}

// evalSplit4to1: output[i] := bit (3-i) of the 4 bit input.
func evalSplit4to1(c *chip.Chip, collab Collaborators) {
	src := in(c, 0)
	for i := 0; i < 4; i++ {
		bit := 3 - i
		writeOut(c, i, collab.Frame, bitOf(src, bit))
	}
}

// evalSplit8to1: output[i] := bit (7-i) of the 8 bit input.
func evalSplit8to1(c *chip.Chip, collab Collaborators) {
	src := in(c, 0)
	for i := 0; i < 8; i++ {
		bit := 7 - i
		writeOut(c, i, collab.Frame, bitOf(src, bit))
	}
}

// evalSplit8to4: outputs are [hi4, lo4].
func evalSplit8to4(c *chip.Chip, collab Collaborators) {
	src := in(c, 0)
	writeOut(c, 0, collab.Frame, pinstate.Set4BitFromUpper8BitNibble(src))
	writeOut(c, 1, collab.Frame, pinstate.Set4BitFromLower8BitNibble(src))
}

// evalMerge1to4: out := a | b<<1 | c<<2 | d<<3, read from the *last*
// input index backwards (index 3 is LSB).
func evalMerge1to4(c *chip.Chip, collab Collaborators) {
	writeOut(c, 0, collab.Frame, mergeBits(c, 4))
}

// evalMerge1to8 is evalMerge1to4's 8 bit analog: index 7 is LSB.
func evalMerge1to8(c *chip.Chip, collab Collaborators) {
	writeOut(c, 0, collab.Frame, mergeBits(c, 8))
}

// evalMerge4to8: inputs are [hi4, lo4].
func evalMerge4to8(c *chip.Chip, collab Collaborators) {
	hi := in(c, 0)
	lo := in(c, 1)
	writeOut(c, 0, collab.Frame, pinstate.Set8BitFromNibbles(hi, lo))
}

// bitOf returns a 1 bit state carrying the value and tristate flag of bit
// position `bit` of src.
func bitOf(src pinstate.State, bit int) pinstate.State {
	value := (src >> uint(bit)) & 1
	tristate := (pinstate.TristateFlags(src) >> uint(bit)) & 1
	return value | (tristate << 16)
}

// mergeBits reads n single-bit inputs with input index n-1 as the LSB and
// packs them (value and tristate planes both) into one State.
func mergeBits(c *chip.Chip, n int) pinstate.State {
	var value, tristate pinstate.State
	for i := 0; i < n; i++ {
		src := in(c, i)
		lsbIndex := uint(n - 1 - i)
		value |= (src & 1) << lsbIndex
		tristate |= (pinstate.TristateFlags(src) & 1) << lsbIndex
	}
	return value | (tristate << 16)
}
