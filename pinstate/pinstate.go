// Package pinstate implements the packed tri-state signal representation
// shared by every pin in the simulator. A State is a 32 bit word: the low
// 16 bits hold per-bit logic values (0 == low, 1 == high) and the high 16
// bits hold per-bit tristate/disconnected flags (1 == high-impedance, 0 ==
// driven). A fully disconnected 1 bit signal therefore has both bit 0 and
// bit 16 set.
//
// All functions here are pure and stateless; they never observe or depend
// on simulation time, pin identity, or chip hierarchy.
package pinstate

// State is a packed tri-state signal of up to 16 bits.
type State uint32

const (
	valueMask    = State(0x0000FFFF)
	tristateBase = 16
)

// Set returns src unchanged; it exists so callers can write
// `dst = pinstate.Set(dst, src)` symmetrically with the other combinators
// below instead of a bare assignment.
func Set(_ State, src State) State {
	return src
}

// FirstBitHigh reports whether bit 0 is both driven and logic-high.
func FirstBitHigh(s State) bool {
	return s&0x1 == 0x1 && s&(0x1<<tristateBase) == 0
}

// BitStates returns the low 16 value bits, with every disconnected bit
// forced to 0 so numeric reads never observe garbage left behind on a
// tristated bit.
func BitStates(s State) State {
	return (s & valueMask) &^ TristateFlags(s)
}

// TristateFlags returns the upper 16 bits (the disconnected-bit flags)
// right-shifted into the low half so the result is directly comparable to
// another call's output or to BitStates.
func TristateFlags(s State) State {
	return (s >> tristateBase) & valueMask
}

// SetAllDisconnected returns s with every tristate flag raised, for all 16
// bit positions, regardless of how many bits the owning pin actually uses.
func SetAllDisconnected(s State) State {
	return s | (valueMask << tristateBase)
}

// pack reassembles a State from separate value and tristate planes (both
// expected to already be confined to the low 16 bits).
func pack(value, tristate State) State {
	return (value & valueMask) | ((tristate & valueMask) << tristateBase)
}

// Set4BitFromUpper8BitNibble copies the upper nibble (bits 4-7) of an 8 bit
// source's value and tristate planes into the low 4 bits of a 4 bit dest.
func Set4BitFromUpper8BitNibble(src State) State {
	return set4BitFromNibble(src, true)
}

// Set4BitFromLower8BitNibble copies the lower nibble (bits 0-3) of an 8 bit
// source's value and tristate planes into the low 4 bits of a 4 bit dest.
func Set4BitFromLower8BitNibble(src State) State {
	return set4BitFromNibble(src, false)
}

func set4BitFromNibble(src State, upper bool) State {
	value := src & valueMask
	tristate := TristateFlags(src)
	if upper {
		value >>= 4
		tristate >>= 4
	}
	return pack(value&0xF, tristate&0xF)
}

// Set8BitFromNibbles combines a 4 bit upper-nibble source and a 4 bit
// lower-nibble source into one 8 bit State, preserving each source's
// tristate plane in its corresponding nibble.
func Set8BitFromNibbles(hi4, lo4 State) State {
	value := ((hi4 & 0xF) << 4) | (lo4 & 0xF)
	tristate := ((TristateFlags(hi4) & 0xF) << 4) | (TristateFlags(lo4) & 0xF)
	return pack(value, tristate)
}

// FromBool packs a single defined logic bit (bits 1-15 left clear).
func FromBool(high bool) State {
	if high {
		return 1
	}
	return 0
}

// Value returns the raw driven-bits numeric value of s masked to width
// bits (1, 4, or 8). Disconnected bits read as 0.
func Value(s State, width int) State {
	mask := State(1<<uint(width)) - 1
	return BitStates(s) & mask
}
