// Package chiplib implements the name→description library consumed by
// the builder when resolving a sub-chip's type name, plus a small set of
// supplemental composite circuits built entirely from that library.
package chiplib

import (
	"strings"

	"github.com/gatesim/core/chip"
)

// Library maps a case-insensitive type name to its ChipDescription.
type Library struct {
	descriptions map[string]chip.Description
}

// NewLibrary returns an empty library. Use Register to populate it, or
// Standard for the built-in primitive shapes plus supplemental circuits.
func NewLibrary() *Library {
	return &Library{descriptions: make(map[string]chip.Description)}
}

// Register adds or replaces the description for the given name,
// resolved case-insensitively by Lookup.
func (l *Library) Register(name string, d chip.Description) {
	l.descriptions[strings.ToUpper(name)] = d
}

// Lookup resolves name case-insensitively.
func (l *Library) Lookup(name string) (chip.Description, bool) {
	d, ok := l.descriptions[strings.ToUpper(name)]
	return d, ok
}

// Standard returns a library seeded with a pin-shape description for
// every built-in primitive type plus the supplemental composite
// circuits (NOR, SR latch, D latch, 4 bit ripple counter).
func Standard() *Library {
	l := NewLibrary()
	for _, d := range primitiveDescriptions() {
		l.Register(d.Name, d)
	}
	for _, d := range compositeDescriptions() {
		l.Register(d.Name, d)
	}
	return l
}

func pin(id string, width int) chip.PinDescription {
	return chip.PinDescription{ID: id, Name: id, BitWidth: width}
}

func sub(typeName, id string) chip.SubChipDescription {
	return chip.SubChipDescription{TypeName: typeName, ID: id}
}

func wire(srcChip, srcPin, dstChip, dstPin string) chip.WireDescription {
	return chip.WireDescription{
		Source: chip.PinAddress{OwnerChipID: srcChip, PinID: srcPin},
		Target: chip.PinAddress{OwnerChipID: dstChip, PinID: dstPin},
	}
}
