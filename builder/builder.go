// Package builder constructs a runtime chip tree from a chip.Description
// DAG plus a name→description library, installing wires and allocating
// internal memory as it goes.
package builder

import (
	"fmt"

	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/chiplib"
	"github.com/gatesim/core/pin"
)

// Builder holds the collaborators every construction needs: the library
// resolving sub-chip type names, the shared per-frame random-bool source
// installed into every pin's conflict resolver, and a random-word source
// used only at construction time to randomize dev-RAM contents.
type Builder struct {
	Library  *chiplib.Library
	RandBool pin.RandBool
	RandWord func() uint32
}

// New returns a Builder wired to lib, randBool, and randWord.
func New(lib *chiplib.Library, randBool pin.RandBool, randWord func() uint32) *Builder {
	return &Builder{Library: lib, RandBool: randBool, RandWord: randWord}
}

// Build constructs a chip tree rooted at id from desc, recursively
// expanding every sub-chip description via the Builder's library.
func (b *Builder) Build(id string, desc chip.Description) (*chip.Chip, error) {
	return b.buildInstance(id, desc, desc.PersistentData)
}

// buildInstance constructs one chip instance: sub-chips first
// (post-order), then this chip's own pins and internal memory, then
// wire installation. internalData overrides desc.PersistentData when
// non-nil, for a sub-chip instance with its own supplied contents
// (e.g. distinct ROM images at the same library type).
func (b *Builder) buildInstance(id string, desc chip.Description, internalData []uint32) (*chip.Chip, error) {
	c := chip.New(id, desc.Type)

	for _, sd := range desc.SubChips {
		childDesc, ok := b.Library.Lookup(sd.TypeName)
		if !ok {
			return nil, &ChipNotFoundError{SubChipID: sd.ID, TypeName: sd.TypeName}
		}
		child, err := b.buildInstance(sd.ID, childDesc, sd.InternalData)
		if err != nil {
			return nil, fmt.Errorf("building sub-chip %q of %q: %w", sd.ID, id, err)
		}
		child.Label = sd.Label
		c.AddSubChip(child)
	}

	seen := make(map[string]bool, len(desc.Inputs)+len(desc.Outputs))
	for _, pd := range desc.Inputs {
		if seen[pd.ID] {
			return nil, &ConstructionError{ChipID: id, Reason: fmt.Sprintf("duplicate pin id %q", pd.ID)}
		}
		seen[pd.ID] = true
		c.AddPin(pd.ID, pin.Input, pd.BitWidth, b.RandBool)
	}
	for _, pd := range desc.Outputs {
		if seen[pd.ID] {
			return nil, &ConstructionError{ChipID: id, Reason: fmt.Sprintf("duplicate pin id %q", pd.ID)}
		}
		seen[pd.ID] = true
		c.AddPin(pd.ID, pin.Output, pd.BitWidth, b.RandBool)
	}

	if err := b.allocateMemory(c, desc, internalData); err != nil {
		return nil, err
	}

	for _, w := range desc.Wires {
		src, ok := c.Resolve(w.Source)
		if !ok {
			continue // edit-time race: source pin no longer exists.
		}
		dst, ok := c.Resolve(w.Target)
		if !ok {
			continue // edit-time race: target pin no longer exists.
		}
		wasConnected := dst.SourceCount() > 0
		src.AddTarget(dst)
		dst.AddSource()
		if !wasConnected && w.Target.OwnerChipID != chip.HostChipID {
			if sub, ok := c.SubChip(w.Target.OwnerChipID); ok {
				sub.NoteConnectionAdded(true)
			}
		}
	}

	return c, nil
}

// allocateMemory sizes c's internal memory by type and seeds it: dev-RAM
// cells are randomized (the trailing clock-edge latch word is left at
// zero), everything else copies supplied persistent data verbatim if
// present, the lengths required to match exactly.
func (b *Builder) allocateMemory(c *chip.Chip, desc chip.Description, internalData []uint32) error {
	size := chip.MemorySize(desc.Type)
	if size == 0 {
		return nil
	}
	mem := make([]uint32, size)
	switch desc.Type {
	case chip.DevRAM8:
		for i := 0; i < size-1; i++ {
			mem[i] = b.RandWord()
		}
	default:
		data := internalData
		if data == nil {
			data = desc.PersistentData
		}
		if data != nil {
			if len(data) != size {
				return &ConstructionError{ChipID: c.ID, Reason: fmt.Sprintf(
					"internal data length %d does not match required size %d", len(data), size)}
			}
			copy(mem, data)
		}
	}
	c.Memory = mem
	return nil
}
