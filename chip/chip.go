package chip

import (
	"fmt"

	"github.com/gatesim/core/pin"
)

// MemorySize returns the number of 32 bit words a chip of type t owns
// internally, per the internal memory sizing table for each type.
// ROM256x16 is sized here too (256 words) even though its contents are
// supplied externally rather than randomized, since the table governs
// allocation size for every type uniformly.
func MemorySize(t Type) int {
	switch t {
	case DisplayRGB, DisplayDot:
		return 513 // 256 current buffer + 256 back buffer + 1 clock-edge latch.
	case DevRAM8:
		return 257 // 256 cells + 1 clock-edge latch.
	case ROM256x16:
		return 256
	case Pulse:
		return 3 // duration, ticks-remaining, previous-input-latch.
	default:
		return 0
	}
}

// Chip is one runtime instance in the circuit tree.
type Chip struct {
	ID       string
	Type     Type
	Label    string
	Inputs   []*pin.Pin
	Outputs  []*pin.Pin
	SubChips []*Chip
	Memory   []uint32

	connectedInputs int
	readyThisFrame  int
}

// New constructs an empty chip shell of the given type and id; pins, sub-
// chips, and memory are added by the Builder as it expands a Description.
func New(id string, t Type) *Chip {
	return &Chip{ID: id, Type: t}
}

// InputPinReady implements pin.ReadyNotifier. It's a bookkeeping hook
// only — IsReady always recomputes from the pins directly, so a missed
// or duplicated call here can never desynchronize simulation state,
// only the readyThisFrame introspection counter.
func (c *Chip) InputPinReady(_ string) {
	c.readyThisFrame++
}

// ConnectedInputCount returns the number of input pins that have at least
// one upstream source wired to them.
func (c *Chip) ConnectedInputCount() int { return c.connectedInputs }

// NoteConnectionAdded must be called by the Builder/modification pipeline
// whenever a wire newly targets one of this chip's input pins, after the
// target pin's own AddSource has already run. It only changes this chip's
// connected-input bookkeeping when the just-added source was the first
// one for that pin (the target's source count transitioned from 0 to 1).
func (c *Chip) NoteConnectionAdded(becameConnected bool) {
	if becameConnected {
		c.connectedInputs++
	}
}

// NoteConnectionRemoved is the inverse of NoteConnectionAdded.
func (c *Chip) NoteConnectionRemoved(becameDisconnected bool) {
	if becameDisconnected && c.connectedInputs > 0 {
		c.connectedInputs--
	}
}

// AddPin appends a new pin of the given direction/width to the chip,
// returning it. Used by the Builder and by the editor's add-pin command.
func (c *Chip) AddPin(id string, dir pin.Direction, bitWidth int, rand pin.RandBool) *pin.Pin {
	p := pin.New(id, dir, bitWidth, c.ID, c)
	p.SetRandSource(rand)
	if dir == pin.Input {
		c.Inputs = append(c.Inputs, p)
	} else {
		c.Outputs = append(c.Outputs, p)
	}
	return p
}

// RemovePin removes the pin with the given id (searching both directions)
// and fixes up connected-input bookkeeping if it had upstream sources.
// Every upstream output pin that still references the removed pin in its
// fan-out list must be cleaned up by the caller (the modification
// pipeline walks the whole tree to do this; see the scheduler package's
// removeFromEveryFanout).
func (c *Chip) RemovePin(id string) {
	c.Inputs, _ = removePin(c.Inputs, id, func(p *pin.Pin) {
		if p.SourceCount() > 0 {
			c.NoteConnectionRemoved(true)
		}
	})
	c.Outputs, _ = removePin(c.Outputs, id, nil)
}

func removePin(pins []*pin.Pin, id string, onRemove func(*pin.Pin)) ([]*pin.Pin, bool) {
	out := pins[:0]
	removed := false
	for _, p := range pins {
		if p.ID == id {
			removed = true
			if onRemove != nil {
				onRemove(p)
			}
			continue
		}
		out = append(out, p)
	}
	return out, removed
}

// AddSubChip appends a constructed sub-chip.
func (c *Chip) AddSubChip(sub *Chip) {
	c.SubChips = append(c.SubChips, sub)
}

// RemoveSubChip removes the sub-chip with the given id, if present.
func (c *Chip) RemoveSubChip(id string) {
	out := c.SubChips[:0]
	for _, s := range c.SubChips {
		if s.ID != id {
			out = append(out, s)
		}
	}
	c.SubChips = out
}

// Pin looks up one of this chip's own pins (either direction) by id.
func (c *Chip) Pin(id string) (*pin.Pin, bool) {
	for _, p := range c.Inputs {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range c.Outputs {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// SubChip looks up a direct sub-chip by id.
func (c *Chip) SubChip(id string) (*Chip, bool) {
	for _, s := range c.SubChips {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Resolve looks up the pin named by addr in this chip's own scope:
// addr.OwnerChipID == HostChipID resolves against c's own pins, otherwise
// against the named sub-chip's pins. Missing chips/pins return false
// rather than an error — callers decide whether that's a silent no-op
// (the modification pipeline, tolerating an edit race) or a not-found
// signal (an observer query).
func (c *Chip) Resolve(addr PinAddress) (*pin.Pin, bool) {
	if addr.OwnerChipID == HostChipID {
		return c.Pin(addr.PinID)
	}
	sub, ok := c.SubChip(addr.OwnerChipID)
	if !ok {
		return nil, false
	}
	return sub.Pin(addr.PinID)
}

// PropagateInputs invokes Propagate on every input pin, driving values
// already written onto them (e.g. by the scheduler's ingestion step, or
// by an enclosing chip's own evaluation) into this chip's internal
// network.
func (c *Chip) PropagateInputs(frame uint64) {
	for _, p := range c.Inputs {
		p.Propagate(frame)
	}
}

// PropagateOutputs invokes Propagate on every output pin and clears the
// chip's inputs-ready bookkeeping ahead of the next frame.
func (c *Chip) PropagateOutputs(frame uint64) {
	for _, p := range c.Outputs {
		p.Propagate(frame)
	}
	c.readyThisFrame = 0
	for _, p := range c.Inputs {
		p.ResetFrame()
	}
}

// IsReady reports whether every connected input pin has received all of
// its declared sources for the given frame.
func (c *Chip) IsReady(frame uint64) bool {
	for _, p := range c.Inputs {
		if !p.IsReady(frame) {
			return false
		}
	}
	return true
}

// String supports %v/%s formatting in logs and one-line diagnostics.
func (c *Chip) String() string {
	return fmt.Sprintf("Chip{ID:%s Type:%s Inputs:%d Outputs:%d SubChips:%d}",
		c.ID, c.Type, len(c.Inputs), len(c.Outputs), len(c.SubChips))
}
