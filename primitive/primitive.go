// Package primitive implements one pure, stateless evaluator function
// per primitive chip type, consuming input pin states and (for
// clocked/memory types) internal memory, and producing output pin
// states.
//
// Each evaluator follows a one-method-per-opcode style: one function per
// gate or IO primitive, mirroring how a one-instruction-per-function CPU
// core is laid out. Edge detection for clocked types compares the
// current clock-pin value against a latch stored in the chip's own
// internal memory.
package primitive

import (
	"fmt"

	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/pinstate"
)

// Collaborators is the set of external collaborator contracts an
// evaluator may need: the keyboard's held-key set, the
// audio registration callback, and a frame/step context. Key, Buzzer and
// Clock read its collaborator fields; every evaluator passes Frame on to
// its output pin writes.
type Collaborators struct {
	// KeyHeld reports whether the given key is currently held, for the
	// Key primitive.
	KeyHeld func(key rune) bool
	// RegisterNote is invoked by the Buzzer primitive with its current
	// (frequency-index, volume-index).
	RegisterNote func(freqIndex, volumeIndex int)
	// StepsPerClockTransition gates the Clock primitive's oscillation; 0
	// disables it.
	StepsPerClockTransition int
	// Frame is the current simulation frame counter, used by Clock.
	Frame uint64
}

// Evaluator is the signature every primitive's native evaluation
// function implements.
type Evaluator func(c *chip.Chip, collab Collaborators)

// Registry maps a chip.Type to its Evaluator. Every non-Custom type
// declared in the chip package must have an entry or registry
// construction panics: a missing evaluator is a programmer error and
// should fail loudly rather than silently no-op a chip type.
type Registry struct {
	evaluators map[chip.Type]Evaluator
}

// NewRegistry builds the registry of built-in evaluators and verifies
// completeness against every declared type except chip.Custom (a
// transparent container, never evaluated as a unit) and chip.Unknown
// (never a valid instance type).
func NewRegistry() *Registry {
	r := &Registry{evaluators: map[chip.Type]Evaluator{
		chip.NAND:            evalNAND,
		chip.TriStateBuffer:  evalTriStateBuffer,
		chip.Clock:           evalClock,
		chip.Pulse:           evalPulse,
		chip.Key:             evalKey,
		chip.BusOrigin1:      evalBusCopy,
		chip.BusOrigin4:      evalBusCopy,
		chip.BusOrigin8:      evalBusCopy,
		chip.BusTerminus1:    evalBusCopy,
		chip.BusTerminus4:    evalBusCopy,
		chip.BusTerminus8:    evalBusCopy,
		chip.Split4to1:       evalSplit4to1,
		chip.Split8to4:       evalSplit8to4,
		chip.Split8to1:       evalSplit8to1,
		chip.Merge1to4:       evalMerge1to4,
		chip.Merge1to8:       evalMerge1to8,
		chip.Merge4to8:       evalMerge4to8,
		chip.ROM256x16:       evalROM256x16,
		chip.DevRAM8:         evalDevRAM8,
		chip.DisplayRGB:      evalDisplayRGB,
		chip.DisplayDot:      evalDisplayDot,
		chip.Display7Segment: evalNoCompute,
		chip.LED:             evalNoCompute,
		chip.Buzzer:          evalBuzzer,
	}}
	required := []chip.Type{
		chip.NAND, chip.TriStateBuffer, chip.Clock, chip.Pulse, chip.Key,
		chip.BusOrigin1, chip.BusOrigin4, chip.BusOrigin8,
		chip.BusTerminus1, chip.BusTerminus4, chip.BusTerminus8,
		chip.Split4to1, chip.Split8to4, chip.Split8to1,
		chip.Merge1to4, chip.Merge1to8, chip.Merge4to8,
		chip.ROM256x16, chip.DevRAM8,
		chip.DisplayRGB, chip.DisplayDot, chip.Display7Segment,
		chip.LED, chip.Buzzer,
	}
	for _, t := range required {
		if _, ok := r.evaluators[t]; !ok {
			panic(fmt.Sprintf("primitive: no evaluator registered for type %s", t))
		}
	}
	return r
}

// Lookup returns the evaluator for t. The bool is false for chip.Custom
// (never evaluated directly) and for any genuinely unregistered type, which
// Eval treats as a programmer error.
func (r *Registry) Lookup(t chip.Type) (Evaluator, bool) {
	e, ok := r.evaluators[t]
	return e, ok
}

// Eval runs the registered evaluator for c.Type. It panics for an
// unregistered, non-Custom type; Custom chips are silently skipped
// since they carry no logic of their own and are never routed here by
// a correctly written scheduler, but guarding here keeps Eval safe to
// call unconditionally.
func Eval(r *Registry, c *chip.Chip, collab Collaborators) {
	if c.Type == chip.Custom {
		return
	}
	e, ok := r.Lookup(c.Type)
	if !ok {
		panic(fmt.Sprintf("primitive: no evaluator registered for type %s (chip %s)", c.Type, c.ID))
	}
	e(c, collab)
}

// writeOut is a tiny convenience shared by every evaluator below: write
// a packed state to the chip's nth output pin.
func writeOut(c *chip.Chip, idx int, frame uint64, s pinstate.State) {
	c.Outputs[idx].Write(frame, s)
}

func in(c *chip.Chip, idx int) pinstate.State { return c.Inputs[idx].State() }

func evalNoCompute(*chip.Chip, Collaborators) {}
