// Package sim is the standalone entry point wiring chiplib, builder,
// scheduler, audio, and keyboard into one construct-then-drive-frames
// surface: submit a chip.Description, get back a runnable Simulator.
package sim

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/gatesim/core/audio"
	"github.com/gatesim/core/builder"
	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/chiplib"
	"github.com/gatesim/core/keyboard"
	"github.com/gatesim/core/pin"
	"github.com/gatesim/core/pinstate"
	"github.com/gatesim/core/primitive"
	"github.com/gatesim/core/scheduler"
)

// Def describes the circuit and collaborators a Simulator should be
// built from. Library, Keys, and Audio default to a standard library, a
// fresh empty key set, and a 256 note ring buffer respectively when left
// nil/zero.
type Def struct {
	Description chip.Description
	Library     *chiplib.Library

	Strategy                scheduler.StrategyKind
	DeterministicSeed       *uint32
	MetricsEnabled          bool
	StepsPerClockTransition int

	Keys  *keyboard.Set
	Audio audio.Recorder
}

// Simulator is one constructed, runnable circuit.
type Simulator struct {
	Root      *chip.Chip
	Scheduler *scheduler.Scheduler
	Keys      *keyboard.Set
	Audio     audio.Recorder
}

// Init validates def, constructs the chip tree, and returns a ready-to-
// drive Simulator.
func Init(def *Def) (*Simulator, error) {
	lib := def.Library
	if lib == nil {
		lib = chiplib.Standard()
	}
	keys := def.Keys
	if keys == nil {
		keys = keyboard.NewSet()
	}
	recorder := def.Audio
	if recorder == nil {
		recorder = audio.NewRing(256)
	}

	sched := scheduler.New(scheduler.Config{
		Strategy:                def.Strategy,
		DeterministicSeed:       def.DeterministicSeed,
		MetricsEnabled:          def.MetricsEnabled,
		StepsPerClockTransition: def.StepsPerClockTransition,
		KeyHeld:                 keys.Held,
		RegisterNote:            recorder.RegisterNote,
	}, primitive.NewRegistry())

	b := builder.New(lib, sched.RandBool, func() uint32 { return rand.Uint32() })
	root, err := b.Build("root", def.Description)
	if err != nil {
		return nil, fmt.Errorf("constructing circuit %q: %w", def.Description.Name, err)
	}

	return &Simulator{Root: root, Scheduler: sched, Keys: keys, Audio: recorder}, nil
}

// Frame drives the circuit through exactly one simulation frame,
// ingesting the current value of every given input handle first.
func (s *Simulator) Frame(inputs ...*InputHandle) {
	ext := make([]scheduler.ExternalInput, len(inputs))
	for i, h := range inputs {
		ext[i] = h.external()
	}
	s.Scheduler.Frame(s.Root, ext)
}

// Submit enqueues a structural edit (add/remove pin, sub-chip, or
// connection) to be applied before the next Frame call. Safe to call
// from any goroutine.
func (s *Simulator) Submit(cmd scheduler.Command) { s.Scheduler.Submit(cmd) }

// Pin looks up one of the root chip's own pins by id.
func (s *Simulator) Pin(id string) (*pin.Pin, bool) { return s.Root.Pin(id) }

// Resolve looks up any pin reachable from the root chip's own scope.
func (s *Simulator) Resolve(addr chip.PinAddress) (*pin.Pin, bool) { return s.Root.Resolve(addr) }

// FrameCount reports how many frames have been driven so far.
func (s *Simulator) FrameCount() uint64 { return s.Scheduler.FrameCount() }

// InputHandle wraps one external input address with the atomic value a
// caller updates from any goroutine (an input-capture driver, a test, a
// CLI command) — the same role Joystick/Paddle played for the VCS's
// port-wrapped digital inputs, generalized to an arbitrary pin address.
type InputHandle struct {
	target chip.PinAddress
	value  atomic.Uint32
}

// NewInputHandle returns a handle addressing target, initially driving an
// all-zero (logic low) value.
func NewInputHandle(target chip.PinAddress) *InputHandle {
	return &InputHandle{target: target}
}

// Set stores a new packed state for the handle to drive on the next
// frame it's passed to.
func (h *InputHandle) Set(s pinstate.State) { h.value.Store(uint32(s)) }

// SetBool is a convenience for single bit inputs.
func (h *InputHandle) SetBool(high bool) { h.Set(pinstate.FromBool(high)) }

func (h *InputHandle) external() scheduler.ExternalInput {
	return scheduler.ExternalInput{Target: h.target, Value: &h.value}
}
