// Package pin implements the Pin entity: a single- or multi-bit signal
// carrier owned by a chip, either an input (receives) or an output
// (drives), tracking fan-out, source counts, and the per-frame
// bookkeeping the conflict resolver needs.
//
// Pin intentionally has no dependency on the chip package. A pin's
// back-reference to its parent chip is expressed through the small
// ReadyNotifier interface rather than an import, the same way a 6532/TIA
// chip decouples from its console wiring through single-method
// io.PortIn1/io.PortOut1 interfaces instead of concrete types.
package pin

import "github.com/gatesim/core/pinstate"

// Direction distinguishes an input pin (receives from fan-out) from an
// output pin (drives fan-out).
type Direction int

const (
	// Input pins are driven by upstream sources and never propagate on
	// Write; they propagate only via Propagate(), driven externally by
	// the scheduler once ingestion completes.
	Input Direction = iota
	// Output pins propagate immediately on every value-changing Write.
	Output
)

// ReadyNotifier is implemented by a pin's parent chip so that Pin can
// invoke the owning chip's "ready" hook without importing the chip
// package. Called once, synchronously, from inside Receive.
type ReadyNotifier interface {
	InputPinReady(pinID string)
}

// Address identifies a source or destination pin for tracing:
// {owner-chip-id, pin-id}, with ChipID == "" reserved by callers to mean
// "the host chip itself"; Pin only ever stores the resolved strings it's
// given.
type Address struct {
	ChipID string
	PinID  string
}

// RandBool returns a uniformly random bool. The scheduler's PRNG
// implements this; pins never seed or own a PRNG themselves so every
// pin on a chip tree draws from the same per-frame stream.
type RandBool func() bool

// Pin is one runtime signal carrier.
type Pin struct {
	ID        string
	Dir       Direction
	ParentID  string
	notifier  ReadyNotifier
	bitWidth  int
	rand      RandBool
	state     pinstate.State
	fanout    []*Pin
	sourceCnt int // input-connection-count: how many upstream sources drive this pin.

	sourcesThisFrame int
	lastFrame        uint64
	frameValid       bool

	lastSource Address
}

// New constructs a pin of the given direction and bit width (1, 4, or 8).
// notifier may be nil for output pins (they never need the ready hook).
func New(id string, dir Direction, bitWidth int, parentID string, notifier ReadyNotifier) *Pin {
	return &Pin{
		ID:       id,
		Dir:      dir,
		ParentID: parentID,
		notifier: notifier,
		bitWidth: bitWidth,
		state:    pinstate.SetAllDisconnected(0),
	}
}

// SetRandSource installs the shared per-frame random-bool source used by
// the multi-source conflict resolver. Installed once by the
// builder at construction time from the owning Simulator's scheduler.
func (p *Pin) SetRandSource(r RandBool) { p.rand = r }

// BitWidth reports the pin's configured width (1, 4, or 8).
func (p *Pin) BitWidth() int { return p.bitWidth }

// State returns the pin's current packed state.
func (p *Pin) State() pinstate.State { return p.state }

// SourceCount returns the number of upstream sources wired to this pin
// (0 means the pin is always considered ready).
func (p *Pin) SourceCount() int { return p.sourceCnt }

// AddSource increments the input-connection-count. Called by the builder
// (and by AddConnection in the modification pipeline) when a new wire
// targets this pin.
func (p *Pin) AddSource() { p.sourceCnt++ }

// RemoveSource decrements the input-connection-count, clamped at 0. Used
// when a wire targeting this pin is removed.
func (p *Pin) RemoveSource() {
	if p.sourceCnt > 0 {
		p.sourceCnt--
	}
}

// Fanout returns the pin's current downstream targets. The returned slice
// is shared; callers must not mutate it.
func (p *Pin) Fanout() []*Pin { return p.fanout }

// AddTarget appends a downstream pin to this (output) pin's fan-out list.
func (p *Pin) AddTarget(target *Pin) {
	p.fanout = append(p.fanout, target)
}

// RemoveTarget removes every occurrence of target from the fan-out list.
// A no-op if target isn't present, so a double-remove during a racy edit
// batch is harmless.
func (p *Pin) RemoveTarget(target *Pin) {
	out := p.fanout[:0]
	for _, f := range p.fanout {
		if f != target {
			out = append(out, f)
		}
	}
	p.fanout = out
}

// LastSource returns the address of the most recent pin (and its parent
// chip) to drive this pin, for tracing/rendering.
func (p *Pin) LastSource() Address { return p.lastSource }

// IsReady reports whether this input pin has received all of its
// declared sources for the current frame. A pin with no sources is
// always ready.
func (p *Pin) IsReady(frame uint64) bool {
	if p.sourceCnt == 0 {
		return true
	}
	if !p.frameValid || p.lastFrame != frame {
		return false
	}
	return p.sourcesThisFrame >= p.sourceCnt
}

// Write assigns a new packed state. If the value changed and this is an
// output pin, Write immediately calls Propagate. Input pins never
// propagate from Write; reception into an input pin happens only via
// Receive, driven by an upstream output's Propagate.
func (p *Pin) Write(frame uint64, newState pinstate.State) {
	changed := p.state != newState
	p.state = newState
	if changed && p.Dir == Output {
		p.Propagate(frame)
	}
}

// Propagate delivers this pin's current state to every fan-out target's
// Receive, tagged with the given simulation frame index.
func (p *Pin) Propagate(frame uint64) {
	from := Address{ChipID: p.ParentID, PinID: p.ID}
	for _, target := range p.fanout {
		target.Receive(frame, p.state, from)
	}
}

// Receive delivers one frame's worth of driven state from an upstream
// source into this (input) pin, resolving conflicts when more than one
// source drives it in the same frame.
func (p *Pin) Receive(frame uint64, src pinstate.State, from Address) {
	if !p.frameValid || p.lastFrame != frame {
		p.sourcesThisFrame = 0
		p.lastFrame = frame
		p.frameValid = true
	}

	var next pinstate.State
	if p.sourcesThisFrame == 0 {
		next = src
	} else {
		or := p.state | src
		and := p.state & src
		pick := and
		if p.rand != nil && p.rand() {
			pick = or
		}
		orTristate := pinstate.TristateFlags(or)
		// Tri-stated bits on at least one side can never block a driven
		// peer: force those bits' values from OR's value bits.
		valueBits := (pinstate.BitStates(pick) &^ orTristate) | (or & orTristate)
		tristateBits := pinstate.TristateFlags(and)
		next = valueBits | (tristateBits << 16)
	}

	changed := next != p.state
	p.state = next
	p.sourcesThisFrame++
	if changed {
		p.lastSource = from
	}

	if p.sourcesThisFrame == p.sourceCnt && p.Dir == Input && p.notifier != nil {
		p.notifier.InputPinReady(p.ID)
	}
}

// ResetFrame clears the per-frame source-reception counters without
// touching state, used when a chip's inputs-ready bookkeeping needs to
// be cleared ahead of the next frame's ingestion.
func (p *Pin) ResetFrame() {
	p.sourcesThisFrame = 0
	p.frameValid = false
}
