package scheduler

import (
	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/primitive"
)

// Context bundles the collaborators a strategy needs each frame: the
// primitive evaluator table, the collaborator contracts (keyboard/audio/
// clock-step template — Frame is overwritten per call), the shared PRNG,
// and the metrics sink.
type Context struct {
	Registry       *primitive.Registry
	Collab         primitive.Collaborators
	RNG            *RNG
	Metrics        *Metrics
	MetricsEnabled bool
}

// step drives one primitive (non-Custom) chip through its full frame:
// deliver its already-written inputs into itself, evaluate if it has a
// native evaluator, then drive its new outputs onward. Custom chips are
// never passed here directly by a correctly written strategy; the guard
// against evaluating them lives in primitive.Eval itself.
func step(c *chip.Chip, frame uint64, ctx *Context) {
	c.PropagateInputs(frame)
	if c.Type != chip.Custom {
		ctx.Collab.Frame = frame
		primitive.Eval(ctx.Registry, c, ctx.Collab)
		if ctx.MetricsEnabled {
			ctx.Metrics.PrimitiveEvals++
		}
	}
	c.PropagateOutputs(frame)
}

// propagateInputsRecursive pushes already-ingested values down through the
// Custom-container hierarchy: a container's own input pins fan out
// directly to its sub-chips' pins (installed once at build time), but each
// hop still needs an explicit Propagate call, so nested containers require
// walking down one level at a time.
func propagateInputsRecursive(c *chip.Chip, frame uint64) {
	c.PropagateInputs(frame)
	for _, s := range c.SubChips {
		if s.Type == chip.Custom {
			propagateInputsRecursive(s, frame)
		}
	}
}

// propagateOutputsRecursivePostOrder is propagateInputsRecursive's mirror
// for the outbound direction: a container's own output pin only reflects
// its sub-chips' latest values once something explicitly propagates it, so
// containers are visited innermost-first, after every primitive inside
// them has already stepped.
func propagateOutputsRecursivePostOrder(c *chip.Chip, frame uint64) {
	for _, s := range c.SubChips {
		if s.Type == chip.Custom {
			propagateOutputsRecursivePostOrder(s, frame)
		}
	}
	c.PropagateOutputs(frame)
}
