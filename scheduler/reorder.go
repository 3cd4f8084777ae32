package scheduler

import "github.com/gatesim/core/chip"

// reorderStrategy is the iterative, stochastic scheduling strategy: each
// frame it repeatedly picks a ready sub-chip (or, if none are ready, an
// arbitrary non-bus-origin one) to step next, reshuffling its parent's
// sub-chip slice in place as it goes. A full reorder-step pass runs once,
// at construction and after every structural edit; every other frame runs
// the cheaper fixed-order step pass, with an occasional randomized swap of
// adjacent not-yet-ready pairs to keep discovering new interleavings.
type reorderStrategy struct {
	needsOrderPass bool
}

func newReorderStrategy() *reorderStrategy {
	return &reorderStrategy{needsOrderPass: true}
}

// Invalidate forces the next frame to run a full reorder-step pass, used
// after the modification queue applies any structural edit.
func (s *reorderStrategy) Invalidate() {
	s.needsOrderPass = true
}

// Frame drives one frame under the Reorder strategy. A root that is
// itself a primitive (no sub-chips to reorder — e.g. a bare single-gate
// circuit) is stepped directly rather than recursed into.
func (s *reorderStrategy) Frame(root *chip.Chip, frame uint64, ctx *Context) {
	if root.Type != chip.Custom {
		step(root, frame, ctx)
		return
	}
	if s.needsOrderPass {
		reorderStep(root, frame, ctx)
		s.needsOrderPass = false
		return
	}
	fixedOrderPass(root, frame, ctx)
	if dynamicReorderThisFrame(frame) {
		applyDynamicSwapHeuristic(root, frame, ctx.RNG)
	}
}

// dynamicReorderThisFrame reports whether frame is one of the periodic
// frames (every 100th) that gets the dynamic-reorder swap heuristic
// layered on top of an otherwise ordinary step pass.
func dynamicReorderThisFrame(frame uint64) bool {
	return frame%100 == 0
}

// reorderStep is the full iterative pass: deliver root's own inputs, then
// repeatedly pull a ready sub-chip (falling back to a random non-bus-origin
// one when none is ready) and step or recurse into it, swapping the chosen
// entry to the back of the still-unprocessed window each time so every
// sub-chip runs exactly once this pass. Finally drive root's own outputs.
func reorderStep(c *chip.Chip, frame uint64, ctx *Context) {
	c.PropagateInputs(frame)

	subs := c.SubChips
	n := len(subs)
	for n > 0 {
		k := -1
		for i := 0; i < n; i++ {
			if subs[i].IsReady(frame) {
				k = i
				break
			}
		}
		if k == -1 {
			k = ctx.RNG.Intn(n)
			if anyNonBusOrigin(subs[:n]) {
				for subs[k].Type.IsBusOrigin() {
					k = (k + 1) % n
				}
			}
		}

		if subs[k].Type == chip.Custom {
			reorderStep(subs[k], frame, ctx)
		} else {
			step(subs[k], frame, ctx)
		}

		subs[k], subs[n-1] = subs[n-1], subs[k]
		n--
	}

	c.PropagateOutputs(frame)
}

// fixedOrderPass is the cheap pass used on every frame that doesn't run a
// full reorder-step: it replays the sub-chip order the last reorder-step
// pass (or dynamic swap heuristic) settled on, visiting each sub exactly
// once with no readiness search and no reshuffling of its own.
func fixedOrderPass(c *chip.Chip, frame uint64, ctx *Context) {
	c.PropagateInputs(frame)
	for _, sub := range c.SubChips {
		if sub.Type == chip.Custom {
			fixedOrderPass(sub, frame, ctx)
		} else {
			step(sub, frame, ctx)
		}
	}
	c.PropagateOutputs(frame)
}

func anyNonBusOrigin(subs []*chip.Chip) bool {
	for _, s := range subs {
		if !s.Type.IsBusOrigin() {
			return true
		}
	}
	return false
}

// applyDynamicSwapHeuristic scans each level of the tree right to left,
// and for every adjacent pair with probability one half swaps them when
// the later entry isn't ready yet and the earlier one isn't a bus-origin
// chip — introducing variety into which sub-chip a tied reorder-step race
// favors, without ever reordering a bus-origin chip out of its earliest
// reachable slot.
func applyDynamicSwapHeuristic(c *chip.Chip, frame uint64, rng *RNG) {
	subs := c.SubChips
	for i := len(subs) - 1; i >= 1; i-- {
		if !rng.Bool() {
			continue
		}
		if subs[i].IsReady(frame) {
			continue
		}
		if subs[i-1].Type.IsBusOrigin() {
			continue
		}
		subs[i-1], subs[i] = subs[i], subs[i-1]
	}
	for _, s := range subs {
		applyDynamicSwapHeuristic(s, frame, rng)
	}
}
