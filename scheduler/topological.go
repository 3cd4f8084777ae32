package scheduler

import (
	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/pin"
)

// topologicalStrategy flattens the entire chip tree into a fixed-order
// list of primitives (walking through Custom containers transparently),
// sorted so that every primitive runs after everything it depends on.
// Members of a dependency cycle (feedback loops — SR latches, counters)
// can never be fully ordered and are appended at the end in discovery
// order, still stepped once each frame but interleaved per however many
// frames it takes their shared state to converge.
type topologicalStrategy struct {
	order []*chip.Chip
	dirty bool
}

func newTopologicalStrategy() *topologicalStrategy {
	return &topologicalStrategy{dirty: true}
}

// Invalidate forces the next frame to recompute the flattened order,
// used after the modification queue applies any structural edit.
func (s *topologicalStrategy) Invalidate() {
	s.dirty = true
}

// Frame drives one frame under the Topological strategy.
func (s *topologicalStrategy) Frame(root *chip.Chip, frame uint64, ctx *Context) {
	if s.dirty {
		s.order = flatten(root)
		s.dirty = false
	}
	propagateInputsRecursive(root, frame)
	for _, c := range s.order {
		step(c, frame, ctx)
	}
	propagateOutputsRecursivePostOrder(root, frame)
}

// flatten collects every primitive reachable from root, then Kahn's-
// algorithm sorts them by dependency: an edge p -> q means p's output
// reaches q's input, possibly by way of zero or more Custom containers'
// own pass-through pins.
func flatten(root *chip.Chip) []*chip.Chip {
	var primitives []*chip.Chip
	collectPrimitives(root, &primitives)

	owner := make(map[*pin.Pin]*chip.Chip)
	buildPinOwner(root, owner)

	indegree := make(map[*chip.Chip]int, len(primitives))
	adjacency := make(map[*chip.Chip][]*chip.Chip, len(primitives))
	for _, p := range primitives {
		indegree[p] = 0
	}
	for _, p := range primitives {
		for _, out := range p.Outputs {
			for _, q := range reachablePrimitives(out, owner) {
				adjacency[p] = append(adjacency[p], q)
				indegree[q]++
			}
		}
	}

	queue := make([]*chip.Chip, 0, len(primitives))
	for _, p := range primitives {
		if indegree[p] == 0 {
			queue = append(queue, p)
		}
	}
	remaining := make(map[*chip.Chip]int, len(primitives))
	for c, d := range indegree {
		remaining[c] = d
	}

	order := make([]*chip.Chip, 0, len(primitives))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, m := range adjacency[n] {
			remaining[m]--
			if remaining[m] == 0 {
				queue = append(queue, m)
			}
		}
	}

	if len(order) < len(primitives) {
		placed := make(map[*chip.Chip]bool, len(order))
		for _, c := range order {
			placed[c] = true
		}
		for _, p := range primitives {
			if !placed[p] {
				order = append(order, p)
			}
		}
	}
	return order
}

// collectPrimitives walks c transparently through Custom containers,
// appending every non-Custom chip it finds (at any depth) to out. A
// primitive's own SubChips is always empty, so it's a recursion leaf.
func collectPrimitives(c *chip.Chip, out *[]*chip.Chip) {
	if c.Type != chip.Custom {
		*out = append(*out, c)
		return
	}
	for _, s := range c.SubChips {
		collectPrimitives(s, out)
	}
}

// buildPinOwner maps every pin in the tree rooted at c back to its owning
// chip, so reachablePrimitives can tell a genuine primitive input apart
// from a Custom container's own pass-through pin.
func buildPinOwner(c *chip.Chip, owner map[*pin.Pin]*chip.Chip) {
	for _, p := range c.Inputs {
		owner[p] = c
	}
	for _, p := range c.Outputs {
		owner[p] = c
	}
	for _, s := range c.SubChips {
		buildPinOwner(s, owner)
	}
}

// reachablePrimitives traces forward from start through its fan-out
// graph, transparently following any hop that lands on a Custom
// container's own pin (it's a pass-through, not a real destination) and
// stopping at the first primitive chip it reaches on each branch.
func reachablePrimitives(start *pin.Pin, owner map[*pin.Pin]*chip.Chip) []*chip.Chip {
	var result []*chip.Chip
	seen := make(map[*pin.Pin]bool)
	var visit func(p *pin.Pin)
	visit = func(p *pin.Pin) {
		for _, t := range p.Fanout() {
			if seen[t] {
				continue
			}
			seen[t] = true
			o := owner[t]
			if o == nil {
				continue
			}
			if o.Type == chip.Custom {
				visit(t)
				continue
			}
			result = append(result, o)
		}
	}
	visit(start)
	return result
}
