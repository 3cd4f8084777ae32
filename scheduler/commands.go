package scheduler

import (
	"sync"

	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/pin"
)

// CommandKind enumerates the six modification-pipeline operations: add or
// remove a pin, a sub-chip, or a connection between two pins.
type CommandKind int

const (
	AddPin CommandKind = iota
	RemovePin
	AddSubChip
	RemoveSubChip
	AddConnection
	RemoveConnection
)

// Command is one queued structural edit. ChipPath names the sub-chip path
// from the root down to the chip the edit applies to (empty means the
// root itself); the remaining fields are interpreted per Kind.
type Command struct {
	Kind     CommandKind
	ChipPath []string

	PinID    string       // AddPin, RemovePin
	Dir      pin.Direction // AddPin
	BitWidth int           // AddPin

	SubChip   *chip.Chip // AddSubChip: pre-built by the caller (e.g. via builder.Build)
	SubChipID string     // RemoveSubChip

	Source chip.PinAddress // AddConnection, RemoveConnection
	Target chip.PinAddress
}

// Queue is a thread-safe multi-producer, single-consumer command queue:
// any number of goroutines may Submit concurrently, while only the
// scheduler's own frame loop calls Drain, once per frame.
type Queue struct {
	mu       sync.Mutex
	commands []Command
}

// NewQueue returns an empty command queue.
func NewQueue() *Queue { return &Queue{} }

// Submit appends cmd. Safe for concurrent use.
func (q *Queue) Submit(cmd Command) {
	q.mu.Lock()
	q.commands = append(q.commands, cmd)
	q.mu.Unlock()
}

// Len reports the number of commands currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.commands)
}

// Drain removes and returns every queued command, leaving the queue empty.
func (q *Queue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	cmds := q.commands
	q.commands = nil
	return cmds
}

// resolveChipPath walks path (a sequence of sub-chip ids) from root,
// returning the chip at the end of it, or false if any hop is missing —
// an edit race the caller should treat as a silent no-op.
func resolveChipPath(root *chip.Chip, path []string) (*chip.Chip, bool) {
	c := root
	for _, id := range path {
		sub, ok := c.SubChip(id)
		if !ok {
			return nil, false
		}
		c = sub
	}
	return c, true
}

// applyCommand applies one queued edit against root, silently dropping it
// if any referenced chip or pin no longer exists.
func applyCommand(root *chip.Chip, cmd Command, randBool pin.RandBool) {
	target, ok := resolveChipPath(root, cmd.ChipPath)
	if !ok {
		return
	}
	switch cmd.Kind {
	case AddPin:
		target.AddPin(cmd.PinID, cmd.Dir, cmd.BitWidth, randBool)

	case RemovePin:
		removed, ok := target.Pin(cmd.PinID)
		if !ok {
			return
		}
		target.RemovePin(cmd.PinID)
		removeFromEveryFanout(root, removed)

	case AddSubChip:
		if cmd.SubChip != nil {
			target.AddSubChip(cmd.SubChip)
		}

	case RemoveSubChip:
		sub, ok := target.SubChip(cmd.SubChipID)
		if !ok {
			return
		}
		removeSubChipFromEveryFanout(root, sub)
		target.RemoveSubChip(cmd.SubChipID)

	case AddConnection:
		src, ok1 := target.Resolve(cmd.Source)
		dst, ok2 := target.Resolve(cmd.Target)
		if !ok1 || !ok2 {
			return
		}
		wasConnected := dst.SourceCount() > 0
		src.AddTarget(dst)
		dst.AddSource()
		if !wasConnected && cmd.Target.OwnerChipID != chip.HostChipID {
			if sub, ok := target.SubChip(cmd.Target.OwnerChipID); ok {
				sub.NoteConnectionAdded(true)
			}
		}

	case RemoveConnection:
		src, ok1 := target.Resolve(cmd.Source)
		dst, ok2 := target.Resolve(cmd.Target)
		if !ok1 || !ok2 {
			return
		}
		wasConnected := dst.SourceCount() > 0
		src.RemoveTarget(dst)
		dst.RemoveSource()
		nowConnected := dst.SourceCount() > 0
		if wasConnected && !nowConnected && cmd.Target.OwnerChipID != chip.HostChipID {
			if sub, ok := target.SubChip(cmd.Target.OwnerChipID); ok {
				sub.NoteConnectionRemoved(true)
			}
		}
	}
}

// removeFromEveryFanout walks the whole tree rooted at root, removing
// removed from every pin's fan-out list. A removed pin may still be
// referenced as a wire target anywhere in the tree, not just within the
// chip it belonged to.
func removeFromEveryFanout(root *chip.Chip, removed *pin.Pin) {
	forEachPin(root, func(p *pin.Pin) {
		p.RemoveTarget(removed)
	})
}

// removeSubChipFromEveryFanout removes every pin owned by sub (and its own
// descendants) from every fan-out list tree-wide, since those pins are
// about to cease to exist along with sub itself.
func removeSubChipFromEveryFanout(root *chip.Chip, sub *chip.Chip) {
	var doomed []*pin.Pin
	forEachPin(sub, func(p *pin.Pin) { doomed = append(doomed, p) })
	forEachPin(root, func(p *pin.Pin) {
		for _, d := range doomed {
			p.RemoveTarget(d)
		}
	})
}

func forEachPin(c *chip.Chip, fn func(*pin.Pin)) {
	for _, p := range c.Inputs {
		fn(p)
	}
	for _, p := range c.Outputs {
		fn(p)
	}
	for _, s := range c.SubChips {
		forEachPin(s, fn)
	}
}
