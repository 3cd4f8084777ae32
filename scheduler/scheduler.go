// Package scheduler drives a constructed chip tree frame by frame under
// one of two strategies, applies queued structural edits between frames,
// and owns the shared per-frame random source every pin's conflict
// resolver draws from.
package scheduler

import (
	"math/rand"
	"sync/atomic"

	"github.com/gatesim/core/chip"
	"github.com/gatesim/core/pinstate"
	"github.com/gatesim/core/primitive"
)

// StrategyKind selects which scheduling strategy a Scheduler runs.
type StrategyKind int

const (
	// Reorder is the default: iterative, stochastic, full reorder-step
	// passes after any structural edit, cheap fixed-order steps between
	// them, with a periodic dynamic swap heuristic.
	Reorder StrategyKind = iota
	// Topological flattens the tree once (recomputed after any
	// structural edit) and steps primitives in a fixed dependency order.
	Topological
)

// Config controls a Scheduler's behavior.
type Config struct {
	Strategy StrategyKind
	// DeterministicSeed, if non-nil, seeds the PRNG once at construction
	// and disables the default per-frame reseed, for reproducible tests.
	DeterministicSeed *uint32
	MetricsEnabled    bool
	// StepsPerClockTransition is copied into the Collaborators template
	// handed to every Clock evaluation; 0 disables clock oscillation.
	StepsPerClockTransition int
	KeyHeld                 func(key rune) bool
	RegisterNote            func(freqIndex, volumeIndex int)
}

// ExternalInput is one external handle feeding a value into the root
// chip's corresponding input pin every frame. Value is read via an atomic
// load each frame; a torn read (observing a write mid-update) is
// tolerated, since the next frame corrects it.
type ExternalInput struct {
	Target chip.PinAddress
	Value  *atomic.Uint32
}

// Scheduler drives a chip tree through successive frames.
type Scheduler struct {
	Config  Config
	RNG     *RNG
	Metrics Metrics

	registry *primitive.Registry
	collab   primitive.Collaborators
	queue    *Queue
	reorder  *reorderStrategy
	topo     *topologicalStrategy
	frame    uint64
}

// New constructs a Scheduler with the built-in evaluator registry,
// seeding its PRNG from cfg.DeterministicSeed if set, otherwise from the
// system random source.
func New(cfg Config, registry *primitive.Registry) *Scheduler {
	var rng *RNG
	if cfg.DeterministicSeed != nil {
		rng = NewRNG(*cfg.DeterministicSeed)
	} else {
		rng = NewRNG(uint32(rand.Int63()))
	}
	return &Scheduler{
		Config:   cfg,
		RNG:      rng,
		registry: registry,
		collab: primitive.Collaborators{
			KeyHeld:                 cfg.KeyHeld,
			RegisterNote:            cfg.RegisterNote,
			StepsPerClockTransition: cfg.StepsPerClockTransition,
		},
		queue:   NewQueue(),
		reorder: newReorderStrategy(),
		topo:    newTopologicalStrategy(),
	}
}

// RandBool is installed into every pin's conflict resolver at
// construction time (see builder.Builder), so the whole chip tree draws
// from this one Scheduler's stream.
func (s *Scheduler) RandBool() bool { return s.RNG.Bool() }

// FrameCount reports how many frames have been driven so far.
func (s *Scheduler) FrameCount() uint64 { return s.frame }

// Submit enqueues a structural edit to be applied before the next frame.
// Safe to call from any goroutine.
func (s *Scheduler) Submit(cmd Command) { s.queue.Submit(cmd) }

// Frame drives root through exactly one simulation frame: queued edits
// are applied first, external inputs are ingested, then the configured
// strategy steps the tree.
func (s *Scheduler) Frame(root *chip.Chip, inputs []ExternalInput) {
	if s.Config.MetricsEnabled {
		s.Metrics.QueueDepth = s.queue.Len()
	}
	s.applyQueuedCommands(root)

	if s.Config.DeterministicSeed == nil {
		s.RNG.ReseedFromSystem()
	}

	ingest(root, s.frame, inputs)

	ctx := &Context{
		Registry:       s.registry,
		Collab:         s.collab,
		RNG:            s.RNG,
		Metrics:        &s.Metrics,
		MetricsEnabled: s.Config.MetricsEnabled,
	}
	switch s.Config.Strategy {
	case Topological:
		s.topo.Frame(root, s.frame, ctx)
	default:
		s.reorder.Frame(root, s.frame, ctx)
	}

	if s.Config.MetricsEnabled {
		s.Metrics.FrameCount++
	}
	s.frame++
}

func (s *Scheduler) applyQueuedCommands(root *chip.Chip) {
	cmds := s.queue.Drain()
	if len(cmds) == 0 {
		return
	}
	randBool := s.RandBool
	for _, cmd := range cmds {
		applyCommand(root, cmd, randBool)
	}
	s.reorder.Invalidate()
	s.topo.Invalidate()
}

// ingest writes every external input's current value into its addressed
// root pin, silently skipping any address that no longer resolves.
func ingest(root *chip.Chip, frame uint64, inputs []ExternalInput) {
	for _, in := range inputs {
		p, ok := root.Resolve(in.Target)
		if !ok {
			continue
		}
		p.Write(frame, pinstate.State(in.Value.Load()))
	}
}
