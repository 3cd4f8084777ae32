package scheduler

// Metrics accumulates scheduler-wide counters. The scheduler updates
// them only while Config.MetricsEnabled is true; with it false every
// field stays at its zero value.
type Metrics struct {
	// FrameCount is the number of frames driven so far.
	FrameCount uint64
	// PrimitiveEvals counts every non-Custom chip evaluated, across both
	// strategies cumulatively (a scheduler only ever runs one strategy at
	// a time, so in practice this reflects that strategy alone).
	PrimitiveEvals uint64
	// QueueDepth is a snapshot of the modification queue's length taken at
	// the start of the most recently driven frame, before it was drained.
	QueueDepth int
}
