package dandelion

import (
	"math/rand/v2"
	"slices"
)

// ReleaseEventType identifies a release lifecycle event.
type ReleaseEventType uint8

const (
	EventSeedsDetached    ReleaseEventType = iota // one or more seeds left the head
	EventRestoreStarted                           // regrowth began
	EventRestoreCompleted                         // every seed is attached again
)

// String returns a short name for the event type.
func (t ReleaseEventType) String() string {
	switch t {
	case EventSeedsDetached:
		return "seeds-detached"
	case EventRestoreStarted:
		return "restore-started"
	case EventRestoreCompleted:
		return "restore-completed"
	default:
		return "unknown"
	}
}

// ReleaseEvent describes a change in the release anchors.
type ReleaseEvent struct {
	Type ReleaseEventType
	Time float64
	// SeedIDs lists the seeds that detached. Only set for EventSeedsDetached.
	SeedIDs []int
	// Detached is the number of detached seeds after the event.
	Detached int
}

// EventSink receives release events. Implementations must not call back into
// the controller.
type EventSink interface {
	EmitEvent(event ReleaseEvent)
}

// Release pacing while the user keeps blowing.
const (
	ReleaseBatchSize = 2
	ReleaseInterval  = 0.14

	// maxCatchUpBatches bounds the batches released by one Update after a
	// long stall.
	maxCatchUpBatches = 8
)

// ReleaseController owns the two host anchors: which seeds detached when,
// and when regrowth started. It is driven purely by the timestamps passed to
// its methods and never reads a clock.
type ReleaseController struct {
	order    []int
	next     int
	detached map[int]float64

	detaching bool
	lastBatch float64

	restoring       bool
	restoreStart    float64
	restoreDuration float64

	rng   *rand.Rand
	sink  EventSink
	debug bool
}

// NewReleaseController creates a controller for seedCount seeds. The release
// order is a shuffle drawn from shuffleSeed.
func NewReleaseController(seedCount int, shuffleSeed uint64) *ReleaseController {
	c := &ReleaseController{
		detached: make(map[int]float64),
		rng:      newSeededRand(shuffleSeed),
	}
	c.Resize(seedCount)
	return c
}

// SetEventSink sets the optional event receiver.
func (c *ReleaseController) SetEventSink(sink EventSink) {
	c.sink = sink
}

// SetDebugMode enables logging of release transitions.
func (c *ReleaseController) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// Resize resets the controller for a new seed count, attaching every seed.
func (c *ReleaseController) Resize(seedCount int) {
	seedCount = max(seedCount, MinSeedCount)
	c.order = c.order[:0]
	for i := 0; i < seedCount; i++ {
		c.order = append(c.order, i)
	}
	c.reset()
}

// reset attaches every seed and draws a new release order.
func (c *ReleaseController) reset() {
	clear(c.detached)
	c.next = 0
	c.detaching = false
	c.restoring = false
	c.rng.Shuffle(len(c.order), func(i, j int) {
		c.order[i], c.order[j] = c.order[j], c.order[i]
	})
}

// SeedCount returns the number of seeds managed.
func (c *ReleaseController) SeedCount() int { return len(c.order) }

// DetachedCount returns how many seeds are currently detached.
func (c *ReleaseController) DetachedCount() int { return len(c.detached) }

// Detaching reports whether seeds are being released over time.
func (c *ReleaseController) Detaching() bool { return c.detaching }

// Restoring reports whether regrowth is running.
func (c *ReleaseController) Restoring() bool { return c.restoring }

// Anchors returns the current anchors. The map is shared with the controller
// and must be treated as read-only.
func (c *ReleaseController) Anchors() Anchors {
	return Anchors{
		DetachedSeedTimes: c.detached,
		RestoreStart:      c.restoreStart,
		Restoring:         c.restoring,
	}
}

// StartDetaching begins releasing ReleaseBatchSize seeds every
// ReleaseInterval, the first batch at now. It is ignored while restoring.
func (c *ReleaseController) StartDetaching(now float64) {
	if c.restoring || c.detaching || c.next >= len(c.order) {
		return
	}
	c.detaching = true
	c.detachBatch(now)
	c.lastBatch = now
}

// StopDetaching stops the timed release. Seeds already in flight continue.
func (c *ReleaseController) StopDetaching() {
	c.detaching = false
}

// DetachAll releases every remaining seed at now.
func (c *ReleaseController) DetachAll(now float64) {
	if c.restoring {
		return
	}
	c.detaching = false
	c.detachN(now, len(c.order)-c.next)
}

// BeginRestore starts regrowing every detached seed. It reports whether a
// restore started: nothing happens when no seed is detached or a restore is
// already running.
func (c *ReleaseController) BeginRestore(now, duration float64) bool {
	if c.restoring || len(c.detached) == 0 {
		return false
	}
	c.detaching = false
	c.restoring = true
	c.restoreStart = now
	c.restoreDuration = max(0, duration)
	if c.debug {
		logger.Printf("release: restore started at %.2f over %.2fs (%d seeds)", now, duration, len(c.detached))
	}
	c.emit(ReleaseEvent{Type: EventRestoreStarted, Time: now, Detached: len(c.detached)})
	return true
}

// Update advances timed release and completes a finished restore.
func (c *ReleaseController) Update(now float64) {
	if c.restoring {
		if now-c.restoreStart >= c.restoreDuration {
			c.reset()
			if c.debug {
				logger.Printf("release: restore completed at %.2f", now)
			}
			c.emit(ReleaseEvent{Type: EventRestoreCompleted, Time: now})
		}
		return
	}
	if !c.detaching {
		return
	}
	for batches := 0; now-c.lastBatch >= ReleaseInterval && batches < maxCatchUpBatches; batches++ {
		c.lastBatch += ReleaseInterval
		c.detachBatch(c.lastBatch)
		if !c.detaching {
			return
		}
	}
	if now-c.lastBatch >= ReleaseInterval {
		c.lastBatch = now
	}
}

func (c *ReleaseController) detachBatch(at float64) {
	c.detachN(at, ReleaseBatchSize)
	if c.next >= len(c.order) {
		c.detaching = false
	}
}

// detachN releases up to n seeds in shuffled order, all at time at.
func (c *ReleaseController) detachN(at float64, n int) {
	end := min(c.next+n, len(c.order))
	if end <= c.next {
		return
	}
	ids := slices.Clone(c.order[c.next:end])
	for _, id := range ids {
		c.detached[id] = at
	}
	c.next = end
	if c.debug {
		logger.Printf("release: %d seeds detached at %.2f (%d/%d)", len(ids), at, len(c.detached), len(c.order))
	}
	c.emit(ReleaseEvent{Type: EventSeedsDetached, Time: at, SeedIDs: ids, Detached: len(c.detached)})
}

func (c *ReleaseController) emit(e ReleaseEvent) {
	if c.sink != nil {
		c.sink.EmitEvent(e)
	}
}
