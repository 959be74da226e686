package dandelion

import (
	"reflect"
	"slices"
	"strings"
	"testing"
)

// recordingSink collects every event it receives.
type recordingSink struct {
	events []ReleaseEvent
}

func (s *recordingSink) EmitEvent(e ReleaseEvent) {
	s.events = append(s.events, e)
}

func (s *recordingSink) types() []ReleaseEventType {
	out := make([]ReleaseEventType, len(s.events))
	for i, e := range s.events {
		out[i] = e.Type
	}
	return out
}

// --- Timed release ---

func TestReleaseBatches(t *testing.T) {
	c := NewReleaseController(20, 7)
	c.StartDetaching(0)
	if c.DetachedCount() != ReleaseBatchSize || !c.Detaching() {
		t.Fatalf("after start: detached %d, detaching %v", c.DetachedCount(), c.Detaching())
	}
	steps := []struct {
		now  float64
		want int
	}{
		{0.1, 2},
		{0.15, 4},
		{0.2, 4},
		{0.3, 6},
	}
	for _, s := range steps {
		c.Update(s.now)
		if got := c.DetachedCount(); got != s.want {
			t.Errorf("Update(%v): detached %d, want %d", s.now, got, s.want)
		}
	}
}

func TestReleaseBatchTimestamps(t *testing.T) {
	c := NewReleaseController(20, 7)
	sink := &recordingSink{}
	c.SetEventSink(sink)
	c.StartDetaching(1)
	c.Update(1.5)
	want := []float64{1, 1 + ReleaseInterval, 1 + 2*ReleaseInterval, 1 + 3*ReleaseInterval}
	if len(sink.events) != len(want) {
		t.Fatalf("events = %d, want %d", len(sink.events), len(want))
	}
	for i, e := range sink.events {
		if !approxEqual(e.Time, want[i], epsilon) {
			t.Errorf("batch %d at %v, want %v", i, e.Time, want[i])
		}
		for _, id := range e.SeedIDs {
			if c.Anchors().DetachedSeedTimes[id] != e.Time {
				t.Errorf("seed %d anchored at %v, event at %v", id, c.Anchors().DetachedSeedTimes[id], e.Time)
			}
		}
	}
}

func TestReleaseCatchUpIsCapped(t *testing.T) {
	c := NewReleaseController(100, 7)
	c.StartDetaching(0)
	c.Update(10)
	if want := ReleaseBatchSize * (1 + maxCatchUpBatches); c.DetachedCount() != want {
		t.Fatalf("after stall: detached %d, want %d", c.DetachedCount(), want)
	}
	c.Update(10.1)
	if c.DetachedCount() != 18 {
		t.Errorf("release resumed early: detached %d", c.DetachedCount())
	}
	c.Update(10.15)
	if c.DetachedCount() != 20 {
		t.Errorf("release did not resume: detached %d", c.DetachedCount())
	}
}

func TestReleaseStopsWhenEmpty(t *testing.T) {
	c := NewReleaseController(5, 7)
	c.StartDetaching(0)
	c.Update(1)
	if c.DetachedCount() != 5 || c.Detaching() {
		t.Errorf("detached %d, detaching %v; want 5, false", c.DetachedCount(), c.Detaching())
	}
	c.StartDetaching(2)
	if c.Detaching() {
		t.Error("StartDetaching with nothing left started a release")
	}
}

func TestReleaseStopDetaching(t *testing.T) {
	c := NewReleaseController(20, 7)
	c.StartDetaching(0)
	c.StopDetaching()
	c.Update(5)
	if c.DetachedCount() != ReleaseBatchSize {
		t.Errorf("stopped release kept going: detached %d", c.DetachedCount())
	}
}

func TestDetachAllCoversEverySeed(t *testing.T) {
	c := NewReleaseController(30, 7)
	c.StartDetaching(0)
	c.DetachAll(0.5)
	if c.Detaching() {
		t.Error("DetachAll left the timed release running")
	}
	times := c.Anchors().DetachedSeedTimes
	if len(times) != 30 {
		t.Fatalf("detached %d, want 30", len(times))
	}
	for id := 0; id < 30; id++ {
		if _, ok := times[id]; !ok {
			t.Errorf("seed %d not detached", id)
		}
	}
}

// --- Restore ---

func TestReleaseRestoreFlow(t *testing.T) {
	c := NewReleaseController(20, 7)
	sink := &recordingSink{}
	c.SetEventSink(sink)

	if c.BeginRestore(0, 1.8) {
		t.Fatal("restore started with nothing detached")
	}
	c.DetachAll(1)
	if !c.BeginRestore(2, 1.8) {
		t.Fatal("restore did not start")
	}
	if c.BeginRestore(2.5, 1.8) {
		t.Error("second restore started while one is running")
	}
	a := c.Anchors()
	if !a.Restoring || a.RestoreStart != 2 {
		t.Errorf("anchors = %+v", a)
	}

	c.StartDetaching(2.5)
	c.DetachAll(2.5)
	if c.Detaching() {
		t.Error("release started while restoring")
	}

	c.Update(3)
	if !c.Restoring() || c.DetachedCount() != 20 {
		t.Fatal("restore finished early")
	}
	c.Update(4)
	if c.Restoring() || c.DetachedCount() != 0 {
		t.Fatalf("after restore: restoring %v, detached %d", c.Restoring(), c.DetachedCount())
	}
	if len(a.DetachedSeedTimes) != 0 {
		t.Error("shared anchor map not cleared")
	}

	want := []ReleaseEventType{EventSeedsDetached, EventRestoreStarted, EventRestoreCompleted}
	if got := sink.types(); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if sink.events[1].Detached != 20 || sink.events[2].Detached != 0 {
		t.Errorf("detached counts = %d, %d", sink.events[1].Detached, sink.events[2].Detached)
	}
}

func TestReleaseAfterRestoreUsesNewOrder(t *testing.T) {
	c := NewReleaseController(40, 7)
	first := slices.Clone(c.order)
	c.DetachAll(0)
	c.BeginRestore(1, 0.5)
	c.Update(2)
	if reflect.DeepEqual(first, c.order) {
		t.Error("release order was not reshuffled")
	}
	sorted := slices.Sorted(slices.Values(c.order))
	for i, id := range sorted {
		if id != i {
			t.Fatalf("order is not a permutation: %v", c.order)
		}
	}
}

func TestReleaseDeterministicOrder(t *testing.T) {
	run := func(seed uint64) []int {
		c := NewReleaseController(50, seed)
		sink := &recordingSink{}
		c.SetEventSink(sink)
		c.StartDetaching(0)
		c.Update(0.7)
		var ids []int
		for _, e := range sink.events {
			ids = append(ids, e.SeedIDs...)
		}
		return ids
	}
	if a, b := run(3), run(3); !reflect.DeepEqual(a, b) {
		t.Errorf("same seed released %v then %v", a, b)
	}
	if a, b := run(3), run(4); reflect.DeepEqual(a, b) {
		t.Error("different seeds released in the same order")
	}
}

func TestReleaseResize(t *testing.T) {
	c := NewReleaseController(20, 7)
	c.DetachAll(0)
	c.Resize(8)
	if c.SeedCount() != 8 || c.DetachedCount() != 0 {
		t.Errorf("after Resize: seeds %d, detached %d", c.SeedCount(), c.DetachedCount())
	}
	c.DetachAll(1)
	for id := range c.Anchors().DetachedSeedTimes {
		if id >= 8 {
			t.Errorf("seed %d out of range after Resize(8)", id)
		}
	}
	c.Resize(0)
	if c.SeedCount() != MinSeedCount {
		t.Errorf("Resize(0) kept %d seeds", c.SeedCount())
	}
}

func TestReleaseEventTypeString(t *testing.T) {
	tests := map[ReleaseEventType]string{
		EventSeedsDetached:    "seeds-detached",
		EventRestoreStarted:   "restore-started",
		EventRestoreCompleted: "restore-completed",
		ReleaseEventType(9):   "unknown",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestReleaseDebugLogs(t *testing.T) {
	buf := captureLog(t)
	c := NewReleaseController(4, 7)
	c.SetDebugMode(true)
	c.DetachAll(0)
	c.BeginRestore(1, 1)
	c.Update(2)
	out := buf.String()
	for _, want := range []string{"4 seeds detached", "restore started", "restore completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
