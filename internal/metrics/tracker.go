package metrics

import (
	"context"
	"sync"
	"time"
)

type contextKey int

const stageStartKey contextKey = 0

// Stage names a phase of the pipeline being timed, matching the pipeline's
// load/binarize/despeckle/save boundaries. The engine's internal stages
// have no Stage of their own; a despeckle call is timed as one unit.
type Stage string

const (
	StageLoad      Stage = "load"
	StageBinarize  Stage = "binarize"
	StageDespeckle Stage = "despeckle"
	StageSave      Stage = "save"
)

type stageStart struct {
	stage Stage
	start time.Time
}

// Tracker accumulates per-stage durations and optionally publishes
// stage_started/stage_completed events to a Bus as they happen.
type Tracker struct {
	mu      sync.RWMutex
	timings map[Stage][]time.Duration
	bus     *Bus
	enabled bool
}

// NewTracker returns a Tracker. bus may be nil, in which case timings are
// still recorded but no events are published.
func NewTracker(bus *Bus) *Tracker {
	return &Tracker{
		timings: make(map[Stage][]time.Duration),
		bus:     bus,
		enabled: true,
	}
}

// Start begins timing stage and returns a context carrying the start time,
// to be passed to End. A nil Tracker is valid and simply does not time
// anything, so callers that don't care about metrics can pass a zero
// Options without constructing one.
func (t *Tracker) Start(stage Stage) context.Context {
	if t == nil || !t.enabled {
		return context.Background()
	}
	start := time.Now()
	if t.bus != nil {
		t.bus.Publish(Event{Type: "stage_started", Data: map[string]interface{}{"stage": stage}})
	}
	return context.WithValue(context.Background(), stageStartKey, stageStart{stage: stage, start: start})
}

// End records the elapsed time for the stage Start attached to ctx. A ctx
// not produced by Start is a no-op.
func (t *Tracker) End(ctx context.Context) {
	if t == nil || !t.enabled {
		return
	}
	s, ok := ctx.Value(stageStartKey).(stageStart)
	if !ok {
		return
	}
	duration := time.Since(s.start)

	t.mu.Lock()
	t.timings[s.stage] = append(t.timings[s.stage], duration)
	t.mu.Unlock()

	if t.bus != nil {
		t.bus.Publish(Event{
			Type: "stage_completed",
			Data: map[string]interface{}{"stage": s.stage, "duration": duration},
		})
	}
}

// Timings returns a copy of the recorded durations for stage.
func (t *Tracker) Timings(stage Stage) []time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]time.Duration, len(t.timings[stage]))
	copy(out, t.timings[stage])
	return out
}

// Average returns the mean duration recorded for stage, or 0 if none.
func (t *Tracker) Average(stage Stage) time.Duration {
	durations := t.Timings(stage)
	if len(durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return total / time.Duration(len(durations))
}

func (t *Tracker) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}
