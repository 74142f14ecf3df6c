package game

import (
	"sync"
	"testing"
	"time"

	"github.com/michalkopec1981/saper/internal/store"

	"github.com/jonboulle/clockwork"
)

type recordedBroadcast struct {
	eventID uint
	event   string
	data    interface{}
}

type recordingHub struct {
	mu    sync.Mutex
	calls []recordedBroadcast
}

func (h *recordingHub) Broadcast(eventID uint, event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, recordedBroadcast{eventID: eventID, event: event, data: data})
}

func (h *recordingHub) count(event string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, c := range h.calls {
		if c.event == event {
			n++
		}
	}
	return n
}

func (h *recordingHub) lastTick(t *testing.T) TickPayload {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.calls) - 1; i >= 0; i-- {
		if h.calls[i].event == "timer_tick" {
			return h.calls[i].data.(TickPayload)
		}
	}
	t.Fatal("no timer_tick broadcast recorded")
	return TickPayload{}
}

type stubSnapshotter struct{}

func (stubSnapshotter) FullState(eventID uint) (*FullState, error) {
	return &FullState{EventID: eventID}, nil
}

func newTestScheduler(start time.Time) (*Scheduler, *store.MemoryStateRepository, *recordingHub, *clockwork.FakeClock) {
	states := store.NewMemoryStateRepository()
	hub := &recordingHub{}
	clock := clockwork.NewFakeClockAt(start)
	sched := NewScheduler(stubSnapshotter{}, states, hub, clock, time.Second)
	return sched, states, hub, clock
}

func TestSchedulerDoubleSpeedCountdown(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sched, states, hub, clock := newTestScheduler(start)

	if err := states.Save(7, store.GameState{
		Active:      true,
		Running:     true,
		StartTime:   start,
		EndTime:     start.Add(100 * time.Second),
		Speed:       2,
		Bonus:       1,
		DurationSec: 100,
	}); err != nil {
		t.Fatal(err)
	}

	// 10 wall seconds at double speed burn 20 game seconds.
	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		sched.TickAll()
	}

	tick := hub.lastTick(t)
	if tick.TimeLeft != 80 {
		t.Fatalf("expected 80s left after 10 wall seconds at speed 2, got %v", tick.TimeLeft)
	}
	if hub.count("timer_tick") != 10 {
		t.Fatalf("expected 10 ticks, got %d", hub.count("timer_tick"))
	}
}

func TestSchedulerGameOverExactlyOnce(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sched, states, hub, clock := newTestScheduler(start)

	if err := states.Save(3, store.GameState{
		Active:      true,
		Running:     true,
		StartTime:   start,
		EndTime:     start.Add(2 * time.Second),
		Speed:       1,
		Bonus:       1,
		DurationSec: 2,
	}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		sched.TickAll()
	}

	if hub.count("game_over") != 1 {
		t.Fatalf("expected exactly one game_over, got %d", hub.count("game_over"))
	}
	if hub.count("game_state_update") != 1 {
		t.Fatalf("expected exactly one terminal state update, got %d", hub.count("game_state_update"))
	}

	st, err := states.Load(3)
	if err != nil {
		t.Fatal(err)
	}
	if st.Active || st.Running {
		t.Fatalf("expired game must be inactive, got %+v", st)
	}
}

func TestSchedulerSkipsPausedEvents(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sched, states, hub, clock := newTestScheduler(start)

	if err := states.Save(5, store.GameState{
		Active:         true,
		Running:        false,
		StartTime:      start,
		EndTime:        start.Add(100 * time.Second),
		PauseStartedAt: start,
		FrozenTimeLeft: 100,
		Speed:          2,
		Bonus:          1,
		DurationSec:    100,
	}); err != nil {
		t.Fatal(err)
	}

	clock.Advance(time.Second)
	sched.TickAll()

	if hub.count("timer_tick") != 0 {
		t.Fatal("paused event must not receive ticks")
	}

	st, err := states.Load(5)
	if err != nil {
		t.Fatal(err)
	}
	if !st.EndTime.Equal(start.Add(100 * time.Second)) {
		t.Fatalf("paused event's end time must not move, got %v", st.EndTime)
	}
}

func TestSchedulerBaselineResetsAfterPause(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sched, states, hub, clock := newTestScheduler(start)

	st := store.GameState{
		Active:      true,
		Running:     true,
		StartTime:   start,
		EndTime:     start.Add(100 * time.Second),
		Speed:       2,
		Bonus:       1,
		DurationSec: 100,
	}
	if err := states.Save(9, st); err != nil {
		t.Fatal(err)
	}

	clock.Advance(time.Second)
	sched.TickAll() // establishes a baseline

	// Pause, let an hour of wall time pass, then resume.
	st, _ = states.Load(9)
	st.Running = false
	st.FrozenTimeLeft = 98
	if err := states.Save(9, st); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Hour)
	sched.TickAll() // paused iteration drops the baseline

	st, _ = states.Load(9)
	st.Running = true
	st.EndTime = clock.Now().Add(98 * time.Second)
	if err := states.Save(9, st); err != nil {
		t.Fatal(err)
	}

	clock.Advance(time.Second)
	sched.TickAll()

	// The first post-resume tick must account one interval, not the hour
	// spent paused: at speed 2 that is one extra second off the target.
	tick := hub.lastTick(t)
	if tick.TimeLeft != 96 {
		t.Fatalf("expected 96s left after resume tick, got %v", tick.TimeLeft)
	}
}
