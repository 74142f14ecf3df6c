package game

import (
	"context"
	"time"

	"github.com/michalkopec1981/saper/internal/store"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Broadcaster fans an event out to every connection in an event's room.
// Delivery is best effort; a dropped tick is corrected by the next one.
type Broadcaster interface {
	Broadcast(eventID uint, event string, data interface{})
}

// Snapshotter produces the full event snapshot broadcast when a game ends.
// *Controller is the production implementation.
type Snapshotter interface {
	FullState(eventID uint) (*FullState, error)
}

// TickPayload is the lightweight per-second tick sent to a room.
type TickPayload struct {
	TimeLeft     float64 `json:"time_left"`
	ElapsedNet   float64 `json:"time_elapsed_net"`
	ElapsedGross float64 `json:"time_elapsed_gross"`
}

// Scheduler is the single recurring background task of the process. Once per
// interval it advances the clock of every active running event, applies the
// speed multiplier, pushes a tick to the event's room and flips the game to
// over, exactly once, when time runs out.
//
// An error in one event is logged and never stops the loop or leaks into
// other events.
type Scheduler struct {
	ctrl     Snapshotter
	states   store.StateRepository
	hub      Broadcaster
	clock    clockwork.Clock
	interval time.Duration

	// wall-clock instant of the previous tick, per event; dropped whenever
	// an event stops running so resume starts from a fresh baseline
	lastTick map[uint]time.Time
}

func NewScheduler(ctrl Snapshotter, states store.StateRepository, hub Broadcaster, clock clockwork.Clock, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{
		ctrl:     ctrl,
		states:   states,
		hub:      hub,
		clock:    clock,
		interval: interval,
		lastTick: make(map[uint]time.Time),
	}
}

// Run blocks until ctx is cancelled. Ticks never overlap: the next interval
// is simply late if one iteration takes longer than the interval.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()
	log.Info().Dur("interval", s.interval).Msg("broadcast scheduler started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("broadcast scheduler stopped")
			return
		case <-ticker.Chan():
			s.TickAll()
		}
	}
}

// TickAll runs one scheduler iteration over every active event.
func (s *Scheduler) TickAll() {
	ids, err := s.states.ActiveEventIDs()
	if err != nil {
		log.Error().Err(err).Msg("scheduler: listing active events")
		return
	}
	active := make(map[uint]bool, len(ids))
	for _, id := range ids {
		active[id] = true
		s.tickEvent(id)
	}
	// Events that stopped between ticks lose their baseline so a later
	// restart does not apply a stale elapsed span.
	for id := range s.lastTick {
		if !active[id] {
			delete(s.lastTick, id)
		}
	}
}

func (s *Scheduler) tickEvent(eventID uint) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Uint("event_id", eventID).Interface("panic", r).Msg("scheduler: tick panicked")
		}
	}()
	if err := s.advance(eventID); err != nil {
		log.Error().Err(err).Uint("event_id", eventID).Msg("scheduler: tick failed")
	}
}

func (s *Scheduler) advance(eventID uint) error {
	st, err := s.states.Load(eventID)
	if err != nil {
		return err
	}
	if !st.Active || !st.Running {
		delete(s.lastTick, eventID)
		return nil
	}

	now := s.clock.Now()
	elapsed := s.interval.Seconds()
	if last, ok := s.lastTick[eventID]; ok {
		elapsed = now.Sub(last).Seconds()
	}
	s.lastTick[eventID] = now

	// Speed is applied as a per-tick shift of the target instant, so the
	// countdown rate changes without re-deriving end_time from scratch.
	if st.Speed > 1 {
		gameElapsed := elapsed * float64(st.Speed)
		st.EndTime = st.EndTime.Add(-time.Duration((gameElapsed - elapsed) * float64(time.Second)))
		if err := s.states.SetEndTime(eventID, st.EndTime); err != nil {
			return err
		}
	}

	reading := ReadClock(st, now)
	s.hub.Broadcast(eventID, "timer_tick", TickPayload{
		TimeLeft:     reading.TimeLeft,
		ElapsedNet:   reading.ElapsedNet,
		ElapsedGross: reading.ElapsedGross,
	})

	if reading.TimeLeft > 0 {
		return nil
	}

	// Expiry: flipping Active excludes the event from the next iteration,
	// so the terminal broadcast happens once.
	st.Active = false
	st.Running = false
	if err := s.states.Save(eventID, st); err != nil {
		return err
	}
	delete(s.lastTick, eventID)

	if full, err := s.ctrl.FullState(eventID); err == nil {
		s.hub.Broadcast(eventID, "game_state_update", full)
	} else {
		log.Error().Err(err).Uint("event_id", eventID).Msg("scheduler: snapshot after game over failed")
	}
	s.hub.Broadcast(eventID, "game_over", struct{}{})
	log.Info().Uint("event_id", eventID).Msg("game over: countdown expired")
	return nil
}
