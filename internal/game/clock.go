// Package game holds the shared game-clock core: the pure clock computation,
// the host/player transition logic, the per-second broadcast scheduler and
// the password-reveal engine.
package game

import (
	"time"

	"github.com/michalkopec1981/saper/internal/store"
)

// ClockReading is the derived temporal state of one event at a single
// instant. All durations are in seconds and never negative.
type ClockReading struct {
	Active       bool    `json:"game_active"`
	Running      bool    `json:"is_timer_running"`
	TimeLeft     float64 `json:"time_left"`
	ElapsedNet   float64 `json:"time_elapsed_net"`
	ElapsedGross float64 `json:"time_elapsed_gross"`
	Started      bool    `json:"-"`
}

// ReadClock derives the current clock values from raw stored state. It has
// no side effects and is safe to call concurrently from request handlers and
// the scheduler: it only reads.
func ReadClock(st store.GameState, now time.Time) ClockReading {
	reading := ClockReading{
		Active:  st.Active,
		Running: st.Active && st.Running,
		Started: !st.StartTime.IsZero(),
	}
	if !st.Active {
		return reading
	}

	gross := clampSeconds(now.Sub(st.StartTime).Seconds())

	if st.Running {
		reading.TimeLeft = clampSeconds(st.EndTime.Sub(now).Seconds())
		reading.ElapsedGross = gross
		reading.ElapsedNet = clampSeconds(gross - st.PausedAccum)
		return reading
	}

	// Paused: the countdown is frozen at the value captured on pause and
	// EndTime is stale until resume recomputes it.
	openPause := 0.0
	if !st.PauseStartedAt.IsZero() {
		openPause = now.Sub(st.PauseStartedAt).Seconds()
	}
	reading.TimeLeft = clampSeconds(st.FrozenTimeLeft)
	reading.ElapsedGross = gross
	reading.ElapsedNet = clampSeconds(gross - st.PausedAccum - openPause)
	return reading
}

func clampSeconds(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
