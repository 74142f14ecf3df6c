// Package store persists per-event game state. The raw representation is a
// set of key-value rows partitioned by event id; everything outside this
// package works with the typed GameState struct instead.
package store

import (
	"strconv"
	"time"
)

// GameState is the clock's raw ground truth for one event.
//
// Running implies EndTime is the countdown target and PauseStartedAt is zero.
// Paused (Active && !Running) implies FrozenTimeLeft holds the remaining time
// and EndTime is stale until resume.
type GameState struct {
	Active         bool
	Running        bool
	StartTime      time.Time
	EndTime        time.Time
	PausedAccum    float64 // seconds spent paused so far, never decreases
	PauseStartedAt time.Time
	FrozenTimeLeft float64
	Speed          int
	Bonus          int
	DurationSec    float64
}

// Defaults returns the state of an event that has never been started.
func Defaults() GameState {
	return GameState{Speed: 1, Bonus: 1}
}

const (
	keyActive         = "game_active"
	keyRunning        = "timer_running"
	keyStartTime      = "game_start_time"
	keyEndTime        = "game_end_time"
	keyPausedAccum    = "paused_total"
	keyPauseStartedAt = "pause_started_at"
	keyFrozenTimeLeft = "time_left_on_pause"
	keySpeed          = "speed_multiplier"
	keyBonus          = "bonus_multiplier"
	keyDuration       = "game_duration"

	flagPrefix = "flag_"
)

// StateRepository is the storage contract for the game clock. A Save must be
// visible to any subsequent Load, regardless of which process issued it.
type StateRepository interface {
	Load(eventID uint) (GameState, error)
	Save(eventID uint, st GameState) error
	// SetEndTime updates only the countdown target; the scheduler uses it so
	// its per-tick write cannot clobber an in-flight pause/resume.
	SetEndTime(eventID uint, end time.Time) error
	Clear(eventID uint) error
	ActiveEventIDs() ([]uint, error)

	// Flags are auxiliary per-event booleans (minigame toggles).
	Flag(eventID uint, name string) (bool, error)
	SetFlag(eventID uint, name string, on bool) error
}

func encodeState(st GameState) map[string]string {
	return map[string]string{
		keyActive:         strconv.FormatBool(st.Active),
		keyRunning:        strconv.FormatBool(st.Running),
		keyStartTime:      encodeTime(st.StartTime),
		keyEndTime:        encodeTime(st.EndTime),
		keyPausedAccum:    strconv.FormatFloat(st.PausedAccum, 'f', -1, 64),
		keyPauseStartedAt: encodeTime(st.PauseStartedAt),
		keyFrozenTimeLeft: strconv.FormatFloat(st.FrozenTimeLeft, 'f', -1, 64),
		keySpeed:          strconv.Itoa(st.Speed),
		keyBonus:          strconv.Itoa(st.Bonus),
		keyDuration:       strconv.FormatFloat(st.DurationSec, 'f', -1, 64),
	}
}

// decodeState is total: malformed or missing values fall back to safe
// neutral defaults instead of failing the whole read.
func decodeState(kv map[string]string) GameState {
	return GameState{
		Active:         parseBool(kv[keyActive]),
		Running:        parseBool(kv[keyRunning]),
		StartTime:      parseTime(kv[keyStartTime]),
		EndTime:        parseTime(kv[keyEndTime]),
		PausedAccum:    parseFloat(kv[keyPausedAccum], 0),
		PauseStartedAt: parseTime(kv[keyPauseStartedAt]),
		FrozenTimeLeft: parseFloat(kv[keyFrozenTimeLeft], 0),
		Speed:          parseIntMin(kv[keySpeed], 1),
		Bonus:          parseIntMin(kv[keyBonus], 1),
		DurationSec:    parseFloat(kv[keyDuration], 0),
	}
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseIntMin(s string, min int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < min {
		return min
	}
	return n
}
