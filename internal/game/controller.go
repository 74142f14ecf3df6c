package game

import (
	"fmt"
	"time"

	"github.com/michalkopec1981/saper/internal/apperr"
	"github.com/michalkopec1981/saper/internal/database"
	"github.com/michalkopec1981/saper/internal/models"
	"github.com/michalkopec1981/saper/internal/store"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// Controller applies host actions as transitions over the state store.
// Actions for one event are serialized by the calling host session; the only
// concurrent writer the controller defends against is the scheduler, which
// touches nothing but end_time and only while the timer is running.
type Controller struct {
	db       *gorm.DB
	states   store.StateRepository
	revealer *Revealer
	clock    clockwork.Clock
}

func NewController(db *gorm.DB, states store.StateRepository, revealer *Revealer, clock clockwork.Clock) *Controller {
	return &Controller{db: db, states: states, revealer: revealer, clock: clock}
}

// FullState is the complete derived snapshot returned by every mutating
// action and broadcast as game_state_update.
type FullState struct {
	EventID      uint    `json:"event_id"`
	EventName    string  `json:"event_name"`
	Active       bool    `json:"game_active"`
	Running      bool    `json:"is_timer_running"`
	TimeLeft     float64 `json:"time_left"`
	ElapsedNet   float64 `json:"time_elapsed_net"`
	ElapsedGross float64 `json:"time_elapsed_gross"`
	Password     string  `json:"password"`
	PlayerCount  int     `json:"player_count"`
	Speed        int     `json:"speed_multiplier"`
	Bonus        int     `json:"bonus_multiplier"`
	RevealMode   string  `json:"reveal_mode"`
	Languages    string  `json:"languages"`
	DurationSec  float64 `json:"game_duration"`
}

// Start begins a fresh game run. Previous players, answers, scans, minigame
// results and photos are wiped and QR claims released; QR code definitions
// and questions survive. Safe to call while a game is running: it resets.
func (c *Controller) Start(eventID uint, minutes int) (*FullState, error) {
	if minutes < 1 {
		return nil, fmt.Errorf("%w: duration must be at least 1 minute", apperr.ErrInvalidArgument)
	}
	if err := c.eventExists(eventID); err != nil {
		return nil, err
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.Player{}, &models.PlayerScan{}, &models.PlayerAnswer{},
			&models.MinigameResult{}, &models.Photo{}, &models.PhotoVote{},
			&models.RevealedPosition{},
		} {
			if err := tx.Where("event_id = ?", eventID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.QRCode{}).
			Where("event_id = ?", eventID).
			Update("claimed_by_player_id", nil).Error
	})
	if err != nil {
		return nil, fmt.Errorf("reset game records: %w", err)
	}

	st := startState(c.clock.Now(), time.Duration(minutes)*time.Minute)
	if err := c.states.Save(eventID, st); err != nil {
		return nil, err
	}
	return c.FullState(eventID)
}

// startState is the fresh running state of a new game: multipliers back to
// 1, no pause history.
func startState(now time.Time, duration time.Duration) store.GameState {
	return store.GameState{
		Active:      true,
		Running:     true,
		StartTime:   now,
		EndTime:     now.Add(duration),
		Speed:       1,
		Bonus:       1,
		DurationSec: duration.Seconds(),
	}
}

// Stop ends the game without touching player data. The caller must present
// the event's remote-control credential.
func (c *Controller) Stop(eventID uint, credential string) (*FullState, error) {
	if err := c.checkCredential(eventID, credential); err != nil {
		return nil, err
	}
	st, err := c.states.Load(eventID)
	if err != nil {
		return nil, err
	}
	st.Active = false
	st.Running = false
	st.PauseStartedAt = time.Time{}
	if err := c.states.Save(eventID, st); err != nil {
		return nil, err
	}
	return c.FullState(eventID)
}

// PauseToggle freezes a running countdown or resumes a frozen one. The
// second return value reports whether the game is paused afterwards.
func (c *Controller) PauseToggle(eventID uint) (*FullState, bool, error) {
	if err := c.eventExists(eventID); err != nil {
		return nil, false, err
	}
	st, err := c.states.Load(eventID)
	if err != nil {
		return nil, false, err
	}
	if !st.Active {
		return nil, false, fmt.Errorf("%w: game is not active", apperr.ErrForbidden)
	}

	st, paused := togglePause(st, c.clock.Now())
	if err := c.states.Save(eventID, st); err != nil {
		return nil, false, err
	}
	full, err := c.FullState(eventID)
	return full, paused, err
}

// togglePause freezes a running countdown or resumes a frozen one. The
// second value reports whether the game is paused afterwards.
func togglePause(st store.GameState, now time.Time) (store.GameState, bool) {
	if st.Running {
		reading := ReadClock(st, now)
		st.FrozenTimeLeft = reading.TimeLeft
		st.PauseStartedAt = now
		st.Running = false
		return st, true
	}
	if !st.PauseStartedAt.IsZero() {
		st.PausedAccum += now.Sub(st.PauseStartedAt).Seconds()
	}
	// The frozen remaining time becomes the new countdown target as-is;
	// the scheduler applies the speed multiplier tick by tick, so
	// dividing here would compound it.
	st.EndTime = now.Add(time.Duration(st.FrozenTimeLeft * float64(time.Second)))
	st.PauseStartedAt = time.Time{}
	st.Running = true
	return st, false
}

// AdjustSpeed stores the countdown speed multiplier. Sending the current
// value again resets to 1, so a host UI button toggles it. The stored
// end_time is left alone; the scheduler folds the new rate into subsequent
// ticks.
func (c *Controller) AdjustSpeed(eventID uint, multiplier int) (*FullState, error) {
	if multiplier < 1 {
		return nil, fmt.Errorf("%w: speed multiplier must be at least 1", apperr.ErrInvalidArgument)
	}
	if err := c.eventExists(eventID); err != nil {
		return nil, err
	}
	st, err := c.states.Load(eventID)
	if err != nil {
		return nil, err
	}
	st.Speed = toggleMultiplier(st.Speed, multiplier)
	if err := c.states.Save(eventID, st); err != nil {
		return nil, err
	}
	return c.FullState(eventID)
}

// AdjustBonus stores the answer-score bonus multiplier with the same toggle
// semantics as AdjustSpeed. It scales regular questions from the next
// answer on; scores already on the board keep their value.
func (c *Controller) AdjustBonus(eventID uint, multiplier int) (*FullState, error) {
	if multiplier < 1 {
		return nil, fmt.Errorf("%w: bonus multiplier must be at least 1", apperr.ErrInvalidArgument)
	}
	if err := c.eventExists(eventID); err != nil {
		return nil, err
	}
	st, err := c.states.Load(eventID)
	if err != nil {
		return nil, err
	}
	st.Bonus = toggleMultiplier(st.Bonus, multiplier)
	if err := c.states.Save(eventID, st); err != nil {
		return nil, err
	}
	return c.FullState(eventID)
}

// toggleMultiplier implements the host UI button: re-sending the current
// value resets to 1.
func toggleMultiplier(current, requested int) int {
	if current == requested {
		return 1
	}
	return requested
}

// AdjustDuration rewrites the remaining time of an active game: the live
// target while running, the frozen value while paused.
func (c *Controller) AdjustDuration(eventID uint, minutes int, credential string) (*FullState, error) {
	if err := c.checkCredential(eventID, credential); err != nil {
		return nil, err
	}
	if minutes < 1 {
		return nil, fmt.Errorf("%w: duration must be at least 1 minute", apperr.ErrInvalidArgument)
	}
	st, err := c.states.Load(eventID)
	if err != nil {
		return nil, err
	}
	if !st.Active {
		return nil, fmt.Errorf("%w: game is not active", apperr.ErrForbidden)
	}

	duration := time.Duration(minutes) * time.Minute
	if st.Running {
		st.EndTime = c.clock.Now().Add(duration)
	} else {
		st.FrozenTimeLeft = duration.Seconds()
	}
	st.DurationSec = duration.Seconds()
	if err := c.states.Save(eventID, st); err != nil {
		return nil, err
	}
	return c.FullState(eventID)
}

// Reset wipes every record of the event, QR code definitions and questions
// included, and re-seeds the default category list.
func (c *Controller) Reset(eventID uint) error {
	if err := c.eventExists(eventID); err != nil {
		return err
	}
	err := c.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.Player{}, &models.PlayerScan{}, &models.PlayerAnswer{},
			&models.MinigameResult{}, &models.Photo{}, &models.PhotoVote{},
			&models.RevealedPosition{}, &models.QRCode{}, &models.Question{},
		} {
			if err := tx.Where("event_id = ?", eventID).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset event %d: %w", eventID, err)
	}
	if err := c.states.Clear(eventID); err != nil {
		return err
	}
	return database.SeedCategories(c.db)
}

// FullState assembles the complete derived snapshot for one event.
func (c *Controller) FullState(eventID uint) (*FullState, error) {
	var event models.Event
	if err := c.db.First(&event, eventID).Error; err != nil {
		return nil, fmt.Errorf("%w: event not found", apperr.ErrNotFound)
	}
	st, err := c.states.Load(eventID)
	if err != nil {
		return nil, err
	}
	reading := ReadClock(st, c.clock.Now())

	password, err := c.revealer.Display(eventID)
	if err != nil {
		return nil, err
	}

	var playerCount int64
	if err := c.db.Model(&models.Player{}).Where("event_id = ?", eventID).Count(&playerCount).Error; err != nil {
		return nil, err
	}

	return &FullState{
		EventID:      eventID,
		EventName:    event.Name,
		Active:       reading.Active,
		Running:      reading.Running,
		TimeLeft:     reading.TimeLeft,
		ElapsedNet:   reading.ElapsedNet,
		ElapsedGross: reading.ElapsedGross,
		Password:     password,
		PlayerCount:  int(playerCount),
		Speed:        st.Speed,
		Bonus:        st.Bonus,
		RevealMode:   event.RevealMode,
		Languages:    event.Languages,
		DurationSec:  st.DurationSec,
	}, nil
}

// Leaderboard lists players for one event sorted by score descending.
func (c *Controller) Leaderboard(eventID uint) ([]LeaderboardEntry, error) {
	var players []models.Player
	if err := c.db.Where("event_id = ?", eventID).
		Order("score DESC, name ASC").
		Find(&players).Error; err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, len(players))
	for i, p := range players {
		entries[i] = LeaderboardEntry{Name: p.Name, Score: p.Score}
	}
	return entries, nil
}

type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func (c *Controller) eventExists(eventID uint) error {
	var event models.Event
	if err := c.db.Select("id").First(&event, eventID).Error; err != nil {
		return fmt.Errorf("%w: event not found", apperr.ErrNotFound)
	}
	return nil
}

func (c *Controller) checkCredential(eventID uint, credential string) error {
	var event models.Event
	if err := c.db.First(&event, eventID).Error; err != nil {
		return fmt.Errorf("%w: event not found", apperr.ErrNotFound)
	}
	if event.RemotePassword == "" || event.RemotePassword != credential {
		return fmt.Errorf("%w: wrong event credential", apperr.ErrUnauthorized)
	}
	return nil
}
