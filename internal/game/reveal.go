package game

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/michalkopec1981/saper/internal/apperr"
	"github.com/michalkopec1981/saper/internal/models"
	"github.com/michalkopec1981/saper/internal/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Revealer decides which password positions are unlocked. Positions index
// the password's non-space characters; spaces are always rendered and never
// addressable. The revealed set only grows until a reset.
type Revealer struct {
	db     *gorm.DB
	states store.StateRepository

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRevealer(db *gorm.DB, states store.StateRepository, rng *rand.Rand) *Revealer {
	return &Revealer{db: db, states: states, rng: rng}
}

// AutoReveal recomputes the unlocked letter count for playerScore and
// unlocks the difference, choosing new positions uniformly at random among
// the still-hidden ones. Returns whether the revealed set changed.
func (r *Revealer) AutoReveal(eventID uint, playerScore int) (bool, error) {
	var event models.Event
	if err := r.db.First(&event, eventID).Error; err != nil {
		return false, fmt.Errorf("%w: event not found", apperr.ErrNotFound)
	}
	if event.RevealMode != models.RevealModeAuto {
		return false, nil
	}

	maxPoints, err := r.maxPoints(eventID)
	if err != nil {
		return false, err
	}
	target := TargetLetters(playerScore, maxPoints, event.RevealPercent)
	if target == 0 {
		return false, nil
	}

	letters := nonSpaceCount(event.GamePassword)
	if target > letters {
		target = letters
	}

	revealed, err := r.revealedSet(eventID)
	if err != nil {
		return false, err
	}
	missing := target - len(revealed)
	if missing <= 0 {
		return false, nil
	}

	var hidden []int
	for i := 0; i < letters; i++ {
		if !revealed[i] {
			hidden = append(hidden, i)
		}
	}
	if missing > len(hidden) {
		missing = len(hidden)
	}

	r.mu.Lock()
	r.rng.Shuffle(len(hidden), func(i, j int) {
		hidden[i], hidden[j] = hidden[j], hidden[i]
	})
	r.mu.Unlock()

	return r.unlock(eventID, hidden[:missing])
}

// RevealManual unions the given positions into the revealed set.
func (r *Revealer) RevealManual(eventID uint, positions []int) (bool, error) {
	var event models.Event
	if err := r.db.First(&event, eventID).Error; err != nil {
		return false, fmt.Errorf("%w: event not found", apperr.ErrNotFound)
	}
	letters := nonSpaceCount(event.GamePassword)
	for _, p := range positions {
		if p < 0 || p >= letters {
			return false, fmt.Errorf("%w: position %d out of range", apperr.ErrInvalidArgument, p)
		}
	}
	return r.unlock(eventID, positions)
}

// Display renders the event's password with the current revealed set.
func (r *Revealer) Display(eventID uint) (string, error) {
	var event models.Event
	if err := r.db.First(&event, eventID).Error; err != nil {
		return "", fmt.Errorf("%w: event not found", apperr.ErrNotFound)
	}
	revealed, err := r.revealedSet(eventID)
	if err != nil {
		return "", err
	}
	return DisplayPassword(event.GamePassword, revealed), nil
}

func (r *Revealer) unlock(eventID uint, positions []int) (bool, error) {
	changed := false
	for _, p := range positions {
		row := models.RevealedPosition{EventID: eventID, Position: p}
		res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return changed, res.Error
		}
		if res.RowsAffected > 0 {
			changed = true
		}
	}
	return changed, nil
}

func (r *Revealer) revealedSet(eventID uint) (map[int]bool, error) {
	var rows []models.RevealedPosition
	if err := r.db.Where("event_id = ?", eventID).Find(&rows).Error; err != nil {
		return nil, err
	}
	set := make(map[int]bool, len(rows))
	for _, row := range rows {
		set[row.Position] = true
	}
	return set, nil
}

func (r *Revealer) maxPoints(eventID uint) (int, error) {
	var regular, ai int64
	if err := r.db.Model(&models.Question{}).
		Where("event_id = ? AND source = ?", eventID, models.QuestionSourceManual).
		Count(&regular).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&models.Question{}).
		Where("event_id = ? AND source = ?", eventID, models.QuestionSourceAI).
		Count(&ai).Error; err != nil {
		return 0, err
	}
	st, err := r.states.Load(eventID)
	if err != nil {
		return 0, err
	}
	return MaxPoints(int(regular), int(ai), st.Bonus), nil
}

// DisplayPassword renders a password for clients: spaces become a double
// space, revealed letters show as themselves, everything else is masked.
// The revealed map is keyed by non-space ordinal.
func DisplayPassword(password string, revealed map[int]bool) string {
	var b strings.Builder
	letter := 0
	for _, ch := range password {
		if ch == ' ' {
			b.WriteString("  ")
			continue
		}
		if revealed[letter] {
			b.WriteRune(ch)
		} else {
			b.WriteByte('_')
		}
		letter++
	}
	return b.String()
}

func nonSpaceCount(password string) int {
	n := 0
	for _, ch := range password {
		if ch != ' ' {
			n++
		}
	}
	return n
}
