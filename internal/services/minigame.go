package services

import (
	"fmt"

	"github.com/michalkopec1981/saper/internal/apperr"
	"github.com/michalkopec1981/saper/internal/models"
	"github.com/michalkopec1981/saper/internal/store"

	"gorm.io/gorm"
)

type MinigameService struct {
	db     *gorm.DB
	states store.StateRepository
}

func NewMinigameService(db *gorm.DB, states store.StateRepository) *MinigameService {
	return &MinigameService{db: db, states: states}
}

// SetActive toggles one minigame challenge for the event.
func (s *MinigameService) SetActive(eventID uint, gameType string, active bool) error {
	if !models.IsMinigameType(gameType) {
		return fmt.Errorf("%w: unknown minigame %q", apperr.ErrInvalidArgument, gameType)
	}
	return s.states.SetFlag(eventID, "minigame_"+gameType, active)
}

// Active reports the toggle state of every minigame type.
func (s *MinigameService) Active(eventID uint) (map[string]bool, error) {
	out := make(map[string]bool, len(models.MinigameTypes))
	for _, gameType := range models.MinigameTypes {
		on, err := s.states.Flag(eventID, "minigame_"+gameType)
		if err != nil {
			return nil, err
		}
		out[gameType] = on
	}
	return out, nil
}

// Results lists the event's minigame completions, newest first.
func (s *MinigameService) Results(eventID uint) ([]models.MinigameResult, error) {
	var results []models.MinigameResult
	if err := s.db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
