package services

import (
	"fmt"
	"time"

	"github.com/michalkopec1981/saper/internal/apperr"
	"github.com/michalkopec1981/saper/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayerService struct {
	db *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{db: db}
}

// Register creates a player. Names are unique within an event; the same
// name in another event is fine.
func (s *PlayerService) Register(eventID uint, name string) (*models.Player, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", apperr.ErrInvalidArgument)
	}
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		return nil, fmt.Errorf("%w: event not found", apperr.ErrNotFound)
	}

	var existing models.Player
	if err := s.db.Where("event_id = ? AND name = ?", eventID, name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: player name already exists for this event", apperr.ErrConflict)
	}

	player := models.Player{
		EventID:  eventID,
		Name:     name,
		Token:    uuid.NewString(),
		JoinedAt: time.Now(),
	}
	if err := s.db.Create(&player).Error; err != nil {
		return nil, fmt.Errorf("register player: %w", err)
	}
	return &player, nil
}

// Get returns a player after verifying it belongs to the claimed event.
func (s *PlayerService) Get(eventID, playerID uint) (*models.Player, error) {
	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		return nil, fmt.Errorf("%w: player not found", apperr.ErrNotFound)
	}
	if player.EventID != eventID {
		return nil, fmt.Errorf("%w: player does not belong to this event", apperr.ErrUnauthorized)
	}
	return &player, nil
}

func (s *PlayerService) Delete(eventID, playerID uint) error {
	player, err := s.Get(eventID, playerID)
	if err != nil {
		return err
	}
	return s.db.Delete(player).Error
}

func (s *PlayerService) Warn(eventID, playerID uint) (int, error) {
	player, err := s.Get(eventID, playerID)
	if err != nil {
		return 0, err
	}
	player.Warnings++
	if err := s.db.Save(player).Error; err != nil {
		return 0, err
	}
	return player.Warnings, nil
}

// List returns the event's players sorted by score descending, for the host
// management panel.
func (s *PlayerService) List(eventID uint) ([]models.Player, error) {
	var players []models.Player
	if err := s.db.Where("event_id = ?", eventID).
		Order("score DESC, name ASC").
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}
