package services

import (
	"fmt"

	"github.com/michalkopec1981/saper/internal/apperr"
	"github.com/michalkopec1981/saper/internal/models"

	"gorm.io/gorm"
)

type PhotoService struct {
	db      *gorm.DB
	players *PlayerService
}

func NewPhotoService(db *gorm.DB, players *PlayerService) *PhotoService {
	return &PhotoService{db: db, players: players}
}

func (s *PhotoService) Submit(eventID, playerID uint, url string) (*models.Photo, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: photo url is required", apperr.ErrInvalidArgument)
	}
	if _, err := s.players.Get(eventID, playerID); err != nil {
		return nil, err
	}
	photo := models.Photo{EventID: eventID, PlayerID: playerID, URL: url}
	if err := s.db.Create(&photo).Error; err != nil {
		return nil, fmt.Errorf("save photo: %w", err)
	}
	return &photo, nil
}

// Vote records one vote; each player votes once per event.
func (s *PhotoService) Vote(eventID, voterID, photoID uint) error {
	if _, err := s.players.Get(eventID, voterID); err != nil {
		return err
	}
	var photo models.Photo
	if err := s.db.Where("id = ? AND event_id = ?", photoID, eventID).First(&photo).Error; err != nil {
		return fmt.Errorf("%w: photo not found", apperr.ErrNotFound)
	}

	var existing models.PhotoVote
	if err := s.db.Where("event_id = ? AND voter_id = ?", eventID, voterID).First(&existing).Error; err == nil {
		return fmt.Errorf("%w: already voted in this event", apperr.ErrConflict)
	}

	vote := models.PhotoVote{EventID: eventID, PhotoID: photoID, VoterID: voterID}
	if err := s.db.Create(&vote).Error; err != nil {
		return fmt.Errorf("save vote: %w", err)
	}
	return nil
}

type PhotoEntry struct {
	models.Photo
	PlayerName string `json:"player_name"`
	Votes      int    `json:"votes"`
}

func (s *PhotoService) List(eventID uint) ([]PhotoEntry, error) {
	var photos []models.Photo
	if err := s.db.Where("event_id = ?", eventID).Order("created_at ASC").Find(&photos).Error; err != nil {
		return nil, err
	}

	entries := make([]PhotoEntry, len(photos))
	for i, p := range photos {
		var votes int64
		if err := s.db.Model(&models.PhotoVote{}).Where("photo_id = ?", p.ID).Count(&votes).Error; err != nil {
			return nil, err
		}
		var player models.Player
		name := ""
		if err := s.db.First(&player, p.PlayerID).Error; err == nil {
			name = player.Name
		}
		entries[i] = PhotoEntry{Photo: p, PlayerName: name, Votes: int(votes)}
	}
	return entries, nil
}
