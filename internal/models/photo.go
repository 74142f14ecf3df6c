package models

import "time"

type Photo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	PlayerID  uint      `gorm:"not null" json:"player_id"`
	URL       string    `gorm:"size:500;not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// PhotoVote allows one vote per voter per event.
type PhotoVote struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	EventID uint `gorm:"not null;uniqueIndex:idx_vote_event_voter" json:"event_id"`
	PhotoID uint `gorm:"not null;index" json:"photo_id"`
	VoterID uint `gorm:"not null;uniqueIndex:idx_vote_event_voter" json:"voter_id"`
}
