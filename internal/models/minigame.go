package models

import "time"

type MinigameResult struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	PlayerID  uint      `gorm:"not null;index" json:"player_id"`
	GameType  string    `gorm:"size:20;not null" json:"game_type"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	MinigameTetris   = "tetris"
	MinigameSnake    = "snake"
	MinigamePacman   = "pacman"
	MinigameArkanoid = "arkanoid"
	MinigameTrex     = "trex"
)

// MinigameTypes lists every playable challenge in display order.
var MinigameTypes = []string{MinigameTetris, MinigameSnake, MinigamePacman, MinigameArkanoid, MinigameTrex}

func IsMinigameType(s string) bool {
	for _, t := range MinigameTypes {
		if t == s {
			return true
		}
	}
	return false
}
