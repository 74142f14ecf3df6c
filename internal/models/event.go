package models

import "time"

// Event is one isolated game instance. The host credential and the game
// configuration live on the same row: one host account runs one event.
type Event struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null;default:'Nowy Event'" json:"name"`
	Login          string    `gorm:"size:50;uniqueIndex;not null" json:"login"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	RemotePassword string    `gorm:"size:255" json:"-"`
	GamePassword   string    `gorm:"size:100;not null;default:'SAPEREVENT'" json:"-"`
	RevealMode     string    `gorm:"size:10;not null;default:'auto'" json:"reveal_mode"`
	RevealPercent  float64   `gorm:"not null;default:10" json:"reveal_percent"`
	Languages      string    `gorm:"size:100;default:'pl'" json:"languages"`
	CreatedAt      time.Time `json:"created_at"`
}

const (
	RevealModeAuto   = "auto"
	RevealModeManual = "manual"
)
