package models

import "time"

type Player struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	EventID  uint   `gorm:"not null;uniqueIndex:idx_player_event_name" json:"event_id"`
	Name     string `gorm:"size:80;not null;uniqueIndex:idx_player_event_name" json:"name"`
	Token    string `gorm:"size:64;index" json:"token,omitempty"`
	Score    int    `gorm:"not null;default:0" json:"score"`
	Warnings int    `gorm:"not null;default:0" json:"warnings"`

	JoinedAt time.Time `json:"joined_at"`
}
