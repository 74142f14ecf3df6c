package models

import "time"

// PlayerAnswer is immutable once written; the unique index enforces one
// answer per player per question.
type PlayerAnswer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EventID    uint      `gorm:"not null;index" json:"event_id"`
	PlayerID   uint      `gorm:"not null;uniqueIndex:idx_answer_player_question" json:"player_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_answer_player_question" json:"question_id"`
	Correct    bool      `gorm:"not null" json:"correct"`
	AnsweredAt time.Time `json:"answered_at"`
}
