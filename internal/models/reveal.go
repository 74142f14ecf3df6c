package models

// RevealedPosition is one unlocked character index of the event's password.
// The unique index makes the revealed set grow-only: re-revealing a position
// is a no-op conflict, and nothing deletes rows except a full reset.
type RevealedPosition struct {
	ID       uint `gorm:"primaryKey" json:"-"`
	EventID  uint `gorm:"not null;uniqueIndex:idx_reveal_event_pos" json:"event_id"`
	Position int  `gorm:"not null;uniqueIndex:idx_reveal_event_pos" json:"position"`
}
