package models

// StateEntry is one raw key-value row of per-event game state. The typed
// mapping lives in the store package; nothing outside it should interpret
// Value directly.
type StateEntry struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	EventID uint   `gorm:"not null;uniqueIndex:idx_state_event_key" json:"event_id"`
	Key     string `gorm:"size:50;not null;uniqueIndex:idx_state_event_key" json:"key"`
	Value   string `gorm:"size:100;not null" json:"value"`
}
