package models

import "time"

// QRCode is a printed code definition. Definitions survive game restarts;
// only the claim reference is cleared when a new game begins.
type QRCode struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	EventID           uint   `gorm:"not null;uniqueIndex:idx_qr_event_code" json:"event_id"`
	CodeIdentifier    string `gorm:"size:50;not null;uniqueIndex:idx_qr_event_code" json:"code_identifier"`
	IsRed             bool   `gorm:"not null;default:false" json:"is_red"`
	ClaimedByPlayerID *uint  `json:"claimed_by_player_id,omitempty"`
}

// PlayerScan records one white-code scan, used for the per-code cooldown.
type PlayerScan struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	EventID  uint      `gorm:"not null;index" json:"event_id"`
	PlayerID uint      `gorm:"not null;index:idx_scan_player_code" json:"player_id"`
	QRCodeID uint      `gorm:"not null;index:idx_scan_player_code" json:"qr_code_id"`
	ScanTime time.Time `gorm:"not null" json:"scan_time"`
}
