package store

import (
	"fmt"
	"time"

	"github.com/michalkopec1981/saper/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStateRepository keeps game state in the state_entries table, one row
// per (event, key).
type GormStateRepository struct {
	db *gorm.DB
}

func NewGormStateRepository(db *gorm.DB) *GormStateRepository {
	return &GormStateRepository{db: db}
}

func (r *GormStateRepository) Load(eventID uint) (GameState, error) {
	var entries []models.StateEntry
	if err := r.db.Where("event_id = ?", eventID).Find(&entries).Error; err != nil {
		return Defaults(), fmt.Errorf("load state for event %d: %w", eventID, err)
	}
	kv := make(map[string]string, len(entries))
	for _, e := range entries {
		kv[e.Key] = e.Value
	}
	return decodeState(kv), nil
}

func (r *GormStateRepository) Save(eventID uint, st GameState) error {
	kv := encodeState(st)
	return r.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range kv {
			if err := r.upsert(tx, eventID, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormStateRepository) SetEndTime(eventID uint, end time.Time) error {
	return r.upsert(r.db, eventID, keyEndTime, encodeTime(end))
}

func (r *GormStateRepository) Clear(eventID uint) error {
	return r.db.Where("event_id = ?", eventID).Delete(&models.StateEntry{}).Error
}

func (r *GormStateRepository) ActiveEventIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.StateEntry{}).
		Where("key = ? AND value = ?", keyActive, "true").
		Order("event_id ASC").
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list active events: %w", err)
	}
	return ids, nil
}

func (r *GormStateRepository) Flag(eventID uint, name string) (bool, error) {
	var entry models.StateEntry
	err := r.db.Where("event_id = ? AND key = ?", eventID, flagPrefix+name).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return parseBool(entry.Value), nil
}

func (r *GormStateRepository) SetFlag(eventID uint, name string, on bool) error {
	return r.upsert(r.db, eventID, flagPrefix+name, fmt.Sprintf("%t", on))
}

func (r *GormStateRepository) upsert(tx *gorm.DB, eventID uint, key, value string) error {
	entry := models.StateEntry{EventID: eventID, Key: key, Value: value}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("set %s for event %d: %w", key, eventID, err)
	}
	return nil
}
