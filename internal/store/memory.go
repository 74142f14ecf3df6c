package store

import (
	"sync"
	"time"
)

// MemoryStateRepository is a map-backed StateRepository. It shares the
// encode/decode path with the database-backed one, so tests exercise the
// same string mapping that production uses.
type MemoryStateRepository struct {
	mu     sync.Mutex
	events map[uint]map[string]string
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{events: make(map[uint]map[string]string)}
}

func (r *MemoryStateRepository) Load(eventID uint) (GameState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return decodeState(r.events[eventID]), nil
}

func (r *MemoryStateRepository) Save(eventID uint, st GameState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kv := r.events[eventID]
	if kv == nil {
		kv = make(map[string]string)
		r.events[eventID] = kv
	}
	for k, v := range encodeState(st) {
		kv[k] = v
	}
	return nil
}

func (r *MemoryStateRepository) SetEndTime(eventID uint, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kv := r.events[eventID]
	if kv == nil {
		kv = make(map[string]string)
		r.events[eventID] = kv
	}
	kv[keyEndTime] = encodeTime(end)
	return nil
}

func (r *MemoryStateRepository) Clear(eventID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.events, eventID)
	return nil
}

func (r *MemoryStateRepository) ActiveEventIDs() ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uint
	for id, kv := range r.events {
		if parseBool(kv[keyActive]) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *MemoryStateRepository) Flag(eventID uint, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return parseBool(r.events[eventID][flagPrefix+name]), nil
}

func (r *MemoryStateRepository) SetFlag(eventID uint, name string, on bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kv := r.events[eventID]
	if kv == nil {
		kv = make(map[string]string)
		r.events[eventID] = kv
	}
	if on {
		kv[flagPrefix+name] = "true"
	} else {
		kv[flagPrefix+name] = "false"
	}
	return nil
}
