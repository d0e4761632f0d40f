// Package persistence keeps the record store snapshot in a durable slot.
//
// A Slot is the raw key-value backend (database row, file or memory).
// Adapter sits on top of it, owns the snapshot encoding and absorbs every
// failure so that callers keep working on their in-memory state.
package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/xelth-com/eckform/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSlotEmpty is returned by Slot.Read when nothing is stored under the key
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a durable key-value store holding opaque values
type Slot interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Remove(key string) error
}

// GormSlot stores values in the storage_slots table
type GormSlot struct {
	db *gorm.DB
}

// NewGormSlot creates a slot backend on top of an open gorm connection.
// The storage_slots table must already be migrated.
func NewGormSlot(db *gorm.DB) *GormSlot {
	return &GormSlot{db: db}
}

func (s *GormSlot) Read(key string) ([]byte, error) {
	var slot models.StorageSlot
	err := s.db.Where("slot_key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return []byte(slot.Value), nil
}

func (s *GormSlot) Write(key string, value []byte) error {
	slot := models.StorageSlot{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}

func (s *GormSlot) Remove(key string) error {
	return s.db.Where("slot_key = ?", key).Delete(&models.StorageSlot{}).Error
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// FileSlot stores each key as <dir>/<key>.json
type FileSlot struct {
	dir string
}

// NewFileSlot creates the directory if needed
func NewFileSlot(dir string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileSlot{dir: dir}, nil
}

func (s *FileSlot) path(key string) string {
	return filepath.Join(s.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (s *FileSlot) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSlotEmpty
	}
	return data, err
}

// Write replaces the file atomically through a temp file and rename
func (s *FileSlot) Write(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".slot-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path(key))
}

func (s *FileSlot) Remove(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemorySlot keeps values in process memory
type MemorySlot struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string][]byte)}
}

func (s *MemorySlot) Read(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

func (s *MemorySlot) Write(key string, value []byte) error {
	s.mu.Lock()
	s.values[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

func (s *MemorySlot) Remove(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}
