// Package store holds the authoritative in-memory collection of form records.
//
// Records are kept newest first. Every mutation is written through the
// persistence adapter before the call returns, then subscribers are told
// about it.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/xelth-com/eckform/internal/models"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no record has the requested id
var ErrNotFound = errors.New("record not found")

// Persister is the durable side of the store
type Persister interface {
	Save(state models.StoreState)
	Load() (models.StoreState, bool)
	Clear()
}

// EventKind identifies what changed in the store
type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
	EventCleared EventKind = "cleared"
	EventLoaded  EventKind = "loaded"
)

// Event describes a completed store change
type Event struct {
	Kind     EventKind `json:"kind"`
	RecordID int64     `json:"recordId,omitempty"`
	Count    int       `json:"count"`
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Store owns the records and the id counter
type Store struct {
	mu      sync.Mutex
	records []models.Record
	nextID  int64

	persister Persister
	now       func() time.Time
	logger    *zap.Logger

	subMu     sync.Mutex
	subs      map[int]func(Event)
	nextSubID int
}

// New creates an empty store. Call LoadInitial to pick up saved data.
func New(persister Persister, opts ...Option) *Store {
	s := &Store{
		records:   []models.Record{},
		nextID:    1,
		persister: persister,
		now:       time.Now,
		logger:    zap.NewNop(),
		subs:      make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadInitial replaces the store contents with the persisted snapshot.
// It reports whether saved data was found; without it the store is empty
// and the next id is 1.
func (s *Store) LoadInitial() bool {
	state, ok := s.persister.Load()

	s.mu.Lock()
	if ok {
		s.records = state.Records
		s.nextID = state.NextID
		if max := state.MaxID(); s.nextID <= max {
			s.logger.Warn("⚠️ Stored next id is behind the records, advancing",
				zap.Int64("next_id", s.nextID), zap.Int64("max_id", max))
			s.nextID = max + 1
		}
	} else {
		s.records = []models.Record{}
		s.nextID = 1
	}
	count, nextID := len(s.records), s.nextID
	s.mu.Unlock()

	if ok {
		s.logger.Info("✅ Data loaded", zap.Int("records", count), zap.Int64("next_id", nextID))
	} else {
		s.logger.Info("📝 No saved data found. Starting fresh.")
	}
	s.notify(Event{Kind: EventLoaded, Count: count})
	return ok
}

// Create stores a new record at the front of the collection
func (s *Store) Create(fields models.Fields) models.Record {
	s.mu.Lock()
	now := s.now().UTC()
	record := models.Record{
		ID:        s.nextID,
		Fields:    fields.Normalize(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.records = append([]models.Record{record}, s.records...)
	s.persistLocked()
	count := len(s.records)
	s.mu.Unlock()

	s.logger.Info("Record created", zap.Int64("id", record.ID))
	s.notify(Event{Kind: EventCreated, RecordID: record.ID, Count: count})
	return record
}

// Update replaces the content fields of a record. The id and creation
// time are kept and the update time never moves backwards.
func (s *Store) Update(id int64, fields models.Fields) (models.Record, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Record{}, ErrNotFound
	}

	record := s.records[i]
	record.Fields = fields.Normalize()
	now := s.now().UTC()
	if now.Before(record.UpdatedAt) {
		now = record.UpdatedAt
	}
	record.UpdatedAt = now
	s.records[i] = record
	s.persistLocked()
	count := len(s.records)
	s.mu.Unlock()

	s.logger.Info("Record updated", zap.Int64("id", id))
	s.notify(Event{Kind: EventUpdated, RecordID: id, Count: count})
	return record, nil
}

// Delete removes a record and returns it. The id is never handed out again.
func (s *Store) Delete(id int64) (models.Record, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Record{}, ErrNotFound
	}

	removed := s.records[i]
	s.records = append(s.records[:i:i], s.records[i+1:]...)
	s.persistLocked()
	count := len(s.records)
	s.mu.Unlock()

	s.logger.Info("Record deleted", zap.Int64("id", id))
	s.notify(Event{Kind: EventDeleted, RecordID: id, Count: count})
	return removed, nil
}

// FindByID looks a record up without changing anything
func (s *Store) FindByID(id int64) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return models.Record{}, ErrNotFound
	}
	return s.records[i], nil
}

// ClearAll empties the store, resets the id counter and removes the saved data
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.records = []models.Record{}
	s.nextID = 1
	s.persister.Clear()
	s.mu.Unlock()

	s.logger.Info("🗑️ All data cleared")
	s.notify(Event{Kind: EventCleared})
}

// Records returns a copy of all records, newest first
func (s *Store) Records() []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Count returns the number of records
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// NextID returns the id the next created record will get
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID
}

// State returns a snapshot of the store
func (s *Store) State() models.StoreState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Subscribe registers fn for every store change. Events are delivered
// synchronously after the change is complete. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(e Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

func (s *Store) indexLocked(id int64) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) stateLocked() models.StoreState {
	records := make([]models.Record, len(s.records))
	copy(records, s.records)
	return models.StoreState{Records: records, NextID: s.nextID}
}

func (s *Store) persistLocked() {
	s.persister.Save(s.stateLocked())
}
