package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xelth-com/eckform/internal/models"
	"go.uber.org/zap"
)

// DefaultKey is the slot name the store snapshot lives under
const DefaultKey = "tableDataStore"

// Adapter saves and loads the store snapshot. None of its methods fail:
// problems are logged and the caller carries on with in-memory state.
type Adapter struct {
	slot   Slot
	key    string
	logger *zap.Logger
}

// NewAdapter wraps slot. An empty key falls back to DefaultKey.
func NewAdapter(slot Slot, key string, logger *zap.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{slot: slot, key: key, logger: logger}
}

// Key returns the slot name
func (a *Adapter) Key() string {
	return a.key
}

// Save overwrites the slot with state
func (a *Adapter) Save(state models.StoreState) {
	if state.Records == nil {
		state.Records = []models.Record{}
	}
	data, err := json.Marshal(state)
	if err != nil {
		a.logger.Error("❌ Error encoding store snapshot", zap.Error(err))
		return
	}
	if err := a.slot.Write(a.key, data); err != nil {
		a.logger.Error("❌ Error saving store snapshot", zap.String("key", a.key), zap.Error(err))
		return
	}
	a.logger.Debug("✅ Data saved", zap.Int("records", len(state.Records)))
}

// Load returns the saved snapshot. The boolean is false when there is no
// usable data: the slot is empty, unreadable or holds something that does
// not parse as a snapshot.
func (a *Adapter) Load() (models.StoreState, bool) {
	data, err := a.slot.Read(a.key)
	if errors.Is(err, ErrSlotEmpty) {
		return models.StoreState{}, false
	}
	if err != nil {
		a.logger.Error("❌ Error reading store snapshot", zap.String("key", a.key), zap.Error(err))
		return models.StoreState{}, false
	}

	state, err := decodeState(data)
	if err != nil {
		a.logger.Error("❌ Error decoding store snapshot", zap.String("key", a.key), zap.Error(err))
		return models.StoreState{}, false
	}

	if state.Records == nil {
		state.Records = []models.Record{}
	}
	for i := range state.Records {
		state.Records[i].Fields = state.Records[i].Fields.Normalize()
	}
	if state.NextID < 1 {
		state.NextID = 1
	}

	a.logger.Debug("✅ Data loaded", zap.Int("records", len(state.Records)), zap.Int64("next_id", state.NextID))
	return state, true
}

// Clear removes the slot
func (a *Adapter) Clear() {
	if err := a.slot.Remove(a.key); err != nil {
		a.logger.Error("❌ Error clearing store snapshot", zap.String("key", a.key), zap.Error(err))
		return
	}
	a.logger.Info("🗑️ Storage cleared", zap.String("key", a.key))
}

func decodeState(data []byte) (models.StoreState, error) {
	var state models.StoreState
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return state, errors.New("snapshot is null")
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, err
	}
	seen := make(map[int64]struct{}, len(state.Records))
	for _, r := range state.Records {
		if r.ID < 1 {
			return state, fmt.Errorf("record with invalid id %d", r.ID)
		}
		if _, dup := seen[r.ID]; dup {
			return state, fmt.Errorf("duplicate record id %d", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return state, nil
}
