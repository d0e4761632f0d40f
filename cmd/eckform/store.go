package main

import (
	"fmt"

	"github.com/xelth-com/eckform/internal/config"
	"github.com/xelth-com/eckform/internal/database"
	"github.com/xelth-com/eckform/internal/models"
	"github.com/xelth-com/eckform/internal/persistence"
	"github.com/xelth-com/eckform/internal/store"
	"go.uber.org/zap"
)

// openStore builds the slot backend chosen by the configuration and loads
// the saved records. The returned close function releases the backend.
func openStore(cfg *config.Config, logger *zap.Logger) (*store.Store, func(), error) {
	slot, closeSlot, err := openSlot(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	adapter := persistence.NewAdapter(slot, cfg.Store.Key, logger.Named("persistence"))
	st := store.New(adapter, store.WithLogger(logger.Named("store")))
	st.LoadInitial()
	logger.Info("📂 Store opened",
		zap.String("backend", cfg.Store.Backend),
		zap.String("key", adapter.Key()),
		zap.Int("records", st.Count()),
	)

	return st, closeSlot, nil
}

func openSlot(cfg *config.Config, logger *zap.Logger) (persistence.Slot, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Warn("⚠️ Memory backend: records are lost on exit")
		return persistence.NewMemorySlot(), func() {}, nil

	case config.BackendFile:
		slot, err := persistence.NewFileSlot(cfg.Store.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open store directory: %w", err)
		}
		return slot, func() {}, nil
	}

	db, err := database.Connect(cfg.Database, logger.Named("database"))
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(&models.StorageSlot{}); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate storage slots: %w", err)
	}

	closeDB := func() {
		logger.Info("🛑 Closing database connection...")
		if err := db.Close(); err != nil {
			logger.Error("Database close error", zap.Error(err))
		}
	}
	return persistence.NewGormSlot(db.DB), closeDB, nil
}
