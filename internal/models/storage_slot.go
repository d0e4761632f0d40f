package models

import (
	"time"

	"gorm.io/datatypes"
)

// StorageSlot is a named durable key-value slot.
// The record store keeps its whole snapshot in a single slot.
type StorageSlot struct {
	Key       string         `gorm:"column:slot_key;primaryKey;size:128" json:"key"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// TableName specifies the table name for StorageSlot model
func (StorageSlot) TableName() string {
	return "storage_slots"
}
