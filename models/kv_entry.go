package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry is one row of the SQL-backed key-value store. Each collection is a
// single row whose Value holds the whole JSON array.
type KVEntry struct {
	Key       string         `gorm:"column:entry_key;primaryKey;size:128" json:"key"`
	Value     datatypes.JSON `gorm:"column:payload" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (KVEntry) TableName() string { return "kv_entries" }
