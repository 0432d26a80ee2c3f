// Package models contains the database model definitions.
package models

import (
	"time"
)

// Entry is one durable key-value record. Everything the firmware
// persists is a 64-bit word; byte-sized values share the word column
// and are truncated on read.
// Table: entries
type Entry struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Key       string    `gorm:"column:key;uniqueIndex"`
	Word      uint64    `gorm:"column:word"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Entry) TableName() string { return "entries" }
