package model

import "time"

// Observation statuses emitted by the polling pipeline.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// StoreStatus is a single point-in-time poll of a store. Rows are append-only
// once ingested.
type StoreStatus struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	StoreID      string    `gorm:"index;size:64;not null"`
	TimestampUTC time.Time `gorm:"index;not null"`
	Status       string    `gorm:"size:16;not null"`
}
