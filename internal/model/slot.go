package model

import "time"

// Slot is a single string-keyed blob of durable state. The whole
// persisted layout of the app is a handful of JSON-encoded slots with
// last-writer-wins semantics; there is no atomicity across keys.
type Slot struct {
	Key       string    `gorm:"primaryKey;size:128"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
