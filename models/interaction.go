package models

import "time"

// Interaction is one append-only audit entry per inbound API request.
// UserID is empty when the request failed authentication.
type Interaction struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"index" json:"userId,omitempty"`
	Endpoint  string    `gorm:"not null" json:"endpoint"`
	Method    string    `gorm:"not null" json:"method"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}
