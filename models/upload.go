package models

import "time"

// Upload tracks a stored image: who uploaded it, the renamed object key and
// the confidence of the prediction it produced.
type Upload struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"index;not null" json:"userId"`
	Filename   string    `gorm:"not null" json:"filename"` // renamed, <uuid><ext>
	Confidence float64   `json:"confidence"`
	UploadTime time.Time `gorm:"not null" json:"uploadTime"`
}
