package models

import "time"

// Prediction is a persisted classification result. ID is store-assigned and
// immutable; UserID is set at creation and never mutated afterwards.
type Prediction struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string    `gorm:"index;not null" json:"userId"`
	Filename   string    `json:"filename"` // original upload name, informational only
	Prediction string    `json:"prediction"`
	Confidence float64   `json:"confidence"`
	Calories   *int      `json:"calories,omitempty"` // filled later by enrichment, may stay absent
	CreatedAt  time.Time `json:"createdAt"`
}

// PredictionUpdate carries the mutable fields of a Prediction. ID and UserID
// are deliberately not representable here.
type PredictionUpdate struct {
	Prediction *string  `json:"prediction"`
	Confidence *float64 `json:"confidence"`
	Calories   *int     `json:"calories"`
}

// Empty reports whether the update would change nothing.
func (u PredictionUpdate) Empty() bool {
	return u.Prediction == nil && u.Confidence == nil && u.Calories == nil
}
