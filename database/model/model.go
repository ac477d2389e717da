// Package model defines the persisted records of the panel: identities and the
// predictions made on their behalf.
package model

import (
	"strings"
	"time"
)

// Prediction is one classification result recorded for a user. Records are
// written once and never updated.
type Prediction struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId      int       `json:"userId" gorm:"not null;index"`
	User        *User     `json:"-" gorm:"foreignKey:UserId;references:Id;constraint:OnDelete:CASCADE"`
	DiseaseType string    `json:"diseaseType" gorm:"not null"`
	Result      string    `json:"result" gorm:"column:prediction_result;not null"`
	Confidence  *float64  `json:"confidence"` // percent, 0-100
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}

// IsPositive reports whether the result text names a detected condition.
// Model labels for a negative outcome start with "No" or "Not"
// ("Not Diabetic", "No Heart Disease").
func (p *Prediction) IsPositive() bool {
	r := strings.ToLower(strings.TrimSpace(p.Result))
	return !(strings.HasPrefix(r, "no ") || strings.HasPrefix(r, "not "))
}

// PredictionWithOwner pairs a prediction with its owner's login. Username is
// empty when the owning identity no longer exists.
type PredictionWithOwner struct {
	Prediction
	Username string `json:"username"`
}
