package models

import "time"

// TrialGrant records a one-time trial window for a device. A hwid gets at
// most one grant ever; there is no renewal or refresh path, so expired
// rows are kept to block repeat trials.
type TrialGrant struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Hwid      string    `gorm:"uniqueIndex;size:255;not null" json:"hwid"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (TrialGrant) TableName() string {
	return "trial_grants"
}
