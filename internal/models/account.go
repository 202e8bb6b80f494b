package models

import (
	"time"
)

// DateFormat is the day-granularity format account expiry dates are
// persisted and exchanged in. Trial expiry keeps full timestamps.
const DateFormat = "2006-01-02"

// Account represents a licensed end-user account.
// Passwords are stored and compared as-is; the desktop client sends the
// same value verbatim on every authenticate call.
type Account struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	Username  string     `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password  string     `gorm:"size:255;not null" json:"password"`
	ExpiresAt *time.Time `gorm:"type:date" json:"-"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}

// ExpiryString renders the expiry the way the admin panel displays it.
func (a *Account) ExpiryString() string {
	if a.ExpiresAt == nil {
		return "N/A"
	}
	return a.ExpiresAt.Format(DateFormat)
}

// IsExpired reports whether the account is denied by the expiry gate at
// the given instant. A missing expiry counts as expired.
func (a *Account) IsExpired(now time.Time) bool {
	return a.ExpiresAt == nil || a.ExpiresAt.Before(now)
}
