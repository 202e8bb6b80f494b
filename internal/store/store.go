// Package store is the persistence boundary for accounts and trial
// grants. Every operation is a single atomic row access keyed by the
// record's unique column; the database's own constraints are what make
// concurrent creates safe.
package store

import (
	"errors"
	"time"

	"github.com/nyxlicense/backend/internal/models"
)

var (
	// ErrNotFound means the operation target does not exist.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicate means a unique key (username, hwid) is already taken.
	ErrDuplicate = errors.New("store: duplicate key")
)

// Store exposes the row operations the gateway needs.
type Store interface {
	FindAccountByUsername(username string) (*models.Account, error)
	ListAccounts() ([]models.Account, error)
	InsertAccount(account *models.Account) error
	UpdateAccountExpiry(username string, expiresAt time.Time) error
	DeleteAccount(username string) error

	FindTrialByHwid(hwid string) (*models.TrialGrant, error)
	ListTrials() ([]models.TrialGrant, error)
	InsertTrial(grant *models.TrialGrant) error
}
