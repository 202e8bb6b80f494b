package store

import (
	"errors"
	"time"

	"github.com/nyxlicense/backend/internal/models"
	"gorm.io/gorm"
)

// GormStore implements Store on top of a GORM Postgres handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindAccountByUsername(username string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (s *GormStore) ListAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Order("username").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *GormStore) InsertAccount(account *models.Account) error {
	if err := s.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *GormStore) UpdateAccountExpiry(username string, expiresAt time.Time) error {
	result := s.db.Model(&models.Account{}).Where("username = ?", username).Update("expires_at", expiresAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteAccount(username string) error {
	// Deleting an absent username is a no-op, matching the panel's
	// fire-and-forget delete button.
	return s.db.Where("username = ?", username).Delete(&models.Account{}).Error
}

func (s *GormStore) FindTrialByHwid(hwid string) (*models.TrialGrant, error) {
	var grant models.TrialGrant
	if err := s.db.Where("hwid = ?", hwid).First(&grant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &grant, nil
}

func (s *GormStore) ListTrials() ([]models.TrialGrant, error) {
	var grants []models.TrialGrant
	if err := s.db.Order("expires_at DESC").Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

func (s *GormStore) InsertTrial(grant *models.TrialGrant) error {
	if err := s.db.Create(grant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}
