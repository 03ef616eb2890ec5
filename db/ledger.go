package db

import (
	"fmt"

	"finlife/models"

	"github.com/jinzhu/gorm"
)

// LedgerStore guarda os produtos aderidos de cada usuário, uma linha por par
// (user_id, product_code). O unique index impede duplicatas mesmo com joins
// concorrentes do mesmo usuário.
type LedgerStore struct {
	db *gorm.DB
}

func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func codesOf(db *gorm.DB, userID int64) ([]string, error) {
	var rows []models.Membership
	if err := db.Where("user_id = ?", userID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ProductCode)
	}
	return out, nil
}

func (s *LedgerStore) Codes(userID int64) ([]string, error) {
	codes, err := codesOf(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("ledger codes: %w", err)
	}
	return codes, nil
}

func (s *LedgerStore) Add(userID int64, code string) ([]string, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var existing models.Membership
	err := tx.Where("user_id = ? AND product_code = ?", userID, code).First(&existing).Error
	switch {
	case gorm.IsRecordNotFoundError(err):
		if err := tx.Create(&models.Membership{UserID: userID, ProductCode: code}).Error; err != nil {
			tx.Rollback()
			// outra requisição pode ter inserido o mesmo par entre o SELECT e o INSERT
			var count int
			if cerr := s.db.Model(&models.Membership{}).
				Where("user_id = ? AND product_code = ?", userID, code).
				Count(&count).Error; cerr == nil && count > 0 {
				return s.Codes(userID)
			}
			return nil, fmt.Errorf("ledger add: %w", err)
		}
	case err != nil:
		tx.Rollback()
		return nil, fmt.Errorf("ledger add: %w", err)
	}

	codes, err := codesOf(tx, userID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("ledger add: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("ledger add: %w", err)
	}
	return codes, nil
}

func (s *LedgerStore) Remove(userID int64, code string) ([]string, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	if err := tx.Where("user_id = ? AND product_code = ?", userID, code).Delete(&models.Membership{}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("ledger remove: %w", err)
	}
	codes, err := codesOf(tx, userID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("ledger remove: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("ledger remove: %w", err)
	}
	return codes, nil
}
