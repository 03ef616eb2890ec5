package db

import (
	"fmt"

	"finlife/models"

	"github.com/jinzhu/gorm"
)

type SpotPriceStore struct {
	db *gorm.DB
}

func NewSpotPriceStore(db *gorm.DB) *SpotPriceStore {
	return &SpotPriceStore{db: db}
}

// List devolve as cotações do item (ou de todos, se item == "") por data crescente.
func (s *SpotPriceStore) List(item string) ([]models.SpotPrice, error) {
	q := s.db.Order("base_date asc, id asc")
	if item != "" {
		q = q.Where("item_name = ?", item)
	}
	var out []models.SpotPrice
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list spot prices: %w", err)
	}
	return out, nil
}

// Insert grava a cotação se (item, data) ainda não existe.
func (s *SpotPriceStore) Insert(sp *models.SpotPrice) (bool, error) {
	var existing models.SpotPrice
	err := s.db.Where("item_name = ? AND base_date = ?", sp.ItemName, sp.BaseDate).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return false, err
	}
	if err := s.db.Create(sp).Error; err != nil {
		return false, fmt.Errorf("create spot price %s %s: %w", sp.ItemName, sp.BaseDate.Format("2006-01-02"), err)
	}
	return true, nil
}
