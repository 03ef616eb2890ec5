package models

import "time"

const SPOT_ITEM_GOLD = "Gold"
const SPOT_ITEM_SILVER = "Silver"

// SpotPrice guarda a cotação diária de ouro/prata importada da planilha.
type SpotPrice struct {
	ID       int64     `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ItemName string    `gorm:"not null;size:10;unique_index:ux_item_date" json:"item_name"`
	BaseDate time.Time `gorm:"not null;type:date;unique_index:ux_item_date" json:"base_date"`
	Price    float64   `gorm:"not null" json:"price"`
}
