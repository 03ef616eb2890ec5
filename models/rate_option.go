package models

// RateOption é uma variante de taxa/prazo de um Product.
// Regra: (product_id, term_months, rate_type) é único.
// BaseRate/BonusRate nil significa "desconhecido", nunca zero.
type RateOption struct {
	ID          int64    `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ProductID   int64    `gorm:"not null;index;unique_index:ux_product_term_type" json:"product"`
	ProductCode string   `gorm:"not null;index" json:"fin_prdt_cd"`
	RateType    string   `gorm:"not null;unique_index:ux_product_term_type" json:"intr_rate_type_nm"`
	BaseRate    *float64 `json:"intr_rate"`
	BonusRate   *float64 `json:"intr_rate2"`
	TermMonths  int      `gorm:"not null;index;unique_index:ux_product_term_type" json:"save_trm"`
}
