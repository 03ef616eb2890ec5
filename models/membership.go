package models

import "time"

// Membership liga um usuário a um produto "aderido" (join/bookmark).
// Regra: unique(user_id, product_code); a ordem de inserção é a ordem do id.
// Não há FK para products: se o produto sumir, a linha fica pendurada e é filtrada na leitura.
type Membership struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID      int64      `gorm:"not null;index;unique_index:ux_user_product" json:"user_id"`
	ProductCode string     `gorm:"not null;unique_index:ux_user_product" json:"product_code"`
	CreatedAt   *time.Time `json:"created_at"`
}
