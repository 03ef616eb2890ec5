package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Product representa um produto de depósito/poupança do catálogo.
// Code é o identificador de negócio (fin_prdt_cd) e nunca muda depois de criado.
type Product struct {
	ID               int64        `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Code             string       `gorm:"not null;unique_index" json:"fin_prdt_cd"`
	Company          string       `gorm:"not null;index" json:"kor_co_nm"`
	Name             string       `gorm:"not null" json:"fin_prdt_nm"`
	EtcNote          string       `gorm:"type:text" json:"etc_note"`
	JoinDeny         int          `gorm:"not null;default:0" json:"join_deny"`
	JoinWay          string       `gorm:"type:text" json:"join_way"`
	SpecialCondition string       `gorm:"type:text" json:"spcl_cnd"`
	Embedding        *string      `gorm:"type:text" json:"-"` // JSON array (ex: [0.1,0.2,...]); nil até o backfill rodar
	Options          []RateOption `gorm:"foreignkey:ProductID" json:"options"`
	CreatedAt        *time.Time   `json:"created_at"`
	UpdatedAt        *time.Time   `json:"updated_at"`
}

// HasEmbedding reports whether a vector has been stored for the product.
func (p Product) HasEmbedding() bool {
	return p.Embedding != nil && strings.TrimSpace(*p.Embedding) != ""
}

// Vector decodes the stored embedding. ok is false when none is stored.
func (p Product) Vector() (vec []float64, ok bool, err error) {
	if !p.HasEmbedding() {
		return nil, false, nil
	}
	vec, err = DecodeVector(*p.Embedding)
	if err != nil {
		return nil, false, err
	}
	return vec, true, nil
}

// DecodeVector parses a JSON float array, rejecting NaN/Inf and empty arrays.
func DecodeVector(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty embedding string")
	}
	var arr []float64
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return nil, err
	}
	for _, v := range arr {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid embedding value")
		}
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("empty embedding array")
	}
	return arr, nil
}

// EncodeVector is the inverse of DecodeVector.
func EncodeVector(vec []float64) (string, error) {
	b, err := json.Marshal(vec)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
