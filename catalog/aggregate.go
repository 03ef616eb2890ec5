package catalog

import "finlife/models"

// Rates holds the best (max) base and bonus rate over a product's options.
type Rates struct {
	Base  float64 `json:"best_base_rate"`
	Bonus float64 `json:"best_bonus_rate"`
}

// BestRates is the single max-over-options aggregate used by listing, profile
// and recommendation. Absent rates are skipped; a field with no present value
// (or no options at all) defaults to 0.0.
func BestRates(options []models.RateOption) Rates {
	var r Rates
	var haveBase, haveBonus bool
	for _, o := range options {
		if o.BaseRate != nil && (!haveBase || *o.BaseRate > r.Base) {
			r.Base = *o.BaseRate
			haveBase = true
		}
		if o.BonusRate != nil && (!haveBonus || *o.BonusRate > r.Bonus) {
			r.Bonus = *o.BonusRate
			haveBonus = true
		}
	}
	return r
}
