package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey enumerates the listing orders. The zero value is the default
// order (company name, then product name).
type SortKey int

const (
	SortDefault SortKey = iota
	SortBestBonusRateDesc
	SortBestBaseRateDesc
	SortNameAsc
	SortBankAsc
)

type sortStrategy struct {
	wire  string
	rates bool
	cmp   func(a, b *ProductView) int
}

var sortStrategies = map[SortKey]sortStrategy{
	SortDefault:           {wire: "", cmp: byCompanyThenName},
	SortBestBonusRateDesc: {wire: "intr_rate2_desc", rates: true, cmp: byBonusThenBase},
	SortBestBaseRateDesc:  {wire: "intr_rate_desc", rates: true, cmp: byBaseThenBonus},
	SortNameAsc:           {wire: "name_asc", cmp: byName},
	SortBankAsc:           {wire: "bank_asc", cmp: byCompanyThenName},
}

// aliases accepted on the wire besides the canonical names
var sortAliases = map[string]SortKey{
	"bestbonusratedesc": SortBestBonusRateDesc,
	"bestbaseratedesc":  SortBestBaseRateDesc,
	"nameasc":           SortNameAsc,
	"bankasc":           SortBankAsc,
}

// ParseSortKey maps a query-string value to a SortKey. Unknown values fall
// back to SortDefault and are reported through the ValidationError.
func ParseSortKey(raw string) (SortKey, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return SortDefault, nil
	}
	for k, st := range sortStrategies {
		if st.wire != "" && st.wire == s {
			return k, nil
		}
	}
	if k, ok := sortAliases[strings.ToLower(s)]; ok {
		return k, nil
	}
	return SortDefault, &ValidationError{Field: "sort", Value: raw}
}

func (k SortKey) String() string {
	if st, ok := sortStrategies[k]; ok && st.wire != "" {
		return st.wire
	}
	return "default"
}

// NeedsRates reports whether the order depends on the rate aggregates.
func (k SortKey) NeedsRates() bool {
	return sortStrategies[k].rates
}

func (k SortKey) strategy() sortStrategy {
	if st, ok := sortStrategies[k]; ok {
		return st
	}
	return sortStrategies[SortDefault]
}

// sortViews orders views in place. Rate strategies expect Rates to be set.
func sortViews(views []ProductView, k SortKey) {
	st := k.strategy()
	slices.SortStableFunc(views, func(a, b ProductView) int {
		return st.cmp(&a, &b)
	})
}

func bestRates(v *ProductView) Rates {
	if v.Rates == nil {
		return Rates{}
	}
	return *v.Rates
}

func byCompanyThenName(a, b *ProductView) int {
	return cmp.Or(
		cmp.Compare(a.Company, b.Company),
		cmp.Compare(a.Name, b.Name),
	)
}

func byName(a, b *ProductView) int {
	return cmp.Compare(a.Name, b.Name)
}

func byBonusThenBase(a, b *ProductView) int {
	ra, rb := bestRates(a), bestRates(b)
	return cmp.Or(
		cmp.Compare(rb.Bonus, ra.Bonus),
		cmp.Compare(rb.Base, ra.Base),
		byCompanyThenName(a, b),
	)
}

func byBaseThenBonus(a, b *ProductView) int {
	ra, rb := bestRates(a), bestRates(b)
	return cmp.Or(
		cmp.Compare(rb.Base, ra.Base),
		cmp.Compare(rb.Bonus, ra.Bonus),
		byCompanyThenName(a, b),
	)
}
