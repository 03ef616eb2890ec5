package catalog

import (
	"errors"
	"testing"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		raw     string
		want    SortKey
		invalid bool
	}{
		{"", SortDefault, false},
		{"intr_rate2_desc", SortBestBonusRateDesc, false},
		{"intr_rate_desc", SortBestBaseRateDesc, false},
		{"name_asc", SortNameAsc, false},
		{"bank_asc", SortBankAsc, false},
		{"bestBonusRateDesc", SortBestBonusRateDesc, false},
		{"bestBaseRateDesc", SortBestBaseRateDesc, false},
		{"price_desc", SortDefault, true},
	}
	for _, tt := range tests {
		got, err := ParseSortKey(tt.raw)
		if got != tt.want {
			t.Errorf("ParseSortKey(%q) = %v, want %v", tt.raw, got, tt.want)
		}
		var verr *ValidationError
		if tt.invalid != errors.As(err, &verr) {
			t.Errorf("ParseSortKey(%q) err = %v, invalid = %v", tt.raw, err, tt.invalid)
		}
	}
}

func TestNeedsRates(t *testing.T) {
	for k, want := range map[SortKey]bool{
		SortDefault:           false,
		SortBestBonusRateDesc: true,
		SortBestBaseRateDesc:  true,
		SortNameAsc:           false,
		SortBankAsc:           false,
	} {
		if k.NeedsRates() != want {
			t.Errorf("%v.NeedsRates() = %v, want %v", k, !want, want)
		}
	}
}
