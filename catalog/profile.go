package catalog

import (
	"cmp"
	"slices"

	"finlife/models"
)

// JoinedProduct is one row of the profile's joined-products table.
type JoinedProduct struct {
	Code          string  `json:"fin_prdt_cd"`
	Company       string  `json:"kor_co_nm"`
	Name          string  `json:"fin_prdt_nm"`
	BestBaseRate  float64 `json:"max_intr_rate"`
	BestBonusRate float64 `json:"max_intr_rate2"`
}

// Chart keeps labels and values as parallel arrays of equal length.
type Chart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type Profile struct {
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Nickname       string          `json:"nickname"`
	Age            int             `json:"age"`
	Money          int             `json:"money"`
	Salary         int             `json:"salary"`
	JoinedProducts []JoinedProduct `json:"joined_products"`
	Chart          Chart           `json:"chart"`
}

// ProfileBuilder composes the ledger with the product catalog.
type ProfileBuilder struct {
	products ProductStore
	ledger   LedgerStore
}

func NewProfileBuilder(products ProductStore, ledger LedgerStore) *ProfileBuilder {
	return &ProfileBuilder{products: products, ledger: ledger}
}

// Build resolves the user's ledger against the catalog. Codes whose product no
// longer exists are dropped; the result is ordered by company then name,
// regardless of join order.
func (b *ProfileBuilder) Build(user models.User) (Profile, error) {
	joined, err := b.JoinedProducts(user.ID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Nickname:       user.Nickname,
		Age:            user.Age,
		Money:          user.Money,
		Salary:         user.Salary,
		JoinedProducts: joined,
		Chart:          ChartOf(joined),
	}, nil
}

func (b *ProfileBuilder) JoinedProducts(userID int64) ([]JoinedProduct, error) {
	codes, err := b.ledger.Codes(userID)
	if err != nil {
		return nil, err
	}
	out := []JoinedProduct{}
	if len(codes) == 0 {
		return out, nil
	}

	products, err := b.products.ListByCodes(codes)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.Code]; dup {
			continue
		}
		seen[p.Code] = struct{}{}
		r := BestRates(p.Options)
		out = append(out, JoinedProduct{
			Code:          p.Code,
			Company:       p.Company,
			Name:          p.Name,
			BestBaseRate:  r.Base,
			BestBonusRate: r.Bonus,
		})
	}

	slices.SortStableFunc(out, func(a, b JoinedProduct) int {
		return cmp.Or(cmp.Compare(a.Company, b.Company), cmp.Compare(a.Name, b.Name))
	})
	return out, nil
}

// ChartOf projects joined products onto the labels/values chart shape.
func ChartOf(joined []JoinedProduct) Chart {
	c := Chart{
		Labels: make([]string, 0, len(joined)),
		Values: make([]float64, 0, len(joined)),
	}
	for _, j := range joined {
		c.Labels = append(c.Labels, j.Name)
		c.Values = append(c.Values, j.BestBonusRate)
	}
	return c
}
