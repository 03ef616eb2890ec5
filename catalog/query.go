package catalog

import (
	"strconv"
	"strings"

	"finlife/models"
)

// Filters are AND-combined; zero values mean "no filter".
type Filters struct {
	Bank   string // substring of company name, case-insensitive
	Term   *int   // any option with exactly this term (months)
	Search string // substring of company OR product name, case-insensitive
}

// ParseFilters builds Filters from raw query-string values. A malformed term
// is dropped (the listing degrades to "no term filter") and reported in errs.
func ParseFilters(bank, term, search string) (f Filters, errs []error) {
	f.Bank = strings.TrimSpace(bank)
	f.Search = strings.TrimSpace(search)
	if t := strings.TrimSpace(term); t != "" {
		n, err := strconv.Atoi(t)
		if err != nil {
			errs = append(errs, &ValidationError{Field: "term", Value: term})
		} else {
			f.Term = &n
		}
	}
	return f, errs
}

// ProductStore is the read side of the product catalog.
type ProductStore interface {
	// Get returns the product with its options, or ErrNotFound.
	Get(code string) (models.Product, error)
	// List applies the filters. Results carry their options and may repeat a
	// product when several of its options matched the term filter.
	List(f Filters) ([]models.Product, error)
	// ListByCodes returns the products whose code is in codes; unknown codes are skipped.
	ListByCodes(codes []string) ([]models.Product, error)
	// ListEmbedded returns every product that has a stored embedding.
	ListEmbedded() ([]models.Product, error)
}

// ProductView is a product as returned by listings. Rates is only filled
// when the caller asked for a rate-based order (or for a single product).
type ProductView struct {
	models.Product
	Rates *Rates `json:"rates,omitempty"`
}

// Engine runs catalog queries over a ProductStore.
type Engine struct {
	products ProductStore
}

func NewEngine(products ProductStore) *Engine {
	return &Engine{products: products}
}

// Query filters, deduplicates by product code and orders the catalog.
func (e *Engine) Query(f Filters, sort SortKey) ([]ProductView, error) {
	products, err := e.products.List(f)
	if err != nil {
		return nil, err
	}

	withRates := sort.NeedsRates()
	seen := make(map[string]struct{}, len(products))
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.Code]; dup {
			continue
		}
		seen[p.Code] = struct{}{}

		v := ProductView{Product: p}
		if withRates {
			r := BestRates(optionsForTerm(p.Options, f.Term))
			v.Rates = &r
		}
		views = append(views, v)
	}

	sortViews(views, sort)
	return views, nil
}

// optionsForTerm keeps only the options with the filtered term, so a term
// listing is ranked by that term's rates. nil term keeps every option.
func optionsForTerm(options []models.RateOption, term *int) []models.RateOption {
	if term == nil {
		return options
	}
	out := make([]models.RateOption, 0, len(options))
	for _, o := range options {
		if o.TermMonths == *term {
			out = append(out, o)
		}
	}
	return out
}

// Get returns a single product with its options and best rates.
func (e *Engine) Get(code string) (ProductView, error) {
	p, err := e.products.Get(code)
	if err != nil {
		return ProductView{}, err
	}
	r := BestRates(p.Options)
	return ProductView{Product: p, Rates: &r}, nil
}
