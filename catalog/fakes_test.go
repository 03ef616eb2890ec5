package catalog

import (
	"context"
	"slices"
	"strings"

	"finlife/models"
)

func rate(v float64) *float64 { return &v }

func opt(term int, base, bonus *float64) models.RateOption {
	return models.RateOption{RateType: "단리", TermMonths: term, BaseRate: base, BonusRate: bonus}
}

func embedded(values ...float64) *string {
	s, err := models.EncodeVector(values)
	if err != nil {
		panic(err)
	}
	return &s
}

// memProducts is an in-memory ProductStore that mimics the SQL join:
// a product is emitted once per option matching the term filter.
type memProducts struct {
	items []models.Product
	err   error
}

func (m *memProducts) Get(code string) (models.Product, error) {
	for _, p := range m.items {
		if p.Code == code {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (m *memProducts) List(f Filters) ([]models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Product
	for _, p := range m.items {
		if f.Bank != "" && !strings.Contains(strings.ToLower(p.Company), strings.ToLower(f.Bank)) {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Company), q) && !strings.Contains(strings.ToLower(p.Name), q) {
				continue
			}
		}
		if f.Term == nil {
			out = append(out, p)
			continue
		}
		for _, o := range p.Options {
			if o.TermMonths == *f.Term {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (m *memProducts) ListByCodes(codes []string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.items {
		if slices.Contains(codes, p.Code) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) ListEmbedded() ([]models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Product
	for _, p := range m.items {
		if p.HasEmbedding() {
			out = append(out, p)
		}
	}
	return out, nil
}

type memLedger struct {
	codes map[int64][]string
}

func newMemLedger() *memLedger {
	return &memLedger{codes: map[int64][]string{}}
}

func (m *memLedger) Codes(userID int64) ([]string, error) {
	return append([]string{}, m.codes[userID]...), nil
}

func (m *memLedger) Add(userID int64, code string) ([]string, error) {
	if !slices.Contains(m.codes[userID], code) {
		m.codes[userID] = append(m.codes[userID], code)
	}
	return m.Codes(userID)
}

func (m *memLedger) Remove(userID int64, code string) ([]string, error) {
	m.codes[userID] = slices.DeleteFunc(m.codes[userID], func(c string) bool { return c == code })
	return m.Codes(userID)
}

type stubEmbedder struct {
	vec   []float64
	err   error
	calls int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

// blockingEmbedder never answers before ctx is done.
type blockingEmbedder struct{}

func (blockingEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
