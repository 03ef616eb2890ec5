package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"slices"

	"finlife/models"
)

// DefaultTopK is how many recommendations are returned, and the most a
// Recommender will ever return.
const DefaultTopK = 3

// Embedder turns text into a vector. Implementations must honour ctx.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

type Recommendation struct {
	Name          string  `json:"name"`
	Bank          string  `json:"bank"`
	Similarity    float64 `json:"similarity"`
	BestBonusRate float64 `json:"max_rate"`
}

// Recommender ranks embedded products against a free-text query by exact
// cosine similarity.
type Recommender struct {
	products ProductStore
	embedder Embedder
	topK     int
}

func NewRecommender(products ProductStore, embedder Embedder) *Recommender {
	return &Recommender{products: products, embedder: embedder, topK: DefaultTopK}
}

// WithTopK lowers the number of results. Values < 1 are ignored and values
// above DefaultTopK are capped.
func (r *Recommender) WithTopK(k int) *Recommender {
	if k > 0 {
		r.topK = min(k, DefaultTopK)
	}
	return r
}

// Recommend embeds text and returns the best matching products. Any embedder
// failure is returned as *UpstreamEmbeddingError without partial results.
func (r *Recommender) Recommend(ctx context.Context, text string) ([]Recommendation, error) {
	query, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return nil, &UpstreamEmbeddingError{Err: err}
	}
	if len(query) == 0 {
		return nil, &UpstreamEmbeddingError{Err: errors.New("empty embedding")}
	}
	for _, x := range query {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, &UpstreamEmbeddingError{Err: ErrNonFinite}
		}
	}

	products, err := r.products.ListEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded products: %w", err)
	}
	return Rank(query, products, r.topK)
}

type scoredProduct struct {
	product models.Product
	score   float64
}

// Rank scores every product that carries a usable embedding against query and
// returns the top k, ties broken by company then product name. Products with no
// embedding, an undecodable one, a zero-norm one or a non-finite one are
// skipped. A length mismatch fails the whole ranking.
func Rank(query []float64, products []models.Product, k int) ([]Recommendation, error) {
	scored := make([]scoredProduct, 0, len(products))
	for _, p := range products {
		vec, ok, err := p.Vector()
		if err != nil {
			log.Printf("recommender: skipping %s: bad embedding: %v", p.Code, err)
			continue
		}
		if !ok {
			continue
		}
		s, err := CosineSimilarity(query, vec)
		if errors.Is(err, ErrZeroNorm) {
			continue
		}
		if errors.Is(err, ErrNonFinite) {
			log.Printf("recommender: skipping %s: %v", p.Code, err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", p.Code, err)
		}
		scored = append(scored, scoredProduct{product: p, score: s})
	}

	slices.SortStableFunc(scored, func(a, b scoredProduct) int {
		return cmp.Or(
			cmp.Compare(b.score, a.score),
			cmp.Compare(a.product.Company, b.product.Company),
			cmp.Compare(a.product.Name, b.product.Name),
		)
	})

	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	out := make([]Recommendation, 0, len(scored))
	for _, s := range scored {
		out = append(out, Recommendation{
			Name:          s.product.Name,
			Bank:          s.product.Company,
			Similarity:    round4(s.score),
			BestBonusRate: BestRates(s.product.Options).Bonus,
		})
	}
	return out, nil
}
