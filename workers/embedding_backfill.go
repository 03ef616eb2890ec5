package workers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"finlife/catalog"
	"finlife/metrics"
	"finlife/models"
)

// EmbeddingStore é o subconjunto do db.ProductStore usado pelo backfill.
type EmbeddingStore interface {
	ListForEmbedding(all bool) ([]models.Product, error)
	SetEmbedding(code string, vec []float64) error
}

type BackfillResult struct {
	Embedded int
	Failed   int
}

// embeddingText é o texto embedado: condição especial, ou banco + nome
// quando o produto não tem condição.
func embeddingText(p models.Product) string {
	if s := strings.TrimSpace(p.SpecialCondition); s != "" {
		return s
	}
	return strings.TrimSpace(p.Company + " " + p.Name)
}

// BackfillEmbeddings embeda os produtos sem vetor (ou todos, se all) um de
// cada vez. Falha de um produto é logada e não interrompe os demais; só um
// erro ao listar aborta.
func BackfillEmbeddings(ctx context.Context, store EmbeddingStore, embedder catalog.Embedder, all bool, onProgress func()) (BackfillResult, error) {
	var res BackfillResult

	products, err := store.ListForEmbedding(all)
	if err != nil {
		return res, err
	}

	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := embedProduct(ctx, store, embedder, p); err != nil {
			res.Failed++
			metrics.EmbeddingBackfillTotal.WithLabelValues("error").Inc()
			log.Printf("embedding backfill: product %s: %v", p.Code, err)
		} else {
			res.Embedded++
			metrics.EmbeddingBackfillTotal.WithLabelValues("ok").Inc()
		}
		tick(onProgress)
	}
	return res, nil
}

func embedProduct(ctx context.Context, store EmbeddingStore, embedder catalog.Embedder, p models.Product) error {
	text := embeddingText(p)
	if text == "" {
		return fmt.Errorf("nothing to embed")
	}
	vec, err := embedder.Embed(ctx, text)
	if err != nil {
		return err
	}
	if len(vec) == 0 {
		return fmt.Errorf("empty embedding")
	}
	return store.SetEmbedding(p.Code, vec)
}

// StartEmbeddingBackfill roda o backfill incremental a cada interval até ctx
// ser cancelado.
func StartEmbeddingBackfill(ctx context.Context, store EmbeddingStore, embedder catalog.Embedder, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := BackfillEmbeddings(ctx, store, embedder, false, nil)
				if err != nil {
					log.Printf("embedding backfill: %v", err)
					continue
				}
				if res.Embedded > 0 || res.Failed > 0 {
					log.Printf("embedding backfill: embedded=%d failed=%d", res.Embedded, res.Failed)
				}
			}
		}
	}()
}
