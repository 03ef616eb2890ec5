package tools

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"finlife/catalog"
	"finlife/metrics"

	"go.etcd.io/bbolt"
)

var bucketEmbeddings = []byte("embeddings")

// CachedEmbedder memoizes embeddings in a bbolt file, keyed by model and a
// hash of the text. Provider failures are never cached.
type CachedEmbedder struct {
	next  catalog.Embedder
	model string
	db    *bbolt.DB
}

func NewCachedEmbedder(next catalog.Embedder, model, path string) (*CachedEmbedder, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEmbeddings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &CachedEmbedder{next: next, model: model, db: db}, nil
}

func (c *CachedEmbedder) key(text string) []byte {
	sum := sha256.Sum256([]byte(c.model + "\x00" + text))
	return []byte(hex.EncodeToString(sum[:]))
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	k := c.key(text)

	var cached []float64
	err := c.db.View(func(tx *bbolt.Tx) error {
		if data := tx.Bucket(bucketEmbeddings).Get(k); data != nil {
			return json.Unmarshal(data, &cached)
		}
		return nil
	})
	if err != nil {
		log.Printf("embedding cache: unreadable entry, asking provider: %v", err)
		cached = nil
	}
	if len(cached) > 0 {
		metrics.EmbeddingRequestsTotal.WithLabelValues(c.model, "cache_hit").Inc()
		return cached, nil
	}

	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(vec)
	if err == nil {
		err = c.db.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket(bucketEmbeddings).Put(k, data)
		})
	}
	if err != nil {
		log.Printf("embedding cache: write failed: %v", err)
	}
	return vec, nil
}

func (c *CachedEmbedder) Close() error {
	return c.db.Close()
}
