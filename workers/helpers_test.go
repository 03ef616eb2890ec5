package workers

import (
	"context"
	"errors"
	"testing"

	"finlife/config"
	dbpkg "finlife/db"
	"finlife/tools"

	"github.com/jinzhu/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dbpkg.Open(config.Configuration{Database: "sqlite3", SqlitePath: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func rate(v float64) *float64 { return &v }

type fakeSource struct {
	bases   []tools.FinlifeBase
	options []tools.FinlifeOption
	err     error
}

func (f fakeSource) FetchDepositProducts(ctx context.Context) ([]tools.FinlifeBase, []tools.FinlifeOption, error) {
	return f.bases, f.options, f.err
}

// textEmbedder devolve um vetor fixo por texto; textos em fail dão erro.
type textEmbedder struct {
	vectors map[string][]float64
	fail    map[string]bool
	calls   int
}

func (e *textEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	e.calls++
	if e.fail[text] {
		return nil, errors.New("provider down")
	}
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return []float64{1, 0}, nil
}
