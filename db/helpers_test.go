package db

import (
	"testing"
	"time"

	"finlife/config"
	"finlife/models"

	"github.com/jinzhu/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.Configuration{Database: "sqlite3", SqlitePath: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func rate(v float64) *float64 { return &v }

// seedProduct grava um produto e suas opções pelo mesmo caminho da ingestão.
func seedProduct(t *testing.T, s *ProductStore, p models.Product) models.Product {
	t.Helper()
	opts := p.Options
	if _, err := s.UpsertProduct(&p); err != nil {
		t.Fatalf("UpsertProduct(%s): %v", p.Code, err)
	}
	for _, o := range opts {
		o.ProductID = p.ID
		o.ProductCode = p.Code
		if _, err := s.UpsertOption(&o); err != nil {
			t.Fatalf("UpsertOption(%s): %v", p.Code, err)
		}
	}
	return p
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
