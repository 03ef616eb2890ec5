package db

import (
	"context"
	"os"
	"testing"
	"time"

	"finlife/catalog"
	"finlife/config"
	"finlife/models"

	"github.com/testcontainers/testcontainers-go"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPostgresCatalog roda o mesmo fluxo do sqlite contra um PostgreSQL real
// (driver pgx). Pulado sem Docker ou com SKIP_INTEGRATION=true.
func TestPostgresCatalog(t *testing.T) {
	if os.Getenv("SKIP_INTEGRATION") == "true" || testing.Short() {
		t.Skip("skipping PostgreSQL integration test")
	}

	ctx := context.Background()
	container, err := pgmodule.Run(ctx,
		"postgres:16-alpine",
		pgmodule.WithDatabase("finlife_test"),
		pgmodule.WithUsername("test"),
		pgmodule.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("skipping: could not start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() { container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	db, err := Open(config.Configuration{Database: "postgres", DatabaseURL: dsn})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	products := NewProductStore(db)
	seedCatalog(t, products)

	views, err := catalog.NewEngine(products).Query(catalog.Filters{Bank: "woori"}, catalog.SortDefault)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(views) != 1 || views[0].Code != "D1" {
		t.Errorf("bank filter = %+v, want D1", views)
	}

	twelve := 12
	views, _ = catalog.NewEngine(products).Query(catalog.Filters{Term: &twelve}, catalog.SortBestBaseRateDesc)
	if len(views) != 2 || views[0].Code != "C1" {
		t.Errorf("term filter = %+v, want [C1 A1]", views)
	}

	l := catalog.NewLedger(products, NewLedgerStore(db))
	l.Join(1, "A1")
	codes, _ := l.Join(1, "A1")
	if len(codes) != 1 {
		t.Errorf("ledger = %v, want [A1]", codes)
	}

	if err := products.Delete("C1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	var count int
	db.Model(&models.RateOption{}).Where("product_code = ?", "C1").Count(&count)
	if count != 0 {
		t.Errorf("%d options survived their product", count)
	}
}
