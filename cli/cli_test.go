package cli

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"finlife/config"
	dbpkg "finlife/db"
	"finlife/models"
)

func writeConfig(t *testing.T, extra string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "finlife.db")
	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("database: sqlite3\nsqlite_path: %s\n%s", dbPath, extra)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path, dbPath
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestMigrateCommand(t *testing.T) {
	t.Setenv("DATABASE", "")
	t.Setenv("DATABASE_URL", "")
	path, dbPath := writeConfig(t, "")

	if err := run(t, "--config", path, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}

func TestEmbedAndRecommendCommands(t *testing.T) {
	t.Setenv("DATABASE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"embedding":[1,0]}]}`))
	}))
	defer srv.Close()

	path, _ := writeConfig(t, fmt.Sprintf("embedding:\n  base_url: %s\n  api_key: test\n", srv.URL))

	c, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	db, err := dbpkg.Open(c)
	if err != nil {
		t.Fatal(err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatal(err)
	}
	store := dbpkg.NewProductStore(db)
	if _, err := store.UpsertProduct(&models.Product{Code: "A1", Company: "Woori", Name: "Plus", SpecialCondition: "salary"}); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if err := run(t, "--config", path, "embed-products"); err != nil {
		t.Fatalf("embed-products: %v", err)
	}
	if err := run(t, "--config", path, "recommend", "-m", "salary", "--json"); err != nil {
		t.Fatalf("recommend: %v", err)
	}

	db, err = dbpkg.Open(c)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	p, err := dbpkg.NewProductStore(db).Get("A1")
	if err != nil {
		t.Fatal(err)
	}
	if !p.HasEmbedding() {
		t.Fatal("embed-products did not store a vector")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Fatalf("got %q", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Fatalf("got %q", got)
	}
}
