package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.ApiPort != "8080" {
		t.Errorf("ApiPort = %q, want 8080", c.ApiPort)
	}
	if c.Database != "sqlite3" {
		t.Errorf("Database = %q, want sqlite3", c.Database)
	}
	if c.Embedding.Timeout != 30*time.Second {
		t.Errorf("Embedding.Timeout = %v, want 30s", c.Embedding.Timeout)
	}
	if c.Embedding.Model != "text-embedding-3-large" {
		t.Errorf("Embedding.Model = %q", c.Embedding.Model)
	}
	if c.RecommendTopK != 3 {
		t.Errorf("RecommendTopK = %d, want 3", c.RecommendTopK)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
api_port: "9000"
database: postgres
db_host: localhost
embedding:
  model: text-embedding-3-small
  timeout: 5s
  backfill_interval: 10m
security:
  jwt_secret: s3cret
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.ApiPort != "9000" || c.Database != "postgres" || c.DbHost != "localhost" {
		t.Errorf("unexpected server/db config: %+v", c)
	}
	if c.Embedding.Timeout != 5*time.Second || c.Embedding.BackfillInterval != 10*time.Minute {
		t.Errorf("durations = %v / %v", c.Embedding.Timeout, c.Embedding.BackfillInterval)
	}
	if c.Security.JwtSecret != "s3cret" {
		t.Errorf("JwtSecret = %q", c.Security.JwtSecret)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"api_port": "7000", "db_name": "finlife", "security": {"bcrypt_cost": 4}}`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.ApiPort != "7000" || c.DbName != "finlife" || c.Security.BcryptCost != 4 {
		t.Errorf("unexpected config: %+v", c)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8181")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("FINLIFE_API_KEY", "fss-key")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/finlife")
	t.Setenv("AUTOMIGRATE", "1")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.ApiPort != "8181" {
		t.Errorf("ApiPort = %q, want 8181", c.ApiPort)
	}
	if c.Embedding.APIKey != "sk-test" || c.Finlife.APIKey != "fss-key" {
		t.Errorf("api keys not applied: %q %q", c.Embedding.APIKey, c.Finlife.APIKey)
	}
	if c.Database != "postgres" {
		t.Errorf("Database = %q, want postgres when DATABASE_URL is set", c.Database)
	}
	if !c.AutoMigrate {
		t.Error("AutoMigrate = false, want true")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := writeFile(t, "bad.yaml", "api_port: [unterminated")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
