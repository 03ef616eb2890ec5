package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Configuration struct {
	ApiPort string `yaml:"api_port" json:"api_port"`
	LogSQL  bool   `yaml:"log_sql" json:"log_sql"`

	Database    string `yaml:"database" json:"database"` // "sqlite3" ou "postgres"
	DatabaseURL string `yaml:"database_url" json:"database_url"`
	SqlitePath  string `yaml:"sqlite_path" json:"sqlite_path"`
	DbHost      string `yaml:"db_host" json:"db_host"`
	DbPort      string `yaml:"db_port" json:"db_port"`
	DbUser      string `yaml:"db_user" json:"db_user"`
	DbName      string `yaml:"db_name" json:"db_name"`
	DbPass      string `yaml:"db_pass" json:"db_pass"`
	DbSSLMode   string `yaml:"db_sslmode" json:"db_sslmode"`
	AutoMigrate bool   `yaml:"auto_migrate" json:"auto_migrate"`

	Security struct {
		JwtSecret     string        `yaml:"jwt_secret" json:"jwt_secret"`
		TokenTTL      time.Duration `yaml:"token_ttl" json:"token_ttl"`
		BcryptCost    int           `yaml:"bcrypt_cost" json:"bcrypt_cost"`
		AllowedOrigin string        `yaml:"allowed_origin" json:"allowed_origin"`
	} `yaml:"security" json:"security"`

	Embedding struct {
		BaseURL          string        `yaml:"base_url" json:"base_url"`
		APIKey           string        `yaml:"api_key" json:"api_key"`
		Model            string        `yaml:"model" json:"model"`
		Timeout          time.Duration `yaml:"timeout" json:"timeout"`
		CachePath        string        `yaml:"cache_path" json:"cache_path"`
		BackfillInterval time.Duration `yaml:"backfill_interval" json:"backfill_interval"`
	} `yaml:"embedding" json:"embedding"`

	Finlife struct {
		BaseURL     string `yaml:"base_url" json:"base_url"`
		APIKey      string `yaml:"api_key" json:"api_key"`
		TopFinGrpNo string `yaml:"top_fin_grp_no" json:"top_fin_grp_no"`
	} `yaml:"finlife" json:"finlife"`

	SpotPrices struct {
		GoldFile   string `yaml:"gold_file" json:"gold_file"`
		SilverFile string `yaml:"silver_file" json:"silver_file"`
	} `yaml:"spot_prices" json:"spot_prices"`

	RecommendTopK int `yaml:"recommend_top_k" json:"recommend_top_k"`
}

// Load lê .env (se existir), o arquivo de configuração (YAML ou JSON; pode
// não existir), aplica defaults e por fim as variáveis de ambiente.
func Load(path string) (Configuration, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env ignored: %v", err)
	}

	var c Configuration
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return c, fmt.Errorf("parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			log.Printf("config: %s not found, using defaults", path)
		default:
			return c, err
		}
	}

	applyDefaults(&c)
	applyEnv(&c)
	return c, nil
}

// defaults (pra evitar nil/zero chato)
func applyDefaults(c *Configuration) {
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.SqlitePath == "" {
		c.SqlitePath = "db/database.db"
	}
	if c.DbSSLMode == "" {
		c.DbSSLMode = "disable"
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}
	if c.Security.TokenTTL <= 0 {
		c.Security.TokenTTL = 24 * time.Hour
	}
	if c.Security.BcryptCost <= 0 {
		c.Security.BcryptCost = 10
	}
	if c.Security.AllowedOrigin == "" {
		c.Security.AllowedOrigin = "*"
	}
	if c.Embedding.BaseURL == "" {
		c.Embedding.BaseURL = "https://api.openai.com/v1"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-large"
	}
	if c.Embedding.Timeout <= 0 {
		c.Embedding.Timeout = 30 * time.Second
	}
	if c.Finlife.BaseURL == "" {
		c.Finlife.BaseURL = "http://finlife.fss.or.kr/finlifeapi"
	}
	if c.Finlife.TopFinGrpNo == "" {
		c.Finlife.TopFinGrpNo = "020000"
	}
	if c.SpotPrices.GoldFile == "" {
		c.SpotPrices.GoldFile = "Gold_prices.xlsx"
	}
	if c.SpotPrices.SilverFile == "" {
		c.SpotPrices.SilverFile = "Silver_prices.xlsx"
	}
	if c.RecommendTopK <= 0 {
		c.RecommendTopK = 3
	}
}

func applyEnv(c *Configuration) {
	setString(&c.ApiPort, "PORT")
	setString(&c.Database, "DATABASE")
	setString(&c.DatabaseURL, "DATABASE_URL")
	if c.DatabaseURL != "" && os.Getenv("DATABASE") == "" && c.Database == "sqlite3" {
		c.Database = "postgres"
	}
	setString(&c.Security.JwtSecret, "JWT_SECRET")
	setString(&c.Embedding.APIKey, "OPENAI_API_KEY")
	setString(&c.Embedding.BaseURL, "OPENAI_BASE_URL")
	setString(&c.Embedding.Model, "OPENAI_EMBEDDING_MODEL")
	setString(&c.Finlife.APIKey, "FINLIFE_API_KEY")
	if v := strings.TrimSpace(os.Getenv("AUTOMIGRATE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AutoMigrate = b
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
