package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"finlife/config"
	"finlife/models"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

var conf config.Configuration

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

// Connect abre conexão com o DB configurado (sqlite3 por padrão) e, se
// AutoMigrate estiver ligado, cria/atualiza as tabelas.
// Postgres usa o driver pgx via database/sql e entrega a conexão ao gorm.
func Connect() (*gorm.DB, error) {
	db, err := Open(conf)
	if err != nil {
		log.Println("Got error when connect database, the error is: " + err.Error())
		return nil, err
	}

	if conf.AutoMigrate {
		if err := Migrate(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// Open connects without migrating.
func Open(c config.Configuration) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch c.Database {
	case "postgres", "postgresql":
		log.Println("Utilizando conexão com o postgresql...")
		var sqlDB *sql.DB
		sqlDB, err = sql.Open("pgx", PostgresDSN(c))
		if err != nil {
			return nil, err
		}
		if err = sqlDB.Ping(); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		db, err = gorm.Open("postgres", sqlDB)
	default:
		log.Println("Utilizando conexão com o sqlite3...")
		path := c.SqlitePath
		if path == "" {
			path = "db/database.db"
		}
		if path != ":memory:" {
			if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
				return nil, mkErr
			}
		}
		db, err = gorm.Open("sqlite3", path)
		if err == nil {
			// sqlite não aceita escrita concorrente; e cada conexão em :memory: é um banco novo
			db.DB().SetMaxOpenConns(1)
			db.Exec("PRAGMA foreign_keys = ON")
		}
	}
	if err != nil {
		return nil, err
	}

	db.LogMode(c.LogSQL)
	return db, nil
}

// PostgresDSN monta a string de conexão. DATABASE_URL (c.DatabaseURL) tem prioridade.
func PostgresDSN(c config.Configuration) string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	path := "host=" + c.DbHost + " port=" + c.DbPort
	path += " user=" + c.DbUser + " dbname=" + c.DbName
	path += " password=" + c.DbPass
	if c.DbSSLMode != "" {
		path += " sslmode=" + c.DbSSLMode
	}
	return path
}

// Migrate cria as tabelas e índices. Idempotente.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.RateOption{},
		&models.Membership{},
		&models.SpotPrice{},
	).Error; err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	// opções morrem junto com o produto
	if db.Dialect().GetName() == "postgres" {
		if err := db.Model(&models.RateOption{}).
			AddForeignKey("product_id", "products(id)", "CASCADE", "CASCADE").Error; err != nil {
			log.Printf("migrate: rate_options fk: %v", err)
		}
	}
	return nil
}
