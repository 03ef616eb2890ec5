package cli

import (
	"fmt"
	"log"
	"os"

	"finlife/catalog"
	"finlife/config"
	dbpkg "finlife/db"
	"finlife/tools"

	"github.com/jinzhu/gorm"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     config.Configuration
)

var rootCmd = &cobra.Command{
	Use:   "finlife",
	Short: "Deposit product catalog, membership ledger and recommendation service",
	Long: `finlife serves the deposit product catalog over HTTP and ships the
maintenance commands that feed it.

Example usage:
  finlife serve                          # HTTP API on :8080
  finlife ingest-products                # fetch deposit products from the FSS API
  finlife embed-products                 # embed products without a vector
  finlife recommend -m "high rate, no conditions"`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file (YAML or JSON)")
}

// openDB conecta e migra; os comandos de manutenção sempre migram.
func openDB() (*gorm.DB, error) {
	dbpkg.SetConfigurations(cfg)
	db, err := dbpkg.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}

// newEmbedder monta o cliente do provedor; com cached, passa pelo cache bbolt
// quando embedding.cache_path está configurado. close deve ser chamado.
func newEmbedder(cached bool) (catalog.Embedder, func(), error) {
	e := tools.NewOpenAIEmbedder(cfg.Embedding.BaseURL, cfg.Embedding.APIKey, cfg.Embedding.Model, cfg.Embedding.Timeout)
	if !cached || cfg.Embedding.CachePath == "" {
		return e, func() {}, nil
	}
	c, err := tools.NewCachedEmbedder(e, cfg.Embedding.Model, cfg.Embedding.CachePath)
	if err != nil {
		return nil, nil, err
	}
	return c, func() {
		if err := c.Close(); err != nil {
			log.Printf("embedding cache: close: %v", err)
		}
	}, nil
}

func newBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}
