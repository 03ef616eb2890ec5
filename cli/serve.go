package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"finlife/controllers"
	dbpkg "finlife/db"
	"finlife/router"
	"finlife/workers"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbpkg.SetConfigurations(cfg)
	db, err := dbpkg.Connect()
	if err != nil {
		return err
	}
	defer db.Close()

	embedder, closeEmbedder, err := newEmbedder(true)
	if err != nil {
		return err
	}
	defer closeEmbedder()
	controllers.SetEmbedder(embedder)

	if cfg.Embedding.BackfillInterval > 0 {
		// o backfill não usa o cache de consultas
		backfillEmbedder, closeBackfill, err := newEmbedder(false)
		if err != nil {
			return err
		}
		defer closeBackfill()
		workers.StartEmbeddingBackfill(ctx, dbpkg.NewProductStore(db), backfillEmbedder, cfg.Embedding.BackfillInterval)
		log.Printf("Embedding backfill every %s", cfg.Embedding.BackfillInterval)
	}

	r := gin.New()
	router.Initialize(r, cfg, db)

	srv := &http.Server{
		Addr:              ":" + cfg.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("finlife listening on :%s", cfg.ApiPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
