package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"finlife/catalog"
	dbpkg "finlife/db"
	"finlife/workers"

	"github.com/spf13/cobra"
)

var embedAll bool

var embedCmd = &cobra.Command{
	Use:   "embed-products",
	Short: "Compute embeddings for the products' special conditions",
	Long: `Embed every product without a stored vector. With --all, every product is
embedded again (use after changing the embedding model).`,
	RunE: runEmbed,
}

var (
	recommendText string
	recommendTopK int
	recommendJSON bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank products against a free-text message",
	Long: `Examples:
  finlife recommend -m "salary transfer, high rate"
  finlife recommend -m "short term" --top-k 1 --json`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(embedCmd)
	rootCmd.AddCommand(recommendCmd)
	embedCmd.Flags().BoolVar(&embedAll, "all", false, "re-embed products that already have a vector")
	recommendCmd.Flags().StringVarP(&recommendText, "message", "m", "", "message to match (required)")
	recommendCmd.Flags().IntVarP(&recommendTopK, "top-k", "k", 0, "number of results, at most 3 (default from config)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output as JSON")
	recommendCmd.MarkFlagRequired("message")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	embedder, closeEmbedder, err := newEmbedder(false)
	if err != nil {
		return err
	}
	defer closeEmbedder()

	store := dbpkg.NewProductStore(db)
	pending, err := store.ListForEmbedding(embedAll)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("nothing to embed")
		return nil
	}

	bar := newBar(len(pending), "[cyan]Embedding[reset]")
	res, err := workers.BackfillEmbeddings(cmd.Context(), store, embedder, embedAll, func() { bar.Add(1) })
	if err != nil {
		return err
	}
	fmt.Printf("embedded %d products, %d failed\n", res.Embedded, res.Failed)
	return nil
}

func runRecommend(cmd *cobra.Command, args []string) error {
	message := strings.TrimSpace(recommendText)
	if message == "" {
		return fmt.Errorf("message is required")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	embedder, closeEmbedder, err := newEmbedder(true)
	if err != nil {
		return err
	}
	defer closeEmbedder()

	topK := cfg.RecommendTopK
	if recommendTopK > 0 {
		topK = recommendTopK
	}
	recs, err := catalog.NewRecommender(dbpkg.NewProductStore(db), embedder).
		WithTopK(topK).
		Recommend(cmd.Context(), message)
	if err != nil {
		return err
	}

	if recommendJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"recommendations": recs})
	}
	if len(recs) == 0 {
		fmt.Println("no embedded products; run 'finlife embed-products' first")
		return nil
	}
	for i, r := range recs {
		fmt.Printf("%d. %s (%s)  similarity=%.4f  max_rate=%.2f\n", i+1, r.Name, r.Bank, r.Similarity, r.BestBonusRate)
	}
	return nil
}
