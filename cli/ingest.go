package cli

import (
	"fmt"
	"os"

	dbpkg "finlife/db"
	"finlife/models"
	"finlife/tools"
	"finlife/workers"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest-products",
	Short: "Fetch deposit products from the FSS finlife API",
	Long: `Fetch every page of depositProductsSearch and store unknown products and
their rate options. Existing product codes are left untouched.

Requires FINLIFE_API_KEY (or finlife.api_key in the config file).`,
	RunE: runIngest,
}

var (
	spotGoldFile   string
	spotSilverFile string
)

var spotCmd = &cobra.Command{
	Use:   "load-spot-prices",
	Short: "Import gold and silver prices from xlsx spreadsheets",
	RunE:  runLoadSpotPrices,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(spotCmd)
	spotCmd.Flags().StringVar(&spotGoldFile, "gold", "", "gold spreadsheet (default from config)")
	spotCmd.Flags().StringVar(&spotSilverFile, "silver", "", "silver spreadsheet (default from config)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	client := tools.NewFinlifeClient(cfg.Finlife.BaseURL, cfg.Finlife.APIKey, cfg.Finlife.TopFinGrpNo)
	bar := newBar(-1, "[cyan]Ingesting[reset]")
	res, err := workers.IngestDepositProducts(cmd.Context(), client, dbpkg.NewProductStore(db), func() { bar.Add(1) })
	bar.Finish()
	if err != nil {
		return err
	}

	fmt.Printf("products: %d new, %d existing\n", res.ProductsCreated, res.ProductsSkipped)
	fmt.Printf("options:  %d new, %d existing, %d orphan\n", res.OptionsCreated, res.OptionsSkipped, res.OrphanOptions)
	return nil
}

func runLoadSpotPrices(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	files := []struct{ item, path string }{
		{models.SPOT_ITEM_GOLD, firstNonEmpty(spotGoldFile, cfg.SpotPrices.GoldFile)},
		{models.SPOT_ITEM_SILVER, firstNonEmpty(spotSilverFile, cfg.SpotPrices.SilverFile)},
	}
	store := dbpkg.NewSpotPriceStore(db)
	for _, f := range files {
		if err := loadSpotFile(store, f.item, f.path); err != nil {
			return err
		}
	}
	return nil
}

func loadSpotFile(store *dbpkg.SpotPriceStore, item, path string) error {
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("%s: %s not found, skipped\n", item, path)
			return nil
		}
		return err
	}
	defer fh.Close()

	rows, skipped, err := tools.ReadSpotPrices(fh)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	res, err := workers.ImportSpotPrices(item, rows, skipped, store)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d new, %d existing, %d unreadable rows\n", item, res.Created, res.Existing, res.Skipped)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
