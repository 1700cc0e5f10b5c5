package commands

import (
	"time"

	"github.com/spf13/cobra"

	"eatery-scraper/storage"
	"eatery-scraper/utils"
)

const (
	exportCSV      = "csv"
	exportPostgres = "postgres"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:       "export <csv|postgres>",
	Short:     "Exports the collection as CSV or into PostgreSQL.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{exportCSV, exportPostgres},
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := store.Load(dataPath)
		if err != nil {
			return err
		}

		var w storage.EateryWriter
		switch args[0] {
		case exportCSV:
			w, err = storage.NewCSVWriter(cfg.CSVOutputPath)
		case exportPostgres:
			w, err = newPostgresWriter()
		}
		if err != nil {
			return err
		}
		defer w.Close()

		if err := w.Write(records); err != nil {
			return err
		}
		logger.Info("Exported %d records (%s)", len(records), args[0])
		return nil
	},
}

func newPostgresWriter() (*storage.PostgresWriter, error) {
	return storage.NewPostgresWriter(cfg.DSN(), &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	})
}
