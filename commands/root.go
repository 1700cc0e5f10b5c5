package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"eatery-scraper/config"
	"eatery-scraper/models"
	"eatery-scraper/storage"
	"eatery-scraper/utils"
)

var (
	dataPath string
	debug    bool

	cfg     *config.Config
	catalog config.Catalog
	logger  *utils.Logger
	store   storage.Collection = storage.NewJSONStore()
)

var rootCmd = &cobra.Command{
	Use:   "eatery-scraper",
	Short: "eatery-scraper builds and enriches the food and drink directory dataset.",
	Long: "Each subcommand is one pipeline stage: it loads a collection, transforms it, " +
		"and writes it back in the shared JSON format.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		logger = utils.NewLogger()
		logger.SetDebug(cfg.Debug || debug)

		cat, err := config.ReadCatalog(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("read area catalog: %w", err)
		}
		catalog = cat

		if dataPath == "" {
			dataPath = cfg.FileDataPath()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "",
		"collection to operate on (default <DATA_DIR>/file_food_and_drink.json)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// Execute runs the CLI and exits non-zero when a stage fails.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger != nil {
			logger.Error("%v", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

// transform loads the collection at --data, applies fn, and saves the result
// back to the same path.
func transform(fn func([]*models.Eatery) ([]*models.Eatery, error)) error {
	records, err := store.Load(dataPath)
	if err != nil {
		return err
	}
	logger.Info("Loaded %d records from %s", len(records), dataPath)

	out, err := fn(records)
	if err != nil {
		return err
	}

	if err := store.Save(dataPath, out); err != nil {
		return err
	}
	logger.Info("Saved %d records to %s", len(out), dataPath)
	return nil
}
