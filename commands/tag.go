package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"eatery-scraper/models"
	"eatery-scraper/services"
)

func init() {
	rootCmd.AddCommand(tagAreasCmd)
}

var tagAreasCmd = &cobra.Command{
	Use:   "tag-areas [start]",
	Short: "Prompts for the location areas of each business, resumable from an offset.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("start offset %q: %w", args[0], err)
			}
			start = n
		}

		records, err := store.Load(dataPath)
		if err != nil {
			return err
		}

		tagger := services.NewTagger(catalog, logger)
		next, err := tagger.Run(records, start, os.Stdin, os.Stdout, func(rs []*models.Eatery) error {
			return store.Save(dataPath, rs)
		})
		if err != nil {
			return err
		}
		if next < len(records) {
			logger.Info("Stopped at record %d of %d; resume with: tag-areas %d", next, len(records), next)
		} else {
			logger.Info("Tagged all %d records", len(records))
		}
		return nil
	},
}
