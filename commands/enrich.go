package commands

import (
	"github.com/spf13/cobra"

	"eatery-scraper/models"
	"eatery-scraper/scraper/geocode"
	"eatery-scraper/services"
)

func init() {
	rootCmd.AddCommand(geocodeCmd, rateCmd, priceCmd)
}

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Looks up a coordinate for every location.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		geo := geocode.NewClient(newHTTPClient(), cfg.GeocodeURL)
		enricher := services.NewGeocodeEnricher(geo, 0, logger)
		return transform(func(records []*models.Eatery) ([]*models.Eatery, error) {
			out, _, err := enricher.Enrich(cmd.Context(), records)
			return out, err
		})
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Adds search ratings and review counts to every location.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeClient, err := newSearchClient()
		if err != nil {
			return err
		}
		defer closeClient()

		enricher := services.NewRatingEnricher(client, cfg.SearchDelayMs, logger)
		return transform(func(records []*models.Eatery) ([]*models.Eatery, error) {
			out, _, err := enricher.Enrich(cmd.Context(), records)
			return out, err
		})
	},
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Adds search price tiers to every location.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeClient, err := newSearchClient()
		if err != nil {
			return err
		}
		defer closeClient()

		enricher := services.NewPriceEnricher(client, cfg.SearchDelayMs, logger)
		return transform(func(records []*models.Eatery) ([]*models.Eatery, error) {
			out, _, err := enricher.Enrich(cmd.Context(), records)
			return out, err
		})
	},
}
