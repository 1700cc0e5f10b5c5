package commands

import (
	"github.com/spf13/cobra"

	"eatery-scraper/models"
	"eatery-scraper/services"
)

func init() {
	rootCmd.AddCommand(addStateCmd)
}

var addStateCmd = &cobra.Command{
	Use:   "add-state",
	Short: "Appends the state name to every draft address.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appender := services.NewStateAppender(logger)
		return transform(func(records []*models.Eatery) ([]*models.Eatery, error) {
			return appender.Apply(records, cfg.StateName), nil
		})
	},
}
