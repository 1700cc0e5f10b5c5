package commands

import (
	"os"

	"github.com/spf13/cobra"

	"eatery-scraper/models"
	"eatery-scraper/services"
)

var insightsFromPostgres bool

func init() {
	insightsCmd.Flags().BoolVar(&insightsFromPostgres, "from-postgres", false,
		"read the exported dataset back from PostgreSQL instead of --data")
	rootCmd.AddCommand(insightsCmd)
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Prints summary tables for the collection.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadForInsights()
		if err != nil {
			return err
		}

		svc := services.NewInsightService(logger)
		svc.Print(os.Stdout, svc.Generate(records))
		return nil
	},
}

func loadForInsights() ([]*models.Eatery, error) {
	if !insightsFromPostgres {
		return store.Load(dataPath)
	}

	pw, err := newPostgresWriter()
	if err != nil {
		return nil, err
	}
	defer pw.Close()
	return pw.FetchAll()
}
