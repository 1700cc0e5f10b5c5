package commands

import (
	"github.com/spf13/cobra"

	"eatery-scraper/models"
	"eatery-scraper/services"
)

var stripImages bool

func init() {
	reconcileCmd.Flags().BoolVar(&stripImages, "strip-images", false, "drop image_url from every record")
	rootCmd.AddCommand(reconcileCmd)
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Moves addresses, phones, websites and areas onto per-location records.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reconciler := services.NewReconciler(logger)
		return transform(func(records []*models.Eatery) ([]*models.Eatery, error) {
			out, report := reconciler.Reconcile(records, services.ReconcileOptions{StripImages: stripImages})
			if n := len(report.Diagnostics); n > 0 {
				logger.Warn("%d fields left for manual resolution", n)
			}
			return out, nil
		})
	},
}
