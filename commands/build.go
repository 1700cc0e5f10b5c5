package commands

import (
	"github.com/spf13/cobra"

	"eatery-scraper/scraper/directory"
	"eatery-scraper/services"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:       "build <web|file>",
	Short:     "Builds the draft collections from the directory website or the offline corpus.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{services.SourceWeb, services.SourceFile},
	RunE: func(cmd *cobra.Command, args []string) error {
		walker := directory.NewWalker(newHTTPClient(), cfg.ListingURL, logger)
		assembler := services.NewAssembler(cfg, walker, store, logger)

		paths, err := assembler.Build(cmd.Context(), catalog.Areas, args[0])
		if err != nil {
			return err
		}
		logger.Info("Wrote %d collections", len(paths))
		return nil
	},
}
