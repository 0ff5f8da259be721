// Package scrape implements the scrape command, which builds the publications
// CSV from the ERC websites.
package scrape

import (
	"context"

	"github.com/jonesrussell/north-cloud/ercwiki/cmd/common"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/config"
	pubscrape "github.com/jonesrussell/north-cloud/ercwiki/internal/publications/scrape"
	"github.com/spf13/cobra"
)

// Params holds the scrape command flags.
type Params struct {
	Output        string
	NoSourceFiles bool
}

// Command returns the scrape command.
func Command() *cobra.Command {
	var params Params

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Collect the ERC publication listings into a CSV",
		Long: `Scrape fetches every configured publication listing, parses it with the
parser for its ERC, and writes the cleaned, de-duplicated entries to the CSV
read by the publish command. Each listing is also saved to its own CSV file
unless --no-source-files is given. Scraping does not contact Confluence.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps((*config.Config).ValidateScrape)
			if err != nil {
				return err
			}
			defer func() {
				_ = deps.Logger.Sync()
			}()

			return run(cmd.Context(), deps, params)
		},
	}

	cmd.Flags().StringVarP(&params.Output, "output", "o", "", "publications CSV to write (default from config, erc_publications.csv)")
	cmd.Flags().BoolVar(&params.NoSourceFiles, "no-source-files", false, "do not save each listing to its own CSV")

	return cmd
}

// Sources converts the configured listings.
func Sources(cfg config.ScrapeConfig) []pubscrape.Source {
	sources := make([]pubscrape.Source, 0, len(cfg.Sources))
	for _, s := range cfg.Sources {
		sources = append(sources, pubscrape.Source{
			URL:     s.URL,
			Title:   s.Title,
			ERC:     s.ERC,
			CSVFile: s.CSVFile,
			Type:    s.Type,
		})
	}
	return sources
}

func run(ctx context.Context, deps common.CommandDeps, params Params) error {
	log := deps.Logger.WithComponent("scrape")
	cfg := deps.Config

	output := params.Output
	if output == "" {
		output = cfg.Scrape.Output
	}

	runner := pubscrape.NewRunner(
		pubscrape.NewScraper(log, pubscrape.WithScrapeTimeout(cfg.Confluence.Timeout)),
		log,
	)

	summary, err := runner.Run(ctx, Sources(cfg.Scrape), output, !params.NoSourceFiles)
	if err != nil {
		return err
	}

	log.Info("Scraping finished",
		"sources", summary.Sources,
		"failed", summary.Failed,
		"scraped", summary.Scraped,
		"written", summary.Written,
		"file", output)
	return nil
}
