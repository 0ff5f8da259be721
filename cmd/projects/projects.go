// Package projects implements the projects command, which mirrors the public
// research project listings into the wiki.
package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/north-cloud/ercwiki/cmd/common"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/config"
	projectsync "github.com/jonesrussell/north-cloud/ercwiki/internal/projects"
	"github.com/spf13/cobra"
)

// ErrPublishCancelled is returned when the operator declines to publish the snapshots.
var ErrPublishCancelled = errors.New("publishing cancelled by user")

// Params holds the projects command flags.
type Params struct {
	Yes        bool
	ScrapeOnly bool
}

// Command returns the projects command.
func Command() *cobra.Command {
	var params Params

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Mirror the research project listings into Confluence",
		Long: `Projects scrapes each configured listing page, saves its table to a CSV
snapshot, and after confirmation publishes every snapshot as a wiki page under
PROJECTS_PARENT_PAGE_ID. Links found in project names are collected in the
hyperlinks file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps((*config.Config).ValidateProjects)
			if err != nil {
				return err
			}
			defer func() {
				_ = deps.Logger.Sync()
			}()

			return run(cmd.Context(), deps, common.NewPrompter(cmd.OutOrStdout()), params)
		},
	}

	cmd.Flags().BoolVarP(&params.Yes, "yes", "y", false, "publish without asking")
	cmd.Flags().BoolVar(&params.ScrapeOnly, "scrape-only", false, "write the CSV snapshots and stop")

	return cmd
}

// Targets converts the configured listings.
func Targets(cfg config.ProjectsConfig) []projectsync.Target {
	targets := make([]projectsync.Target, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		targets = append(targets, projectsync.Target{
			URL:      t.URL,
			Title:    t.Title,
			CSVFile:  t.CSVFile,
			SkipRows: t.SkipRows,
		})
	}
	return targets
}

type confirmer interface {
	Confirm(question string, accepted ...string) (bool, error)
}

func run(ctx context.Context, deps common.CommandDeps, prompt confirmer, params Params) error {
	log := deps.Logger.WithComponent("projects")
	cfg := deps.Config

	syncer := projectsync.NewSyncer(
		projectsync.NewScraper(log, projectsync.WithScrapeTimeout(cfg.Confluence.Timeout)),
		projectsync.NewPublisher(deps.Wiki, log, cfg.Confluence.SpaceKey, cfg.Projects.ParentPageID),
		log,
	)
	targets := Targets(cfg.Projects)

	written, err := syncer.ScrapeAll(ctx, targets, cfg.Projects.HyperlinksFile)
	if err != nil {
		return err
	}
	log.Info("Scraping finished", "snapshots", written, "targets", len(targets))

	if params.ScrapeOnly {
		return nil
	}

	if !params.Yes {
		ok, confirmErr := prompt.Confirm(
			"Do you want to continue with reading from the CSVs and updating Confluence? (y/n): ", "y", "yes")
		if confirmErr != nil {
			return fmt.Errorf("%w: %w", ErrPublishCancelled, confirmErr)
		}
		if !ok {
			log.Info("Publishing skipped")
			return nil
		}
	}

	published, err := syncer.PublishAll(ctx, targets)
	if err != nil {
		return err
	}
	log.Info("Publishing finished", "published", published, "targets", len(targets))
	return nil
}
