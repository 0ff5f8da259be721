// Package publish implements the publish command: it creates or updates one
// wiki page per publication record and can delete everything it published.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jonesrussell/north-cloud/ercwiki/cmd/common"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/config"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/publications"
	"github.com/spf13/cobra"
)

// DefaultCSVFile is read when --csv-file is not given.
const DefaultCSVFile = "erc_publications.csv"

// ErrDeletionCancelled is returned when the operator does not confirm deletion.
var ErrDeletionCancelled = errors.New("deletion cancelled by user")

// Params holds the publish command flags.
type Params struct {
	CSVFile    string
	Delete     bool
	DryRun     bool
	CheckLinks bool
}

// Command returns the publish command.
func Command() *cobra.Command {
	var params Params

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish research publications to Confluence",
		Long: `Publish reads publication records from a CSV or XLSX file, makes sure a
page exists for every publication type under the configured parent page, and
creates or updates one labelled page per record.

With --delete, every page below the parent page is removed instead, children
before parents, after typing "yes" at the prompt. --dry-run only lists them.`,
		Example: `  ercwiki publish --csv-file erc_publications.csv
  ercwiki publish --delete --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps((*config.Config).ValidatePublisher)
			if err != nil {
				return err
			}
			defer func() {
				_ = deps.Logger.Sync()
			}()

			if params.Delete {
				prompter := common.NewPrompter(cmd.OutOrStdout())
				return runDelete(cmd.Context(), deps, prompter, cmd.OutOrStdout(), params.DryRun)
			}
			return runPublish(cmd.Context(), deps, cmd.OutOrStdout(), params)
		},
	}

	cmd.Flags().StringVar(&params.CSVFile, "csv-file", DefaultCSVFile, "publication records (.csv or .xlsx)")
	cmd.Flags().BoolVar(&params.Delete, "delete", false, "delete all pages under the parent page")
	cmd.Flags().BoolVar(&params.DryRun, "dry-run", false, "with --delete, list the pages without deleting them")
	cmd.Flags().BoolVar(&params.CheckLinks, "check-links", false, "check each publication URL and warn when unreachable")

	return cmd
}

func runPublish(ctx context.Context, deps common.CommandDeps, out io.Writer, params Params) error {
	log := deps.Logger.WithComponent("publish")

	records, err := publications.ReadRecords(params.CSVFile)
	if err != nil {
		return fmt.Errorf("read publications: %w", err)
	}
	log.Info("Loaded publication records", "file", params.CSVFile, "records", len(records))

	var opts []publications.OrganizerOption
	if params.CheckLinks {
		opts = append(opts, publications.WithLinkChecker(publications.NewHTTPLinkChecker(nil)))
	}

	organizer := publications.NewOrganizer(
		deps.Wiki,
		log,
		deps.Config.Confluence.SpaceKey,
		deps.Config.Confluence.ParentPageID,
		opts...,
	)

	summary, err := organizer.Publish(ctx, records)
	if summary != nil {
		renderSummary(out, summary)
	}
	if err != nil {
		return err
	}

	log.Info("Publishing finished",
		"created", summary.Created,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"failed", summary.Failed)
	return nil
}

// confirmer asks for a yes/no answer.
type confirmer interface {
	Confirm(question string, accepted ...string) (bool, error)
}

func runDelete(ctx context.Context, deps common.CommandDeps, prompt confirmer, out io.Writer, dryRun bool) error {
	log := deps.Logger.WithComponent("delete")
	deleter := publications.NewDeleter(deps.Wiki, log)

	entries, err := deleter.Collect(ctx, deps.Config.Confluence.ParentPageID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		log.Info("No pages to delete", "parent_page_id", deps.Config.Confluence.ParentPageID)
		return nil
	}

	publications.RenderPreview(out, entries)

	if !dryRun {
		ok, confirmErr := prompt.Confirm(
			fmt.Sprintf("Delete %d pages? Type 'yes' to confirm: ", len(entries)), "yes")
		if confirmErr != nil {
			return fmt.Errorf("%w: %w", ErrDeletionCancelled, confirmErr)
		}
		if !ok {
			return ErrDeletionCancelled
		}
	}

	summary := deleter.Delete(ctx, entries, dryRun)
	if summary.Failed > 0 {
		return fmt.Errorf("failed to delete %d of %d pages", summary.Failed, len(entries))
	}
	return nil
}

func renderSummary(w io.Writer, s *publications.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Publish summary")
	t.AppendHeader(table.Row{"Created", "Updated", "Skipped", "Failed", "Warnings"})
	t.AppendRow(table.Row{s.Created, s.Updated, s.Skipped, s.Failed, s.Warnings})
	t.Render()
}
