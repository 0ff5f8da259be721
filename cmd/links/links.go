// Package links implements the links command, which links the variables of a
// dataset page to the matching headings of its report page.
package links

import (
	"fmt"

	"github.com/jonesrussell/north-cloud/ercwiki/cmd/common"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/config"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/linker"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/matcher"
	"github.com/spf13/cobra"
)

// Params holds the links command flags.
type Params struct {
	DatasetPageID  string
	ReportPageID   string
	LinkType       string
	Reset          bool
	Threshold      float64
	SkipTitleCheck bool
}

// Options validates the flags and converts them for the updater.
func (p Params) Options() (linker.Options, error) {
	profile, err := linker.ParseProfile(p.LinkType)
	if err != nil {
		return linker.Options{}, err
	}
	if p.Threshold <= 0 || p.Threshold > 1 {
		return linker.Options{}, fmt.Errorf("--threshold must be in (0, 1], got %v", p.Threshold)
	}
	return linker.Options{
		DatasetPageID:  p.DatasetPageID,
		ReportPageID:   p.ReportPageID,
		Profile:        profile,
		Reset:          p.Reset,
		Threshold:      p.Threshold,
		SkipTitleCheck: p.SkipTitleCheck,
	}, nil
}

// Command returns the links command.
func Command() *cobra.Command {
	var params Params

	cmd := &cobra.Command{
		Use:   "links",
		Short: "Link dataset variables to report headings",
		Long: `Links finds the variables table on a "Datasets: X" page and turns each
variable into a link to the best matching heading of the report page "X".
Variables without a heading scoring at least --threshold stay plain text.

--reset strips the links from the table instead.`,
		Example: `  ercwiki links --dataset-page-id 12345 --report-page-id 67890
  ercwiki links --dataset-page-id 12345 --report-page-id 67890 --link-type tea
  ercwiki links --dataset-page-id 12345 --report-page-id 67890 --reset`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := params.Options()
			if err != nil {
				return err
			}

			deps, err := common.NewCommandDeps((*config.Config).Validate)
			if err != nil {
				return err
			}
			defer func() {
				_ = deps.Logger.Sync()
			}()

			updater := linker.NewUpdater(deps.Wiki, deps.Logger.WithComponent("links"))
			report, err := updater.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			report.Render(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&params.DatasetPageID, "dataset-page-id", "", "id of the \"Datasets: X\" page (required)")
	cmd.Flags().StringVar(&params.ReportPageID, "report-page-id", "", "id of the report page X (required)")
	cmd.Flags().StringVar(&params.LinkType, "link-type", string(linker.ProfileTHECB), "table layout: thecb, sbec or tea")
	cmd.Flags().BoolVar(&params.Reset, "reset", false, "remove links from the variables table")
	cmd.Flags().Float64Var(&params.Threshold, "threshold", matcher.DefaultThreshold, "minimum match score in (0, 1]")
	cmd.Flags().BoolVar(&params.SkipTitleCheck, "skip-title-check", false, "do not require the \"Datasets: \" title pairing")

	_ = cmd.MarkFlagRequired("dataset-page-id")
	_ = cmd.MarkFlagRequired("report-page-id")

	return cmd
}
