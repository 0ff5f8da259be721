package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jonesrussell/north-cloud/ercwiki/cmd/common"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/config"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/logger"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/publications"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const otherPublicationsHTML = `<html><body><table id="tablepress-21"><tbody>
<tr><td><a href="/files/outcomes.pdf">Dual Credit Outcomes by Smith, A.</a></td><td>2021</td></tr>
</tbody></table></body></html>`

func TestSources(t *testing.T) {
	t.Parallel()

	cfg := config.ScrapeConfig{}
	cfg.SetDefaults()

	sources := Sources(cfg)
	require.Len(t, sources, 7)
	assert.Equal(t, "UT Austin", sources[0].ERC)
	assert.Equal(t, "Policy Brief", sources[0].Type)
	assert.Equal(t, "u_houston_reports_publications.csv", sources[6].CSVFile)
}

func TestCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := Command()
	assert.Equal(t, "o", cmd.Flag("output").Shorthand)
	assert.Equal(t, "false", cmd.Flag("no-source-files").DefValue)
}

func TestRun_WritesPublicationsCSV(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(otherPublicationsHTML))
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	cfg := &config.Config{Scrape: config.ScrapeConfig{
		Output: filepath.Join(dir, "default.csv"),
		Sources: []config.PublicationSource{{
			URL:     server.URL + "/other-publications/",
			ERC:     "UT Austin",
			CSVFile: filepath.Join(dir, "austin.csv"),
			Type:    "Publication",
		}},
	}}
	deps := common.CommandDeps{Logger: logger.NewNoOp(), Config: cfg}

	output := filepath.Join(dir, "erc_publications.csv")
	require.NoError(t, run(context.Background(), deps, Params{Output: output, NoSourceFiles: true}))

	assert.NoFileExists(t, filepath.Join(dir, "austin.csv"))
	assert.NoFileExists(t, cfg.Scrape.Output)

	records, err := publications.ReadRecords(output)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dual Credit Outcomes", records[0].Title)
	assert.Equal(t, "Smith, A", records[0].Authors)
	assert.Equal(t, "Publication", records[0].Type)
	assert.Equal(t, server.URL+"/files/outcomes.pdf", records[0].URL)
	assert.Equal(t, "UT Austin", records[0].PublishingERC)
}
