package scrape

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/publications"
)

// Columns is the header of the publications CSV. It carries every column
// the publish command reads plus the scraping detail.
var Columns = []string{
	publications.ColumnTitle,
	publications.ColumnAuthors,
	"Year",
	publications.ColumnURL,
	publications.ColumnResearchArea,
	publications.ColumnType,
	"Is Supporting Document",
	publications.ColumnPublishingERC,
	publications.ColumnSourceURL,
	"supp1_Title",
	"supp1_URL",
	"supp2_Title",
	"supp2_URL",
	"Project Number",
	publications.ColumnTHECBNumber,
	publications.ColumnProjectName,
	publications.ColumnDate,
	"Institution",
}

func (e *Entry) row() []string {
	var supp [maxSupplements]Supplement
	copy(supp[:], e.Supplements)

	return []string{
		e.Title,
		e.Authors,
		e.Year,
		e.URL,
		e.ResearchArea,
		e.Type,
		strconv.FormatBool(e.Supporting),
		e.PublishingERC,
		e.SourceURL,
		supp[0].Title,
		supp[0].URL,
		supp[1].Title,
		supp[1].URL,
		e.ProjectNumber,
		e.THECBNumber,
		e.ProjectName,
		e.Date,
		e.Institution,
	}
}

// WriteCSV writes entries to path with the Columns header, replacing the file.
func WriteCSV(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err = w.Write(Columns); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	for i := range entries {
		if err = w.Write(entries[i].row()); err != nil {
			_ = f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
