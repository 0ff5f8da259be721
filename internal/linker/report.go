package linker

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Report summarizes one run of the link updater.
type Report struct {
	SourceTitle string
	TargetTitle string
	Profile     Profile
	Reset       bool
	// TableFound is false when the dataset page had no variables table; the
	// page is then left untouched.
	TableFound   bool
	Updated      bool
	LinksRemoved int
	Rows         []RowOutcome
}

// Matched returns the number of rows that received a link.
func (r *Report) Matched() int {
	n := 0
	for _, row := range r.Rows {
		if row.Matched {
			n++
		}
	}
	return n
}

// Render writes the per-row outcomes as a table.
func (r *Report) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(r.SourceTitle)

	if r.Reset {
		t.AppendHeader(table.Row{"Action", "Links Removed"})
		t.AppendRow(table.Row{ResetMessage, r.LinksRemoved})
		t.Render()
		return
	}

	t.AppendHeader(table.Row{"Row", "Cell", "Matched On", "Heading", "Score"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
	})

	for _, row := range r.Rows {
		heading := row.Heading
		if !row.Matched {
			heading = "-"
		}
		t.AppendRow(table.Row{row.Row, row.Text, row.Name, heading, fmt.Sprintf("%.2f", row.Score)})
	}

	t.AppendFooter(table.Row{"", "", "", "Matched", fmt.Sprintf("%d / %d", r.Matched(), len(r.Rows))})
	t.Render()
}
