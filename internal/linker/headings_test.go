package linker_test

import (
	"testing"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/linker"
	"github.com/stretchr/testify/assert"
)

func TestAnchor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"Student ID", "Student-ID"},
		{"#1 Rank", "1-Rank"},
		{"Rate (%)", "Rate-%28%25%29"},
		{"Fall/Spring Term", "Fall/Spring-Term"},
		{"E0974 - Fiscal Year", "E0974---Fiscal-Year"},
		{"Año", "A%C3%B1o"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, linker.Anchor(tt.text))
		})
	}
}

func TestExtractHeadings(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<h1> Overview </h1><h4>Skipped level</h4><h2></h2>`+
		`<h2>Notes</h2><p>x</p><h3>Notes</h3><h2>Notes</h2><h3>Student   ID</h3>`)

	got := linker.ExtractHeadings(doc)
	assert.Equal(t, []linker.Heading{
		{Text: "Overview", Anchor: "Overview"},
		{Text: "Notes", Anchor: "Notes"},
		{Text: "Notes", Anchor: "Notes.1"},
		{Text: "Notes", Anchor: "Notes.2"},
		{Text: "Student ID", Anchor: "Student-ID"},
	}, got)
}

func TestExtractHeadings_SuffixCollision(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<h2>Intro</h2><h2>Intro</h2><h2>Intro.1</h2><h3>Intro</h3>`)

	got := linker.ExtractHeadings(doc)
	assert.Equal(t, []linker.Heading{
		{Text: "Intro", Anchor: "Intro"},
		{Text: "Intro", Anchor: "Intro.1"},
		{Text: "Intro.1", Anchor: "Intro.1.1"},
		{Text: "Intro", Anchor: "Intro.2"},
	}, got)
}

func TestExtractHeadings_None(t *testing.T) {
	t.Parallel()

	assert.Empty(t, linker.ExtractHeadings(mustParse(t, `<p>body</p>`)))
}
