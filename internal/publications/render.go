package publications

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// PageContent is a rendered publication page.
type PageContent struct {
	Title    string
	Body     string
	TypeName string
	Labels   []string
	// Warnings lists problems found while rendering, such as malformed URLs.
	Warnings []string
}

// RenderPage renders a record into storage markup. Field order is fixed and
// empty fields are left out.
func RenderPage(rec Record) PageContent {
	content := PageContent{
		Title:    rec.Title,
		TypeName: rec.Type,
		Labels:   Labels(rec),
	}

	var parts []string
	field := func(label, value string) {
		if value != "" {
			parts = append(parts, fmt.Sprintf("<p><b>%s:</b> %s</p>", label, html.EscapeString(value)))
		}
	}

	field("Title", rec.Title)
	field("Authors", rec.Authors)
	field("Type", rec.Type)
	field("THECB Project ID", rec.THECBNumber)
	field("Publishing ERC", rec.PublishingERC)
	field("Project Abbreviated Name", rec.ProjectName)
	field("Publication Date", rec.Date)

	if rec.Abstract != "" {
		parts = append(parts,
			"<p><b>Abstract:</b></p>",
			`<ac:structured-macro ac:name="expand">`+
				`<ac:parameter ac:name="title">Expand for abstract</ac:parameter>`+
				`<ac:rich-text-body><p>`+html.EscapeString(rec.Abstract)+`</p></ac:rich-text-body>`+
				`</ac:structured-macro>`,
		)
	}

	field("Key Terms", rec.KeyTerms)
	field("Topic", rec.Topic)

	if rec.SourceURL != "" {
		if IsWellFormedURL(rec.SourceURL) {
			escaped := html.EscapeString(rec.SourceURL)
			parts = append(parts, fmt.Sprintf(`<p><b>Publishing Source:</b> <a href="%s">%s</a></p>`, escaped, escaped))
		} else {
			field("Publishing Source", rec.SourceURL)
			content.Warnings = append(content.Warnings, fmt.Sprintf("malformed source URL %q", rec.SourceURL))
		}
	}

	if rec.URL != "" {
		if IsWellFormedURL(rec.URL) {
			parts = append(parts, fmt.Sprintf(`<p><b><a href="%s">Link to Publication</a></b></p>`, html.EscapeString(rec.URL)))
		} else {
			field("Link to Publication", rec.URL)
			content.Warnings = append(content.Warnings, fmt.Sprintf("malformed publication URL %q", rec.URL))
		}
	}

	content.Body = strings.Join(parts, "\n")
	return content
}

// IsWellFormedURL reports whether s is an absolute http or https URL with a host.
func IsWellFormedURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
