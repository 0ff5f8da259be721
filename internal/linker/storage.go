package linker

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// <ac:image ... /> and <time ... /> style elements. The HTML parser would
	// treat them as open tags and swallow the following content.
	selfClosing  = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9-]*(?::[a-zA-Z0-9-]+)?)((?:\s[^<>]*?)?)\s*/>`)
	cdataSection = regexp.MustCompile(`(?s)<!\[CDATA\[.*?\]\]>`)
	cdataHolder  = regexp.MustCompile(`<!--ercwiki-cdata-(\d+)-->`)
)

// voidElements never have content, so "<br/>" is already understood.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Document is a parsed storage-format body. CDATA sections (code macro
// bodies) are parked in comments while parsed and restored by Render.
type Document struct {
	*goquery.Document
	cdata []string
}

// ParseStorage parses a Confluence storage-format body.
func ParseStorage(storage string) (*Document, error) {
	d := &Document{}

	storage = cdataSection.ReplaceAllStringFunc(storage, func(section string) string {
		d.cdata = append(d.cdata, section)
		return "<!--ercwiki-cdata-" + strconv.Itoa(len(d.cdata)-1) + "-->"
	})
	storage = expandSelfClosing(storage)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(storage))
	if err != nil {
		return nil, fmt.Errorf("parse storage body: %w", err)
	}
	d.Document = doc

	return d, nil
}

// expandSelfClosing rewrites <x .../> as <x ...></x> for every non-void element.
func expandSelfClosing(storage string) string {
	return selfClosing.ReplaceAllStringFunc(storage, func(tag string) string {
		m := selfClosing.FindStringSubmatch(tag)
		if voidElements[strings.ToLower(m[1])] {
			return tag
		}
		return "<" + m[1] + m[2] + "></" + m[1] + ">"
	})
}

// Render serializes the body back to storage format.
func (d *Document) Render() (string, error) {
	out, err := d.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("render storage body: %w", err)
	}

	out = cdataHolder.ReplaceAllStringFunc(out, func(holder string) string {
		i, convErr := strconv.Atoi(cdataHolder.FindStringSubmatch(holder)[1])
		if convErr != nil || i >= len(d.cdata) {
			return holder
		}
		return d.cdata[i]
	})

	return out, nil
}
