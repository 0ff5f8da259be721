package linker

import (
	"strconv"
	"strings"
)

// Heading is a link target on the report page.
type Heading struct {
	Text   string
	Anchor string
}

// ExtractHeadings returns the h1, h2 and h3 headings of doc in document order.
// Empty headings are skipped. Anchors are unique within the page: a repeated
// anchor gets the lowest ".N" suffix not already issued on the page.
func ExtractHeadings(doc *Document) []Heading {
	var headings []Heading
	next := make(map[string]int)
	issued := make(map[string]bool)

	for _, node := range doc.Find("h1, h2, h3").Nodes {
		text := cellText(doc.FindNodes(node))
		if text == "" {
			continue
		}

		base := Anchor(text)
		anchor := base
		for issued[anchor] {
			next[base]++
			anchor = base + "." + strconv.Itoa(next[base])
		}
		issued[anchor] = true

		headings = append(headings, Heading{Text: text, Anchor: anchor})
	}

	return headings
}

// Anchor converts heading text to its fragment: spaces become '-', '#' is
// dropped and the result is percent-encoded with '/' left as is.
func Anchor(text string) string {
	text = strings.ReplaceAll(text, " ", "-")
	text = strings.ReplaceAll(text, "#", "")
	return escapeFragment(text)
}

const upperHex = "0123456789ABCDEF"

func escapeFragment(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := range len(s) {
		c := s[i]
		if isUnreserved(c) || c == '/' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}

	return b.String()
}

func isUnreserved(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

func headingTexts(headings []Heading) []string {
	texts := make([]string, len(headings))
	for i, h := range headings {
		texts[i] = h.Text
	}
	return texts
}
