package publications

import (
	"fmt"
	"html"
)

// TypePageTitle returns the title of the page grouping records of typeName.
func TypePageTitle(typeName string) string {
	title := typeName + "s"
	if title == "Research Publications" {
		return "Published Research"
	}
	return title
}

// TypePageBody renders a type page: a contents heading and a page tree rooted
// at the page itself.
func TypePageBody(title, spaceKey string) string {
	return fmt.Sprintf(`<h2>Contents</h2>`+
		`<ac:structured-macro ac:name="pagetree">`+
		`<ac:parameter ac:name="root"><ac:link><ri:page ri:content-title="%s" /></ac:link></ac:parameter>`+
		`<ac:parameter ac:name="spaceKey">%s</ac:parameter>`+
		`<ac:parameter ac:name="startDepth">1</ac:parameter>`+
		`</ac:structured-macro>`,
		html.EscapeString(title), html.EscapeString(spaceKey))
}
