package confluence

// Page is a Confluence content item as returned by the REST v1 API. Nested
// fields are only populated when requested through expand.
type Page struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Status    string     `json:"status,omitempty"`
	Title     string     `json:"title"`
	Space     *Space     `json:"space,omitempty"`
	Version   *Version   `json:"version,omitempty"`
	Body      *Body      `json:"body,omitempty"`
	Ancestors []Ancestor `json:"ancestors,omitempty"`
	Links     Links      `json:"_links"`
}

// StorageValue returns the storage-format body, or "" when it was not expanded.
func (p *Page) StorageValue() string {
	if p.Body == nil || p.Body.Storage == nil {
		return ""
	}
	return p.Body.Storage.Value
}

// VersionNumber returns the page version, or 0 when it was not expanded.
func (p *Page) VersionNumber() int {
	if p.Version == nil {
		return 0
	}
	return p.Version.Number
}

// ParentID returns the id of the direct parent, the last ancestor.
func (p *Page) ParentID() string {
	if len(p.Ancestors) == 0 {
		return ""
	}
	return p.Ancestors[len(p.Ancestors)-1].ID
}

// Space identifies a Confluence space.
type Space struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

// Version is a page version.
type Version struct {
	Number    int    `json:"number"`
	MinorEdit bool   `json:"minorEdit,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Body wraps the page body representations.
type Body struct {
	Storage *Storage `json:"storage,omitempty"`
}

// Storage is the XHTML-based storage representation.
type Storage struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

// Ancestor references a parent page.
type Ancestor struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// Links carries the _links block of a response.
type Links struct {
	WebUI string `json:"webui,omitempty"`
	Base  string `json:"base,omitempty"`
	Next  string `json:"next,omitempty"`
}

// CreatePageRequest describes a new page.
type CreatePageRequest struct {
	SpaceKey string
	ParentID string
	Title    string
	Body     string
	// FullWidth publishes the page with the full-width appearance.
	FullWidth bool
}

// UpdatePageRequest describes a new version of an existing page.
type UpdatePageRequest struct {
	ID    string
	Title string
	Body  string
	// ParentID, when set, moves the page under that parent.
	ParentID  string
	Message   string
	MinorEdit bool
	FullWidth bool
}

// Label is a content label.
type Label struct {
	Prefix string `json:"prefix"`
	Name   string `json:"name"`
}

// Wire payloads.

type contentPayload struct {
	ID        string     `json:"id,omitempty"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Space     *Space     `json:"space,omitempty"`
	Ancestors []Ancestor `json:"ancestors,omitempty"`
	Body      Body       `json:"body"`
	Version   *Version   `json:"version,omitempty"`
	Metadata  *metadata  `json:"metadata,omitempty"`
}

type metadata struct {
	Properties map[string]property `json:"properties"`
}

type property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type pageList struct {
	Results []Page `json:"results"`
	Start   int    `json:"start"`
	Limit   int    `json:"limit"`
	Size    int    `json:"size"`
	Links   Links  `json:"_links"`
}
