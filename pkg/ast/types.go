// Package ast defines the normalized document model produced by the compiler.
// It is independent of any output medium; renderers switch over the concrete
// node and span types.
package ast

// Article is the root of a compiled document.
type Article struct {
	Meta Meta   `json:"meta"`
	Body []Node `json:"body"`
}

func (a *Article) MarshalJSON() ([]byte, error) {
	type alias Article
	return withType("article", (*alias)(a))
}

// Meta holds page-level metadata. A nil field was not compiled or not
// present, which is different from an empty value.
type Meta struct {
	Title           *string  `json:"title,omitempty"`
	Slug            *string  `json:"slug,omitempty"`
	Date            *string  `json:"date,omitempty"` // ISO 8601
	Tags            []string `json:"tags,omitempty"`
	CanonicalURL    *string  `json:"canonicalUrl,omitempty"`
	Summary         *string  `json:"summary,omitempty"`
	Author          *string  `json:"author,omitempty"`
	CoverURL        *string  `json:"coverUrl,omitempty"`
	AuthorImageURL  *string  `json:"authorImageUrl,omitempty"`
	ReadTimeMinutes *int     `json:"readTimeMinutes,omitempty"`
}

// IsZero reports whether no metadata field is set.
func (m Meta) IsZero() bool {
	return m.Title == nil && m.Slug == nil && m.Date == nil && m.Tags == nil &&
		m.CanonicalURL == nil && m.Summary == nil && m.Author == nil &&
		m.CoverURL == nil && m.AuthorImageURL == nil && m.ReadTimeMinutes == nil
}

// NodeType is the tag carried by every node in its JSON form.
type NodeType string

const (
	NodeHeading    NodeType = "heading"
	NodeParagraph  NodeType = "paragraph"
	NodeCode       NodeType = "code"
	NodeImage      NodeType = "image"
	NodeTable      NodeType = "table"
	NodeEmbed      NodeType = "embed"
	NodeBookmark   NodeType = "bookmark"
	NodeList       NodeType = "list"
	NodeAdmonition NodeType = "admonition"
	NodeQuote      NodeType = "quote"
	NodeDivider    NodeType = "divider"
	NodeToggle     NodeType = "toggle"
)

// Node is one block-level element of an Article body. The set of
// implementations is closed; see the NodeType constants.
type Node interface {
	NodeType() NodeType
	isNode()
}

type Heading struct {
	Level int    `json:"level"` // 1-6
	ID    string `json:"id"`
	Text  []Span `json:"text"`
}

type Paragraph struct {
	Text []Span `json:"text"`
}

type Code struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Caption  []Span `json:"caption,omitempty"`
}

type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Caption []Span `json:"caption,omitempty"`
}

// TableRow holds one rich text sequence per cell.
type TableRow struct {
	Cells [][]Span `json:"cells"`
}

type Table struct {
	HasHeader bool       `json:"hasHeader"`
	Rows      []TableRow `json:"rows"`
}

type Embed struct {
	URL     string `json:"url"`
	Caption []Span `json:"caption,omitempty"`
}

type Bookmark struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type ListItem struct {
	Children []Node `json:"children"`
}

type List struct {
	Ordered bool       `json:"ordered"`
	Items   []ListItem `json:"items"`
}

// AdmonitionKind is the semantic flavour of an aside.
type AdmonitionKind string

const (
	KindNote    AdmonitionKind = "note"
	KindTip     AdmonitionKind = "tip"
	KindWarning AdmonitionKind = "warning"
	KindInfo    AdmonitionKind = "info"
)

// Admonition is a titled aside. Tone and Icon carry the source color and
// emoji so renderers can tint it; Kind is what they should branch on.
type Admonition struct {
	Kind     AdmonitionKind `json:"kind"`
	Title    []Span         `json:"title,omitempty"`
	Tone     string         `json:"tone,omitempty"`
	Icon     string         `json:"icon,omitempty"`
	Children []Node         `json:"children"`
}

type Quote struct {
	Children []Node `json:"children"`
}

type Divider struct{}

type Toggle struct {
	Summary  []Span `json:"summary"`
	Children []Node `json:"children"`
}

func (*Heading) NodeType() NodeType    { return NodeHeading }
func (*Paragraph) NodeType() NodeType  { return NodeParagraph }
func (*Code) NodeType() NodeType       { return NodeCode }
func (*Image) NodeType() NodeType      { return NodeImage }
func (*Table) NodeType() NodeType      { return NodeTable }
func (*Embed) NodeType() NodeType      { return NodeEmbed }
func (*Bookmark) NodeType() NodeType   { return NodeBookmark }
func (*List) NodeType() NodeType       { return NodeList }
func (*Admonition) NodeType() NodeType { return NodeAdmonition }
func (*Quote) NodeType() NodeType      { return NodeQuote }
func (*Divider) NodeType() NodeType    { return NodeDivider }
func (*Toggle) NodeType() NodeType     { return NodeToggle }

func (*Heading) isNode()    {}
func (*Paragraph) isNode()  {}
func (*Code) isNode()       {}
func (*Image) isNode()      {}
func (*Table) isNode()      {}
func (*Embed) isNode()      {}
func (*Bookmark) isNode()   {}
func (*List) isNode()       {}
func (*Admonition) isNode() {}
func (*Quote) isNode()      {}
func (*Divider) isNode()    {}
func (*Toggle) isNode()     {}
