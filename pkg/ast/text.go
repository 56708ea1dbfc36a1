package ast

import "strings"

// SpanType is the tag carried by every rich text span in its JSON form.
type SpanType string

const (
	SpanText   SpanType = "text"
	SpanCode   SpanType = "code"
	SpanBold   SpanType = "bold"
	SpanItalic SpanType = "italic"
	SpanLink   SpanType = "link"
)

// Span is one node of a rich text tree. The set of implementations is closed:
// *Text, *InlineCode, *Bold, *Italic and *Link.
type Span interface {
	SpanType() SpanType
	isSpan()
}

// Text is a plain text leaf.
type Text struct {
	Text string `json:"text"`
}

// InlineCode is a code-formatted leaf.
type InlineCode struct {
	Text string `json:"text"`
}

// Bold wraps its children in strong emphasis.
type Bold struct {
	Children []Span `json:"children"`
}

// Italic wraps its children in emphasis.
type Italic struct {
	Children []Span `json:"children"`
}

// Link wraps its children in a hyperlink.
type Link struct {
	Href     string `json:"href"`
	Children []Span `json:"children"`
}

func (*Text) SpanType() SpanType       { return SpanText }
func (*InlineCode) SpanType() SpanType { return SpanCode }
func (*Bold) SpanType() SpanType       { return SpanBold }
func (*Italic) SpanType() SpanType     { return SpanItalic }
func (*Link) SpanType() SpanType       { return SpanLink }

func (*Text) isSpan()       {}
func (*InlineCode) isSpan() {}
func (*Bold) isSpan()       {}
func (*Italic) isSpan()     {}
func (*Link) isSpan()       {}

func (s *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return withType(string(SpanText), (*alias)(s))
}

func (s *InlineCode) MarshalJSON() ([]byte, error) {
	type alias InlineCode
	return withType(string(SpanCode), (*alias)(s))
}

func (s *Bold) MarshalJSON() ([]byte, error) {
	type alias Bold
	return withType(string(SpanBold), (*alias)(s))
}

func (s *Italic) MarshalJSON() ([]byte, error) {
	type alias Italic
	return withType(string(SpanItalic), (*alias)(s))
}

func (s *Link) MarshalJSON() ([]byte, error) {
	type alias Link
	return withType(string(SpanLink), (*alias)(s))
}

// ToPlainText flattens a span tree into its text content, dropping all
// formatting.
func ToPlainText(spans []Span) string {
	var sb strings.Builder
	writePlainText(&sb, spans)
	return sb.String()
}

func writePlainText(sb *strings.Builder, spans []Span) {
	for _, s := range spans {
		switch s := s.(type) {
		case *Text:
			sb.WriteString(s.Text)
		case *InlineCode:
			sb.WriteString(s.Text)
		case *Bold:
			writePlainText(sb, s.Children)
		case *Italic:
			writePlainText(sb, s.Children)
		case *Link:
			writePlainText(sb, s.Children)
		}
	}
}

// IsBlank reports whether the spans carry no visible text.
func IsBlank(spans []Span) bool {
	return strings.TrimSpace(ToPlainText(spans)) == ""
}
