package ast

import (
	"bytes"
	"encoding/json"
)

// withType encodes v, which must encode as a JSON object, with a leading
// "type" member. Callers pass a method-less alias of their own type.
func withType(tag string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + len(head) + 9)
	buf.WriteString(`{"type":`)
	buf.Write(head)
	if rest := bytes.TrimPrefix(body, []byte("{")); len(rest) > 1 {
		buf.WriteByte(',')
		buf.Write(rest)
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

func (n *Heading) MarshalJSON() ([]byte, error) {
	type alias Heading
	return withType(string(NodeHeading), (*alias)(n))
}

func (n *Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return withType(string(NodeParagraph), (*alias)(n))
}

func (n *Code) MarshalJSON() ([]byte, error) {
	type alias Code
	return withType(string(NodeCode), (*alias)(n))
}

func (n *Image) MarshalJSON() ([]byte, error) {
	type alias Image
	return withType(string(NodeImage), (*alias)(n))
}

func (n *Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return withType(string(NodeTable), (*alias)(n))
}

func (n *Embed) MarshalJSON() ([]byte, error) {
	type alias Embed
	return withType(string(NodeEmbed), (*alias)(n))
}

func (n *Bookmark) MarshalJSON() ([]byte, error) {
	type alias Bookmark
	return withType(string(NodeBookmark), (*alias)(n))
}

func (n *List) MarshalJSON() ([]byte, error) {
	type alias List
	return withType(string(NodeList), (*alias)(n))
}

func (n *Admonition) MarshalJSON() ([]byte, error) {
	type alias Admonition
	return withType(string(NodeAdmonition), (*alias)(n))
}

func (n *Quote) MarshalJSON() ([]byte, error) {
	type alias Quote
	return withType(string(NodeQuote), (*alias)(n))
}

func (n *Divider) MarshalJSON() ([]byte, error) {
	return []byte(`{"type":"divider"}`), nil
}

func (n *Toggle) MarshalJSON() ([]byte, error) {
	type alias Toggle
	return withType(string(NodeToggle), (*alias)(n))
}
