// Package notion compiles Notion content (hydrated block trees, page property
// bags and database query results) into the ast document model.
//
// Input records are decoded leniently: a member with an unexpected shape reads
// as absent, so malformed content degrades into dropped nodes and warnings
// rather than decode errors.
package notion

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Object is a JSON object whose members are decoded on access.
type Object map[string]json.RawMessage

// UnmarshalJSON accepts any JSON value; anything but an object leaves o nil.
func (o *Object) UnmarshalJSON(data []byte) error {
	*o, _ = decodeObject(data)
	return nil
}

func decodeObject(data []byte) (Object, bool) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return nil, false
	}
	return Object(m), true
}

// Has reports whether key is present with a non-null value.
func (o Object) Has(key string) bool {
	raw, ok := o[key]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// String returns the member as a string; ok is false for any other shape.
func (o Object) String(key string) (string, bool) {
	raw, ok := o[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}
	return s, true
}

// Bool returns the member as a bool, false for any other shape.
func (o Object) Bool(key string) bool {
	var b bool
	if raw, ok := o[key]; ok {
		_ = json.Unmarshal(raw, &b)
	}
	return b
}

// Object returns the member as an object, nil for any other shape.
func (o Object) Object(key string) Object {
	raw, ok := o[key]
	if !ok {
		return nil
	}
	obj, _ := decodeObject(raw)
	return obj
}

// Array returns the raw elements of an array member.
func (o Object) Array(key string) ([]json.RawMessage, bool) {
	raw, ok := o[key]
	if !ok {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	return items, true
}

// RichText returns an array member as rich text runs. Elements that are not
// objects are skipped; a run member with the wrong shape reads as absent.
func (o Object) RichText(key string) ([]RichText, bool) {
	raw, ok := o[key]
	if !ok {
		return nil, false
	}
	return decodeRuns(raw)
}

func decodeRuns(raw json.RawMessage) ([]RichText, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	runs := make([]RichText, 0, len(items))
	for _, item := range items {
		obj, ok := decodeObject(item)
		if !ok {
			continue
		}
		runs = append(runs, decodeRun(obj))
	}
	return runs, true
}

// decodeRun reads one run member by member, so a mistyped href or
// annotation reads as absent and the text is kept.
func decodeRun(obj Object) RichText {
	var rt RichText
	rt.PlainText, _ = obj.String("plain_text")
	if href, ok := obj.String("href"); ok {
		rt.Href = &href
	}
	annotations := obj.Object("annotations")
	rt.Annotations = Annotations{
		Bold:   annotations.Bool("bold"),
		Italic: annotations.Bool("italic"),
		Code:   annotations.Bool("code"),
	}
	return rt
}

// fileURL resolves a file-or-external union such as an image payload, a page
// cover or an entry of a files property.
func fileURL(o Object) (string, bool) {
	kind, _ := o.String("type")
	if kind != "file" && kind != "external" {
		return "", false
	}
	url, _ := o.Object(kind).String("url")
	return url, url != ""
}

// RichText is one annotated run of text.
type RichText struct {
	PlainText   string      `json:"plain_text"`
	Href        *string     `json:"href"`
	Annotations Annotations `json:"annotations"`
}

// Annotations are the run-level styles the compiler understands.
type Annotations struct {
	Bold   bool `json:"bold"`
	Italic bool `json:"italic"`
	Code   bool `json:"code"`
}

// Block is one node of a hydrated block tree. Children are filled in by the
// fetch layer for blocks with has_children set.
type Block struct {
	ID          string
	Type        string
	HasChildren bool
	Children    []Block

	fields Object
}

func (b *Block) UnmarshalJSON(data []byte) error {
	obj, ok := decodeObject(data)
	if !ok {
		*b = Block{}
		return nil
	}

	id, _ := obj.String("id")
	typ, _ := obj.String("type")
	*b = Block{
		ID:          id,
		Type:        typ,
		HasChildren: obj.Bool("has_children"),
		fields:      obj,
	}

	if items, ok := obj.Array("children"); ok {
		b.Children = make([]Block, 0, len(items))
		for _, item := range items {
			var child Block
			if err := json.Unmarshal(item, &child); err != nil {
				return fmt.Errorf("block %s: decode child: %w", id, err)
			}
			b.Children = append(b.Children, child)
		}
	}
	return nil
}

// Payload is the type-specific member, keyed by the block's own type.
func (b Block) Payload() Object {
	return b.fields.Object(b.Type)
}

// Page is a page or database record: an id, an optional cover and a
// property bag.
type Page struct {
	ID         string     `json:"id"`
	Cover      Object     `json:"cover"`
	Properties Properties `json:"properties"`
}

// Property is one typed value of a property bag. Type may be empty for
// records that omit it, as database query fixtures often do.
type Property struct {
	Type string

	fields Object
}

func (p *Property) UnmarshalJSON(data []byte) error {
	obj, _ := decodeObject(data)
	typ, _ := obj.String("type")
	*p = Property{Type: typ, fields: obj}
	return nil
}

// Value is the member keyed by name, normally the property's own type.
func (p Property) Value() Object {
	return p.fields
}

// Properties is a property bag that remembers the order its keys were
// decoded in, so everything derived from it is deterministic.
type Properties struct {
	keys   []string
	values map[string]Property
}

func (p *Properties) UnmarshalJSON(data []byte) error {
	*p = Properties{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("properties: %w", err)
		}
		key, _ := keyTok.(string)
		var prop Property
		if err := dec.Decode(&prop); err != nil {
			return fmt.Errorf("properties: %q: %w", key, err)
		}
		p.Set(key, prop)
	}
	return nil
}

// Set adds or replaces a property. A replaced key keeps its position.
func (p *Properties) Set(name string, prop Property) {
	if p.values == nil {
		p.values = make(map[string]Property)
	}
	if _, exists := p.values[name]; !exists {
		p.keys = append(p.keys, name)
	}
	p.values[name] = prop
}

func (p Properties) Get(name string) (Property, bool) {
	prop, ok := p.values[name]
	return prop, ok
}

// Keys returns the property names in decode order.
func (p Properties) Keys() []string {
	return append([]string(nil), p.keys...)
}

func (p Properties) Len() int {
	return len(p.keys)
}
