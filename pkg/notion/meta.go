package notion

import (
	"encoding/json"
	"strings"

	"notion-cms/pkg/ast"
	"notion-cms/pkg/ids"
)

// MetaOptions configures CompilePageMeta.
type MetaOptions struct {
	OnWarning WarningFunc
}

// Property names looked up for each metadata field, in order. Any other key
// in a page's property bag is reported as unsupported.
var (
	titleNames        = []string{"title", "Title"}
	slugNames         = []string{"slug", "Slug"}
	dateNames         = []string{"date", "Date"}
	tagsNames         = []string{"tags", "Tags"}
	canonicalURLNames = []string{"canonicalUrl", "CanonicalUrl", "Canonical URL"}
	summaryNames      = []string{"summary", "Summary"}
	authorNames       = []string{"author", "Author"}
	coverNames        = []string{"cover", "Cover"}
)

func isKnownPropertyName(name string) bool {
	for _, names := range [][]string{
		titleNames, slugNames, dateNames, tagsNames,
		canonicalURLNames, summaryNames, authorNames, coverNames,
	} {
		for _, n := range names {
			if n == name {
				return true
			}
		}
	}
	return false
}

// CompilePageMeta maps a page's property bag to article metadata. A missing
// or empty title is always reported; other fields are reported only when
// present with an unusable shape.
func CompilePageMeta(props Properties, opts MetaOptions) ast.Meta {
	mc := metaCompiler{onWarning: opts.OnWarning}
	var meta ast.Meta

	titleProp, ok := lookup(props, titleNames)
	if !ok {
		titleProp, ok = firstOfType(props, "title")
	}
	if title, found := titleText(titleProp); ok && found {
		meta.Title = &title
	} else {
		mc.warn(WarningMissingTitle, "Page title is missing or empty.")
	}

	if prop, ok := lookup(props, slugNames); ok {
		meta.Slug = mc.slug(prop)
	}
	if prop, ok := lookup(props, dateNames); ok {
		meta.Date = mc.date(prop)
	}
	if prop, ok := lookup(props, tagsNames); ok {
		meta.Tags = mc.tags(prop)
	}
	if prop, ok := lookup(props, canonicalURLNames); ok {
		meta.CanonicalURL = mc.canonicalURL(prop)
	}
	if prop, ok := lookup(props, summaryNames); ok {
		meta.Summary = mc.summary(prop)
	}
	if prop, ok := lookup(props, authorNames); ok {
		meta.Author, meta.AuthorImageURL = mc.author(prop)
	}
	if prop, ok := lookup(props, coverNames); ok {
		meta.CoverURL = mc.cover(prop)
	}

	for _, key := range props.Keys() {
		if isKnownPropertyName(key) {
			continue
		}
		mc.warn(WarningUnsupportedProperty, "Property %q is not mapped and was ignored.", key)
	}

	return meta
}

type metaCompiler struct {
	onWarning WarningFunc
}

func (mc metaCompiler) warn(code WarningCode, format string, args ...any) {
	if mc.onWarning != nil {
		mc.onWarning(pageWarning(code, format, args...))
	}
}

func (mc metaCompiler) slug(prop Property) *string {
	switch prop.Type {
	case "rich_text":
		if runs, ok := prop.Value().RichText("rich_text"); ok {
			return nonBlank(ids.Slugify(plainText(runs)))
		}
	case "formula":
		formula := prop.Value().Object("formula")
		kind, _ := formula.String("type")
		if value, ok := formula.String("string"); ok && kind == "string" {
			return nonBlank(ids.Slugify(strings.TrimSpace(value)))
		}
		mc.warn(WarningMalformedSlug, "Slug formula is missing a string value.")
		return nil
	}
	mc.warn(WarningUnsupportedProperty, "Slug property type %q is not supported.", prop.Type)
	return nil
}

func (mc metaCompiler) date(prop Property) *string {
	if prop.Type != "date" {
		mc.warn(WarningUnsupportedProperty, "Date property is missing or unsupported.")
		return nil
	}
	start, ok := prop.Value().Object("date").String("start")
	if !ok || strings.TrimSpace(start) == "" {
		mc.warn(WarningMalformedDate, "Date property is missing a start value.")
		return nil
	}
	return &start
}

func (mc metaCompiler) tags(prop Property) []string {
	items, ok := prop.Value().Array("multi_select")
	if prop.Type != "multi_select" || !ok {
		mc.warn(WarningUnsupportedProperty, "Tags property is missing or unsupported.")
		return nil
	}
	var tags []string
	for _, item := range items {
		option, _ := decodeObject(item)
		if name, _ := option.String("name"); name != "" {
			tags = append(tags, name)
		}
	}
	return tags
}

func (mc metaCompiler) canonicalURL(prop Property) *string {
	if prop.Type != "url" {
		mc.warn(WarningUnsupportedProperty, "Canonical URL property is missing or unsupported.")
		return nil
	}
	url, _ := prop.Value().String("url")
	return nonBlank(strings.TrimSpace(url))
}

func (mc metaCompiler) summary(prop Property) *string {
	runs, ok := prop.Value().RichText("rich_text")
	if prop.Type != "rich_text" || !ok {
		mc.warn(WarningUnsupportedProperty, "Summary property is missing or unsupported.")
		return nil
	}
	return nonBlank(plainText(runs))
}

// author returns the author line and, for a people list, the first avatar.
func (mc metaCompiler) author(prop Property) (name, image *string) {
	value := prop.Value()
	switch prop.Type {
	case "people":
		if items, ok := value.Array("people"); ok {
			return people(items)
		}
	case "rich_text":
		if runs, ok := value.RichText("rich_text"); ok {
			return nonBlank(plainText(runs)), nil
		}
	case "title":
		if runs, ok := value.RichText("title"); ok {
			return nonBlank(plainText(runs)), nil
		}
	}
	mc.warn(WarningUnsupportedProperty, "Author property type %q is not supported.", prop.Type)
	return nil, nil
}

func (mc metaCompiler) cover(prop Property) *string {
	files, ok := prop.Value().Array("files")
	if prop.Type != "files" || !ok {
		mc.warn(WarningUnsupportedProperty, "Cover property is missing or unsupported.")
		return nil
	}
	return firstFileURL(files)
}

func titleText(prop Property) (string, bool) {
	if prop.Type != "title" {
		return "", false
	}
	runs, ok := prop.Value().RichText("title")
	if !ok {
		return "", false
	}
	text := plainText(runs)
	return text, text != ""
}

// people joins the display names of a people list with ", ".
func people(items []json.RawMessage) (name, image *string) {
	var names []string
	for _, item := range items {
		person, _ := decodeObject(item)
		if n, _ := person.String("name"); n != "" {
			names = append(names, n)
		}
		if image == nil {
			if avatar, _ := person.String("avatar_url"); avatar != "" {
				image = &avatar
			}
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	joined := strings.Join(names, ", ")
	return &joined, image
}

func firstFileURL(files []json.RawMessage) *string {
	if len(files) == 0 {
		return nil
	}
	file, _ := decodeObject(files[0])
	if url, ok := fileURL(file); ok {
		return &url
	}
	return nil
}

// lookup returns the first property present under any of names.
func lookup(props Properties, names []string) (Property, bool) {
	for _, name := range names {
		if prop, ok := props.Get(name); ok {
			return prop, true
		}
	}
	return Property{}, false
}

func firstOfType(props Properties, typ string) (Property, bool) {
	for _, key := range props.Keys() {
		if prop, _ := props.Get(key); prop.Type == typ {
			return prop, true
		}
	}
	return Property{}, false
}

func nonBlank(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
