package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"notion-cms/pkg/ast"
)

// Front matter keys written for an exported article.
const (
	KeyTitle        = "title"
	KeySlug         = "slug"
	KeyDate         = "date"
	KeyTags         = "tags"
	KeyCanonicalURL = "canonicalURL"
	KeySummary      = "summary"
	KeyAuthor       = "author"
	KeyCover        = "cover"
	KeyAuthorImage  = "authorImage"
	KeyReadingTime  = "readingTime"
	KeyNotionID     = "notionId"
	KeyArticleData  = "article"
)

// frontMatterCodec is one of the front matter dialects Hugo reads. JSON
// front matter has no fence; the whole file is the object.
type frontMatterCodec struct {
	name   string
	fence  string
	decode func([]byte, interface{}) error
	encode func(io.Writer, map[string]interface{}) error
}

var frontMatterCodecs = []frontMatterCodec{
	{
		name:   "yaml",
		fence:  "---",
		decode: yaml.Unmarshal,
		encode: func(w io.Writer, fm map[string]interface{}) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(fm); err != nil {
				return err
			}
			return enc.Close()
		},
	},
	{
		name:   "toml",
		fence:  "+++",
		decode: toml.Unmarshal,
		encode: func(w io.Writer, fm map[string]interface{}) error {
			return toml.NewEncoder(w).Encode(fm)
		},
	},
	{
		name:   "json",
		decode: json.Unmarshal,
		encode: func(w io.Writer, fm map[string]interface{}) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(fm)
		},
	},
}

// MetaToFrontMatter maps article metadata to Hugo front matter. Absent and
// empty fields are left out.
func MetaToFrontMatter(meta ast.Meta) map[string]interface{} {
	fm := map[string]interface{}{}
	for key, v := range map[string]*string{
		KeyTitle:        meta.Title,
		KeySlug:         meta.Slug,
		KeyDate:         meta.Date,
		KeyCanonicalURL: meta.CanonicalURL,
		KeySummary:      meta.Summary,
		KeyAuthor:       meta.Author,
		KeyCover:        meta.CoverURL,
		KeyAuthorImage:  meta.AuthorImageURL,
	} {
		if v != nil && *v != "" {
			fm[key] = *v
		}
	}
	if len(meta.Tags) > 0 {
		tags := make([]interface{}, len(meta.Tags))
		for i, tag := range meta.Tags {
			tags[i] = tag
		}
		fm[KeyTags] = tags
	}
	if meta.ReadTimeMinutes != nil {
		fm[KeyReadingTime] = *meta.ReadTimeMinutes
	}
	return fm
}

// ParseFrontMatter splits a content file into its front matter, body and
// dialect name.
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	str := strings.ReplaceAll(string(content), "\r\n", "\n")

	for _, codec := range frontMatterCodecs {
		head, body, ok := splitFrontMatter(str, codec.fence)
		if !ok {
			continue
		}
		var fm map[string]interface{}
		if err := codec.decode([]byte(head), &fm); err != nil {
			return nil, "", "", fmt.Errorf("decode %s front matter: %w", codec.name, err)
		}
		return normalizeMap(fm), strings.TrimSpace(body), codec.name, nil
	}
	return nil, "", "", fmt.Errorf("unknown front matter format")
}

// splitFrontMatter cuts the fenced block off the top of s. With no fence,
// s must be a single JSON object.
func splitFrontMatter(s, fence string) (head, body string, ok bool) {
	if fence == "" {
		if strings.HasPrefix(strings.TrimSpace(s), "{") {
			return s, "", true
		}
		return "", "", false
	}
	rest, found := strings.CutPrefix(s, fence+"\n")
	if !found {
		return "", "", false
	}
	if after, empty := strings.CutPrefix(rest, fence); empty {
		return "", after, true
	}
	end := strings.Index(rest, "\n"+fence)
	if end < 0 {
		return "", "", false
	}
	return rest[:end+1], rest[end+1+len(fence):], true
}

// ConstructFileContent renders front matter in the named dialect, followed
// by body if there is one.
func ConstructFileContent(fm map[string]interface{}, body string, format string) ([]byte, error) {
	var codec *frontMatterCodec
	for i := range frontMatterCodecs {
		if frontMatterCodecs[i].name == format {
			codec = &frontMatterCodecs[i]
		}
	}
	if codec == nil {
		return nil, fmt.Errorf("unsupported front matter format: %s", format)
	}

	normalized := normalizeMap(fm)
	if normalized == nil {
		normalized = map[string]interface{}{}
	}

	var buf bytes.Buffer
	if codec.fence != "" {
		buf.WriteString(codec.fence + "\n")
	}
	if err := codec.encode(&buf, normalized); err != nil {
		return nil, fmt.Errorf("encode %s front matter: %w", codec.name, err)
	}
	if codec.fence != "" {
		buf.WriteString(codec.fence + "\n")
	}

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// normalizeMap turns nested map[interface{}]interface{} values into
// string-keyed maps so every encoder accepts them.
func normalizeMap(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	out := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return normalizeMap(v)
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, inner := range v {
			out[fmt.Sprint(key)] = normalizeValue(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = normalizeValue(v[i])
		}
		return out
	default:
		return v
	}
}
