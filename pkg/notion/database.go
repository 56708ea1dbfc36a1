package notion

import "strings"

// PropertyMapping names the database properties read for each summary field.
// Empty fields keep the DefaultMapping name.
type PropertyMapping struct {
	Title   string `json:"title,omitempty" mapstructure:"title"`
	Date    string `json:"date,omitempty" mapstructure:"date"`
	Summary string `json:"summary,omitempty" mapstructure:"summary"`
	Author  string `json:"author,omitempty" mapstructure:"author"`
	Slug    string `json:"slug,omitempty" mapstructure:"slug"`
	Cover   string `json:"cover,omitempty" mapstructure:"cover"`
}

var DefaultMapping = PropertyMapping{
	Title:   "Title",
	Date:    "Date",
	Summary: "Summary",
	Author:  "Author",
	Slug:    "Slug",
	Cover:   "Cover",
}

// UntitledTitle is used for records without a usable title.
const UntitledTitle = "Untitled"

// merge fills the empty fields of m from DefaultMapping.
func (m PropertyMapping) merge() PropertyMapping {
	pick := func(name, fallback string) string {
		if name == "" {
			return fallback
		}
		return name
	}
	return PropertyMapping{
		Title:   pick(m.Title, DefaultMapping.Title),
		Date:    pick(m.Date, DefaultMapping.Date),
		Summary: pick(m.Summary, DefaultMapping.Summary),
		Author:  pick(m.Author, DefaultMapping.Author),
		Slug:    pick(m.Slug, DefaultMapping.Slug),
		Cover:   pick(m.Cover, DefaultMapping.Cover),
	}
}

// PostListItem is the index summary of one database record.
type PostListItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Date     *string `json:"date,omitempty"`
	Summary  *string `json:"summary,omitempty"`
	Author   *string `json:"author,omitempty"`
	Slug     *string `json:"slug,omitempty"`
	CoverURL *string `json:"coverUrl,omitempty"`
}

// CompileDatabaseIndex summarizes each record, in input order. Values are
// read by shape rather than by declared type, so records that omit the
// property type still resolve.
func CompileDatabaseIndex(pages []Page, mapping PropertyMapping) []PostListItem {
	names := mapping.merge()
	items := make([]PostListItem, 0, len(pages))

	for _, page := range pages {
		props := page.Properties
		item := PostListItem{
			ID:    page.ID,
			Title: UntitledTitle,
		}

		if title := runsText(props, names.Title, "title"); title != nil {
			item.Title = *title
		}
		if prop, ok := props.Get(names.Date); ok {
			if start, ok := prop.Value().Object("date").String("start"); ok && start != "" {
				item.Date = &start
			}
		}
		item.Summary = runsText(props, names.Summary, "rich_text")
		item.Author = indexAuthor(props, names.Author)
		item.Slug = runsText(props, names.Slug, "rich_text")

		if prop, ok := props.Get(names.Cover); ok {
			if files, ok := prop.Value().Array("files"); ok {
				item.CoverURL = firstFileURL(files)
			}
		}
		if item.CoverURL == nil && page.Cover != nil {
			if url, ok := fileURL(page.Cover); ok {
				item.CoverURL = &url
			}
		}

		items = append(items, item)
	}
	return items
}

// runsText reads the named property's key member as rich text.
func runsText(props Properties, name, key string) *string {
	prop, ok := props.Get(name)
	if !ok {
		return nil
	}
	runs, ok := prop.Value().RichText(key)
	if !ok {
		return nil
	}
	return nonBlank(plainText(runs))
}

func indexAuthor(props Properties, name string) *string {
	prop, ok := props.Get(name)
	if !ok {
		return nil
	}
	value := prop.Value()
	switch {
	case value.Has("rich_text"):
		return runsText(props, name, "rich_text")
	case value.Has("title"):
		return runsText(props, name, "title")
	}
	items, ok := value.Array("people")
	if !ok {
		return nil
	}
	var names []string
	for _, item := range items {
		person, _ := decodeObject(item)
		if n, _ := person.String("name"); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil
	}
	joined := strings.Join(names, ", ")
	return &joined
}
