package notion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDatabase(t *testing.T) []Page {
	t.Helper()
	var snapshot struct {
		Pages []Page `json:"pages"`
	}
	loadFixture(t, "database.json", &snapshot)
	return snapshot.Pages
}

func TestCompileDatabaseIndex(t *testing.T) {
	items := CompileDatabaseIndex(loadDatabase(t), PropertyMapping{})

	want := []PostListItem{
		{
			ID:       "page-1",
			Title:    "Hello World",
			Date:     strp("2024-01-02"),
			Summary:  strp("Short summary"),
			Author:   strp("Ada Lovelace"),
			Slug:     strp("hello-world"),
			CoverURL: strp("https://example.com/cover-from-property.png"),
		},
		{
			ID:       "page-2",
			Title:    "Fallback Cover",
			CoverURL: strp("https://example.com/cover-from-page.png"),
		},
		{
			ID:    "page-3",
			Title: UntitledTitle,
		},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("CompileDatabaseIndex() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileDatabaseIndex_Mapping(t *testing.T) {
	items := CompileDatabaseIndex(loadDatabase(t), PropertyMapping{Title: "Name", Author: "Writer"})
	require.Len(t, items, 3)

	assert.Equal(t, UntitledTitle, items[0].Title, "Title is no longer mapped")
	assert.Nil(t, items[0].Author)
	assert.Equal(t, "https://example.com/cover-from-property.png", *items[0].CoverURL, "unmapped fields keep defaults")

	assert.Equal(t, "Renamed", items[2].Title)
	require.NotNil(t, items[2].Author)
	assert.Equal(t, "Jane Doe", *items[2].Author)
}

func TestCompileDatabaseIndex_Empty(t *testing.T) {
	items := CompileDatabaseIndex(nil, DefaultMapping)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
