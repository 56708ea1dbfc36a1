package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notion-cms/pkg/ast"
	"notion-cms/pkg/notion"
)

func TestPageSnapshot_Object(t *testing.T) {
	var s PageSnapshot
	require.NoError(t, json.Unmarshal([]byte(`{
		"page": {"id": "p1", "properties": {"Name": {"type": "title", "title": [{"plain_text": "Hi"}]}}},
		"blocks": [{"id": "b1", "type": "divider", "divider": {}}]
	}`), &s))

	assert.Equal(t, "p1", s.Page.ID)
	assert.Equal(t, []string{"Name"}, s.Page.Properties.Keys())
	require.Len(t, s.Blocks, 1)
	assert.Equal(t, "divider", s.Blocks[0].Type)
}

func TestPageSnapshot_BareBlocks(t *testing.T) {
	var s PageSnapshot
	require.NoError(t, json.Unmarshal([]byte(` [{"id": "b1", "type": "paragraph", "paragraph": {"rich_text": []}}]`), &s))

	assert.Empty(t, s.Page.ID)
	require.Len(t, s.Blocks, 1)
	assert.Equal(t, "b1", s.Blocks[0].ID)
}

func TestPageSnapshot_Invalid(t *testing.T) {
	var s PageSnapshot
	assert.Error(t, json.Unmarshal([]byte(`{"page": `), &s))
}

func TestDatabaseSnapshot(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"pages", `{"pages": [{"id": "a"}, {"id": "b"}]}`},
		{"results", `{"object": "list", "results": [{"id": "a"}, {"id": "b"}], "has_more": false}`},
		{"array", `[{"id": "a"}, {"id": "b"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s DatabaseSnapshot
			require.NoError(t, json.Unmarshal([]byte(tt.data), &s))
			require.Len(t, s.Pages, 2)
			assert.Equal(t, "a", s.Pages[0].ID)
			assert.Equal(t, "b", s.Pages[1].ID)
		})
	}
}

func TestCompiledArticle_Summary(t *testing.T) {
	title, slug, date := "Hello", "hello", "2025-01-02"
	a := &CompiledArticle{
		ID:   "page-1",
		Path: "hello.json",
		Article: &ast.Article{Meta: ast.Meta{
			Title: &title, Slug: &slug, Date: &date, Tags: []string{"go"},
		}},
		Warnings: []notion.Warning{{Code: notion.WarningUnsupportedBlock}},
	}

	assert.Equal(t, ArticleSummary{
		ID:       "page-1",
		Path:     "hello.json",
		Title:    "Hello",
		Slug:     "hello",
		Date:     "2025-01-02",
		Tags:     []string{"go"},
		Warnings: 1,
	}, a.Summary())
}

func TestCompiledArticle_SlugFallback(t *testing.T) {
	a := &CompiledArticle{ID: "page-2", Article: &ast.Article{}}
	assert.Equal(t, "page-2", a.Slug())
}
