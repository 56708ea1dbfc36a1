package notion

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notion-cms/pkg/ast"
)

func loadPage(t *testing.T, name string) Page {
	t.Helper()
	var page Page
	loadFixture(t, name, &page)
	return page
}

func TestCompilePageMeta_RichText(t *testing.T) {
	var warnings Collector
	meta := CompilePageMeta(loadPage(t, "meta-page-richtext.json").Properties, MetaOptions{OnWarning: warnings.Add})

	want := ast.Meta{
		Title:        strp("Golden Page"),
		Slug:         strp("my-slug"),
		Date:         strp("2025-06-01"),
		Tags:         []string{"alpha", "beta"},
		CanonicalURL: strp("https://example.com/post"),
	}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Errorf("CompilePageMeta() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []WarningCode{WarningUnsupportedProperty}, warnings.Codes())
	assert.Contains(t, warnings.Warnings[0].Message, `"Status"`)
	assert.Equal(t, "page", warnings.Warnings[0].BlockType)
}

func TestCompilePageMeta_FormulaSlug(t *testing.T) {
	meta := CompilePageMeta(loadPage(t, "meta-page-formula.json").Properties, MetaOptions{})

	require.NotNil(t, meta.Slug)
	require.NotNil(t, meta.Title)
	assert.Equal(t, "formula-slug-value", *meta.Slug)
	assert.Equal(t, "Formula Slug", *meta.Title, "first title-typed property is the fallback")
}

func TestCompilePageMeta_Invalid(t *testing.T) {
	var warnings Collector
	meta := CompilePageMeta(loadPage(t, "meta-page-invalid.json").Properties, MetaOptions{OnWarning: warnings.Add})

	assert.True(t, meta.IsZero())
	assert.Equal(t, []WarningCode{
		WarningMissingTitle,
		WarningMalformedSlug,
		WarningMalformedDate,
		WarningUnsupportedProperty,
	}, warnings.Codes())
}

func TestCompilePageMeta_People(t *testing.T) {
	var warnings Collector
	meta := CompilePageMeta(loadPage(t, "meta-page-people.json").Properties, MetaOptions{OnWarning: warnings.Add})

	want := ast.Meta{
		Title:          strp("People Page"),
		Author:         strp("Ada Lovelace, Grace Hopper"),
		AuthorImageURL: strp("https://example.com/ada.png"),
		Summary:        strp("A short summary"),
		CoverURL:       strp("https://files.notion.so/cover.png"),
	}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Errorf("CompilePageMeta() mismatch (-want +got):\n%s", diff)
	}
	assert.Zero(t, warnings.Len())
}

func TestCompilePageMeta_EmptyTitleAndUnknownKey(t *testing.T) {
	var page Page
	require.NoError(t, json.Unmarshal([]byte(`{"properties": {
		"Name": {"type": "title", "title": []},
		"Foo": {"type": "checkbox", "checkbox": true}
	}}`), &page))

	var warnings Collector
	meta := CompilePageMeta(page.Properties, MetaOptions{OnWarning: warnings.Add})

	assert.True(t, meta.IsZero())
	assert.Equal(t, []WarningCode{WarningMissingTitle, WarningUnsupportedProperty}, warnings.Codes())

	got, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(got))
}

func TestCompilePageMeta_UnsupportedShapes(t *testing.T) {
	tests := []struct {
		name  string
		props string
		want  []WarningCode
	}{
		{
			name:  "slug of wrong type",
			props: `{"title": {"type": "title", "title": [{"plain_text": "T"}]}, "slug": {"type": "number", "number": 3}}`,
			want:  []WarningCode{WarningUnsupportedProperty},
		},
		{
			name:  "date of wrong type",
			props: `{"title": {"type": "title", "title": [{"plain_text": "T"}]}, "Date": {"type": "rich_text", "rich_text": []}}`,
			want:  []WarningCode{WarningUnsupportedProperty},
		},
		{
			name:  "tags of wrong type",
			props: `{"title": {"type": "title", "title": [{"plain_text": "T"}]}, "tags": {"type": "select", "select": {"name": "x"}}}`,
			want:  []WarningCode{WarningUnsupportedProperty},
		},
		{
			name:  "author of wrong type",
			props: `{"title": {"type": "title", "title": [{"plain_text": "T"}]}, "author": {"type": "email", "email": "a@b.c"}}`,
			want:  []WarningCode{WarningUnsupportedProperty},
		},
		{
			name:  "title alias of wrong type",
			props: `{"Title": {"type": "rich_text", "rich_text": [{"plain_text": "T"}]}, "Name": {"type": "title", "title": [{"plain_text": "N"}]}}`,
			want:  []WarningCode{WarningMissingTitle, WarningUnsupportedProperty},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var props Properties
			require.NoError(t, json.Unmarshal([]byte(tt.props), &props))

			var warnings Collector
			CompilePageMeta(props, MetaOptions{OnWarning: warnings.Add})
			assert.Equal(t, tt.want, warnings.Codes())
		})
	}
}

func TestCompilePageMeta_UnsupportedKeyOrder(t *testing.T) {
	var props Properties
	require.NoError(t, json.Unmarshal([]byte(`{
		"Zeta": {"type": "checkbox"},
		"title": {"type": "title", "title": [{"plain_text": "T"}]},
		"Alpha": {"type": "checkbox"},
		"Mid": {"type": "checkbox"}
	}`), &props))

	for i := 0; i < 5; i++ {
		var warnings Collector
		CompilePageMeta(props, MetaOptions{OnWarning: warnings.Add})

		require.Equal(t, 3, warnings.Len())
		assert.Contains(t, warnings.Warnings[0].Message, `"Zeta"`)
		assert.Contains(t, warnings.Warnings[1].Message, `"Alpha"`)
		assert.Contains(t, warnings.Warnings[2].Message, `"Mid"`)
	}
}
