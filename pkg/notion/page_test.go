package notion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notion-cms/pkg/ast"
)

func TestCompilePage(t *testing.T) {
	var warnings Collector
	article := CompilePage(PageInput{
		Page:      loadPage(t, "meta-page-richtext.json"),
		Blocks:    loadBlocks(t, "toggle-callout.json"),
		OnWarning: warnings.Add,
	})

	require.NotNil(t, article.Meta.Title)
	assert.Equal(t, "Golden Page", *article.Meta.Title)
	assert.Equal(t, "my-slug", *article.Meta.Slug)
	assert.Nil(t, article.Meta.ReadTimeMinutes)
	assert.Len(t, article.Body, 4)
	assert.Equal(t, []WarningCode{
		WarningUnsupportedProperty,
		WarningEmptyToggle,
		WarningUnsupportedBlock,
	}, warnings.Codes(), "meta warnings come first")
}

func TestCompilePage_ReadTime(t *testing.T) {
	article := CompilePage(PageInput{
		Page:             loadPage(t, "meta-page-formula.json"),
		Blocks:           loadBlocks(t, "simple-page.json"),
		EstimateReadTime: true,
	})

	require.NotNil(t, article.Meta.ReadTimeMinutes)
	assert.Equal(t, 1, *article.Meta.ReadTimeMinutes)
}

func TestReadTimeMinutes(t *testing.T) {
	words := func(n int) []ast.Node {
		return []ast.Node{para(strings.TrimSpace(strings.Repeat("word ", n)))}
	}

	assert.Equal(t, 0, ReadTimeMinutes(nil))
	assert.Equal(t, 1, ReadTimeMinutes(words(1)))
	assert.Equal(t, 1, ReadTimeMinutes(words(200)))
	assert.Equal(t, 2, ReadTimeMinutes(words(201)))
	assert.Equal(t, 3, ReadTimeMinutes(words(450)))
}
