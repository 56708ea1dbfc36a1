package notion

import "notion-cms/pkg/ast"

// WordsPerMinute is the reading speed used for read time estimates.
const WordsPerMinute = 200

// PageInput is everything needed to compile one page.
type PageInput struct {
	Page   Page
	Blocks []Block

	OnWarning WarningFunc
	// EstimateReadTime fills Meta.ReadTimeMinutes from the compiled body.
	EstimateReadTime bool
}

// CompilePage compiles a page's properties and its block tree into one
// Article. Metadata warnings are reported before block warnings.
func CompilePage(in PageInput) *ast.Article {
	meta := CompilePageMeta(in.Page.Properties, MetaOptions{OnWarning: in.OnWarning})
	article := CompileBlocks(in.Blocks, CompileOptions{
		Meta:      meta,
		OnWarning: in.OnWarning,
	})
	if in.EstimateReadTime {
		if minutes := ReadTimeMinutes(article.Body); minutes > 0 {
			article.Meta.ReadTimeMinutes = &minutes
		}
	}
	return article
}

// ReadTimeMinutes rounds the body's reading time up to whole minutes. A body
// without words reads in zero minutes.
func ReadTimeMinutes(body []ast.Node) int {
	words := ast.WordCount(body)
	if words == 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}
