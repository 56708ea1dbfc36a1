package notion

import (
	"strings"

	"notion-cms/pkg/ast"
)

// RichTextToSpans turns runs into spans, one span per run in input order.
// Each run becomes a text or code leaf, wrapped in bold, then italic, then
// link as its annotations require. Adjacent runs are never merged.
func RichTextToSpans(runs []RichText) []ast.Span {
	spans := make([]ast.Span, 0, len(runs))
	for _, rt := range runs {
		var span ast.Span
		if rt.Annotations.Code {
			span = &ast.InlineCode{Text: rt.PlainText}
		} else {
			span = &ast.Text{Text: rt.PlainText}
		}

		if rt.Annotations.Bold {
			span = &ast.Bold{Children: []ast.Span{span}}
		}
		if rt.Annotations.Italic {
			span = &ast.Italic{Children: []ast.Span{span}}
		}
		if rt.Href != nil && *rt.Href != "" {
			span = &ast.Link{Href: *rt.Href, Children: []ast.Span{span}}
		}

		spans = append(spans, span)
	}
	return spans
}

// plainText is the trimmed text content of runs.
func plainText(runs []RichText) string {
	return strings.TrimSpace(ast.ToPlainText(RichTextToSpans(runs)))
}
