package models

import (
	"time"

	"notion-cms/pkg/ast"
	"notion-cms/pkg/notion"
)

// CompiledArticle is one page snapshot after compilation.
type CompiledArticle struct {
	ID       string           `json:"id"`
	Path     string           `json:"path"` // snapshot file, relative to the snapshot dir
	Article  *ast.Article     `json:"article"`
	Warnings []notion.Warning `json:"warnings"`
	ModTime  time.Time        `json:"modTime"`
}

// Slug is the article slug, falling back to the page id.
func (a *CompiledArticle) Slug() string {
	if a.Article != nil && a.Article.Meta.Slug != nil && *a.Article.Meta.Slug != "" {
		return *a.Article.Meta.Slug
	}
	return a.ID
}

// Summary is the listing form of the article.
func (a *CompiledArticle) Summary() ArticleSummary {
	s := ArticleSummary{
		ID:       a.ID,
		Path:     a.Path,
		Slug:     a.Slug(),
		Warnings: len(a.Warnings),
	}
	if a.Article == nil {
		return s
	}
	meta := a.Article.Meta
	if meta.Title != nil {
		s.Title = *meta.Title
	}
	if meta.Date != nil {
		s.Date = *meta.Date
	}
	s.Tags = meta.Tags
	return s
}

// ArticleSummary represents a compiled article in listings.
type ArticleSummary struct {
	ID       string   `json:"id"`
	Path     string   `json:"path"`
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Date     string   `json:"date,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Warnings int      `json:"warnings"`
}
