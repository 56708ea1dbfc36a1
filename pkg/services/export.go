package services

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/goccy/go-json"

	"notion-cms/pkg/models"
)

var ErrSlugConflict = errors.New("slug already used by another page")

// Exporter writes compiled articles into a Hugo site: a content file carrying
// the front matter, and a data file carrying the article tree for templates.
type Exporter struct {
	cfg models.ExportConfig
}

func NewExporter(cfg models.ExportConfig) *Exporter {
	if cfg.DataDir == "" {
		cfg.DataDir = models.DefaultDataDir
	}
	if cfg.FrontMatterFormat == "" {
		cfg.FrontMatterFormat = "toml"
	}
	return &Exporter{cfg: cfg}
}

// Export writes one article and returns the repo-relative paths that
// changed. Files already holding the same content are left alone.
func (e *Exporter) Export(article *models.CompiledArticle) ([]string, error) {
	slug := article.Slug()
	contentRel := path.Join("content", e.cfg.ContentSection, slug+".md")
	dataRel := path.Join(e.cfg.DataDir, slug+".json")

	contentPath, err := SafeJoin(e.cfg.RepoPath, "", contentRel)
	if err != nil {
		return nil, err
	}
	dataPath, err := SafeJoin(e.cfg.RepoPath, "", dataRel)
	if err != nil {
		return nil, err
	}

	if err := checkOwner(contentPath, article.ID); err != nil {
		return nil, err
	}

	fm := MetaToFrontMatter(article.Article.Meta)
	fm[KeyNotionID] = article.ID
	fm[KeyArticleData] = dataRel
	content, err := ConstructFileContent(fm, "", e.cfg.FrontMatterFormat)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", article.ID, err)
	}

	data, err := json.MarshalIndent(article.Article, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export %s: encode article: %w", article.ID, err)
	}
	data = append(data, '\n')

	var written []string
	for _, f := range []struct {
		rel, abs string
		content  []byte
	}{
		{contentRel, contentPath, content},
		{dataRel, dataPath, data},
	} {
		changed, err := writeFileIfChanged(f.abs, f.content)
		if err != nil {
			return written, err
		}
		if changed {
			written = append(written, f.rel)
		}
	}
	return written, nil
}

// ExportAll exports every article, stopping at the first failure.
func (e *Exporter) ExportAll(articles []*models.CompiledArticle) ([]string, error) {
	var written []string
	for _, a := range articles {
		paths, err := e.Export(a)
		written = append(written, paths...)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// checkOwner refuses to overwrite a content file exported for another page.
func checkOwner(contentPath, id string) error {
	existing, err := os.ReadFile(contentPath)
	if err != nil {
		return nil
	}
	fm, _, _, err := ParseFrontMatter(existing)
	if err != nil {
		return nil
	}
	if owner, ok := fm[KeyNotionID].(string); ok && owner != id {
		return fmt.Errorf("%w: %s is owned by %s", ErrSlugConflict, contentPath, owner)
	}
	return nil
}
