package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"notion-cms/pkg/config"
	"notion-cms/pkg/models"
	"notion-cms/pkg/notion"
)

// Store compiles page snapshots on first use and caches the result until
// Invalidate is called.
type Store struct {
	cfg *config.Config

	mu       sync.Mutex
	articles []*models.CompiledArticle
	loaded   bool
}

func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// Articles returns every compiled snapshot, ordered by snapshot path.
func (s *Store) Articles(ctx context.Context) ([]*models.CompiledArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.articles, nil
	}

	files, err := ListSnapshots(s.cfg.SnapshotPath, s.cfg.DatabaseSnapshot)
	if err != nil {
		return nil, err
	}

	articles := make([]*models.CompiledArticle, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.CacheConcurrency)
	for i, rel := range files {
		i, rel := i, rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			article, err := CompileSnapshotFile(filepath.Join(s.cfg.SnapshotPath, rel), s.cfg.EstimateReadTime)
			if err != nil {
				return err
			}
			article.Path = rel
			articles[i] = article
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.articles = articles
	s.loaded = true
	return s.articles, nil
}

// Get finds a compiled article by page id or slug.
func (s *Store) Get(ctx context.Context, id string) (*models.CompiledArticle, error) {
	articles, err := s.Articles(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		if a.ID == id {
			return a, nil
		}
	}
	for _, a := range articles {
		if a.Slug() == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
}

func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.articles = nil
}

// Index compiles the database snapshot into list summaries.
func (s *Store) Index(mapping notion.PropertyMapping) ([]notion.PostListItem, error) {
	snapshot, err := ReadDatabaseSnapshot(s.cfg.DatabaseSnapshot)
	if err != nil {
		return nil, err
	}
	return notion.CompileDatabaseIndex(snapshot.Pages, mapping), nil
}

// CompileSnapshotFile reads and compiles one page snapshot. Warnings are
// both logged and kept on the result. A snapshot without a page id is
// identified by its file name.
func CompileSnapshotFile(path string, estimateReadTime bool) (*models.CompiledArticle, error) {
	snapshot, err := ReadPageSnapshot(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	id := snapshot.Page.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	var warnings notion.Collector
	article := notion.CompilePage(notion.PageInput{
		Page:             snapshot.Page,
		Blocks:           snapshot.Blocks,
		OnWarning:        notion.Tee(warnings.Add, LogWarnings(path)),
		EstimateReadTime: estimateReadTime,
	})

	return &models.CompiledArticle{
		ID:       id,
		Path:     filepath.ToSlash(path),
		Article:  article,
		Warnings: warnings.Warnings,
		ModTime:  info.ModTime(),
	}, nil
}
