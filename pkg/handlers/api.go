package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"notion-cms/pkg/ast"
	"notion-cms/pkg/config"
	"notion-cms/pkg/models"
	"notion-cms/pkg/notion"
	"notion-cms/pkg/services"
)

// API serves the compiler and the snapshot store over HTTP.
type API struct {
	cfg      *config.Config
	store    *services.Store
	exporter *services.Exporter
}

func NewAPI(cfg *config.Config, store *services.Store) *API {
	return &API{
		cfg:   cfg,
		store: store,
		exporter: services.NewExporter(models.ExportConfig{
			RepoPath:          cfg.RepoPath,
			ContentSection:    cfg.ContentSection,
			FrontMatterFormat: cfg.FrontMatterFormat,
		}),
	}
}

// Compile compiles a posted block tree.
func (a *API) Compile(c *gin.Context) {
	var req struct {
		Blocks []notion.Block `json:"blocks"`
		Meta   ast.Meta       `json:"meta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	var warnings notion.Collector
	article := notion.CompileBlocks(req.Blocks, notion.CompileOptions{
		Meta:      req.Meta,
		OnWarning: warnings.Add,
	})
	c.JSON(http.StatusOK, gin.H{"article": article, "warnings": nonNil(warnings.Warnings)})
}

// Meta compiles a posted property bag.
func (a *API) Meta(c *gin.Context) {
	var req struct {
		Properties notion.Properties `json:"properties"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	var warnings notion.Collector
	meta := notion.CompilePageMeta(req.Properties, notion.MetaOptions{OnWarning: warnings.Add})
	c.JSON(http.StatusOK, gin.H{"meta": meta, "warnings": nonNil(warnings.Warnings)})
}

// Page compiles a posted page and its block tree.
func (a *API) Page(c *gin.Context) {
	var req struct {
		Page             notion.Page    `json:"page"`
		Blocks           []notion.Block `json:"blocks"`
		EstimateReadTime bool           `json:"estimateReadTime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	var warnings notion.Collector
	article := notion.CompilePage(notion.PageInput{
		Page:             req.Page,
		Blocks:           req.Blocks,
		OnWarning:        warnings.Add,
		EstimateReadTime: req.EstimateReadTime,
	})
	c.JSON(http.StatusOK, gin.H{"article": article, "warnings": nonNil(warnings.Warnings)})
}

// CompileIndex compiles posted database records.
func (a *API) CompileIndex(c *gin.Context) {
	var req struct {
		Pages   []notion.Page          `json:"pages"`
		Mapping notion.PropertyMapping `json:"mapping"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	c.JSON(http.StatusOK, notion.CompileDatabaseIndex(req.Pages, req.Mapping))
}

// Index serves the database snapshot index.
func (a *API) Index(c *gin.Context) {
	items, err := a.store.Index(a.cfg.IndexMapping())
	if err != nil {
		a.fail(c, err, "Failed to compile index")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (a *API) ListArticles(c *gin.Context) {
	articles, err := a.store.Articles(c.Request.Context())
	if err != nil {
		a.fail(c, err, "Failed to fetch articles")
		return
	}
	summaries := make([]models.ArticleSummary, 0, len(articles))
	for _, article := range articles {
		summaries = append(summaries, article.Summary())
	}
	c.JSON(http.StatusOK, summaries)
}

func (a *API) GetArticle(c *gin.Context) {
	article, err := a.store.Get(c.Request.Context(), c.Query("id"))
	if err != nil {
		a.fail(c, err, "Article not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article.Article, "warnings": nonNil(article.Warnings)})
}

// GetArticleText serves the readable text of an article, one line per
// text-bearing node.
func (a *API) GetArticleText(c *gin.Context) {
	article, err := a.store.Get(c.Request.Context(), c.Query("id"))
	if err != nil {
		a.fail(c, err, "Article not found")
		return
	}
	c.String(http.StatusOK, ast.BodyText(article.Article.Body))
}

func (a *API) Revalidate(c *gin.Context) {
	a.store.Invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Export writes one article, or every article when no id is given, into the
// site repository.
func (a *API) Export(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	ctx := c.Request.Context()
	var written []string
	if req.ID == "" {
		articles, err := a.store.Articles(ctx)
		if err != nil {
			a.fail(c, err, "Failed to fetch articles")
			return
		}
		written, err = a.exporter.ExportAll(articles)
		if err != nil {
			a.fail(c, err, "Export failed")
			return
		}
	} else {
		article, err := a.store.Get(ctx, req.ID)
		if err != nil {
			a.fail(c, err, "Article not found")
			return
		}
		written, err = a.exporter.Export(article)
		if err != nil {
			a.fail(c, err, "Export failed")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "exported", "written": nonNil(written)})
}

func (a *API) HandleBuild(c *gin.Context) {
	output, err := services.BuildSite(c.Request.Context(), a.cfg)
	if err != nil {
		log.Error().Err(err).Msg("hugo build failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "log": output})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "log": output})
}

func (a *API) HandleSync(c *gin.Context) {
	output, err := services.SyncRepo(c.Request.Context(), a.cfg, accessToken(c))
	if err != nil {
		log.Error().Err(err).Msg("git sync failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "log": output})
		return
	}
	a.store.Invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "log": output})
}

func (a *API) HandlePublish(c *gin.Context) {
	output, err := services.PublishRepo(c.Request.Context(), a.cfg, accessToken(c))
	if err != nil {
		log.Error().Err(err).Msg("git publish failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "log": output})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "log": output})
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail maps service errors to a status code and a JSON error body.
func (a *API) fail(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrSnapshotNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidPath):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrSlugConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
	}
	c.JSON(status, gin.H{"error": msg + ": " + err.Error()})
}

func accessToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(sessionTokenKey).(string)
	return token
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
