package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"notion-cms/pkg/config"
	"notion-cms/pkg/services"
)

// NewRouter wires the public auth routes and the authorized API.
func NewRouter(cfg *config.Config, store *services.Store) *gin.Engine {
	r := gin.Default()

	// Session Setup
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("notion-cms", sessionStore))

	// Hugo build output
	r.Static(cfg.PreviewURL, filepath.Join(cfg.RepoPath, "public"))

	auth := NewAuth(cfg.OAuth())
	api := NewAPI(cfg, store)

	// --- Auth Routes ---
	r.GET("/healthz", Healthz)
	r.GET("/login", auth.LoginPage)
	r.GET("/login/github", auth.GithubLogin)
	r.GET("/auth/callback", auth.AuthCallback)
	r.GET("/logout", auth.Logout)

	// --- Main App (Authorized) ---
	authorized := r.Group("/")
	authorized.Use(AuthRequired)
	{
		authorized.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/api/articles") })

		apiGroup := authorized.Group("/api")
		{
			apiGroup.POST("/compile", api.Compile)
			apiGroup.POST("/meta", api.Meta)
			apiGroup.POST("/page", api.Page)
			apiGroup.POST("/index", api.CompileIndex)
			apiGroup.GET("/index", api.Index)
			apiGroup.GET("/articles", api.ListArticles)
			apiGroup.GET("/article", api.GetArticle)
			apiGroup.GET("/article/text", api.GetArticleText)
			apiGroup.POST("/revalidate", api.Revalidate)
			apiGroup.POST("/export", api.Export)
			apiGroup.POST("/build", api.HandleBuild)
			apiGroup.POST("/sync", api.HandleSync)
			apiGroup.POST("/publish", api.HandlePublish)
		}
	}

	return r
}
