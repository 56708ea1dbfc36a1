package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"notion-cms/pkg/notion"
)

type Config struct {
	// Snapshots
	SnapshotPath     string `mapstructure:"SNAPSHOT_PATH"`
	DatabaseSnapshot string `mapstructure:"DATABASE_SNAPSHOT"`

	// Hugo site
	RepoPath          string `mapstructure:"REPO_PATH"`
	ContentSection    string `mapstructure:"CONTENT_SECTION"`
	FrontMatterFormat string `mapstructure:"FRONTMATTER_FORMAT"`
	EstimateReadTime  bool   `mapstructure:"ESTIMATE_READ_TIME"`

	// Cache settings
	CacheConcurrency int `mapstructure:"CACHE_CONCURRENCY"`

	// Server
	Addr          string `mapstructure:"ADDR"`
	AppURL        string `mapstructure:"APP_URL"`
	PreviewURL    string `mapstructure:"PREVIEW_URL"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`

	// GitHub OAuth
	GithubClientID     string `mapstructure:"GITHUB_CLIENT_ID"`
	GithubClientSecret string `mapstructure:"GITHUB_CLIENT_SECRET"`
	GithubRedirectURL  string `mapstructure:"GITHUB_REDIRECT_URL"`

	// Git settings
	GitUserEmail string `mapstructure:"GIT_USER_EMAIL"`
	GitUserName  string `mapstructure:"GIT_USER_NAME"`
	GitBranch    string `mapstructure:"GIT_BRANCH"`
	GitRemote    string `mapstructure:"GIT_REMOTE"`

	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Database index property names
	IndexTitleProperty   string `mapstructure:"INDEX_TITLE_PROPERTY"`
	IndexDateProperty    string `mapstructure:"INDEX_DATE_PROPERTY"`
	IndexSummaryProperty string `mapstructure:"INDEX_SUMMARY_PROPERTY"`
	IndexAuthorProperty  string `mapstructure:"INDEX_AUTHOR_PROPERTY"`
	IndexSlugProperty    string `mapstructure:"INDEX_SLUG_PROPERTY"`
	IndexCoverProperty   string `mapstructure:"INDEX_COVER_PROPERTY"`
}

var defaults = map[string]any{
	"SNAPSHOT_PATH":        "./snapshots",
	"DATABASE_SNAPSHOT":    "./snapshots/database.json",
	"REPO_PATH":            "./repo",
	"CONTENT_SECTION":      "posts",
	"FRONTMATTER_FORMAT":   "toml",
	"ESTIMATE_READ_TIME":   true,
	"CACHE_CONCURRENCY":    20,
	"ADDR":                 ":8080",
	"APP_URL":              "http://localhost:8080",
	"PREVIEW_URL":          "/preview/",
	"SESSION_SECRET":       "",
	"GITHUB_CLIENT_ID":     "",
	"GITHUB_CLIENT_SECRET": "",
	"GITHUB_REDIRECT_URL":  "",
	"GIT_USER_EMAIL":       "bot@notion-cms.local",
	"GIT_USER_NAME":        "Notion CMS Bot",
	"GIT_BRANCH":           "main",
	"GIT_REMOTE":           "origin",
	"LOG_LEVEL":            "info",

	"INDEX_TITLE_PROPERTY":   notion.DefaultMapping.Title,
	"INDEX_DATE_PROPERTY":    notion.DefaultMapping.Date,
	"INDEX_SUMMARY_PROPERTY": notion.DefaultMapping.Summary,
	"INDEX_AUTHOR_PROPERTY":  notion.DefaultMapping.Author,
	"INDEX_SLUG_PROPERTY":    notion.DefaultMapping.Slug,
	"INDEX_COVER_PROPERTY":   notion.DefaultMapping.Cover,
}

// Load reads .env, the optional config file and the environment, in
// increasing order of precedence. A missing .env is not an error.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		// AutomaticEnv only covers keys viper already knows about.
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.GithubRedirectURL == "" {
		cfg.GithubRedirectURL = strings.TrimSuffix(cfg.AppURL, "/") + "/auth/callback"
	}
	if cfg.CacheConcurrency < 1 {
		cfg.CacheConcurrency = 1
	}
	return &cfg, nil
}

// OAuth is the GitHub OAuth client. The repo scope lets the token push to
// the site repository.
func (c *Config) OAuth() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.GithubClientID,
		ClientSecret: c.GithubClientSecret,
		Scopes:       []string{"repo"},
		Endpoint:     github.Endpoint,
		RedirectURL:  c.GithubRedirectURL,
	}
}

func (c *Config) IndexMapping() notion.PropertyMapping {
	return notion.PropertyMapping{
		Title:   c.IndexTitleProperty,
		Date:    c.IndexDateProperty,
		Summary: c.IndexSummaryProperty,
		Author:  c.IndexAuthorProperty,
		Slug:    c.IndexSlugProperty,
		Cover:   c.IndexCoverProperty,
	}
}
