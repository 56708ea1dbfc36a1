package models

// ExportConfig describes where compiled articles land in the Hugo site.
type ExportConfig struct {
	RepoPath          string `yaml:"repo_path" json:"repoPath"`
	ContentSection    string `yaml:"content_section" json:"contentSection"`
	FrontMatterFormat string `yaml:"frontmatter_format" json:"frontMatterFormat"` // yaml, toml, json
	DataDir           string `yaml:"data_dir" json:"dataDir"`
}

// DefaultDataDir is where article ASTs are written, relative to the repo.
const DefaultDataDir = "data/articles"
