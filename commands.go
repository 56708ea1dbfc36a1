package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"notion-cms/pkg/models"
	"notion-cms/pkg/notion"
	"notion-cms/pkg/services"
)

var errStrict = errors.New("compile produced warnings")

var (
	strict   bool
	readTime bool
	mapping  notion.PropertyMapping
)

var compileCmd = &cobra.Command{
	Use:   "compile <snapshot.json>",
	Short: "Compile a page snapshot and print the article JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		estimate := cfg.EstimateReadTime
		if cmd.Flags().Changed("read-time") {
			estimate = readTime
		}
		compiled, err := services.CompileSnapshotFile(args[0], estimate)
		if err != nil {
			return err
		}
		if err := printJSON(cmd.OutOrStdout(), compiled.Article); err != nil {
			return err
		}
		if strict && len(compiled.Warnings) > 0 {
			return fmt.Errorf("%w: %d", errStrict, len(compiled.Warnings))
		}
		return nil
	},
}

var metaCmd = &cobra.Command{
	Use:   "meta <snapshot.json>",
	Short: "Compile only the page properties of a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := services.ReadPageSnapshot(args[0])
		if err != nil {
			return err
		}
		meta := notion.CompilePageMeta(snapshot.Page.Properties, notion.MetaOptions{
			OnWarning: services.LogWarnings(args[0]),
		})
		return printJSON(cmd.OutOrStdout(), meta)
	},
}

var indexCmd = &cobra.Command{
	Use:   "index [database.json]",
	Short: "Compile a database snapshot into post list items",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.DatabaseSnapshot
		if len(args) == 1 {
			path = args[0]
		}
		snapshot, err := services.ReadDatabaseSnapshot(path)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), notion.CompileDatabaseIndex(snapshot.Pages, flagMapping(cmd)))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Compile every snapshot and write it into the Hugo repository",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		articles, err := services.NewStore(cfg).Articles(cmd.Context())
		if err != nil {
			return err
		}
		exporter := services.NewExporter(models.ExportConfig{
			RepoPath:          cfg.RepoPath,
			ContentSection:    cfg.ContentSection,
			FrontMatterFormat: cfg.FrontMatterFormat,
		})
		written, err := exporter.ExportAll(articles)
		if err != nil {
			return err
		}
		for _, rel := range written {
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(cfg.RepoPath, rel))
		}
		log.Info().Int("articles", len(articles)).Int("written", len(written)).Msg("export finished")
		return nil
	},
}

func init() {
	compileCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any warning is emitted")
	compileCmd.Flags().BoolVar(&readTime, "read-time", false, "estimate reading time (overrides ESTIMATE_READ_TIME)")

	indexCmd.Flags().StringVar(&mapping.Title, "title", "", "title property name")
	indexCmd.Flags().StringVar(&mapping.Date, "date", "", "date property name")
	indexCmd.Flags().StringVar(&mapping.Summary, "summary", "", "summary property name")
	indexCmd.Flags().StringVar(&mapping.Author, "author", "", "author property name")
	indexCmd.Flags().StringVar(&mapping.Slug, "slug", "", "slug property name")
	indexCmd.Flags().StringVar(&mapping.Cover, "cover", "", "cover property name")
}

// flagMapping layers the index flags over the configured mapping.
func flagMapping(cmd *cobra.Command) notion.PropertyMapping {
	m := cfg.IndexMapping()
	for name, dst := range map[string]*string{
		"title":   &m.Title,
		"date":    &m.Date,
		"summary": &m.Summary,
		"author":  &m.Author,
		"slug":    &m.Slug,
		"cover":   &m.Cover,
	} {
		if cmd.Flags().Changed(name) {
			*dst = cmd.Flags().Lookup(name).Value.String()
		}
	}
	return m
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
