package services

import (
	"context"
	"os/exec"
	"strings"

	"notion-cms/pkg/config"
)

// BuildSite runs hugo over the site repository, publishing under the
// preview path. It returns the combined hugo output.
func BuildSite(ctx context.Context, cfg *config.Config) (string, error) {
	cmd := exec.CommandContext(ctx, "hugo",
		"--source", cfg.RepoPath,
		"--destination", "public",
		"--baseURL", strings.TrimSuffix(cfg.AppURL, "/")+cfg.PreviewURL,
		"--cleanDestinationDir",
		"-D",
	)
	output, err := cmd.CombinedOutput()
	return string(output), err
}
