package services

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
	"time"

	"notion-cms/pkg/config"
)

// ExecuteGitWithToken runs git in dir with the remote's URL rewritten to
// carry token. The token never appears in the returned output.
func ExecuteGitWithToken(ctx context.Context, dir, remote, token string, args ...string) (string, error) {
	cmdGetURL := exec.CommandContext(ctx, "git", "remote", "get-url", remote)
	cmdGetURL.Dir = dir
	outURL, err := cmdGetURL.Output()
	if err != nil {
		return "Failed to get remote url", fmt.Errorf("git remote get-url %s: %w", remote, err)
	}
	remoteURL := strings.TrimSpace(string(outURL))
	authenticatedURL, err := authenticatedRemote(remoteURL, token)
	if err != nil {
		return "Invalid remote url", err
	}

	newArgs := make([]string, len(args))
	copy(newArgs, args)
	for i, v := range newArgs {
		if v == remote {
			newArgs[i] = authenticatedURL
		}
	}

	cmd := exec.CommandContext(ctx, "git", newArgs...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	return scrubToken(string(output), token, authenticatedURL, remoteURL), err
}

func authenticatedRemote(remoteURL, token string) (string, error) {
	u, err := url.Parse(remoteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid remote url %q", remoteURL)
	}
	u.User = url.UserPassword("oauth2", token)
	return u.String(), nil
}

func scrubToken(output, token, authenticatedURL, remoteURL string) string {
	safe := strings.ReplaceAll(output, authenticatedURL, remoteURL)
	if token != "" {
		safe = strings.ReplaceAll(safe, token, "***")
	}
	return safe
}

// SyncRepo pulls the configured branch into the site repository.
func SyncRepo(ctx context.Context, cfg *config.Config, token string) (string, error) {
	return ExecuteGitWithToken(ctx, cfg.RepoPath, cfg.GitRemote, token, "pull", cfg.GitRemote, cfg.GitBranch)
}

// PublishRepo commits everything in the site repository and pushes it. A
// clean tree still pushes; any other commit failure stops before the push.
func PublishRepo(ctx context.Context, cfg *config.Config, token string) (string, error) {
	addCmd := exec.CommandContext(ctx, "git", "add", ".")
	addCmd.Dir = cfg.RepoPath
	if out, err := addCmd.CombinedOutput(); err != nil {
		return string(out), fmt.Errorf("git add: %w", err)
	}

	msg := fmt.Sprintf("Update via Notion CMS: %s", time.Now().Format("2006-01-02 15:04:05"))
	commitCmd := exec.CommandContext(ctx, "git",
		"-c", "user.name="+cfg.GitUserName,
		"-c", "user.email="+cfg.GitUserEmail,
		"commit", "-m", msg)
	commitCmd.Dir = cfg.RepoPath
	commitOut, err := commitCmd.CombinedOutput()
	if err != nil && !nothingToCommit(string(commitOut)) {
		return string(commitOut), fmt.Errorf("git commit: %w", err)
	}

	pushOut, err := ExecuteGitWithToken(ctx, cfg.RepoPath, cfg.GitRemote, token, "push", cfg.GitRemote, cfg.GitBranch)
	return string(commitOut) + pushOut, err
}

// nothingToCommit reports whether git commit failed only because the tree
// was clean.
func nothingToCommit(output string) bool {
	return strings.Contains(output, "nothing to commit") ||
		strings.Contains(output, "no changes added to commit")
}
