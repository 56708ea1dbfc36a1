package services

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"notion-cms/pkg/models"
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidPath      = errors.New("invalid path")
)

// SafeJoin joins target under root/sub, rejecting targets that would
// escape it.
func SafeJoin(root, sub, target string) (string, error) {
	cleanTarget := filepath.Clean(filepath.FromSlash(target))
	if filepath.IsAbs(cleanTarget) || cleanTarget == ".." ||
		strings.HasPrefix(cleanTarget, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, target)
	}
	return filepath.Join(root, sub, cleanTarget), nil
}

func ReadPageSnapshot(path string) (*models.PageSnapshot, error) {
	var snapshot models.PageSnapshot
	if err := readJSON(path, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func ReadDatabaseSnapshot(path string) (*models.DatabaseSnapshot, error) {
	var snapshot models.DatabaseSnapshot
	if err := readJSON(path, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func readJSON(path string, v interface{}) error {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// ListSnapshots returns the page snapshot files under dir, relative to it,
// in lexical order. The database snapshot is skipped when it lives there.
func ListSnapshots(dir, databaseSnapshot string) ([]string, error) {
	skip, _ := filepath.Abs(databaseSnapshot)

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		if abs, _ := filepath.Abs(path); abs == skip {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// writeFileIfChanged writes content to path unless the file already holds
// exactly that content. It reports whether a write happened.
func writeFileIfChanged(path string, content []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
