package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/samvad-listing-scraper/internal/domain"
	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
)

// Package sink persists scrape results to local files.

// Writer persists an ordered set of articles.
type Writer interface {
	Write(articles []domain.Article) error
}

// NewWriter creates the writer for the requested output format.
func NewWriter(format, path string, log logger.Logger) (Writer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("output path is empty")
	}

	switch format {
	case "csv":
		return &csvWriter{path: path, log: logger.Ensure(log)}, nil
	case "json":
		return &jsonWriter{path: path, log: logger.Ensure(log)}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// ensureDir creates the parent directory for the output file.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// warnEmpty logs the empty-save warning. No file is produced for an empty
// result set.
func warnEmpty(log logger.Logger, path string) {
	log.WarnObj("no records to persist, skipping write", "empty_save", path)
}
