package sink

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samvad-hq/samvad-listing-scraper/internal/domain"
	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
)

// jsonWriter serializes the whole result set as an indented document.
type jsonWriter struct {
	path string
	log  logger.Logger
}

func (w *jsonWriter) Write(articles []domain.Article) error {
	if len(articles) == 0 {
		warnEmpty(w.log, w.path)
		return nil
	}

	if err := ensureDir(w.path); err != nil {
		return err
	}

	payload, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal articles: %w", err)
	}

	if err := os.WriteFile(w.path, payload, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}

	w.log.InfoObj("json file written", "sink_result", map[string]any{
		"path":    w.path,
		"records": len(articles),
	})
	return nil
}
