package sink

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/samvad-hq/samvad-listing-scraper/internal/domain"
	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
)

// csvWriter emits one header row followed by one row per article, UTF-8 encoded.
type csvWriter struct {
	path string
	log  logger.Logger
}

var csvHeader = []string{"title", "link", "summary", "date"}

func (w *csvWriter) Write(articles []domain.Article) error {
	if len(articles) == 0 {
		warnEmpty(w.log, w.path)
		return nil
	}

	if err := ensureDir(w.path); err != nil {
		return err
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, a := range articles {
		if err := cw.Write([]string{a.Title, a.Link, a.Summary, a.Date}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	w.log.InfoObj("csv file written", "sink_result", map[string]any{
		"path":    w.path,
		"records": len(articles),
	})
	return nil
}
