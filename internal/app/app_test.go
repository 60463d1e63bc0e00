package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/samvad-hq/samvad-listing-scraper/internal/config"
	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
	"github.com/samvad-hq/samvad-listing-scraper/internal/scrape"
	"github.com/samvad-hq/samvad-listing-scraper/internal/sink"
	"github.com/samvad-hq/samvad-listing-scraper/internal/storage"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/publishers"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/sources"
)

type cannedFetcher struct {
	markup []byte
	err    error
}

func (f cannedFetcher) Fetch(context.Context, string) ([]byte, error) {
	return f.markup, f.err
}

func TestResolveSourceFallsBackToDefault(t *testing.T) {
	src, err := resolveSource(&config.Config{})
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if src.ID != sources.Default().ID {
		t.Fatalf("expected default source, got %q", src.ID)
	}
}

func TestResolveSourceRejectsUnknownID(t *testing.T) {
	if _, err := resolveSource(&config.Config{SourceID: "missing"}); err == nil {
		t.Fatalf("expected error for unknown source id")
	}
}

func TestScraperRunPersistsResults(t *testing.T) {
	src := sources.Default()
	log := logger.NopLogger{}

	markup := []byte(`<html><body>
<div data-card="news"><h2>Headline</h2><a href="/s1">read</a></div>
</body></html>`)

	runner := scrape.NewRunner(
		cannedFetcher{markup: markup},
		cannedFetcher{err: fmt.Errorf("dynamic should not run")},
		scrape.NewParser(src, log),
		scrape.NewPaginator(src, log),
		log,
	)

	outPath := filepath.Join(t.TempDir(), "articles.json")
	writer, err := sink.NewWriter("json", outPath, log)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	store, err := storage.NewStore("none", "", storage.Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	s := &Scraper{
		cfg:      &config.Config{MaxPages: 1},
		source:   src,
		startURL: src.StartURL,
		runner:   runner,
		writer:   writer,
		fanout:   publishers.NewFanout(nil),
		store:    store,
		log:      log,
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
}

func TestNewScraperRequiresConfig(t *testing.T) {
	if _, err := NewScraper(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
