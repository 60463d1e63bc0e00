package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-listing-scraper/internal/config"
	"github.com/samvad-hq/samvad-listing-scraper/internal/domain"
	"github.com/samvad-hq/samvad-listing-scraper/internal/fetch"
	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
	"github.com/samvad-hq/samvad-listing-scraper/internal/scrape"
	"github.com/samvad-hq/samvad-listing-scraper/internal/sink"
	"github.com/samvad-hq/samvad-listing-scraper/internal/storage"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/httpclient"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/publishers"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/sources"
)

// Scraper is the application runtime. It wires the source profile, the two
// fetch strategies, the scrape runner, the persistence sink, and the optional
// downstream publishers, and executes one scrape run.
type Scraper struct {
	cfg      *config.Config
	source   sources.Source
	startURL string
	runner   *scrape.Runner
	writer   sink.Writer
	fanout   *publishers.Fanout
	store    storage.Store
	log      logger.Logger
}

// NewScraper builds the runtime from config.
func NewScraper(ctx context.Context, cfg *config.Config, log logger.Logger) (*Scraper, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	src, err := resolveSource(cfg)
	if err != nil {
		return nil, err
	}
	log.InfoObj("source profile resolved", "source_meta", map[string]any{
		"id":     src.ID,
		"origin": src.Origin,
	})

	startURL := strings.TrimSpace(cfg.StartURL)
	if startURL == "" {
		startURL = src.StartURL
	}

	static := fetch.NewStaticFetcher(httpclient.NewRestyClient(cfg.FetchTimeout), src, log)
	dynamic := fetch.NewDynamicFetcher(src, cfg.FetchTimeout, log)
	runner := scrape.NewRunner(static, dynamic, scrape.NewParser(src, log), scrape.NewPaginator(src, log), log)

	writer, err := sink.NewWriter(cfg.OutputFormat, cfg.OutputPath, log)
	if err != nil {
		return nil, fmt.Errorf("init output sink: %w", err)
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		LinkTTL:         cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanup,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Scraper{
		cfg:      cfg,
		source:   src,
		startURL: startURL,
		runner:   runner,
		writer:   writer,
		fanout:   fanout,
		store:    store,
		log:      log,
	}, nil
}

func resolveSource(cfg *config.Config) (sources.Source, error) {
	reg := sources.DefaultRegistry()
	if strings.TrimSpace(cfg.SourcesFile) != "" {
		loaded, err := sources.LoadRegistry(cfg.SourcesFile)
		if err != nil {
			return sources.Source{}, fmt.Errorf("load sources registry: %w", err)
		}
		reg = loaded
	}

	if id := strings.TrimSpace(cfg.SourceID); id != "" {
		src, ok := reg.ByID(id)
		if !ok {
			return sources.Source{}, fmt.Errorf("source %q not found in registry", id)
		}
		return src, nil
	}

	all := reg.All()
	if len(all) == 0 {
		return sources.Source{}, fmt.Errorf("no sources configured")
	}
	return all[0], nil
}

func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(cfg.PublishersFile) == "" {
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count": len(pubClients),
	})
	return publishers.NewFanout(pubClients), nil
}

// Run executes one scrape run: fetch/parse/paginate, persist the result set,
// and hand fresh articles to the downstream publishers.
func (s *Scraper) Run(ctx context.Context) error {
	if s == nil || s.runner == nil {
		return fmt.Errorf("scraper is not initialized")
	}
	defer s.closeStore()

	start := time.Now()
	s.log.InfoObj("scrape run starting", "run_meta", map[string]any{
		"source_id": s.source.ID,
		"start_url": s.startURL,
		"max_pages": s.cfg.MaxPages,
	})

	result := s.runner.Run(ctx, s.startURL, s.cfg.MaxPages)

	if err := s.writer.Write(result.Articles); err != nil {
		return fmt.Errorf("persist result set: %w", err)
	}

	s.publishFresh(ctx, result)

	s.log.InfoObj("scrape run completed", "run_meta", map[string]any{
		"source_id":     s.source.ID,
		"pages_scraped": result.PagesScraped,
		"articles":      len(result.Articles),
		"stop_reason":   string(result.Reason),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

// publishFresh fans out articles not seen in a previous run. Lookup errors
// fail open: the article is still published.
func (s *Scraper) publishFresh(ctx context.Context, result domain.Result) {
	if s.fanout.Size() == 0 {
		return
	}

	for _, article := range result.Articles {
		seen, err := s.store.SeenLink(article.Link)
		if err != nil {
			s.log.WarnObj("seen-link lookup failed", "storage_error", map[string]any{
				"link":  article.Link,
				"error": err.Error(),
			})
		} else if seen {
			continue
		}

		evt := publishers.NewEvent(s.source.ID, s.source.Name, article)
		if _, err := s.fanout.Publish(ctx, evt); err != nil {
			s.log.ErrorObj("event publish failed", "publish_error", map[string]any{
				"link":  article.Link,
				"error": err.Error(),
			})
			continue
		}
		if err := s.store.MarkLink(article.Link); err != nil {
			s.log.WarnObj("seen-link mark failed", "storage_error", map[string]any{
				"link":  article.Link,
				"error": err.Error(),
			})
		}
	}
}

func (s *Scraper) closeStore() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.log.ErrorObj("storage close failed", "error", err.Error())
	}
}
