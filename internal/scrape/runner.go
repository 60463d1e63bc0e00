package scrape

import (
	"context"

	"github.com/samvad-hq/samvad-listing-scraper/internal/domain"
	"github.com/samvad-hq/samvad-listing-scraper/internal/fetch"
	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
)

// Runner drives the fetch/parse/paginate loop for one scrape run. Pagination
// is inherently serial: each page's address is discovered only from the prior
// page's markup, so pages are processed strictly one at a time.
type Runner struct {
	static    fetch.Fetcher
	dynamic   fetch.Fetcher
	parser    *Parser
	paginator *Paginator
	log       logger.Logger
}

// NewRunner wires a runner with its two fetch strategies, parser, and paginator.
func NewRunner(static, dynamic fetch.Fetcher, parser *Parser, paginator *Paginator, log logger.Logger) *Runner {
	return &Runner{
		static:    static,
		dynamic:   dynamic,
		parser:    parser,
		paginator: paginator,
		log:       logger.Ensure(log),
	}
}

// Run scrapes listing pages starting at startURL until pagination ends, the
// page budget is exhausted, or a fetch fails outright. Articles accumulated
// before a failed fetch are retained in the result.
//
// Each page is fetched statically first; when the static markup parses to
// zero records the same address is fetched once in dynamic mode and re-parsed.
// The escalation never recurses and the dynamic attempt itself is not retried.
func (r *Runner) Run(ctx context.Context, startURL string, maxPages int) domain.Result {
	result := domain.Result{Articles: []domain.Article{}}
	if maxPages <= 0 {
		result.Reason = domain.StopMaxPagesReached
		return result
	}

	current := startURL
	for result.Reason == "" {
		markup, err := r.static.Fetch(ctx, current)
		if err != nil {
			result.Reason = domain.StopFetchFailed
			break
		}

		articles, err := r.parser.Parse(markup)
		if err != nil {
			r.log.WarnObj("static markup unparseable, treating page as empty", "parse_error", err.Error())
		}

		if len(articles) == 0 {
			r.log.InfoObj("static parse yielded no records, escalating to dynamic fetch", "fetch_target", current)
			rendered, err := r.dynamic.Fetch(ctx, current)
			if err != nil {
				result.Reason = domain.StopFetchFailed
				break
			}
			markup = rendered
			if articles, err = r.parser.Parse(markup); err != nil {
				r.log.WarnObj("rendered markup unparseable", "parse_error", err.Error())
			}
		}

		result.Articles = append(result.Articles, articles...)
		result.PagesScraped++

		next := r.paginator.NextAddress(markup, current)
		if next == "" {
			result.Reason = domain.StopNoNextPage
			break
		}
		if result.PagesScraped >= maxPages {
			result.Reason = domain.StopMaxPagesReached
			break
		}
		current = next
	}

	r.log.InfoObj("scrape run finished", "run_result", map[string]any{
		"pages_scraped": result.PagesScraped,
		"articles":      len(result.Articles),
		"stop_reason":   string(result.Reason),
	})
	return result
}
