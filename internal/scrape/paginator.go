package scrape

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/sources"
)

// Paginator derives the next page's address from the current page's markup.
type Paginator struct {
	src sources.Source
	log logger.Logger
}

// NewPaginator builds a paginator for the given source profile.
func NewPaginator(src sources.Source, log logger.Logger) *Paginator {
	return &Paginator{src: src, log: logger.Ensure(log)}
}

// NextAddress locates the navigation control carrying the source's "next"
// accessibility label and returns its address, resolved to absolute. An empty
// string signals the end of pagination.
func (p *Paginator) NextAddress(markup []byte, current string) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		p.log.WarnObj("pagination markup unreadable", "parse_error", err.Error())
		return ""
	}

	selector := fmt.Sprintf(`a[aria-label=%q]`, p.src.Selectors.NextLabel)
	href, ok := doc.Find(selector).First().Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return ""
	}

	return p.resolve(href, current)
}

// resolve applies the source-specific rule for relative next addresses: the
// portion of the current address preceding the page path segment marker is the
// base the relative address is appended to. This is not general URL resolution.
func (p *Paginator) resolve(href, current string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	base := current
	if idx := strings.Index(current, p.src.Selectors.PageSegment); idx >= 0 {
		base = current[:idx]
	}
	return base + href
}
