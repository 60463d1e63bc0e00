package scrape

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/samvad-hq/samvad-listing-scraper/internal/domain"
	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/sources"
)

// Parser extracts article records from listing page markup.
type Parser struct {
	src sources.Source
	log logger.Logger
}

// NewParser builds a parser for the given source profile.
func NewParser(src sources.Source, log logger.Logger) *Parser {
	return &Parser{src: src, log: logger.Ensure(log)}
}

// Parse scans the markup for listing cards and returns the extracted
// articles in document order. A malformed card is logged and skipped;
// the remaining cards are still processed.
func (p *Parser) Parse(markup []byte) ([]domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	var articles []domain.Article
	doc.Find(p.src.CardSelector()).Each(func(i int, card *goquery.Selection) {
		article, err := p.extractCard(card)
		if err != nil {
			p.log.WarnObj("listing card skipped", "parse_error", map[string]any{
				"source_id": p.src.ID,
				"card":      i,
				"error":     err.Error(),
			})
			return
		}
		articles = append(articles, article)
	})

	return articles, nil
}

// extractCard pulls one article out of a card subtree. Title and link are
// required; a card missing either yields an error and no partial record.
func (p *Parser) extractCard(card *goquery.Selection) (domain.Article, error) {
	sel := p.src.Selectors

	title := strings.TrimSpace(card.Find(sel.Title).First().Text())
	if title == "" {
		return domain.Article{}, errors.New("card has no title")
	}

	href, ok := card.Find(sel.Link).First().Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return domain.Article{}, errors.New("card has no link")
	}

	article := domain.Article{
		Title: title,
		Link:  absolutize(href, p.src.Origin),
	}

	if sel.Summary != "" {
		article.Summary = strings.TrimSpace(card.Find(sel.Summary).First().Text())
	}
	if sel.Date != "" {
		if stamp, ok := card.Find(sel.Date).First().Attr("datetime"); ok {
			article.Date = strings.TrimSpace(stamp)
		}
	}

	return article, nil
}

// absolutize rewrites a schemeless href against the source origin.
func absolutize(href, origin string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return strings.TrimRight(origin, "/") + href
}
