package publishers

import (
	"time"

	"github.com/samvad-hq/samvad-listing-scraper/internal/domain"
)

// Event represents the payload published downstream for one scraped article.
type Event struct {
	SourceID    string         `json:"source_id"`
	SourceName  string         `json:"source_name"`
	Article     domain.Article `json:"article"`
	CollectedAt time.Time      `json:"collected_at"`
}

// NewEvent constructs an Event for the given source + article.
func NewEvent(sourceID, sourceName string, article domain.Article) Event {
	return Event{
		SourceID:    sourceID,
		SourceName:  sourceName,
		Article:     article,
		CollectedAt: time.Now().UTC(),
	}
}
