package domain

// Domain contains core models shared across packages.

// Article is one normalized listing entry. Title and Link are always
// non-empty; Summary and Date may be empty when the source omits them.
type Article struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Summary string `json:"summary"`
	Date    string `json:"date"`
}

// StopReason records why a scrape run ended.
type StopReason string

const (
	StopNoNextPage      StopReason = "no_next_page"
	StopMaxPagesReached StopReason = "max_pages_reached"
	StopFetchFailed     StopReason = "fetch_failed"
)

// Result is the outcome of one scrape run. Articles are in extraction order;
// partial results survive a failed page fetch.
type Result struct {
	Articles     []Article
	PagesScraped int
	Reason       StopReason
}
