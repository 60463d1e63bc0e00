package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/httpclient"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/sources"
)

// DefaultTimeout bounds a single fetch attempt in either mode.
const DefaultTimeout = 10 * time.Second

// StaticFetcher retrieves markup with a plain HTTP GET, no script execution.
type StaticFetcher struct {
	client  httpclient.Client
	headers map[string]string
	log     logger.Logger
}

// NewStaticFetcher builds a static fetcher for the given source profile.
// A nil client gets a resty client with the default timeout.
func NewStaticFetcher(client httpclient.Client, src sources.Source, log logger.Logger) *StaticFetcher {
	if client == nil {
		client = httpclient.NewRestyClient(DefaultTimeout)
	}
	return &StaticFetcher{
		client:  client,
		headers: sources.Headers(src),
		log:     logger.Ensure(log),
	}
}

// Fetch issues a single GET for the address. Transport errors and non-2xx
// statuses are logged and returned; no retry is attempted.
func (f *StaticFetcher) Fetch(ctx context.Context, address string) ([]byte, error) {
	f.log.InfoObj("static fetch starting", "fetch_target", address)

	resp, err := f.client.Get(ctx, address, f.headers)
	if err != nil {
		f.log.ErrorObj("static fetch failed", "network_error", map[string]any{
			"address": address,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("static fetch %s: %w", address, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		f.log.ErrorObj("static fetch returned non-success status", "network_error", map[string]any{
			"address": address,
			"status":  resp.StatusCode(),
		})
		return nil, fmt.Errorf("static fetch %s: status %d body: %s", address, resp.StatusCode(), bodySnippet(resp.Body()))
	}

	return resp.Body(), nil
}

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
