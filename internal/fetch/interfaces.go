package fetch

import "context"

// Fetcher retrieves the raw markup of a single page. Every call is
// single-shot; retries and escalation policy live with the caller.
type Fetcher interface {
	Fetch(ctx context.Context, address string) ([]byte, error)
}
