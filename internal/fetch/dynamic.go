package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/sources"
)

// DynamicFetcher retrieves markup after executing page scripts in a headless
// browser. It is the fallback mode for pages whose listing is rendered
// client-side. The browser session is scoped to one Fetch call and released
// on every exit path.
type DynamicFetcher struct {
	waitMarker string
	timeout    time.Duration
	log        logger.Logger
}

// NewDynamicFetcher builds a dynamic fetcher for the given source profile.
func NewDynamicFetcher(src sources.Source, timeout time.Duration, log logger.Logger) *DynamicFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &DynamicFetcher{
		waitMarker: src.Selectors.WaitMarker,
		timeout:    timeout,
		log:        logger.Ensure(log),
	}
}

// Fetch launches a browser session, navigates to the address, waits for the
// content-marker element to appear in the rendered DOM, and captures the
// resulting markup. Launch, navigation, and wait failures are logged and
// returned; no retry is attempted.
func (f *DynamicFetcher) Fetch(ctx context.Context, address string) ([]byte, error) {
	f.log.InfoObj("dynamic fetch starting", "fetch_target", address)

	markup, err := f.render(ctx, address)
	if err != nil {
		f.log.ErrorObj("dynamic fetch failed", "render_error", map[string]any{
			"address": address,
			"error":   err.Error(),
		})
		return nil, err
	}
	return markup, nil
}

func (f *DynamicFetcher) render(ctx context.Context, address string) ([]byte, error) {
	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			f.log.WarnObj("browser session close failed", "render_error", closeErr.Error())
		}
		l.Kill()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	page = page.Timeout(f.timeout)
	if err := page.Navigate(address); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", address, err)
	}

	if _, err := page.Element(f.waitMarker); err != nil {
		return nil, fmt.Errorf("wait for content marker %q: %w", f.waitMarker, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("capture rendered markup: %w", err)
	}

	return []byte(html), nil
}
