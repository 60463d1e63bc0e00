package scrape

import (
	"testing"

	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/sources"
)

func TestPaginatorResolvesRelativeNext(t *testing.T) {
	p := NewPaginator(sources.Default(), logger.NopLogger{})

	markup := []byte(`<html><body><nav><a aria-label="Next" href="page/2">&raquo;</a></nav></body></html>`)
	got := p.NextAddress(markup, "https://live.samvad.news/latest/page/1")
	if got != "https://live.samvad.news/latest/page/2" {
		t.Fatalf("NextAddress = %q", got)
	}
}

func TestPaginatorPassesThroughAbsoluteNext(t *testing.T) {
	p := NewPaginator(sources.Default(), logger.NopLogger{})

	markup := []byte(`<html><body><a aria-label="Next" href="https://live.samvad.news/latest/page/3">next</a></body></html>`)
	got := p.NextAddress(markup, "https://live.samvad.news/latest/page/2")
	if got != "https://live.samvad.news/latest/page/3" {
		t.Fatalf("NextAddress = %q", got)
	}
}

func TestPaginatorReturnsEmptyWithoutNextControl(t *testing.T) {
	p := NewPaginator(sources.Default(), logger.NopLogger{})

	markup := []byte(`<html><body><a aria-label="Previous" href="page/1">prev</a></body></html>`)
	if got := p.NextAddress(markup, "https://live.samvad.news/latest/page/2"); got != "" {
		t.Fatalf("expected pagination end, got %q", got)
	}
}

func TestPaginatorFallsBackToCurrentWithoutSegment(t *testing.T) {
	p := NewPaginator(sources.Default(), logger.NopLogger{})

	// Current address without the page segment marker: the relative address
	// is appended to the whole current address.
	markup := []byte(`<html><body><a aria-label="Next" href="page/2">next</a></body></html>`)
	got := p.NextAddress(markup, "https://live.samvad.news/latest/")
	if got != "https://live.samvad.news/latest/page/2" {
		t.Fatalf("NextAddress = %q", got)
	}
}
