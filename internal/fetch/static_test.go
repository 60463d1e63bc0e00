package fetch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/httpclient"
	"github.com/samvad-hq/samvad-listing-scraper/pkg/sources"
)

type stubResponse struct {
	body       []byte
	statusCode int
}

func (s stubResponse) Body() []byte    { return s.body }
func (s stubResponse) StatusCode() int { return s.statusCode }

type stubClient struct {
	t       *testing.T
	resp    httpclient.Response
	err     error
	gotURL  string
	headers map[string]string
}

func (s *stubClient) Get(_ context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	s.gotURL = url
	s.headers = headers
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestStaticFetcherReturnsBody(t *testing.T) {
	client := &stubClient{t: t, resp: stubResponse{body: []byte("<html/>"), statusCode: 200}}
	f := NewStaticFetcher(client, sources.Default(), logger.NopLogger{})

	body, err := f.Fetch(context.Background(), "https://live.samvad.news/latest/page/1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != "<html/>" {
		t.Fatalf("unexpected body %q", body)
	}
	if ua := client.headers["User-Agent"]; !strings.Contains(ua, "Mozilla") {
		t.Fatalf("expected browser-identifying User-Agent, got %q", ua)
	}
}

func TestStaticFetcherErrorsOnNonSuccessStatus(t *testing.T) {
	client := &stubClient{t: t, resp: stubResponse{body: []byte("gone"), statusCode: 404}}
	f := NewStaticFetcher(client, sources.Default(), logger.NopLogger{})

	if _, err := f.Fetch(context.Background(), "https://live.samvad.news/x"); err == nil {
		t.Fatalf("expected error for status 404")
	}
}

func TestStaticFetcherErrorsOnTransportFailure(t *testing.T) {
	client := &stubClient{t: t, err: errors.New("connection reset")}
	f := NewStaticFetcher(client, sources.Default(), logger.NopLogger{})

	_, err := f.Fetch(context.Background(), "https://live.samvad.news/x")
	if err == nil || !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}
