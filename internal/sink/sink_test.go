package sink

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samvad-hq/samvad-listing-scraper/internal/domain"
	"github.com/samvad-hq/samvad-listing-scraper/internal/logger"
)

var testArticles = []domain.Article{
	{Title: "First", Link: "https://live.samvad.news/a", Summary: "teaser", Date: "2026-08-01T09:30:00Z"},
	{Title: "Second", Link: "https://live.samvad.news/b"},
}

func TestCSVWriterWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "articles.csv")
	w, err := NewWriter("csv", path, logger.NopLogger{})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	if err := w.Write(testArticles); err != nil {
		t.Fatalf("Write: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "title,link,summary,date" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[2][0] != "Second" || rows[2][2] != "" {
		t.Fatalf("unexpected row %v", rows[2])
	}
}

func TestJSONWriterWritesIndentedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	w, err := NewWriter("json", path, logger.NopLogger{})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	if err := w.Write(testArticles); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(raw), "\n  {") {
		t.Fatalf("output is not indented: %s", raw)
	}

	var decoded []domain.Article
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Title != "First" {
		t.Fatalf("unexpected decoded content %+v", decoded)
	}
}

func TestWritersSkipEmptyResultSet(t *testing.T) {
	for _, format := range []string{"csv", "json"} {
		path := filepath.Join(t.TempDir(), "articles."+format)
		w, err := NewWriter(format, path, logger.NopLogger{})
		if err != nil {
			t.Fatalf("NewWriter %s: %v", format, err)
		}

		if err := w.Write(nil); err != nil {
			t.Fatalf("%s Write(empty): %v", format, err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("%s: expected no file for empty result set", format)
		}
	}
}

func TestNewWriterRejectsUnknownFormat(t *testing.T) {
	if _, err := NewWriter("xml", "out.xml", logger.NopLogger{}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
