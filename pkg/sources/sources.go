package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Package sources holds the per-site scraping profiles: structural selectors,
// origin, and pagination markers. Profiles are loadable from YAML/JSON; a
// built-in default ships with the binary. The selectors are literal and carry
// no fallback when the target site's markup changes.

// Selectors describes how listing entries and the pagination control are
// located in the markup.
type Selectors struct {
	// Cards holds the structural container markers. The default profile
	// carries two variants, one per content section.
	Cards   []string `json:"cards" yaml:"cards"`
	Title   string   `json:"title" yaml:"title"`
	Link    string   `json:"link" yaml:"link"`
	Summary string   `json:"summary" yaml:"summary"`
	Date    string   `json:"date" yaml:"date"`
	// NextLabel is the accessibility label on the "next page" control.
	NextLabel string `json:"next_label" yaml:"next_label"`
	// WaitMarker is the element whose presence signals the rendered DOM is ready.
	WaitMarker string `json:"wait_marker" yaml:"wait_marker"`
	// PageSegment is the path segment marker used by the narrow next-URL
	// resolution rule: the portion of the current address preceding this
	// segment is the base for a relative next address.
	PageSegment string `json:"page_segment" yaml:"page_segment"`
}

// Source is one scraping profile.
type Source struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Origin    string         `json:"origin" yaml:"origin"`
	StartURL  string         `json:"start_url" yaml:"start_url"`
	Selectors Selectors      `json:"selectors" yaml:"selectors"`
	Config    map[string]any `json:"config" yaml:"config"`
}

// CardSelector returns the combined goquery selector matching any card variant.
func (s Source) CardSelector() string {
	return strings.Join(s.Selectors.Cards, ", ")
}

type registryFile struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

// Registry holds the loaded source profiles.
type Registry struct {
	sources []Source
	idx     map[string]Source
}

const defaultSourceID = "samvad-live"

// Default returns the built-in profile for the Samvad Live listing pages.
func Default() Source {
	return Source{
		ID:       defaultSourceID,
		Name:     "Samvad Live",
		Origin:   "https://live.samvad.news",
		StartURL: "https://live.samvad.news/latest/page/1",
		Selectors: Selectors{
			Cards:       []string{`div[data-card="news"]`, `div[data-card="story"]`},
			Title:       "h2",
			Link:        "a",
			Summary:     "p.summary",
			Date:        "time",
			NextLabel:   "Next",
			WaitMarker:  `div[data-card="news"], div[data-card="story"]`,
			PageSegment: "page/",
		},
		Config: map[string]any{},
	}
}

// DefaultRegistry returns a registry containing only the built-in profile.
func DefaultRegistry() *Registry {
	def := Default()
	return &Registry{
		sources: []Source{def},
		idx:     map[string]Source{def.ID: def},
	}
}

// LoadRegistry loads source profiles from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sources file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	fileReg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fileReg.Sources) == 0 {
		return nil, errors.New("sources file contains no sources entries")
	}

	reg := &Registry{
		sources: make([]Source, len(fileReg.Sources)),
		idx:     make(map[string]Source, len(fileReg.Sources)),
	}

	for i := range fileReg.Sources {
		src := sanitizeSource(fileReg.Sources[i])
		if err := validateSource(src); err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		if _, exists := reg.idx[src.ID]; exists {
			return nil, fmt.Errorf("duplicate source id %q", src.ID)
		}
		reg.sources[i] = src
		reg.idx[src.ID] = src
	}

	return reg, nil
}

func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if reg, err := unmarshalRegistry(d.name, data, d.fn); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("sources file format not recognized (expected YAML or JSON)")
}

func unmarshalRegistry(name string, data []byte, fn func([]byte, any) error) (registryFile, error) {
	var reg registryFile
	if err := fn(data, &reg); err != nil {
		return registryFile{}, fmt.Errorf("decode %s sources: %w", name, err)
	}
	return reg, nil
}

func sanitizeSource(src Source) Source {
	src.ID = strings.TrimSpace(src.ID)
	src.Name = strings.TrimSpace(src.Name)
	src.Origin = strings.TrimRight(strings.TrimSpace(src.Origin), "/")
	src.StartURL = strings.TrimSpace(src.StartURL)

	def := Default().Selectors
	sel := &src.Selectors
	cards := make([]string, 0, len(sel.Cards))
	for _, c := range sel.Cards {
		if c = strings.TrimSpace(c); c != "" {
			cards = append(cards, c)
		}
	}
	sel.Cards = cards
	if len(sel.Cards) == 0 {
		sel.Cards = def.Cards
	}
	if sel.Title = strings.TrimSpace(sel.Title); sel.Title == "" {
		sel.Title = def.Title
	}
	if sel.Link = strings.TrimSpace(sel.Link); sel.Link == "" {
		sel.Link = def.Link
	}
	sel.Summary = strings.TrimSpace(sel.Summary)
	sel.Date = strings.TrimSpace(sel.Date)
	if sel.NextLabel = strings.TrimSpace(sel.NextLabel); sel.NextLabel == "" {
		sel.NextLabel = def.NextLabel
	}
	if sel.WaitMarker = strings.TrimSpace(sel.WaitMarker); sel.WaitMarker == "" {
		sel.WaitMarker = strings.Join(sel.Cards, ", ")
	}
	if sel.PageSegment = strings.TrimSpace(sel.PageSegment); sel.PageSegment == "" {
		sel.PageSegment = def.PageSegment
	}

	if src.Config == nil {
		src.Config = map[string]any{}
	}

	return src
}

func validateSource(src Source) error {
	if src.ID == "" {
		return errors.New("id is required")
	}
	if src.Name == "" {
		return fmt.Errorf("name is required for source %q", src.ID)
	}
	if src.Origin == "" {
		return fmt.Errorf("origin is required for source %q", src.ID)
	}
	if !strings.Contains(src.Origin, "://") {
		return fmt.Errorf("origin must be absolute for source %q", src.ID)
	}
	if src.StartURL == "" {
		return fmt.Errorf("start_url is required for source %q", src.ID)
	}
	return nil
}

// ByID returns the source profile for the given id.
func (r *Registry) ByID(id string) (Source, bool) {
	if r == nil {
		return Source{}, false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Source{}, false
	}

	src, ok := r.idx[id]
	return src, ok
}

// All returns all loaded source profiles.
func (r *Registry) All() []Source {
	if r == nil {
		return nil
	}

	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}
