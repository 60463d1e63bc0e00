package storage

import (
	"crypto/sha1" //nolint:gosec // non-cryptographic key derivation
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Package storage provides the local seen-link cache used to filter already
// published articles across runs.

// Store tracks article links that were already handed downstream.
type Store interface {
	Close() error
	SeenLink(link string) (bool, error)
	MarkLink(link string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	LinkTTL         time.Duration
	CleanupInterval time.Duration
}

const (
	defaultLinkTTL         = 5 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.LinkTTL <= 0 {
		opts.LinkTTL = defaultLinkTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

// linkKey derives the stable store key for a link.
func linkKey(link string) []byte {
	sum := sha1.Sum([]byte(link))
	return []byte(hex.EncodeToString(sum[:]))
}

type noopStore struct{}

func (noopStore) Close() error                  { return nil }
func (noopStore) SeenLink(string) (bool, error) { return false, nil }
func (noopStore) MarkLink(string) error         { return nil }
