package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage tracks the digest of the last result published per job.

// Store reports whether a job's result differs from the last one recorded.
type Store interface {
	Close() error
	Changed(jobID string, digest []byte) (bool, error)
	Record(jobID string, digest []byte) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	ResultTTL       time.Duration
	CleanupInterval time.Duration
}

const (
	defaultResultTTL       = 7 * 24 * time.Hour
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
	if opts.ResultTTL <= 0 {
		opts.ResultTTL = defaultResultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

// noopStore treats every result as changed.
type noopStore struct{}

func (noopStore) Close() error                         { return nil }
func (noopStore) Changed(string, []byte) (bool, error) { return true, nil }
func (noopStore) Record(string, []byte) error          { return nil }
