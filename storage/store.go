// Package storage holds the key/value stores the selection service persists
// its choice in.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sghaida/dojo/config"
	"go.uber.org/zap"
)

// ErrClosed is returned by a store used after Close.
var ErrClosed = errors.New("storage: store closed")

// Store is a string to string map behind a context-aware API so that a
// durable backend can stand in for the in-memory one.
type Store interface {
	// Get returns the value for key; ok is false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the backend selected by cfg.Store and a closer releasing it.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (Store, io.Closer, error) {
	switch cfg.Store {
	case config.StoreMemory, "":
		return NewMemoryStore(), nopCloser{}, nil
	case config.StoreSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("storage: unknown backend %q", cfg.Store)
	}
}
