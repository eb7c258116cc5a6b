package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key
var ErrNotFound = errors.New("key not found")

// KV defines the interface that all key-value storage backends must implement.
// Values are opaque byte blobs; every Set replaces the whole value.
type KV interface {
	// Name returns the backend identifier (e.g., "file", "redis")
	Name() string

	// Get returns the value stored under key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend
	Close() error
}

// Options carries the settings a backend factory may need
type Options struct {
	// Path is the directory used by the file backend
	Path string

	// Redis connection settings
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Factory is a function that creates a new instance of a KV backend
type Factory func(opts Options) (KV, error)
