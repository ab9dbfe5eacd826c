// Package store defines the cold-tier contract: a durable byte-oriented
// key/value store holding the partialized serialization of cached values.
// Cold entries outlive the process and are removed only by explicit Delete.
package store

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by Get when the key has no cold entry.
	ErrNotFound = errors.New("store: not found")
	// ErrExpired is returned by Get when the cold entry exists but its
	// TTL has passed. Callers treat it like a miss.
	ErrExpired = errors.New("store: expired")
)

// Store is the minimal cold-tier contract.
// Implementations must be safe for concurrent use by multiple goroutines.
type Store interface {
	// Get returns the stored bytes, ErrNotFound for absent keys, or
	// ErrExpired for entries past their deadline.
	Get(key string) ([]byte, error)

	// Put stores value durably. A ttl <= 0 means the implementation's
	// default TTL applies (and "never expires" if no default is set).
	Put(key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases resources held by the store.
	Close() error
}

// IsMiss reports whether err signals a normal cold-tier miss
// (absent or expired) rather than an I/O failure.
func IsMiss(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrExpired)
}
