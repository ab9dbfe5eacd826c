// Package bolt provides a bbolt-backed cold-tier store. A single bucket
// holds one record per key; each record carries an absolute expiry deadline
// so entries survive restarts with their TTL intact.
package bolt

import (
	"encoding/binary"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/gitHBDX/tiercache/store"
)

// Store is a durable cold tier on top of a single bbolt bucket.
// It is safe for concurrent use by multiple goroutines; bbolt serializes
// writers internally and allows concurrent readers.
type Store struct {
	db         *bbolt.DB
	bucket     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// Options configures a Store. The zero value is usable.
type Options struct {
	// Bucket is the bbolt bucket name; defaults to "tiercache".
	Bucket string
	// DefaultTTL is used when Put is called with ttl <= 0.
	// Zero means entries never expire.
	DefaultTTL time.Duration
	// Now overrides the time source (deterministic tests). Nil => time.Now.
	Now func() time.Time
}

// Open initializes or opens a Store at the given file path.
func Open(path string, opts Options) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	bucket := []byte("tiercache")
	if opts.Bucket != "" {
		bucket = []byte(opts.Bucket)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{db: db, bucket: bucket, defaultTTL: opts.DefaultTTL, now: now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores value with an absolute expiration computed as now+ttl.
// If ttl <= 0, DefaultTTL is used; if DefaultTTL is also zero, the entry
// never expires.
func (s *Store) Put(key string, value []byte, ttl time.Duration) error {
	expiresAt := int64(0)
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).UnixNano()
	}
	// Record layout: 8 bytes big-endian expiresAt || payload.
	buf := make([]byte, 8+len(value))
	binary.BigEndian.PutUint64(buf[:8], uint64(expiresAt))
	copy(buf[8:], value)

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), buf)
	})
}

// Get returns the stored payload if present and not expired.
// Expired entries are reported as store.ErrExpired; they are reaped lazily
// by the next Put or an explicit Delete, not inside the read transaction.
func (s *Store) Get(key string) ([]byte, error) {
	var out []byte
	var expired bool
	var exists bool
	if err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		// A record shorter than the expiry header is corrupt; treat it
		// as absent rather than panicking inside the transaction.
		if len(v) < 8 {
			return nil
		}
		exists = true
		expiresAt := int64(binary.BigEndian.Uint64(v[:8]))
		if expiresAt > 0 && s.now().UnixNano() > expiresAt {
			expired = true
			return nil
		}
		// v is only valid inside the transaction; copy out.
		out = append([]byte(nil), v[8:]...)
		return nil
	}); err != nil {
		return nil, err
	}
	if !exists {
		return nil, store.ErrNotFound
	}
	if expired {
		return nil, store.ErrExpired
	}
	return out, nil
}

// Delete removes a key.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

// Len returns the number of records in the bucket, including entries that
// are expired but not yet reaped.
func (s *Store) Len() (int, error) {
	n := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return n, err
}

// Compile-time check: Store satisfies the cold-tier contract.
var _ store.Store = (*Store)(nil)
