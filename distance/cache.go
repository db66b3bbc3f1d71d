package distance

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
)

// CacheKey is "<from>__to__<to>". Entries are directional.
func CacheKey(from, to string) string { return from + "__to__" + to }

// Cache persists resolved distances between runs.
type Cache interface {
	// Get reports a cached distance; ok is false on a miss.
	Get(from, to string) (km float64, ok bool, err error)
	// Put stores a distance.
	Put(from, to string, km float64) error
}

// CacheStats summarizes a cache.
type CacheStats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// BadgerConfig configures OpenBadger.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in memory; useful for tests and --offline runs.
	InMemory bool

	// SyncWrites trades write latency for durability.
	SyncWrites bool

	// Logger receives badger's internal messages; nil silences them.
	Logger *slog.Logger
}

// badgerLogger adapts slog to badger.Logger.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// BadgerCache is a Cache backed by BadgerDB. Values are float64 bits in
// big-endian order. Safe for concurrent use.
type BadgerCache struct {
	db     *badger.DB
	hits   atomic.Uint64
	misses atomic.Uint64
}

// OpenBadger opens or creates the cache database.
func OpenBadger(cfg BadgerConfig) (*BadgerCache, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("distance: cache path is required for a persistent cache")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("distance: create cache directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("distance: open cache: %w", err)
	}

	return &BadgerCache{db: db}, nil
}

// Get implements Cache.
func (c *BadgerCache) Get(from, to string) (float64, bool, error) {
	var km float64
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(CacheKey(from, to)))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("distance: corrupt cache value for %s", CacheKey(from, to))
			}
			km = math.Float64frombits(binary.BigEndian.Uint64(val))

			return nil
		})
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		c.misses.Add(1)
		return 0, false, nil
	case err != nil:
		return 0, false, err
	}
	c.hits.Add(1)

	return km, true, nil
}

// Put implements Cache.
func (c *BadgerCache) Put(from, to string, km float64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(km))

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(CacheKey(from, to)), buf[:])
	})
}

// Stats counts stored entries and reports hit/miss counters since open.
func (c *BadgerCache) Stats() (CacheStats, error) {
	st := CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			st.Entries++
		}

		return nil
	})

	return st, err
}

// Clear drops every entry.
func (c *BadgerCache) Clear() error {
	return c.db.DropAll()
}

// Close flushes and closes the database.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}
