package distance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tspsearch/logging"
	"github.com/katalvlaran/tspsearch/matrix"
)

// BuildStats counts where the entries of one Build came from.
type BuildStats struct {
	Pairs    int           `json:"pairs"`
	Memo     int           `json:"memo"`
	Cache    int           `json:"cache"`
	Primary  int           `json:"primary"`
	Fallback int           `json:"fallback"`
	Elapsed  time.Duration `json:"elapsed"`
}

// BuilderConfig wires the source chain.
type BuilderConfig struct {
	// Primary is tried first on a cache miss; nil goes straight to Fallback.
	Primary Provider

	// Fallback must not fail in practice; Geodesic{} when nil.
	Fallback Provider

	// Cache is optional.
	Cache Cache

	// Concurrency bounds parallel provider calls. Default: 1, matching the
	// pacing public routers expect.
	Concurrency int

	// OnLookup observes the source of every resolved entry.
	OnLookup func(Source)

	Logger *slog.Logger
}

// Builder resolves distance matrices. It memoizes every entry it resolves
// for its lifetime, so repeated builds over the same names are stable within
// a process even if the primary provider is flaky.
type Builder struct {
	cfg BuilderConfig
	log *slog.Logger

	mu   sync.Mutex
	memo map[string]float64
}

// NewBuilder applies defaults to cfg.
func NewBuilder(cfg BuilderConfig) *Builder {
	if cfg.Fallback == nil {
		cfg.Fallback = Geodesic{}
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	return &Builder{
		cfg:  cfg,
		log:  logging.OrNop(cfg.Logger),
		memo: make(map[string]float64),
	}
}

// Build returns the n×n matrix for cities with a zero diagonal.
//
// Errors: ErrNoCities, ErrDuplicateCity, ErrInvalidCoordinate, ctx errors,
// and fallback provider errors. Primary and cache failures fall through.
func (b *Builder) Build(ctx context.Context, cities []City) (*matrix.Dense, BuildStats, error) {
	var st BuildStats
	if err := validateCities(cities); err != nil {
		return nil, st, err
	}
	began := time.Now()
	n := len(cities)
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, st, err
	}

	var (
		statsMu sync.Mutex
		g, gctx = errgroup.WithContext(ctx)
	)
	g.SetLimit(b.cfg.Concurrency)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			from, to := cities[i], cities[j]
			g.Go(func() error {
				km, src, err := b.resolve(gctx, from, to)
				if err != nil {
					return err
				}
				if err = m.Set(i, j, km); err != nil {
					return err
				}
				statsMu.Lock()
				st.add(src)
				statsMu.Unlock()
				if b.cfg.OnLookup != nil {
					b.cfg.OnLookup(src)
				}

				return nil
			})
		}
	}
	if err = g.Wait(); err != nil {
		return nil, st, err
	}
	st.Elapsed = time.Since(began)
	b.log.Info("distance matrix built",
		"cities", n, "pairs", st.Pairs, "memo", st.Memo, "cache", st.Cache,
		"primary", st.Primary, "fallback", st.Fallback, "elapsed", st.Elapsed)

	return m, st, nil
}

func (st *BuildStats) add(src Source) {
	st.Pairs++
	switch src {
	case SourceMemo:
		st.Memo++
	case SourceCache:
		st.Cache++
	case SourcePrimary:
		st.Primary++
	case SourceFallback:
		st.Fallback++
	}
}

// resolve walks memo → cache → primary → fallback for one ordered pair.
func (b *Builder) resolve(ctx context.Context, from, to City) (float64, Source, error) {
	if err := ctx.Err(); err != nil {
		return 0, "", err
	}
	key := CacheKey(from.Name, to.Name)
	b.mu.Lock()
	km, ok := b.memo[key]
	b.mu.Unlock()
	if ok {
		return km, SourceMemo, nil
	}

	if b.cfg.Cache != nil {
		km, ok, err := b.cfg.Cache.Get(from.Name, to.Name)
		if err != nil {
			b.log.Warn("cache read failed", "key", key, "error", err)
		} else if ok {
			b.remember(key, km)
			return km, SourceCache, nil
		}
	}

	src := SourceFallback
	if b.cfg.Primary != nil {
		v, err := b.cfg.Primary.Distance(ctx, from, to)
		if err == nil {
			km, src = v, SourcePrimary
		} else {
			if ctx.Err() != nil {
				return 0, "", ctx.Err()
			}
			b.log.Warn("primary distance failed, using fallback", "from", from.Name, "to", to.Name, "error", err)
		}
	}
	if src == SourceFallback {
		v, err := b.cfg.Fallback.Distance(ctx, from, to)
		if err != nil {
			return 0, "", fmt.Errorf("distance: fallback %s → %s: %w", from.Name, to.Name, err)
		}
		km = v
	}

	b.remember(key, km)
	if b.cfg.Cache != nil {
		if err := b.cfg.Cache.Put(from.Name, to.Name, km); err != nil {
			b.log.Warn("cache write failed", "key", key, "error", err)
		}
	}
	b.log.Debug("distance resolved", "from", from.Name, "to", to.Name, "km", km, "source", src)

	return km, src, nil
}

func (b *Builder) remember(key string, km float64) {
	b.mu.Lock()
	b.memo[key] = km
	b.mu.Unlock()
}

// Forget clears the in-process memo.
func (b *Builder) Forget() {
	b.mu.Lock()
	clear(b.memo)
	b.mu.Unlock()
}
