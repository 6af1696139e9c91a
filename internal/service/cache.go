package service

import (
	"context"
	"crypto/sha256"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/agbru/bigcalc/internal/calc"
)

// CacheConfig holds configuration for the result cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached results.
	// Default: 256 entries
	MaxEntries int

	// MinDigits is the minimum combined operand length to cache.
	// Smaller expressions are cheaper to recompute than to hash.
	// Default: 64 digits
	MinDigits int

	// Enabled controls whether caching is active.
	// Default: true
	Enabled bool
}

// DefaultCacheConfig returns the default cache configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		MaxEntries: 256,
		MinDigits:  64,
		Enabled:    true,
	}
}

// CacheStats is a snapshot of the cache counters.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
	HitRate   float64
}

// CachedService decorates a Service with an LRU cache of successful
// evaluations keyed by engine and expression. Failed evaluations are never
// cached. Results are shared between callers; bignum.Int values are
// immutable so no copy is made.
type CachedService struct {
	next      Service
	config    CacheConfig
	entries   *lru.Cache[[32]byte, calc.Result]
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

var _ Service = (*CachedService)(nil)

// NewCachedService wraps next with a result cache.
//
// Parameters:
//   - next: The service performing the actual evaluations.
//   - config: The cache configuration. A non-positive MaxEntries disables
//     the cache.
//
// Returns:
//   - *CachedService: The caching decorator.
//   - error: An error if the underlying LRU could not be created.
func NewCachedService(next Service, config CacheConfig) (*CachedService, error) {
	if config.MaxEntries <= 0 {
		config.Enabled = false
		config.MaxEntries = 1
	}
	cs := &CachedService{next: next, config: config}
	entries, err := lru.NewWithEvict(config.MaxEntries, func([32]byte, calc.Result) {
		cs.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	cs.entries = entries
	return cs, nil
}

// cacheKey hashes the engine name and the canonical expression text.
func cacheKey(engine string, expr calc.Expression) [32]byte {
	h := sha256.New()
	h.Write([]byte(engine))
	h.Write([]byte{0})
	h.Write([]byte(expr.String()))
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (cs *CachedService) cacheable(expr calc.Expression) bool {
	return cs.config.Enabled && expr.Left.Len()+expr.Right.Len() >= cs.config.MinDigits
}

// ParseExpression implements Service.
func (cs *CachedService) ParseExpression(a, op, b string) (calc.Expression, error) {
	return cs.next.ParseExpression(a, op, b)
}

// Calculate implements Service.
func (cs *CachedService) Calculate(ctx context.Context, engine, a, op, b string) (calc.Result, error) {
	expr, err := cs.next.ParseExpression(a, op, b)
	if err != nil {
		return calc.Result{}, err
	}
	return cs.Evaluate(ctx, engine, expr)
}

// Evaluate implements Service, serving repeated expressions from the cache.
func (cs *CachedService) Evaluate(ctx context.Context, engine string, expr calc.Expression) (calc.Result, error) {
	if !cs.cacheable(expr) {
		return cs.next.Evaluate(ctx, engine, expr)
	}

	key := cacheKey(engine, expr)
	if res, ok := cs.entries.Get(key); ok {
		cs.hits.Add(1)
		return res, nil
	}
	cs.misses.Add(1)

	res, err := cs.next.Evaluate(ctx, engine, expr)
	if err != nil {
		return res, err
	}
	cs.entries.Add(key, res)
	return res, nil
}

// Stats returns current cache statistics.
func (cs *CachedService) Stats() CacheStats {
	hits := cs.hits.Load()
	misses := cs.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Hits:      hits,
		Misses:    misses,
		Evictions: cs.evictions.Load(),
		Size:      cs.entries.Len(),
		HitRate:   hitRate,
	}
}

// Clear removes all entries and resets the counters.
func (cs *CachedService) Clear() {
	cs.entries.Purge()
	cs.hits.Store(0)
	cs.misses.Store(0)
	cs.evictions.Store(0)
}
