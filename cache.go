package cssenhance

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL bounds how long an enhancement result stays valid even
// without a registry version bump.
const DefaultCacheTTL = 30 * time.Minute

// Signature derives the content-keyed cache signature for a
// (source, registry version) pair.
func Signature(code, codeType, registryVersion string) string {
	h := xxhash.New()
	_, _ = h.WriteString(code)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(codeType)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(registryVersion)
	return fmt.Sprintf("%016x", h.Sum64())
}

// CacheEntry is an immutable cache record. Entries are replaced, never
// updated; invalidation happens through registry version keying and TTL
// expiry.
type CacheEntry struct {
	Signature       string
	RegistryVersion string
	Result          *EnhancementResult
	CreatedAt       time.Time
	TTL             time.Duration
}

func (e *CacheEntry) expired(now time.Time) bool {
	return e.TTL > 0 && now.After(e.CreatedAt.Add(e.TTL))
}

// Store is the cache backend. Implementations may be remote; the cache
// fails open on every Store error.
type Store interface {
	Get(key string) (*CacheEntry, error)
	Set(key string, entry *CacheEntry) error
}

// MemoryStore is the in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
}

// NewMemoryStore builds an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*CacheEntry)}
}

func (s *MemoryStore) Get(key string) (*CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[key], nil
}

func (s *MemoryStore) Set(key string, entry *CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return nil
}

// ResultCache is a signature-keyed store of prior enhancement outputs.
// Concurrent callers for the same key attach to a single in-flight
// computation. The cache is an injected service, not a process global.
type ResultCache struct {
	store  Store
	clock  clockwork.Clock
	ttl    time.Duration
	logger *log.Logger
	group  singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheOption tweaks cache construction.
type CacheOption func(*ResultCache)

// WithClock injects a clock; tests use a fake to drive TTL expiry.
func WithClock(c clockwork.Clock) CacheOption {
	return func(rc *ResultCache) { rc.clock = c }
}

// WithTTL overrides the default entry lifetime. Zero disables expiry.
func WithTTL(d time.Duration) CacheOption {
	return func(rc *ResultCache) { rc.ttl = d }
}

// WithLogger routes fail-open diagnostics.
func WithLogger(l *log.Logger) CacheOption {
	return func(rc *ResultCache) { rc.logger = l }
}

// NewResultCache wraps a store. A nil store selects the in-process one.
func NewResultCache(store Store, opts ...CacheOption) *ResultCache {
	rc := &ResultCache{
		store: store,
		clock: clockwork.NewRealClock(),
		ttl:   DefaultCacheTTL,
	}
	if rc.store == nil {
		rc.store = NewMemoryStore()
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// GetOrCompute returns the cached result for (signature, registryVersion)
// or computes it once, no matter how many callers arrive concurrently.
// Backend unavailability is logged and bypassed — the engine computes
// directly and skips persistence, never raising.
func (rc *ResultCache) GetOrCompute(signature, registryVersion string, compute func() (*EnhancementResult, error)) (*EnhancementResult, bool, error) {
	key := signature + "@" + registryVersion

	if entry, ok := rc.lookup(key); ok {
		rc.hits.Add(1)
		return entry.Result, true, nil
	}

	v, err, _ := rc.group.Do(key, func() (interface{}, error) {
		// Re-check: a racing caller may have populated the entry while
		// we waited on the flight group.
		if entry, ok := rc.lookup(key); ok {
			return entry, nil
		}

		result, err := compute()
		if err != nil {
			return nil, err
		}
		entry := &CacheEntry{
			Signature:       signature,
			RegistryVersion: registryVersion,
			Result:          result,
			CreatedAt:       rc.clock.Now(),
			TTL:             rc.ttl,
		}
		if err := rc.store.Set(key, entry); err != nil {
			rc.logf("cache set failed (continuing uncached): %v", err)
		}
		return entry, nil
	})
	if err != nil {
		return nil, false, err
	}

	rc.misses.Add(1)
	return v.(*CacheEntry).Result, false, nil
}

func (rc *ResultCache) lookup(key string) (*CacheEntry, bool) {
	entry, err := rc.store.Get(key)
	if err != nil {
		rc.logf("cache get failed (computing directly): %v", err)
		return nil, false
	}
	if entry == nil || entry.expired(rc.clock.Now()) {
		return nil, false
	}
	return entry, true
}

// HitRate reports the fraction of lookups served from cache.
func (rc *ResultCache) HitRate() float64 {
	h, m := rc.hits.Load(), rc.misses.Load()
	if h+m == 0 {
		return 0
	}
	return float64(h) / float64(h+m)
}

func (rc *ResultCache) logf(format string, args ...interface{}) {
	if rc.logger != nil {
		rc.logger.Printf(format, args...)
	}
}

// EnhanceCached wraps Enhance with the result cache. The returned result
// is a shallow copy carrying cache metadata, so cached entries stay
// immutable.
func (e *Engine) EnhanceCached(unit SourceUnit, reg *Registry, pctx *Context, cache *ResultCache) (*EnhancementResult, error) {
	sig := Signature(unit.Code, unit.Language, reg.Version)
	res, cached, err := cache.GetOrCompute(sig, reg.Version, func() (*EnhancementResult, error) {
		return e.Enhance(unit, reg, pctx)
	})
	if err != nil {
		return nil, err
	}
	out := *res
	out.Cached = cached
	out.CacheHitRate = cache.HitRate()
	return &out, nil
}
