package storage

import (
	"context"
	"time"

	"github.com/coocood/freecache"

	"fitbuddy/backend/internal/metrics"
)

// CachedBackend puts a freecache read-through, write-through layer in front of
// another backend. Absent keys are not cached. Entries expire after the ttl so
// writes made by other processes (restore, import) become visible.
type CachedBackend struct {
	inner   Backend
	cache   *freecache.Cache
	ttl     int
	metrics metrics.Recorder
}

// NewCachedBackend returns inner unchanged when sizeMB is not positive. A ttl
// below one second keeps entries until they are evicted.
func NewCachedBackend(inner Backend, sizeMB int, ttl time.Duration, recorder metrics.Recorder) Backend {
	if sizeMB <= 0 {
		return inner
	}
	return newCachedBackend(inner, freecache.NewCache(sizeMB*1024*1024), ttl, recorder)
}

func newCachedBackend(inner Backend, cache *freecache.Cache, ttl time.Duration, recorder metrics.Recorder) *CachedBackend {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return &CachedBackend{
		inner:   inner,
		cache:   cache,
		ttl:     max(int(ttl/time.Second), 0),
		metrics: recorder,
	}
}

func (b *CachedBackend) Namespace(owner string) Store {
	return &cachedStore{
		inner:  b.inner.Namespace(owner),
		parent: b,
		prefix: owner + "\x00",
	}
}

func (b *CachedBackend) Dump(ctx context.Context) (Entries, error) {
	dumper, ok := b.inner.(Dumper)
	if !ok {
		return nil, ErrNotDumpable
	}
	return dumper.Dump(ctx)
}

func (b *CachedBackend) Restore(ctx context.Context, entries Entries) error {
	dumper, ok := b.inner.(Dumper)
	if !ok {
		return ErrNotDumpable
	}
	b.cache.Clear()
	return dumper.Restore(ctx, entries)
}

type cachedStore struct {
	inner  Store
	parent *CachedBackend
	prefix string
}

func (s *cachedStore) cacheKey(key string) []byte {
	return []byte(s.prefix + key)
}

func (s *cachedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if cached, err := s.parent.cache.Get(s.cacheKey(key)); err == nil {
		s.parent.metrics.IncCacheHits()
		return string(cached), true, nil
	}
	s.parent.metrics.IncCacheMisses()

	value, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return value, ok, err
	}
	_ = s.parent.cache.Set(s.cacheKey(key), []byte(value), s.parent.ttl)
	return value, true, nil
}

func (s *cachedStore) Set(ctx context.Context, key, value string) error {
	if err := s.inner.Set(ctx, key, value); err != nil {
		s.parent.cache.Del(s.cacheKey(key))
		return err
	}
	if err := s.parent.cache.Set(s.cacheKey(key), []byte(value), s.parent.ttl); err != nil {
		// too large for the cache; make sure no stale copy survives
		s.parent.cache.Del(s.cacheKey(key))
	}
	return nil
}

func (s *cachedStore) Remove(ctx context.Context, key string) error {
	s.parent.cache.Del(s.cacheKey(key))
	return s.inner.Remove(ctx, key)
}
