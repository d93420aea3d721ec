package theme

import (
	"context"
	"time"

	"github.com/maypok86/otter/v2"
)

type cacheEntry struct {
	name string
	ok   bool
}

// CachedStore answers Load from memory for ttl after the last read or write,
// so page renders do not hit a remote store every time.
type CachedStore struct {
	next  Store
	cache *otter.Cache[string, cacheEntry]
}

func NewCachedStore(next Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		next: next,
		cache: otter.Must(&otter.Options[string, cacheEntry]{
			MaximumSize:      16,
			ExpiryCalculator: otter.ExpiryWriting[string, cacheEntry](ttl),
		}),
	}
}

func (s *CachedStore) Load(ctx context.Context) (string, bool, error) {
	if e, found := s.cache.GetIfPresent(StorageKey); found {
		return e.name, e.ok, nil
	}
	name, ok, err := s.next.Load(ctx)
	if err != nil {
		return "", false, err
	}
	s.cache.Set(StorageKey, cacheEntry{name: name, ok: ok})
	return name, ok, nil
}

func (s *CachedStore) Save(ctx context.Context, name string) error {
	if err := s.next.Save(ctx, name); err != nil {
		s.cache.Invalidate(StorageKey)
		return err
	}
	s.cache.Set(StorageKey, cacheEntry{name: name, ok: true})
	return nil
}
