package api

import "sync"

// Cache is a get-or-compute store for values that are fetched lazily and
// kept for the lifetime of a session, such as the user's own address and
// the label list. Concurrent callers racing to populate the same key
// coalesce on the lock: the loader runs at most once per key unless the
// key is invalidated.
type Cache struct {
	mu     sync.Mutex
	values map[string]any
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{values: make(map[string]any)}
}

// Invalidate drops the cached value for key, forcing the next Memo call to
// recompute it.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
}

// get-or-store under the lock; the loader runs while the lock is held so a
// second caller never observes a half-populated entry. Loads are short
// single requests, so holding the lock across them is acceptable.
func (c *Cache) memo(key string, load func() (any, error)) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return nil, err
	}
	c.values[key] = v
	return v, nil
}

// Memo returns the cached value for key, computing and storing it with
// load on first use. A failed load caches nothing, so callers simply
// retry on the next call.
func Memo[T any](c *Cache, key string, load func() (T, error)) (T, error) {
	v, err := c.memo(key, func() (any, error) {
		return load()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
