package gateway

import (
	"context"
	"log"
	"sync"
	"time"
)

// CacheMirror is the durable second tier of the response cache. Reads that
// miss return ErrMirrorMiss.
type CacheMirror interface {
	Read(ctx context.Context, key string) (payload []byte, storedAt time.Time, err error)
	Write(ctx context.Context, key string, payload []byte, storedAt time.Time) error
}

type cacheEntry struct {
	payload    []byte
	storedAt   time.Time
	generation uint64
}

// responseCache caches serialized read responses with a fixed TTL. A fresh
// hit is served immediately and revalidated in the background; an expired
// or missing entry is fetched in the foreground. Background results are
// discarded if the entry was replaced while the fetch was in flight
// (generation counter).
type responseCache struct {
	mu           sync.Mutex
	ttl          time.Duration
	now          func() time.Time
	mirror       CacheMirror // may be nil
	entries      map[string]*cacheEntry
	revalidating map[string]bool

	// revalidateDone, when set, is called after a background revalidation
	// finishes. Tests use it to wait deterministically.
	revalidateDone func(key string)
}

func newResponseCache(ttl time.Duration, mirror CacheMirror) *responseCache {
	return &responseCache{
		ttl:          ttl,
		now:          time.Now,
		mirror:       mirror,
		entries:      make(map[string]*cacheEntry),
		revalidating: make(map[string]bool),
	}
}

func (c *responseCache) fetch(ctx context.Context, key string, fetchFn func(context.Context) ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()

	if !ok && c.mirror != nil {
		if payload, storedAt, err := c.mirror.Read(ctx, key); err == nil {
			c.mu.Lock()
			entry = &cacheEntry{payload: payload, storedAt: storedAt}
			c.entries[key] = entry
			ok = true
			c.mu.Unlock()
		}
	}

	c.mu.Lock()
	if ok && c.now().Sub(entry.storedAt) < c.ttl {
		payload := entry.payload
		generation := entry.generation
		start := !c.revalidating[key]
		if start {
			c.revalidating[key] = true
		}
		c.mu.Unlock()
		if start {
			go c.revalidate(key, generation, fetchFn)
		}
		return payload, nil
	}
	c.mu.Unlock()

	payload, err := fetchFn(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, payload)
	return payload, nil
}

func (c *responseCache) store(ctx context.Context, key string, payload []byte) {
	c.mu.Lock()
	storedAt := c.writeEntryLocked(key, payload)
	c.mu.Unlock()

	c.mirrorWrite(ctx, key, payload, storedAt)
}

// writeEntryLocked installs the payload and bumps the generation. Callers
// must hold c.mu.
func (c *responseCache) writeEntryLocked(key string, payload []byte) time.Time {
	storedAt := c.now()
	entry, ok := c.entries[key]
	if !ok {
		entry = &cacheEntry{}
		c.entries[key] = entry
	}
	entry.payload = payload
	entry.storedAt = storedAt
	entry.generation++
	return storedAt
}

func (c *responseCache) mirrorWrite(ctx context.Context, key string, payload []byte, storedAt time.Time) {
	if c.mirror == nil {
		return
	}
	if err := c.mirror.Write(ctx, key, payload, storedAt); err != nil {
		log.Printf("⚠️ cache: failed to mirror %s: %v", key, err)
	}
}

// revalidate refreshes an entry off the request path. Failures are
// swallowed; the previous entry keeps serving until its TTL runs out.
func (c *responseCache) revalidate(key string, generation uint64, fetchFn func(context.Context) ([]byte, error)) {
	defer func() {
		c.mu.Lock()
		delete(c.revalidating, key)
		c.mu.Unlock()
		if c.revalidateDone != nil {
			c.revalidateDone(key)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	payload, err := fetchFn(ctx)
	if err != nil {
		log.Printf("⚠️ cache: background revalidation of %s failed: %v", key, err)
		return
	}

	// Generation check and write share one critical section so a foreground
	// store landing mid-fetch cannot be clobbered by this stale result.
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && entry.generation != generation {
		c.mu.Unlock()
		return
	}
	storedAt := c.writeEntryLocked(key, payload)
	c.mu.Unlock()

	c.mirrorWrite(ctx, key, payload, storedAt)
}
