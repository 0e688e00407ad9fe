package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	mu    sync.Mutex
	calls int
}

func (f *countingFetcher) fn(context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return []byte(fmt.Sprintf("payload-%d", f.calls)), nil
}

func (f *countingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeMirror struct {
	mu      sync.Mutex
	payload map[string][]byte
	stored  map[string]time.Time
	writes  int
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{
		payload: make(map[string][]byte),
		stored:  make(map[string]time.Time),
	}
}

func (m *fakeMirror) Read(_ context.Context, key string) ([]byte, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payload[key]
	if !ok {
		return nil, time.Time{}, ErrMirrorMiss
	}
	return p, m.stored[key], nil
}

func (m *fakeMirror) Write(_ context.Context, key string, payload []byte, storedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload[key] = append([]byte(nil), payload...)
	m.stored[key] = storedAt
	m.writes++
	return nil
}

func (m *fakeMirror) get(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.payload[key])
}

func TestCacheTTLTimeline(t *testing.T) {
	base := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	var clockMu sync.Mutex

	c := newResponseCache(CacheTTL, nil)
	c.now = func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		return clock
	}
	done := make(chan string, 1)
	c.revalidateDone = func(key string) { done <- key }

	advance := func(d time.Duration) {
		clockMu.Lock()
		clock = base.Add(d)
		clockMu.Unlock()
	}

	f := &countingFetcher{}
	ctx := context.Background()

	// t=0: miss, foreground fetch.
	payload, err := c.fetch(ctx, "catalog:products", f.fn)
	require.NoError(t, err)
	require.Equal(t, "payload-1", string(payload))
	require.Equal(t, 1, f.count())

	// t=60s: fresh hit served from cache, revalidation fired in background.
	advance(60 * time.Second)
	payload, err = c.fetch(ctx, "catalog:products", f.fn)
	require.NoError(t, err)
	require.Equal(t, "payload-1", string(payload), "hit must serve the cached payload")

	select {
	case key := <-done:
		require.Equal(t, "catalog:products", key)
	case <-time.After(2 * time.Second):
		t.Fatal("background revalidation never ran")
	}
	require.Equal(t, 2, f.count())

	// The revalidation at t=60s refreshed the entry, so jump past its TTL:
	// expired entry forces a foreground fetch again.
	advance(60*time.Second + CacheTTL + time.Second)
	payload, err = c.fetch(ctx, "catalog:products", f.fn)
	require.NoError(t, err)
	require.Equal(t, "payload-3", string(payload))
	require.Equal(t, 3, f.count())
}

func TestCacheMissOnExpiredEntryFetchesForeground(t *testing.T) {
	base := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	var clockMu sync.Mutex

	c := newResponseCache(CacheTTL, nil)
	c.now = func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		return clock
	}

	f := &countingFetcher{}
	_, err := c.fetch(context.Background(), "catalog:categories", f.fn)
	require.NoError(t, err)

	clockMu.Lock()
	clock = base.Add(CacheTTL + time.Second)
	clockMu.Unlock()

	payload, err := c.fetch(context.Background(), "catalog:categories", f.fn)
	require.NoError(t, err)
	require.Equal(t, "payload-2", string(payload))
	require.Equal(t, 2, f.count())
}

func TestMirrorRehydratesColdCache(t *testing.T) {
	base := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	mirror := newFakeMirror()
	mirror.payload["catalog:products"] = []byte("mirrored")
	mirror.stored["catalog:products"] = base.Add(-time.Minute)

	c := newResponseCache(CacheTTL, mirror)
	c.now = func() time.Time { return base }
	done := make(chan string, 1)
	c.revalidateDone = func(key string) { done <- key }

	// Backend is down: only the mirror can answer.
	fetch := func(context.Context) ([]byte, error) {
		return nil, classify("fetch products", errors.New("backend down"))
	}

	payload, err := c.fetch(context.Background(), "catalog:products", fetch)
	require.NoError(t, err, "a fresh mirror entry must serve without a foreground fetch")
	require.Equal(t, "mirrored", string(payload))

	// The rehydrated hit still triggers a revalidation, which fails quietly.
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("background revalidation never ran")
	}
}

func TestStaleMirrorEntryFetchesForeground(t *testing.T) {
	base := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	mirror := newFakeMirror()
	mirror.payload["catalog:products"] = []byte("mirrored")
	mirror.stored["catalog:products"] = base.Add(-CacheTTL - time.Minute)

	c := newResponseCache(CacheTTL, mirror)
	c.now = func() time.Time { return base }

	f := &countingFetcher{}
	payload, err := c.fetch(context.Background(), "catalog:products", f.fn)
	require.NoError(t, err)
	require.Equal(t, "payload-1", string(payload), "an expired mirror entry must not be served")
	require.Equal(t, 1, f.count())

	// The foreground result replaces the stale mirror entry.
	require.Equal(t, "payload-1", mirror.get("catalog:products"))
}

func TestForegroundStoreWinsOverInFlightRevalidation(t *testing.T) {
	base := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	var clockMu sync.Mutex

	c := newResponseCache(CacheTTL, nil)
	c.now = func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		return clock
	}
	done := make(chan string, 1)
	c.revalidateDone = func(key string) { done <- key }

	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	fetch := func(context.Context) ([]byte, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 2 {
			// The revalidation fetch stalls until released.
			<-release
			return []byte("stale"), nil
		}
		return []byte("payload-1"), nil
	}

	ctx := context.Background()
	_, err := c.fetch(ctx, "catalog:products", fetch)
	require.NoError(t, err)

	clockMu.Lock()
	clock = base.Add(time.Minute)
	clockMu.Unlock()

	// Fresh hit: serves the cached payload and starts the stalled revalidation.
	_, err = c.fetch(ctx, "catalog:products", fetch)
	require.NoError(t, err)

	// A newer write lands while the revalidation is still fetching.
	c.store(ctx, "catalog:products", []byte("fresh"))

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("background revalidation never finished")
	}

	c.mu.Lock()
	got := string(c.entries["catalog:products"].payload)
	c.mu.Unlock()
	require.Equal(t, "fresh", got, "stale revalidation result must not clobber the newer entry")
}

func TestCacheRevalidationFailureIsSwallowed(t *testing.T) {
	base := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	var clockMu sync.Mutex

	c := newResponseCache(CacheTTL, nil)
	c.now = func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		return clock
	}
	done := make(chan string, 1)
	c.revalidateDone = func(key string) { done <- key }

	healthy := true
	var mu sync.Mutex
	fetch := func(context.Context) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		if !healthy {
			return nil, classify("fetch products", errors.New("backend down"))
		}
		return []byte("good"), nil
	}

	_, err := c.fetch(context.Background(), "catalog:products", fetch)
	require.NoError(t, err)

	mu.Lock()
	healthy = false
	mu.Unlock()
	clockMu.Lock()
	clock = base.Add(time.Minute)
	clockMu.Unlock()

	payload, err := c.fetch(context.Background(), "catalog:products", fetch)
	require.NoError(t, err, "revalidation failure must never surface")
	require.Equal(t, "good", string(payload))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("background revalidation never finished")
	}

	// Entry still serves until TTL; the failed refresh left it alone.
	payload, err = c.fetch(context.Background(), "catalog:products", fetch)
	require.NoError(t, err)
	require.Equal(t, "good", string(payload))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
