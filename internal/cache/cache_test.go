// ABOUTME: Tests for the TTL response cache.
// ABOUTME: Validates expiry, per-entry TTLs, eviction order, cleanup, and concurrency safety.

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetMiss(t *testing.T) {
	c := New(100)
	defer c.Close()

	_, ok := c.Get("never-stored")
	assert.False(t, ok)
}

func TestCache_PutGet(t *testing.T) {
	c := New(100)
	defer c.Close()

	c.Put("key", []byte("payload"), 5*time.Minute)

	data, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), data)
}

func TestCache_Expiry(t *testing.T) {
	c := New(100)
	defer c.Close()

	c.Put("short-lived", []byte("x"), 10*time.Millisecond)

	_, ok := c.Get("short-lived")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Get("short-lived")
	assert.False(t, ok, "expired entry should read as a miss")
}

func TestCache_PerEntryTTL(t *testing.T) {
	c := New(100)
	defer c.Close()

	c.Put("short", []byte("a"), 10*time.Millisecond)
	c.Put("long", []byte("b"), 5*time.Minute)

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
	_, ok = c.Get("long")
	assert.True(t, ok)
}

func TestCache_PutRefreshes(t *testing.T) {
	c := New(100)
	defer c.Close()

	c.Put("key", []byte("old"), 10*time.Millisecond)
	c.Put("key", []byte("new"), 5*time.Minute)

	time.Sleep(20 * time.Millisecond)

	data, ok := c.Get("key")
	require.True(t, ok, "re-put should refresh the TTL")
	assert.Equal(t, []byte("new"), data)
	assert.Equal(t, 1, c.Len())
}

func TestCache_EvictsOldestAtCapacity(t *testing.T) {
	c := New(3)
	defer c.Close()

	c.Put("first", []byte("1"), 5*time.Minute)
	c.Put("second", []byte("2"), 5*time.Minute)
	c.Put("third", []byte("3"), 5*time.Minute)
	c.Put("fourth", []byte("4"), 5*time.Minute)

	_, ok := c.Get("first")
	assert.False(t, ok, "oldest entry should be evicted")

	for _, key := range []string{"second", "third", "fourth"} {
		_, ok := c.Get(key)
		assert.True(t, ok, key)
	}
	assert.Equal(t, 3, c.Len())
}

func TestCache_RefreshMovesToBackOfEvictionOrder(t *testing.T) {
	c := New(2)
	defer c.Close()

	c.Put("a", []byte("1"), 5*time.Minute)
	c.Put("b", []byte("2"), 5*time.Minute)

	// Refreshing "a" makes "b" the eviction candidate
	c.Put("a", []byte("1'"), 5*time.Minute)
	c.Put("c", []byte("3"), 5*time.Minute)

	_, ok := c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestCache_RunCleanupRemovesExpired(t *testing.T) {
	c := New(100)
	defer c.Close()

	c.Put("stale", []byte("x"), 10*time.Millisecond)
	c.Put("fresh", []byte("y"), 5*time.Minute)

	time.Sleep(20 * time.Millisecond)
	c.runCleanup()

	assert.Equal(t, 1, c.Len(), "cleanup should drop only the expired entry")
	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestCache_Concurrent(t *testing.T) {
	c := New(1000)
	defer c.Close()

	const numGoroutines = 50
	const opsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				key := fmt.Sprintf("key-%d-%d", id%10, j%20)
				c.Put(key, []byte("v"), time.Minute)
				c.Get(key)
			}
		}(i)
	}

	wg.Wait()

	// Still functional after the stampede
	c.Put("final", []byte("v"), time.Minute)
	_, ok := c.Get("final")
	assert.True(t, ok)
}

func TestCache_Close(t *testing.T) {
	c := New(100)

	c.Put("key", []byte("v"), time.Minute)
	c.Close()

	// Reads still work and repeated closes do not panic
	_, ok := c.Get("key")
	assert.True(t, ok)
	c.Close()
}
