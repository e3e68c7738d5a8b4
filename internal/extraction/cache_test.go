package extraction

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/taxdesk-erp/taxdesk/internal/extract"
)

func newTestCache(t *testing.T) (*Cache, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)
	return cache, func() {
		_ = client.Close()
		mr.Close()
	}
}

func TestCachePutGet(t *testing.T) {
	cache, cleanup := newTestCache(t)
	defer cleanup()
	ctx := context.Background()

	doc := extract.Document{
		ComprehensiveIncome: map[string]any{"revenue": 100000.0},
	}
	if _, ok := cache.Get(ctx, "doc-1", "comprehensive_income"); ok {
		t.Fatalf("expected miss before put")
	}

	cache.Put(ctx, "doc-1", "comprehensive_income", doc)

	got, ok := cache.Get(ctx, "doc-1", "comprehensive_income")
	if !ok {
		t.Fatalf("expected hit after put")
	}
	if got.ComprehensiveIncome["revenue"] != 100000.0 {
		t.Fatalf("unexpected cached payload %+v", got.ComprehensiveIncome)
	}

	// Category hint is part of the key.
	if _, ok := cache.Get(ctx, "doc-1", "financial_position"); ok {
		t.Fatalf("different hint must miss")
	}
}

func TestCacheBumpInvalidates(t *testing.T) {
	cache, cleanup := newTestCache(t)
	defer cleanup()
	ctx := context.Background()

	cache.Put(ctx, "doc-1", "comprehensive_income", extract.Document{
		ComprehensiveIncome: map[string]any{"revenue": 1.0},
	})
	if err := cache.Bump(ctx); err != nil {
		t.Fatalf("Bump returned error: %v", err)
	}
	if _, ok := cache.Get(ctx, "doc-1", "comprehensive_income"); ok {
		t.Fatalf("expected miss after version bump")
	}
}

func TestCacheNilSafe(t *testing.T) {
	var cache *Cache
	ctx := context.Background()
	if _, ok := cache.Get(ctx, "doc", "hint"); ok {
		t.Fatalf("nil cache must miss")
	}
	cache.Put(ctx, "doc", "hint", extract.Document{})
	if err := cache.Bump(ctx); err != nil {
		t.Fatalf("nil cache Bump must be a no-op, got %v", err)
	}
}
