package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/warp/mortgage-engine/cache"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("expected miss on empty cache")
	}

	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, ok := c.Get(ctx, "k")
	if !ok || val != "v" {
		t.Errorf("expected hit with %q, got %q (hit=%v)", "v", val, ok)
	}
}

func TestMemoryCache_TTLExpires(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected expired entry to miss")
	}
}
