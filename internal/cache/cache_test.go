package cache

import (
	"context"
	"testing"
	"time"
)

type countingObserver struct {
	hits, misses int
}

func (o *countingObserver) CacheHit()  { o.hits++ }
func (o *countingObserver) CacheMiss() { o.misses++ }

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	obs := &countingObserver{}
	c := NewMemory(time.Minute, obs)

	if _, ok := c.Get(ctx, "averages:C-201"); ok {
		t.Error("expected miss on empty cache")
	}
	c.Set(ctx, "averages:C-201", []byte(`{"co2":612}`))
	val, ok := c.Get(ctx, "averages:C-201")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(val) != `{"co2":612}` {
		t.Errorf("got %q", val)
	}
	if obs.hits != 1 || obs.misses != 1 {
		t.Errorf("observer saw hits=%d misses=%d, want 1/1", obs.hits, obs.misses)
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(-time.Second, nil) // already expired
	c.Set(ctx, "k", []byte("v"))
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute, nil)
	c.Set(ctx, "k", []byte("v"))
	c.Delete(ctx, "k")
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected miss after delete")
	}
}
