package cache

import (
	"testing"
	"time"
)

func TestTTL(t *testing.T) {
	t.Run("Given a stored value When read before expiry Then it is returned", func(t *testing.T) {
		c := NewTTL(time.Minute)
		c.Set("users", []string{"alice"})

		v, ok := c.Get("users")
		if !ok {
			t.Fatal("expected fresh hit")
		}
		if got := v.([]string); len(got) != 1 || got[0] != "alice" {
			t.Errorf("unexpected value: %v", got)
		}
	})

	t.Run("Given a stored value When TTL has passed Then Get misses but GetStale still serves it", func(t *testing.T) {
		c := NewTTL(time.Minute)
		base := time.Now()
		c.now = func() time.Time { return base }
		c.Set("users", "v1")

		c.now = func() time.Time { return base.Add(2 * time.Minute) }

		if _, ok := c.Get("users"); ok {
			t.Error("expected expired entry to miss")
		}
		v, ok := c.GetStale("users")
		if !ok || v.(string) != "v1" {
			t.Errorf("expected stale value v1, got %v (%v)", v, ok)
		}
	})

	t.Run("Given an invalidated key When read Then nothing is served, not even stale", func(t *testing.T) {
		c := NewTTL(time.Minute)
		c.Set("users", "v1")
		c.Invalidate("users")

		if _, ok := c.Get("users"); ok {
			t.Error("expected miss after invalidation")
		}
		if _, ok := c.GetStale("users"); ok {
			t.Error("expected stale miss after invalidation")
		}
	})

	t.Run("Given an unknown key When read Then miss", func(t *testing.T) {
		c := NewTTL(time.Minute)
		if _, ok := c.Get("absent"); ok {
			t.Error("expected miss")
		}
	})
}
