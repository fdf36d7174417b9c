package ttlcache

import (
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	c := New[int](time.Minute, 10)
	c.Set("a", 1)
	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Fatalf("Get(a) = %d, %v; want 1, true", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) reported a hit")
	}
}

func TestExpiry(t *testing.T) {
	c := New[string](10*time.Millisecond, 10)
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("entry survived past its TTL")
	}
}

func TestOverwrite(t *testing.T) {
	c := New[int](time.Minute, 10)
	c.Set("k", 1)
	c.Set("k", 2)
	if got, _ := c.Get("k"); got != 2 {
		t.Fatalf("Get(k) = %d, want 2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestSweepOnOverflow(t *testing.T) {
	c := New[int](time.Millisecond, 2)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(5 * time.Millisecond)
	c.Set("c", 3)
	if c.Len() > 2 {
		t.Errorf("Len = %d after sweep, want <= 2", c.Len())
	}
	if got, ok := c.Get("c"); !ok || got != 3 {
		t.Errorf("fresh entry lost in sweep")
	}
}
