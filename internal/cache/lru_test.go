package cache

import (
	"testing"
	"time"
)

func TestGetSetDelete(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected hit with 1, got %d ok=%v", v, ok)
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // evicts a, the least recently used

	if _, ok := c.Get("a"); ok {
		t.Fatal("oldest entry should be evicted")
	}
	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewLRUCache[string](4, 10*time.Millisecond)
	c.Set("a", "x")
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry should miss")
	}

	c.Set("b", "y")
	time.Sleep(20 * time.Millisecond)
	if cleaned := c.CleanExpired(); cleaned != 1 {
		t.Fatalf("expected 1 cleaned entry, got %d", cleaned)
	}
}
