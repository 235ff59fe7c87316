package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "absent"); err != nil || found {
		t.Fatalf("Get(absent) = found=%v err=%v, want miss", found, err)
	}

	if err := c.Set(ctx, "k", []byte("graph-bytes"), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, found, err := c.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("Get = found=%v err=%v", found, err)
	}
	if string(data) != "graph-bytes" {
		t.Errorf("data = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := c.Get(ctx, "short"); found {
		t.Error("expired entry should be a miss")
	}

	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := c.Get(ctx, "forever"); !found {
		t.Error("zero TTL entry should not expire")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Error("null cache should never hit")
	}
}

func TestGraphKey(t *testing.T) {
	k := NewDefaultKeyer()

	h := Hash([]byte("document"))
	plain := k.GraphKey(h, false)
	strict := k.GraphKey(h, true)

	if plain == strict {
		t.Error("strict mode should produce a distinct key")
	}
	if plain != k.GraphKey(h, false) {
		t.Error("keys must be deterministic")
	}
	if other := k.GraphKey(Hash([]byte("different")), false); other == plain {
		t.Error("different content hashes must produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "tenant:a:")

	h := Hash([]byte("doc"))
	if got, want := scoped.GraphKey(h, false), "tenant:a:"+base.GraphKey(h, false); got != want {
		t.Errorf("GraphKey = %q, want %q", got, want)
	}
}

func TestHashStability(t *testing.T) {
	a := Hash([]byte("same"))
	b := Hash([]byte("same"))
	if a != b {
		t.Error("hash must be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
}
