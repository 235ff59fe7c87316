package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vuegraph/vuegraph/pkg/cache"
	"github.com/vuegraph/vuegraph/pkg/errors"
)

const sampleDoc = `VUE preamble line
<LW-MAP xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ID="0" label="Test Map">
  <child ID="1" label="Alpha" xsi:type="node"/>
  <child ID="2" label="Beta" xsi:type="node"/>
  <child ID="3" label="connects" arrowState="2" xsi:type="link">
    <ID1 xsi:type="node">1</ID1>
    <ID2 xsi:type="node">2</ID2>
  </child>
</LW-MAP>
`

const unresolvedDoc = `VUE preamble line
<LW-MAP xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ID="0">
  <child ID="1" label="Alpha" xsi:type="node"/>
  <child ID="3" arrowState="2" xsi:type="link">
    <ID1 xsi:type="node">1</ID1>
    <ID2 xsi:type="node">99</ID2>
  </child>
</LW-MAP>
`

// memCache is an in-process cache that records sets and gets.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *memCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[key] = data
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.vue")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecuteFromFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{Input: writeDoc(t, sampleDoc)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 2 || result.Stats.LinkCount != 1 {
		t.Errorf("counts = %d nodes, %d links", result.Stats.NodeCount, result.Stats.LinkCount)
	}
	if len(result.Unresolved) != 0 {
		t.Errorf("unexpected unresolved ids: %v", result.Unresolved)
	}
	if result.GraphHash == "" {
		t.Error("missing graph hash")
	}
	if result.CacheInfo.Hit {
		t.Error("first run should not hit cache")
	}
}

func TestExecuteFromSourceBytes(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Source:     []byte(sampleDoc),
		SourceName: "inline.vue",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.NodeCount != 2 {
		t.Errorf("NodeCount = %d", result.Stats.NodeCount)
	}
}

func TestExecuteCacheRoundTrip(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, nil)
	path := writeDoc(t, sampleDoc)

	first, err := runner.Execute(context.Background(), Options{Input: path})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.CacheInfo.Hit {
		t.Error("first run should miss")
	}
	if c.sets != 1 {
		t.Errorf("sets = %d, want 1", c.sets)
	}

	second, err := runner.Execute(context.Background(), Options{Input: path})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.CacheInfo.Hit {
		t.Error("second run should hit cache")
	}
	if second.Stats.NodeCount != first.Stats.NodeCount ||
		second.Stats.LinkCount != first.Stats.LinkCount {
		t.Errorf("cached counts differ: %+v vs %+v", second.Stats, first.Stats)
	}
	if second.GraphHash != first.GraphHash {
		t.Errorf("hash changed: %s vs %s", second.GraphHash, first.GraphHash)
	}
}

func TestExecuteRefreshBypassesLookup(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, nil)
	path := writeDoc(t, sampleDoc)

	if _, err := runner.Execute(context.Background(), Options{Input: path}); err != nil {
		t.Fatal(err)
	}
	result, err := runner.Execute(context.Background(), Options{Input: path, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.Hit {
		t.Error("refresh run must not report a cache hit")
	}
}

func TestExecuteCorruptCacheEntryRecovers(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, nil)
	path := writeDoc(t, sampleDoc)

	first, err := runner.Execute(context.Background(), Options{Input: path})
	if err != nil {
		t.Fatal(err)
	}
	key := runner.Keyer.GraphKey(first.GraphHash, false)
	c.entries[key] = []byte("{not json")

	second, err := runner.Execute(context.Background(), Options{Input: path})
	if err != nil {
		t.Fatalf("corrupt entry should be ignored: %v", err)
	}
	if second.CacheInfo.Hit {
		t.Error("corrupt entry must not count as a hit")
	}
}

func TestExecuteUnresolvedReported(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{Input: writeDoc(t, unresolvedDoc)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Unresolved) != 1 || result.Unresolved[0] != 3 {
		t.Errorf("Unresolved = %v, want [3]", result.Unresolved)
	}
}

func TestExecuteStrictFailsOnUnresolved(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		Input:  writeDoc(t, unresolvedDoc),
		Strict: true,
	})
	if err == nil {
		t.Fatal("expected error in strict mode")
	}
	if errors.GetCode(err) != errors.ErrCodeUnresolvedLinks {
		t.Errorf("code = %s", errors.GetCode(err))
	}
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"NoInput", Options{}, true},
		{"BothInputs", Options{Input: "a.vue", Source: []byte("x")}, true},
		{"BadExtension", Options{Input: "map.txt"}, true},
		{"FileOnly", Options{Input: "map.vue"}, false},
		{"SourceOnly", Options{Source: []byte("x")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExecuteMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		Input: filepath.Join(t.TempDir(), "missing.vue"),
	})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %s", errors.GetCode(err))
	}
}

var _ cache.Cache = (*memCache)(nil)
