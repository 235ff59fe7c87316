package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

const sampleDoc = `VUE preamble line
<LW-MAP xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ID="0">
  <child ID="1" label="Alpha" xsi:type="node"/>
  <child ID="2" label="Beta" xsi:type="node"/>
  <child ID="3" label="connects" arrowState="2" xsi:type="link">
    <ID1 xsi:type="node">1</ID1>
    <ID2 xsi:type="node">2</ID2>
  </child>
</LW-MAP>
`

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	// Keep runs hermetic: no user config, cache in a temp dir.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(io.Discard, log.ErrorLevel)
}

func TestRootCommandStructure(t *testing.T) {
	c := newTestCLI(t)
	root := c.RootCommand()

	if root.Use != "vuegraph" {
		t.Errorf("Use = %q", root.Use)
	}

	want := map[string]bool{
		"extract":    false,
		"nodes":      false,
		"links":      false,
		"render":     false,
		"load":       false,
		"archive":    false,
		"serve":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestExtractCommand(t *testing.T) {
	c := newTestCLI(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "map.vue")
	if err := os.WriteFile(input, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "graph.json")

	root := c.RootCommand()
	root.SetArgs([]string{"extract", input, "-o", output, "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("extract: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Nodes []json.RawMessage `json:"nodes"`
		Links []json.RawMessage `json:"links"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 2 || len(doc.Links) != 1 {
		t.Errorf("got %d nodes, %d links", len(doc.Nodes), len(doc.Links))
	}
}

func TestExtractCommandStrictFailure(t *testing.T) {
	c := newTestCLI(t)

	input := filepath.Join(t.TempDir(), "map.vue")
	doc := `VUE preamble
<LW-MAP xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ID="0">
  <child ID="1" label="Alpha" xsi:type="node"/>
  <child ID="3" arrowState="2" xsi:type="link">
    <ID1 xsi:type="node">1</ID1>
    <ID2 xsi:type="node">99</ID2>
  </child>
</LW-MAP>
`
	if err := os.WriteFile(input, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	root := c.RootCommand()
	root.SetArgs([]string{"extract", input, "--strict", "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Fatal("expected strict mode failure")
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	c := newTestCLI(t)

	root := c.RootCommand()
	root.SetArgs([]string{"render", "map.vue", "--format", "png"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Fatal("expected invalid format error")
	}
}

func TestCachePathCommand(t *testing.T) {
	c := newTestCLI(t)

	root := c.RootCommand()
	root.SetArgs([]string{"cache", "path"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
}
