package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// document is the canonical serialization format for extracted graphs.
// Used for CLI output, caching, the HTTP API, and the Mongo archive.
// Nodes and links are emitted in ascending id order for round-trip fidelity.
type document struct {
	Nodes []*Node `json:"nodes" bson:"nodes"`
	Links []*Link `json:"links" bson:"links"`
}

// Marshal converts a graph to indented JSON bytes.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a graph as JSON to w, nodes and links sorted by id.
func Write(g *Graph, w io.Writer) error {
	out := document{Nodes: g.Nodes(), Links: g.Links()}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a graph to a JSON file with 0644 permissions.
func WriteFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// Read decodes a JSON graph from r. Duplicate ids are rejected with the same
// errors the extractor would produce.
func Read(r io.Reader) (*Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := New()
	for i, n := range data.Nodes {
		if n == nil {
			return nil, fmt.Errorf("decode: null node entry at index %d", i)
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
	}
	for i, l := range data.Links {
		if l == nil {
			return nil, fmt.Errorf("decode: null link entry at index %d", i)
		}
		if err := g.AddLink(l); err != nil {
			return nil, fmt.Errorf("link %d: %w", l.ID, err)
		}
	}
	return g, nil
}

// ReadFile reads a JSON file at path and returns the decoded graph.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
