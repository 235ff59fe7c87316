// Package graph defines the extracted graph model: nodes, links, endpoint
// references, and the id-keyed Graph arena that holds them.
//
// A Graph is the output of pkg/extract and the input to every downstream
// consumer (tables, DOT rendering, the Neo4j store, the Mongo archive). Node
// and link ids are unique across both collections; endpoints are resolved by
// id lookup, and the Nodes/Links accessors return ascending-id slices so all
// consumers see the same deterministic order.
package graph

import (
	"slices"

	"github.com/vuegraph/vuegraph/pkg/errors"
)

// Graph is the arena of extracted nodes and links, keyed by id.
// Records are never mutated after insertion.
type Graph struct {
	nodes map[int]*Node
	links map[int]*Link
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[int]*Node),
		links: make(map[int]*Link),
	}
}

// AddNode inserts a node. An id already present in either collection is a
// document error: ids are unique across nodes and links combined.
func (g *Graph) AddNode(n *Node) error {
	if g.ContainsID(n.ID) {
		return errors.New(errors.ErrCodeInvalidDocument, "duplicate element ID %d", n.ID)
	}
	g.nodes[n.ID] = n
	return nil
}

// AddLink inserts a link, with the same id-uniqueness rule as AddNode.
func (g *Graph) AddLink(l *Link) error {
	if g.ContainsID(l.ID) {
		return errors.New(errors.ErrCodeInvalidDocument, "duplicate element ID %d", l.ID)
	}
	g.links[l.ID] = l
	return nil
}

// ContainsID reports whether an id exists in either collection.
func (g *Graph) ContainsID(id int) bool {
	if _, ok := g.nodes[id]; ok {
		return true
	}
	_, ok := g.links[id]
	return ok
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Link returns the link with the given id.
func (g *Graph) Link(id int) (*Link, bool) {
	l, ok := g.links[id]
	return l, ok
}

// Resolve looks up an endpoint reference in the arena.
// A reference to a missing id, or one whose entry is nil, does not resolve.
func (g *Graph) Resolve(ref EndpointRef) (Entity, bool) {
	switch ref.Kind {
	case RefNode:
		n, ok := g.nodes[ref.ID]
		if !ok || n == nil {
			return nil, false
		}
		return n, true
	case RefLink:
		l, ok := g.links[ref.ID]
		if !ok || l == nil {
			return nil, false
		}
		return l, true
	}
	return nil, false
}

// Nodes returns all nodes in ascending id order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b *Node) int { return a.ID - b.ID })
	return out
}

// Links returns all links in ascending id order.
func (g *Graph) Links() []*Link {
	out := make([]*Link, 0, len(g.links))
	for _, l := range g.links {
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b *Link) int { return a.ID - b.ID })
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links.
func (g *Graph) LinkCount() int { return len(g.links) }

// CompatibleLinks splits the link collection by graph-store policy: a store
// holds links as relationships between node vertices, so a link with a link
// on either endpoint has nothing to attach to and is skipped. It returns the
// kept links in ascending id order plus the skipped ids.
func (g *Graph) CompatibleLinks() (kept []*Link, skipped []int) {
	for _, l := range g.Links() {
		if l.HasLinkEndpoint() {
			skipped = append(skipped, l.ID)
			continue
		}
		kept = append(kept, l)
	}
	return kept, skipped
}
