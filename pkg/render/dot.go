package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/vuegraph/vuegraph/pkg/graph"
)

// ToDOT converts an extracted graph to Graphviz DOT format.
//
// Nodes are rendered as rounded boxes. Links drawn between two nodes become
// plain edges carrying the link label; direction maps onto the edge's dir
// attribute (none for undirected, both for bidirectional). A link that is
// itself referenced as an endpoint by another link is materialized as a small
// diamond pseudo-node so the referencing edge has something to attach to, and
// its own endpoints connect through the diamond.
func ToDOT(g *graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", nodeID(n.ID), n.DisplayLabel())
	}

	// Links referenced as endpoints need pseudo-nodes.
	referenced := referencedLinks(g)
	for _, l := range g.Links() {
		if !referenced[l.ID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [shape=diamond, style=filled, fillcolor=lightgrey, fontsize=10, label=%q];\n",
			linkID(l.ID), l.DisplayLabel())
	}

	buf.WriteString("\n")
	for _, l := range g.Links() {
		attrs := edgeAttrs(l)
		if referenced[l.ID] {
			// Split the edge through the pseudo-node; arrowheads only on
			// the outgoing half.
			fmt.Fprintf(&buf, "  %q -> %q [dir=none];\n", endpointID(l.Start), linkID(l.ID))
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", linkID(l.ID), endpointID(l.End), attrs)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", endpointID(l.Start), endpointID(l.End), attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// referencedLinks returns the ids of links used as endpoints by other links.
func referencedLinks(g *graph.Graph) map[int]bool {
	out := make(map[int]bool)
	for _, l := range g.Links() {
		if l.Start.Kind == graph.RefLink {
			out[l.Start.ID] = true
		}
		if l.End.Kind == graph.RefLink {
			out[l.End.ID] = true
		}
	}
	return out
}

func edgeAttrs(l *graph.Link) string {
	attrs := ""
	if l.Label != "" {
		attrs = fmt.Sprintf("label=%q, ", l.Label)
	}
	switch l.Directed {
	case graph.Undirected:
		return attrs + "dir=none"
	case graph.Bidirectional:
		return attrs + "dir=both"
	default:
		return attrs + "dir=forward"
	}
}

func nodeID(id int) string { return fmt.Sprintf("n%d", id) }
func linkID(id int) string { return fmt.Sprintf("l%d", id) }

func endpointID(ref graph.EndpointRef) string {
	if ref.Kind == graph.RefLink {
		return linkID(ref.ID)
	}
	return nodeID(ref.ID)
}
