// Package render turns extracted graphs into human-readable output: styled
// terminal tables for nodes and links, and Graphviz DOT/SVG diagrams.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vuegraph/vuegraph/pkg/graph"
)

// DefaultMaxLabel is the truncation width for labels in the link table.
const DefaultMaxLabel = 30

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// NodeTable renders the node collection as a two-column table (ID, LABEL),
// ascending by id.
func NodeTable(g *graph.Graph) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "LABEL").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})

	for _, n := range g.Nodes() {
		t.Row(fmt.Sprintf("%d", n.ID), n.DisplayLabel())
	}
	return t.String()
}

// LinkTable renders the link collection with resolved endpoint labels and an
// arrow string describing direction, ascending by id. Labels longer than
// maxLabel are truncated with an ellipsis; maxLabel <= 0 uses DefaultMaxLabel.
func LinkTable(g *graph.Graph, maxLabel int) string {
	if maxLabel <= 0 {
		maxLabel = DefaultMaxLabel
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("LINK ID", "ENDPOINT 1", "RELATIONSHIP", "ENDPOINT 2").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})

	for _, l := range g.Links() {
		start := endpointLabel(g, l.Start, maxLabel)
		end := endpointLabel(g, l.End, maxLabel)
		t.Row(fmt.Sprintf("%d", l.ID), start, ArrowString(l), end)
	}
	return t.String()
}

// ArrowString builds a textual arrow for a link, e.g. "--[depends on]-->",
// "<--->" for bidirectional, or "----" for undirected.
func ArrowString(l *graph.Link) string {
	tag := ""
	if l.Label != "" {
		tag = "[" + l.Label + "]"
	}

	left := ""
	if l.Directed == graph.Bidirectional {
		left = "<"
	}
	right := ""
	if l.Directed != graph.Undirected {
		right = ">"
	}

	return left + "--" + tag + "--" + right
}

// endpointLabel resolves an endpoint and truncates its display label.
// A dangling reference (possible when rendering a graph with unresolved
// links filtered out upstream) is shown by id.
func endpointLabel(g *graph.Graph, ref graph.EndpointRef, maxLabel int) string {
	e, ok := g.Resolve(ref)
	if !ok {
		return fmt.Sprintf("?%d", ref.ID)
	}
	return truncate(e.DisplayLabel(), maxLabel)
}

// truncate shortens s to max runes, appending … when anything was cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimRight(string(runes[:max]), " ") + "…"
}
