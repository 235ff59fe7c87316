package neo4j

import (
	"strings"
	"testing"

	"github.com/vuegraph/vuegraph/pkg/graph"
)

func TestRelationshipType(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"Simple", "produces", "PRODUCES"},
		{"Spaces", "is part of", "IS_PART_OF"},
		{"Punctuation", "relates-to (weakly)", "RELATES_TO_WEAKLY"},
		{"CollapsedRuns", "a  --  b", "A_B"},
		{"Empty", "", "LINKED_TO"},
		{"OnlyPunctuation", "---", "LINKED_TO"},
		{"LeadingDigit", "3d model", "_3D_MODEL"},
		{"Unicode", "wirkt auf", "WIRKT_AUF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelationshipType(tt.label); got != tt.want {
				t.Errorf("RelationshipType(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestRelationshipMergeQuery(t *testing.T) {
	l := &graph.Link{
		ID:    7,
		Label: "feeds into",
		Start: graph.EndpointRef{Kind: graph.RefNode, ID: 1},
		End:   graph.EndpointRef{Kind: graph.RefNode, ID: 2},
	}

	query := relationshipMergeQuery(l)
	if !strings.Contains(query, "[r:FEEDS_INTO") {
		t.Errorf("query missing derived relationship type:\n%s", query)
	}
	if !strings.Contains(query, "$startID") || !strings.Contains(query, "$endID") {
		t.Errorf("endpoints must be parameterized:\n%s", query)
	}
}

func TestNodeParams(t *testing.T) {
	parent := 5
	n := &graph.Node{
		ID:       3,
		Label:    "Cell",
		Layer:    "2",
		Parent:   &parent,
		Resource: &graph.Resource{ID: 3, Title: "cell.png", Type: "image"},
		Metadata: &graph.Metadata{Keywords: []string{"biology"}},
	}

	params, err := nodeParams(n, "map.vue", "run-1", "2026-08-30T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params["vueID"] != 3 {
		t.Errorf("vueID = %v", params["vueID"])
	}
	if params["parent"] != 5 {
		t.Errorf("parent = %v", params["parent"])
	}
	resource, ok := params["resource"].(string)
	if !ok || !strings.Contains(resource, "cell.png") {
		t.Errorf("resource = %v", params["resource"])
	}
	keywords, ok := params["keywords"].([]string)
	if !ok || len(keywords) != 1 || keywords[0] != "biology" {
		t.Errorf("keywords = %v", params["keywords"])
	}
}

func TestNodeParamsBareNode(t *testing.T) {
	params, err := nodeParams(&graph.Node{ID: 1}, "map.vue", "run-1", "2026-08-30T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"parent", "resource", "keywords"} {
		if params[key] != nil {
			t.Errorf("%s should be nil for a bare node, got %v", key, params[key])
		}
	}
	if params["label"] != "#1" {
		t.Errorf("label = %v", params["label"])
	}
}
