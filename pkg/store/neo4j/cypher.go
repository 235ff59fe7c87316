package neo4j

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vuegraph/vuegraph/pkg/graph"
)

const (
	// defaultRelationship is used when a link label cannot be turned into
	// a valid relationship type.
	defaultRelationship = "LINKED_TO"

	nodeMergeQuery = `
		MERGE (n:VueNode {vue_id: $vueID, source: $source})
		SET n.label = $label,
		    n.layer = $layer,
		    n.parent = $parent,
		    n.resource = $resource,
		    n.keywords = $keywords,
		    n.run_id = $runID,
		    n.loaded_at = datetime($loadedAt)
	`

	verifyNodesQuery = `
		MATCH (n:VueNode {run_id: $runID})
		RETURN count(n) AS count
	`

	verifyRelationshipsQuery = `
		MATCH (:VueNode {run_id: $runID})-[r {run_id: $runID}]->(:VueNode)
		RETURN count(r) AS count
	`
)

// relationshipMergeQuery builds the MERGE statement for one link. The
// relationship type is derived from the link label, so it has to be spliced
// into the query text; everything else travels as parameters.
func relationshipMergeQuery(l *graph.Link) string {
	return fmt.Sprintf(`
		MATCH (a:VueNode {vue_id: $startID, source: $source})
		MATCH (b:VueNode {vue_id: $endID, source: $source})
		MERGE (a)-[r:%s {vue_id: $vueID, source: $source}]->(b)
		SET r.label = $label,
		    r.link_type = $linkType,
		    r.directed = $directed,
		    r.run_id = $runID,
		    r.loaded_at = datetime($loadedAt)
	`, RelationshipType(l.Label))
}

// RelationshipType converts a link label into a Cypher-safe relationship
// type: uppercased, with runs of non-alphanumeric characters collapsed to
// single underscores. Labels that yield nothing usable fall back to
// LINKED_TO.
func RelationshipType(label string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToUpper(label) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return defaultRelationship
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}
