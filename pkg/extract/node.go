package extract

import (
	"strings"

	"github.com/vuegraph/vuegraph/pkg/errors"
	"github.com/vuegraph/vuegraph/pkg/graph"
	"github.com/vuegraph/vuegraph/pkg/vue"
)

// keywordKind is the only metadata entry kind the VUE format defines.
const keywordKind = "1"

// extractNode converts a node element into a graph.Node and inserts it.
// If the element nests further <child> elements, the walker re-enters them
// with this node's id as the parent.
func (s *state) extractNode(el *vue.Element, parent *int) error {
	id, err := el.IntAttr("ID")
	if err != nil {
		return err
	}

	node := &graph.Node{
		ID:     id,
		Label:  strings.ReplaceAll(el.Attr("label"), "\n", " "),
		Layer:  el.Attr("layerID"),
		Parent: parent,
	}

	if rs := el.Find("resource"); rs != nil {
		node.Resource = extractResource(id, rs)
	}

	if el.Find("metadata-list") != nil {
		md, err := extractMetadata(el)
		if err != nil {
			return err
		}
		node.Metadata = md
	}

	if err := s.graph.AddNode(node); err != nil {
		return err
	}

	if el.Find("child") != nil {
		return s.walk(el, &id)
	}
	return nil
}

// extractResource reads an attached resource: its type attribute, title
// sub-element, and any declared property key/value pairs. The resource takes
// the owning node's id.
func extractResource(nodeID int, rs *vue.Element) *graph.Resource {
	r := &graph.Resource{
		ID:    nodeID,
		Title: rs.FindText("title"),
		Type:  rs.Attr("type"),
	}
	for _, prop := range rs.FindAll("property") {
		key := prop.Attr("key")
		if key == "" {
			continue
		}
		if r.Props == nil {
			r.Props = make(map[string]string)
		}
		r.Props[key] = prop.Attr("value")
	}
	return r
}

// extractMetadata collects keyword entries from a node's metadata list.
// The format defines exactly one entry kind; any other kind fails loudly
// rather than silently dropping data.
func extractMetadata(el *vue.Element) (*graph.Metadata, error) {
	entries := el.Find("metadata-list").FindAll("md")
	if len(entries) == 0 {
		// Older exports place <md> tags directly on the node element.
		entries = el.FindAll("md")
	}

	md := &graph.Metadata{Keywords: []string{}}
	for _, tag := range entries {
		if kind := tag.Attr("t"); kind != keywordKind {
			return nil, errors.New(errors.ErrCodeInvalidMetadata,
				"element %s: unknown metadata kind t=%q on <md>", el.Attr("ID"), kind)
		}
		md.Keywords = append(md.Keywords, tag.Attr("v"))
	}
	return md, nil
}
