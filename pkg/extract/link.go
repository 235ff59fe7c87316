package extract

import (
	"strconv"
	"strings"

	"github.com/vuegraph/vuegraph/pkg/errors"
	"github.com/vuegraph/vuegraph/pkg/graph"
	"github.com/vuegraph/vuegraph/pkg/vue"
)

// Arrow-state codes on link elements. Any other nonzero value is a plain
// directed link with endpoints in element order.
const (
	arrowNone          = 0 // undirected
	arrowFirstEndpoint = 1 // directed, arrow points at ID1: endpoint order is swapped
	arrowBoth          = 3 // bidirectional
)

// extractLink converts a link element into a graph.Link, resolving both
// endpoint references against the current collections. A reference to an id
// that is not (yet) extracted is not an error: the element is parked in the
// pending set and retried by the fixed-point loop once more of the document
// has been visited.
func (s *state) extractLink(el *vue.Element) error {
	id, err := el.IntAttr("ID")
	if err != nil {
		return err
	}

	refs, err := endpointRefs(el)
	if err != nil {
		return err
	}

	start, okStart := s.graph.Resolve(refs[0])
	end, okEnd := s.graph.Resolve(refs[1])
	if !okStart || !okEnd {
		s.pending[id] = el
		return nil
	}

	arrow, err := el.IntAttr("arrowState")
	if err != nil {
		return err
	}

	// Type is composed from the endpoints in ID1/ID2 document order, even
	// when the arrow state swaps them below.
	linkType := graph.LinkType(start, end)

	directed := graph.Directed
	switch arrow {
	case arrowBoth:
		directed = graph.Bidirectional
	case arrowNone:
		directed = graph.Undirected
	case arrowFirstEndpoint:
		refs[0], refs[1] = refs[1], refs[0]
	}

	link := &graph.Link{
		ID:       id,
		Label:    el.Attr("label"),
		Start:    refs[0],
		End:      refs[1],
		Directed: directed,
		Type:     linkType,
	}
	delete(s.pending, id)
	return s.graph.AddLink(link)
}

// endpointRefs reads the ID1/ID2 reference tags. Each carries its own
// xsi:type discriminator and the target id as text content. A missing tag or
// non-integer target is a structural error and is never retried.
func endpointRefs(el *vue.Element) ([2]graph.EndpointRef, error) {
	var refs [2]graph.EndpointRef
	for i, tag := range [...]string{"ID1", "ID2"} {
		ref := el.Find(tag)
		if ref == nil {
			return refs, errors.New(errors.ErrCodeInvalidDocument,
				"link %s: missing <%s> endpoint reference", el.Attr("ID"), tag)
		}
		kind := graph.RefLink
		if ref.TypeAttr() == "node" {
			kind = graph.RefNode
		}
		target, err := strconv.Atoi(strings.TrimSpace(ref.Text()))
		if err != nil {
			return refs, errors.New(errors.ErrCodeInvalidDocument,
				"link %s: <%s> target %q is not an integer", el.Attr("ID"), tag, ref.Text())
		}
		refs[i] = graph.EndpointRef{Kind: kind, ID: target}
	}
	return refs, nil
}
