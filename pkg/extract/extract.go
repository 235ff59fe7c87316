// Package extract implements the graph-extraction algorithm for VUE documents.
//
// Extraction is a depth-first traversal of the parsed element tree. Each
// <child> element is classified by its xsi:type discriminator as a node, a
// link, or something to ignore. Nodes are recorded immediately and may recurse
// into their own children; links resolve their two endpoint references against
// the already-extracted nodes and links. A link may reference elements that
// appear later in the document, or another link as an endpoint, so resolution
// failures are deferred and retried after the full scan until a fixed point is
// reached. Anything still unresolved at the fixed point is reported rather
// than retried forever.
//
// The traversal is single-threaded and synchronous: the node, link, and
// pending sets are one mutable state threaded through the recursion, and
// records are immutable once inserted. Re-running extraction on the same tree
// yields identical collections.
package extract

import (
	"maps"
	"slices"

	"github.com/vuegraph/vuegraph/pkg/errors"
	"github.com/vuegraph/vuegraph/pkg/graph"
	"github.com/vuegraph/vuegraph/pkg/vue"
)

// Kind classifies a document element.
type Kind int

// Element kinds recognized by the walker.
const (
	KindOther Kind = iota
	KindNode
	KindLink
)

// Classify reads an element's xsi:type discriminator.
// Elements without a recognized discriminator (layers, pathway lists, etc.)
// are KindOther and ignored by the walker.
func Classify(el *vue.Element) Kind {
	switch el.TypeAttr() {
	case "node":
		return KindNode
	case "link":
		return KindLink
	default:
		return KindOther
	}
}

// Result holds the extracted graph plus any link ids whose endpoints never
// resolved. Unresolved is ascending and empty for well-formed documents.
type Result struct {
	Graph      *graph.Graph
	Unresolved []int

	passes int
}

// Passes returns how many resolution passes ran, for callers that report
// stats. Zero means every link resolved during the initial scan.
func (r *Result) Passes() int { return r.passes }

// state is the mutable traversal state: the graph arena plus link elements
// awaiting endpoint resolution, keyed by link id.
type state struct {
	graph   *graph.Graph
	pending map[int]*vue.Element
}

// Extract runs the full extraction over a parsed document tree.
//
// Structural errors (missing or non-integer ids, unknown metadata kinds)
// abort immediately with no partial result. Endpoint-resolution failures are
// never errors: they are retried until the pending set empties or a pass
// makes no progress, at which point the leftover ids are returned in
// Result.Unresolved.
func Extract(root *vue.Element) (*Result, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "nil document root")
	}

	s := &state{
		graph:   graph.New(),
		pending: make(map[int]*vue.Element),
	}

	if err := s.walk(root, rootParent(root)); err != nil {
		return nil, err
	}

	unresolved, passes, err := s.drain()
	if err != nil {
		return nil, err
	}

	return &Result{Graph: s.graph, Unresolved: unresolved, passes: passes}, nil
}

// rootParent returns the structural parent id for a traversal rooted at el.
// The LW-MAP document root carries no ID attribute, so top-level elements
// have a nil parent.
func rootParent(el *vue.Element) *int {
	if !el.HasAttr("ID") {
		return nil
	}
	id, err := el.IntAttr("ID")
	if err != nil {
		return nil
	}
	return &id
}

// walk iterates el's immediate <child> elements in document order and
// dispatches each by kind. Nested nodes re-enter walk with their own id as
// the parent, threading the same shared state, so arbitrarily deep nesting
// still lands in one flat graph.
func (s *state) walk(el *vue.Element, parent *int) error {
	for _, child := range el.FindAll("child") {
		switch Classify(child) {
		case KindNode:
			if err := s.extractNode(child, parent); err != nil {
				return err
			}
		case KindLink:
			if err := s.extractLink(child); err != nil {
				return err
			}
		case KindOther:
			// Not part of the graph; skip.
		}
	}
	return nil
}

// drain retries pending link elements until the set empties or a full pass
// resolves nothing. Each pass walks a snapshot in ascending id order so the
// pass structure is deterministic; the fixed point itself is order-independent
// because the resolvable set only grows.
func (s *state) drain() (unresolved []int, passes int, err error) {
	for len(s.pending) > 0 {
		resolved := 0
		passes++
		for _, id := range slices.Sorted(maps.Keys(s.pending)) {
			el := s.pending[id]
			if err := s.extractLink(el); err != nil {
				return nil, passes, err
			}
			if _, ok := s.graph.Link(id); ok {
				delete(s.pending, id)
				resolved++
			}
		}
		if resolved == 0 {
			// Dangling references or mutually-pending links; report instead
			// of looping forever.
			return slices.Sorted(maps.Keys(s.pending)), passes, nil
		}
	}
	return nil, passes, nil
}
