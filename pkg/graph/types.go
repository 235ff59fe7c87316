package graph

import "strconv"

// Direction describes how a link's arrow state maps onto the relationship.
type Direction string

// Link directionality values, derived from the VUE arrowState code.
const (
	Directed      Direction = "directed"
	Undirected    Direction = "undirected"
	Bidirectional Direction = "bidirectional"
)

// RefKind discriminates what an endpoint reference points at.
type RefKind string

// Endpoint reference kinds.
const (
	RefNode RefKind = "node"
	RefLink RefKind = "link"
)

// NodeTypeTag is the constant type tag stored on every node. Links carry a
// composite tag built from their endpoints' tags, so downstream consumers can
// tell node-to-node links apart from links that touch other links.
const NodeTypeTag = "Node"

// LinkTypePrefix prefixes every link's composite type tag.
const LinkTypePrefix = "Link: "

// Entity is either a *Node or a *Link resolved from an endpoint reference.
type Entity interface {
	EntityID() int
	TypeTag() string
	DisplayLabel() string
}

// Resource describes content attached to a node (an image, URL, or file).
// Props carries any additional property key/value pairs declared on the
// resource element.
type Resource struct {
	ID    int               `json:"id" bson:"id"`
	Title string            `json:"title" bson:"title"`
	Type  string            `json:"type" bson:"type"`
	Props map[string]string `json:"props,omitempty" bson:"props,omitempty"`
}

// Metadata holds a node's keyword list. The VUE format defines exactly one
// metadata kind (keywords); anything else fails extraction.
type Metadata struct {
	Keywords []string `json:"keywords" bson:"keywords"`
}

// Node is one mind-map item. Records are immutable once inserted into a Graph.
type Node struct {
	ID       int       `json:"id" bson:"id"`
	Label    string    `json:"label" bson:"label"`
	Layer    string    `json:"layer,omitempty" bson:"layer,omitempty"`
	Parent   *int      `json:"parent,omitempty" bson:"parent,omitempty"`
	Resource *Resource `json:"resource,omitempty" bson:"resource,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// EntityID returns the node's document-unique id.
func (n *Node) EntityID() int { return n.ID }

// TypeTag returns the constant node type tag.
func (n *Node) TypeTag() string { return NodeTypeTag }

// DisplayLabel returns the label if set, otherwise a #id placeholder.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return placeholderLabel(n.ID)
}

// EndpointRef is a stable reference to one of a link's endpoints. Endpoints
// are resolved by id lookup into the owning Graph, never held as pointers,
// since records may be produced in a different order than they are referenced.
type EndpointRef struct {
	Kind RefKind `json:"kind" bson:"kind"`
	ID   int     `json:"id" bson:"id"`
}

// Link is one relationship between two endpoints. Either endpoint may itself
// be another link (a pseudo-node). Records are immutable once inserted.
type Link struct {
	ID       int         `json:"id" bson:"id"`
	Label    string      `json:"label" bson:"label"`
	Start    EndpointRef `json:"start" bson:"start"`
	End      EndpointRef `json:"end" bson:"end"`
	Directed Direction   `json:"directed" bson:"directed"`
	Type     string      `json:"type" bson:"type"`
}

// EntityID returns the link's document-unique id.
func (l *Link) EntityID() int { return l.ID }

// TypeTag returns the composite type tag, e.g. "Link: Node-Node".
func (l *Link) TypeTag() string { return l.Type }

// DisplayLabel returns the label if set, otherwise a #id placeholder.
func (l *Link) DisplayLabel() string {
	if l.Label != "" {
		return l.Label
	}
	return placeholderLabel(l.ID)
}

// HasLinkEndpoint reports whether either endpoint references another link.
func (l *Link) HasLinkEndpoint() bool {
	return l.Start.Kind == RefLink || l.End.Kind == RefLink
}

// LinkType builds the composite type tag from two resolved endpoints.
func LinkType(start, end Entity) string {
	return LinkTypePrefix + start.TypeTag() + "-" + end.TypeTag()
}

func placeholderLabel(id int) string {
	// Unlabeled elements are common in hand-drawn maps; keep them addressable.
	return "#" + strconv.Itoa(id)
}
