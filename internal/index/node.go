// Package index builds a flat, navigable index over a parsed JSON-like
// document. Every value in the document becomes a Node with a stable id,
// parent/child links, and precomputed display and search metadata, so the
// UI layers never have to walk the raw document again.
package index

// Kind classifies a node's underlying JSON value.
type Kind string

const (
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindNull    Kind = "null"
)

// NodeID identifies a node within one built Tree. Ids are assigned in
// pre-order ("node-0", "node-1", ...), so their numeric suffix doubles as a
// total order consistent with document order.
type NodeID string

// Segment is one step of a path from the root: either an object key or an
// array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// KeySegment returns a Segment for an object key.
func KeySegment(key string) Segment {
	return Segment{Key: key}
}

// IndexSegment returns a Segment for an array index.
func IndexSegment(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// Node is one indexed value of the document.
type Node struct {
	ID    NodeID
	Kind  Kind
	Depth int

	// Key is the object key or stringified array index under the parent.
	// The root has HasKey == false.
	Key    string
	HasKey bool

	Path     []Segment
	PathText string

	// Parent is a back-reference only; ownership runs parent -> child via
	// Children. The root has Parent == "".
	Parent   NodeID
	Children []NodeID

	// HasChildren derives purely from Kind: containers report true even
	// when empty, so the collapse affordance stays consistent.
	HasChildren bool

	// Summary is a short value preview: "{N keys}", "[N items]", or the
	// scalar rendered as JSON text.
	Summary string

	// SearchText is the lower-cased haystack the search engine scans:
	// key, path, kind label, and summary concatenated.
	SearchText string

	// Value is the underlying parsed value, shared with the document.
	// Export producers serialize from it; nothing mutates it.
	Value any
}

// Tree is the immutable index of one document. Rebuilding a document
// replaces the whole Tree rather than mutating it in place.
type Tree struct {
	nodes  map[NodeID]*Node
	order  []NodeID // pre-order, ascending id
	rootID NodeID
}

// Node returns the node for id, or nil when the id is unknown (e.g. a stale
// id from a previous build). Callers treat nil as "absent" and no-op.
func (t *Tree) Node(id NodeID) *Node {
	if t == nil {
		return nil
	}
	return t.nodes[id]
}

// RootID returns the id of the single root node.
func (t *Tree) RootID() NodeID {
	if t == nil {
		return ""
	}
	return t.rootID
}

// Order returns all node ids in document (pre-order) order. The returned
// slice is shared; callers must not modify it.
func (t *Tree) Order() []NodeID {
	if t == nil {
		return nil
	}
	return t.order
}

// Len returns the number of indexed nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Ancestors returns the ids of id's ancestors, nearest first, ending at the
// root. Unknown ids yield nil.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []NodeID
	for n.Parent != "" {
		out = append(out, n.Parent)
		n = t.Node(n.Parent)
		if n == nil {
			break
		}
	}
	return out
}
