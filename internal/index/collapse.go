package index

// CollapseSet tracks which nodes currently hide their children. It lives
// outside the Tree so it can be reset or re-defaulted without a rebuild.
// Ids that no longer exist in the tree are harmless: visibility resolution
// simply never consults them.
type CollapseSet struct {
	ids map[NodeID]struct{}
}

// NewCollapseSet returns an empty set (everything expanded).
func NewCollapseSet() *CollapseSet {
	return &CollapseSet{ids: make(map[NodeID]struct{})}
}

// DefaultCollapseSet returns the initial state for a freshly built tree:
// every container at depth >= 2 starts collapsed, which bounds the initial
// visible row count for deep documents. The root and its immediate children
// stay expanded.
func DefaultCollapseSet(t *Tree) *CollapseSet {
	s := NewCollapseSet()
	for _, id := range t.Order() {
		n := t.Node(id)
		if n.HasChildren && n.Depth >= 2 {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// Contains reports whether id is collapsed.
func (s *CollapseSet) Contains(id NodeID) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Toggle flips the collapsed state of id and reports the new state.
func (s *CollapseSet) Toggle(id NodeID) bool {
	if s.Contains(id) {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Collapse marks id collapsed.
func (s *CollapseSet) Collapse(id NodeID) {
	s.ids[id] = struct{}{}
}

// Expand clears id's collapsed state. Unknown ids are a no-op.
func (s *CollapseSet) Expand(id NodeID) {
	delete(s.ids, id)
}

// CollapseAll collapses every container in the tree, root included.
func (s *CollapseSet) CollapseAll(t *Tree) {
	for _, id := range t.Order() {
		if t.Node(id).HasChildren {
			s.ids[id] = struct{}{}
		}
	}
}

// ExpandAll clears the set; the full pre-order sequence becomes visible.
func (s *CollapseSet) ExpandAll() {
	s.ids = make(map[NodeID]struct{})
}

// Len returns the number of collapsed nodes.
func (s *CollapseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}
