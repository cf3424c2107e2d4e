package index

// Scope is the set of nodes that stay visible while a search is active:
// every match plus all of its ancestors up to the root.
type Scope map[NodeID]struct{}

// NewScope expands a match list into a Scope by adding ancestor chains, so a
// matching deeply-nested leaf keeps its containing path visible.
func NewScope(t *Tree, matches []NodeID) Scope {
	scope := make(Scope, len(matches))
	for _, id := range matches {
		if t.Node(id) == nil {
			continue
		}
		scope[id] = struct{}{}
		for _, anc := range t.Ancestors(id) {
			scope[anc] = struct{}{}
		}
	}
	return scope
}

// Contains reports whether id is in scope. A nil Scope means no search is
// active and everything is in scope.
func (s Scope) Contains(id NodeID) bool {
	if s == nil {
		return true
	}
	_, ok := s[id]
	return ok
}

// VisibleIDs resolves the ordered sequence of nodes to render, in document
// (pre-order) order. A node is emitted when it is in scope; its children are
// descended into when it is a container that either is not collapsed or is
// force-expanded by an active search (so scoped descendants stay reachable
// regardless of manual collapse state). Out-of-scope subtrees are skipped
// entirely. The traversal is iterative for the same depth-robustness reason
// as Build.
func VisibleIDs(t *Tree, collapsed *CollapseSet, scope Scope) []NodeID {
	if t == nil || t.RootID() == "" {
		return nil
	}

	searching := scope != nil
	out := make([]NodeID, 0, 64)
	stack := []NodeID{t.RootID()}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.Node(id)
		if n == nil {
			continue
		}
		if !scope.Contains(id) {
			continue
		}
		out = append(out, id)

		if !n.HasChildren {
			continue
		}
		descend := !collapsed.Contains(id) || (searching && scope.Contains(id))
		if !descend {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}

	return out
}
