// Package export produces the strings handed to clipboard and share
// actions. It is a pure producer: callers own the clipboard, the terminal,
// and any OSC 52 plumbing.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/DevooKim/jason/internal/index"
)

// PathText returns the canonical path of a node ("$.a[0]"). The second
// return is false for unknown (e.g. stale) ids.
func PathText(t *index.Tree, id index.NodeID) (string, bool) {
	n := t.Node(id)
	if n == nil {
		return "", false
	}
	return n.PathText, true
}

// DisplayKey returns the node's key, or "$" for the root.
func DisplayKey(t *index.Tree, id index.NodeID) (string, bool) {
	n := t.Node(id)
	if n == nil {
		return "", false
	}
	if !n.HasKey {
		return "$", true
	}
	return n.Key, true
}

// ValueText returns the node's value as JSON text: scalars as their literal
// form, containers compact.
func ValueText(t *index.Tree, id index.NodeID) (string, bool) {
	n := t.Node(id)
	if n == nil {
		return "", false
	}
	b, err := json.Marshal(n.Value)
	if err != nil {
		return fmt.Sprintf("%v", n.Value), true
	}
	return string(b), true
}

// SubtreeJSON returns the node's entire subtree pretty-printed with 2-space
// indent.
func SubtreeJSON(t *index.Tree, id index.NodeID) (string, bool) {
	n := t.Node(id)
	if n == nil {
		return "", false
	}
	b, err := json.MarshalIndent(n.Value, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", n.Value), true
	}
	return string(b), true
}
