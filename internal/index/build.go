package index

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// frame is one pending visit of the iterative traversal.
type frame struct {
	value  any
	parent NodeID
	depth  int
	key    string
	hasKey bool
	path   []Segment
}

// Build walks a parsed document once and produces its Tree. The traversal is
// pre-order and iterative (explicit stack), so arbitrarily deep documents
// never hit a recursion limit. Ids are assigned in visitation order.
//
// Object children are indexed in sorted-key order. Go maps carry no insertion
// order, so sorting is what keeps two builds of the same document identical.
func Build(value any) *Tree {
	t := &Tree{nodes: make(map[NodeID]*Node)}

	stack := []frame{{value: value}}
	next := 0

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := NodeID("node-" + strconv.Itoa(next))
		next++

		kind := classify(f.value)
		n := &Node{
			ID:          id,
			Kind:        kind,
			Depth:       f.depth,
			Key:         f.key,
			HasKey:      f.hasKey,
			Path:        f.path,
			PathText:    FormatPath(f.path),
			Parent:      f.parent,
			HasChildren: kind == KindObject || kind == KindArray,
			Summary:     summarize(kind, f.value),
			Value:       f.value,
		}
		n.SearchText = searchText(n)

		t.nodes[id] = n
		t.order = append(t.order, id)
		if f.parent == "" {
			t.rootID = id
		}
		if p := t.nodes[f.parent]; p != nil {
			p.Children = append(p.Children, id)
		}

		// Push children reversed so the stack pops them in document order.
		children := childFrames(f.value, id, f.depth+1, f.path)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return t
}

// classify determines a value's Kind using a fixed precedence:
// null, array, object, string, number, boolean.
func classify(v any) Kind {
	if v == nil {
		return KindNull
	}
	switch v.(type) {
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	case string:
		return KindString
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return KindNumber
	}
	// Typed containers (map[string]string, []int, ...) can reach the
	// indexer when a caller hands over native Go data.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map:
		return KindObject
	case reflect.String:
		return KindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindNumber
	}
	return KindBoolean
}

// summarize renders the short value preview shown next to a node.
func summarize(kind Kind, v any) string {
	switch kind {
	case KindObject:
		n := containerLen(v)
		if n == 1 {
			return "{1 key}"
		}
		return fmt.Sprintf("{%d keys}", n)
	case KindArray:
		n := containerLen(v)
		if n == 1 {
			return "[1 item]"
		}
		return fmt.Sprintf("[%d items]", n)
	default:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", v)
	}
}

func containerLen(v any) int {
	switch t := v.(type) {
	case map[string]any:
		return len(t)
	case []any:
		return len(t)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map || rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len()
	}
	return 0
}

// searchText precomputes the lower-cased haystack scanned by the search
// engine: display key, canonical path, kind label, and summary.
func searchText(n *Node) string {
	parts := make([]string, 0, 4)
	if n.HasKey {
		parts = append(parts, n.Key)
	}
	parts = append(parts, n.PathText, string(n.Kind), n.Summary)
	return strings.ToLower(strings.Join(parts, " "))
}

// childFrames enumerates a container's children as traversal frames, objects
// in sorted-key order and arrays in index order.
func childFrames(v any, parent NodeID, depth int, path []Segment) []frame {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]frame, 0, len(keys))
		for _, k := range keys {
			out = append(out, frame{
				value:  t[k],
				parent: parent,
				depth:  depth,
				key:    k,
				hasKey: true,
				path:   appendSegment(path, KeySegment(k)),
			})
		}
		return out
	case []any:
		out := make([]frame, 0, len(t))
		for i, item := range t {
			out = append(out, frame{
				value:  item,
				parent: parent,
				depth:  depth,
				key:    strconv.Itoa(i),
				hasKey: true,
				path:   appendSegment(path, IndexSegment(i)),
			})
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		out := make([]frame, 0, len(keys))
		for _, k := range keys {
			out = append(out, frame{
				value:  rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface(),
				parent: parent,
				depth:  depth,
				key:    k,
				hasKey: true,
				path:   appendSegment(path, KeySegment(k)),
			})
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]frame, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, frame{
				value:  rv.Index(i).Interface(),
				parent: parent,
				depth:  depth,
				key:    strconv.Itoa(i),
				hasKey: true,
				path:   appendSegment(path, IndexSegment(i)),
			})
		}
		return out
	}
	return nil
}

// appendSegment copies before appending so sibling paths never share a
// backing array.
func appendSegment(path []Segment, seg Segment) []Segment {
	out := make([]Segment, len(path), len(path)+1)
	copy(out, path)
	return append(out, seg)
}
