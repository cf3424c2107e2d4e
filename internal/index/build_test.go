package index

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(input), &v))
	return v
}

func TestBuildScalarRoot(t *testing.T) {
	tree := Build("hello")

	require.Equal(t, 1, tree.Len())
	root := tree.Node(tree.RootID())
	require.NotNil(t, root)
	assert.Equal(t, NodeID("node-0"), root.ID)
	assert.Equal(t, KindString, root.Kind)
	assert.Equal(t, 0, root.Depth)
	assert.False(t, root.HasKey)
	assert.Equal(t, "$", root.PathText)
	assert.False(t, root.HasChildren)
	assert.Equal(t, `"hello"`, root.Summary)
}

func TestBuildPreOrderIDs(t *testing.T) {
	tree := Build(mustParse(t, `{"a": {"b": 1}, "c": [true, null]}`))

	// Pre-order over sorted object keys:
	// $ . $.a . $.a.b . $.c . $.c[0] . $.c[1]
	order := tree.Order()
	require.Len(t, order, 6)
	for i, id := range order {
		assert.Equal(t, NodeID("node-"+strconv.Itoa(i)), id)
	}

	paths := make([]string, 0, len(order))
	for _, id := range order {
		paths = append(paths, tree.Node(id).PathText)
	}
	assert.Equal(t, []string{"$", "$.a", "$.a.b", "$.c", "$.c[0]", "$.c[1]"}, paths)
}

func TestBuildDeterministic(t *testing.T) {
	input := `{"zebra": 1, "apple": {"x": [1, 2, 3]}, "mango": null}`

	a := Build(mustParse(t, input))
	b := Build(mustParse(t, input))

	require.Equal(t, a.Len(), b.Len())
	for i, id := range a.Order() {
		na, nb := a.Node(id), b.Node(b.Order()[i])
		assert.Equal(t, na.ID, nb.ID)
		assert.Equal(t, na.PathText, nb.PathText)
		assert.Equal(t, na.Kind, nb.Kind)
		assert.Equal(t, na.Summary, nb.Summary)
	}
}

func TestBuildKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Kind
	}{
		{name: "object", input: `{"a": 1}`, want: KindObject},
		{name: "array", input: `[1]`, want: KindArray},
		{name: "string", input: `"s"`, want: KindString},
		{name: "number", input: `3.14`, want: KindNumber},
		{name: "boolean", input: `true`, want: KindBoolean},
		{name: "null", input: `null`, want: KindNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := Build(mustParse(t, tt.input))
			assert.Equal(t, tt.want, tree.Node(tree.RootID()).Kind)
		})
	}
}

func TestBuildEmptyContainers(t *testing.T) {
	for _, input := range []string{`{}`, `[]`} {
		tree := Build(mustParse(t, input))
		require.Equal(t, 1, tree.Len(), input)
		root := tree.Node(tree.RootID())
		assert.True(t, root.HasChildren, input)
		assert.Empty(t, root.Children, input)
	}
}

func TestBuildSummaries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "one key", input: `{"a": 1}`, want: "{1 key}"},
		{name: "many keys", input: `{"a": 1, "b": 2}`, want: "{2 keys}"},
		{name: "empty object", input: `{}`, want: "{0 keys}"},
		{name: "one item", input: `[1]`, want: "[1 item]"},
		{name: "many items", input: `[1, 2, 3]`, want: "[3 items]"},
		{name: "empty array", input: `[]`, want: "[0 items]"},
		{name: "string literal", input: `"hi"`, want: `"hi"`},
		{name: "number", input: `42`, want: "42"},
		{name: "null", input: `null`, want: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := Build(mustParse(t, tt.input))
			assert.Equal(t, tt.want, tree.Node(tree.RootID()).Summary)
		})
	}
}

func TestBuildParentChildLinks(t *testing.T) {
	tree := Build(mustParse(t, `{"a": [10, 20]}`))

	root := tree.Node(tree.RootID())
	require.Len(t, root.Children, 1)

	arr := tree.Node(root.Children[0])
	assert.Equal(t, "a", arr.Key)
	assert.True(t, arr.HasKey)
	assert.Equal(t, root.ID, arr.Parent)
	require.Len(t, arr.Children, 2)

	first := tree.Node(arr.Children[0])
	assert.Equal(t, "0", first.Key)
	assert.Equal(t, arr.ID, first.Parent)
	assert.Equal(t, 2, first.Depth)
}

func TestBuildSearchTextLowercased(t *testing.T) {
	tree := Build(mustParse(t, `{"Name": "Alice"}`))

	var leaf *Node
	for _, id := range tree.Order() {
		if n := tree.Node(id); n.HasKey && n.Key == "Name" {
			leaf = n
		}
	}
	require.NotNil(t, leaf)
	assert.Equal(t, leaf.SearchText, "name $.name string \"alice\"")
}

func TestBuildDeepNestingNoRecursionLimit(t *testing.T) {
	// 10k levels of nesting would overflow a recursive builder.
	var v any = "leaf"
	for i := 0; i < 10000; i++ {
		v = []any{v}
	}
	tree := Build(v)
	assert.Equal(t, 10001, tree.Len())
}

func TestAncestors(t *testing.T) {
	tree := Build(mustParse(t, `{"a": {"b": {"c": 1}}}`))

	var deepest NodeID
	for _, id := range tree.Order() {
		if tree.Node(id).Depth == 3 {
			deepest = id
		}
	}
	require.NotEmpty(t, deepest)

	anc := tree.Ancestors(deepest)
	require.Len(t, anc, 3)
	assert.Equal(t, tree.RootID(), anc[len(anc)-1])
	assert.Equal(t, tree.Node(deepest).Parent, anc[0])

	assert.Nil(t, tree.Ancestors("node-9999"))
	assert.Empty(t, tree.Ancestors(tree.RootID()))
}

func TestTreeNilSafety(t *testing.T) {
	var tree *Tree
	assert.Nil(t, tree.Node("node-0"))
	assert.Equal(t, NodeID(""), tree.RootID())
	assert.Nil(t, tree.Order())
	assert.Equal(t, 0, tree.Len())
}

func TestBuildTypedGoContainers(t *testing.T) {
	tree := Build(map[string]int{"a": 1, "b": 2})

	root := tree.Node(tree.RootID())
	assert.Equal(t, KindObject, root.Kind)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "a", tree.Node(root.Children[0]).Key)
	assert.Equal(t, KindNumber, tree.Node(root.Children[0]).Kind)
}
