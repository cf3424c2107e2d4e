package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevooKim/jason/internal/index"
)

func TestNewDefaultEvaluator(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	require.NotNil(t, engine.Evaluator)

	got, err := engine.Evaluate("_.a", map[string]any{"a": "value"})
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

type stubEvaluator struct{ result any }

func (s stubEvaluator) Evaluate(expr string, root any) (any, error) {
	if expr == "fail" {
		return nil, fmt.Errorf("stub failure")
	}
	return s.result, nil
}

func TestWithEvaluator(t *testing.T) {
	engine, err := New(WithEvaluator(stubEvaluator{result: "stubbed"}))
	require.NoError(t, err)

	got, err := engine.Evaluate("anything", nil)
	require.NoError(t, err)
	assert.Equal(t, "stubbed", got)

	_, err = engine.Evaluate("fail", nil)
	require.Error(t, err)
}

func TestEvaluateUnconfigured(t *testing.T) {
	var engine *Engine
	_, err := engine.Evaluate("_", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestLoadRoot(t *testing.T) {
	got, err := LoadRoot(`{"a": 1}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1.0}, got)

	_, err = LoadRoot("")
	require.Error(t, err)
}

func TestShareRoundTrip(t *testing.T) {
	root := map[string]any{"deep": []any{1.0, "two"}}

	token, err := EncodeShare(root)
	require.NoError(t, err)

	got, err := DecodeShare(token)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestNewDocumentDefaults(t *testing.T) {
	doc := NewDocument(map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 1.0}},
	})

	require.NotNil(t, doc.Tree)
	require.NotNil(t, doc.Collapsed)

	// $.a.b is the only container at depth >= 2.
	assert.Equal(t, 1, doc.Collapsed.Len())
}

func TestDocumentSearch(t *testing.T) {
	doc := NewDocument(map[string]any{"name": "alice", "count": 3.0})

	assert.Nil(t, doc.Search(""))
	assert.Nil(t, doc.Search("   "))
	assert.NotEmpty(t, doc.Search("ALICE"))
	assert.Empty(t, doc.Search("missing-term"))
}

func TestDocumentVisible(t *testing.T) {
	doc := NewDocument(map[string]any{
		"users": []any{map[string]any{"name": "alice"}},
		"flag":  true,
	})

	// No query: default collapse hides everything under $.users[0].
	all := doc.Visible("")
	var paths []string
	for _, id := range all {
		paths = append(paths, doc.Tree.Node(id).PathText)
	}
	assert.Contains(t, paths, "$.users[0]")
	assert.NotContains(t, paths, "$.users[0].name")

	// Searching reveals the match through the collapsed container.
	scoped := doc.Visible("alice")
	paths = paths[:0]
	for _, id := range scoped {
		paths = append(paths, doc.Tree.Node(id).PathText)
	}
	assert.Contains(t, paths, "$.users[0].name")
	assert.NotContains(t, paths, "$.flag")
}

func TestDocumentExport(t *testing.T) {
	doc := NewDocument(map[string]any{"k": "v"})

	var leaf index.NodeID
	for _, id := range doc.Tree.Order() {
		if doc.Tree.Node(id).PathText == "$.k" {
			leaf = id
		}
	}
	require.NotEmpty(t, leaf)

	tests := []struct {
		name string
		kind ExportKind
		want string
	}{
		{name: "path", kind: ExportPath, want: "$.k"},
		{name: "key", kind: ExportKey, want: "k"},
		{name: "value", kind: ExportValue, want: `"v"`},
		{name: "subtree", kind: ExportSubtree, want: `"v"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := doc.Export(tt.kind, leaf)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := doc.Export(ExportPath, "node-9999")
	assert.False(t, ok)
}
