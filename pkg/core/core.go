// Package core is the embedding API: loading documents, indexing them, and
// answering the search/visibility/export questions the UI layers ask. The
// TUI and CLI both sit on top of it, and external programs can too.
package core

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/DevooKim/jason/internal/cel"
	"github.com/DevooKim/jason/internal/export"
	"github.com/DevooKim/jason/internal/index"
	"github.com/DevooKim/jason/internal/search"
	"github.com/DevooKim/jason/pkg/loader"
	"github.com/DevooKim/jason/pkg/share"
)

// Evaluator evaluates expressions against a document root.
type Evaluator interface {
	Evaluate(expr string, root any) (any, error)
}

// Engine bundles the injectable collaborators for one embedding.
type Engine struct {
	Evaluator Evaluator
}

// Option configures the Engine.
type Option func(*Engine)

// WithEvaluator sets a custom expression evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(c *Engine) {
		c.Evaluator = e
	}
}

// New creates an Engine with defaults (the built-in CEL evaluator).
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.Evaluator == nil {
		eval, err := cel.NewEvaluator()
		if err != nil {
			return nil, err
		}
		engine.Evaluator = eval
	}
	return engine, nil
}

// Evaluate runs the evaluator against root.
func (e *Engine) Evaluate(expr string, root any) (any, error) {
	if e == nil || e.Evaluator == nil {
		return nil, fmt.Errorf("evaluator is not configured")
	}
	return e.Evaluator.Evaluate(expr, root)
}

// LoadRoot parses input text into a document root (format auto-detection
// included).
func LoadRoot(input string) (any, error) {
	return loader.Load(input)
}

// LoadFile reads and parses a file into a document root.
func LoadFile(path string) (any, error) {
	return loader.LoadFile(path)
}

// LoadFileWithLogger is LoadFile with load decisions recorded on lgr.
func LoadFileWithLogger(path string, lgr logr.Logger) (any, error) {
	return loader.LoadFileWithLogger(path, lgr)
}

// EncodeShare serializes a document root into a URL-safe share token.
func EncodeShare(root any) (string, error) {
	return share.Encode(root)
}

// DecodeShare parses a share token back into a document root.
func DecodeShare(token string) (any, error) {
	return share.Decode(token)
}

// Document is the atomic unit of explorer state for one loaded value: the
// index, the collapse set, and the search engine are created together and
// replaced together, so consumers never observe a tree from one document
// paired with state from another.
type Document struct {
	Tree      *index.Tree
	Collapsed *index.CollapseSet
	engine    *search.Engine
}

// NewDocument indexes root and applies the default collapse rule
// (containers at depth >= 2 start collapsed).
func NewDocument(root any) *Document {
	tree := index.Build(root)
	return &Document{
		Tree:      tree,
		Collapsed: index.DefaultCollapseSet(tree),
		engine:    search.NewEngine(tree),
	}
}

// Search returns the ids matching raw (normalized internally), in document
// order. An empty or whitespace query returns nil: no filtering.
func (d *Document) Search(raw string) []index.NodeID {
	return d.engine.Query(search.Normalize(raw))
}

// Visible resolves the ordered row sequence for the current collapse state,
// scoped to the matches of raw when it is non-empty.
func (d *Document) Visible(raw string) []index.NodeID {
	var scope index.Scope
	if q := search.Normalize(raw); q != "" {
		scope = index.NewScope(d.Tree, d.engine.Query(q))
	}
	return index.VisibleIDs(d.Tree, d.Collapsed, scope)
}

// ExportKind selects which string an export action produces.
type ExportKind int

const (
	ExportPath ExportKind = iota
	ExportKey
	ExportValue
	ExportSubtree
)

// Export produces the requested string for a node. Stale or unknown ids
// report ok == false and the action is a no-op for the caller.
func (d *Document) Export(kind ExportKind, id index.NodeID) (string, bool) {
	switch kind {
	case ExportKey:
		return export.DisplayKey(d.Tree, id)
	case ExportValue:
		return export.ValueText(d.Tree, id)
	case ExportSubtree:
		return export.SubtreeJSON(d.Tree, id)
	default:
		return export.PathText(d.Tree, id)
	}
}
