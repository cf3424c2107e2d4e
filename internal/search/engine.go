// Package search implements free-text matching over an index.Tree with
// prefix-incremental caching: the cached result for a shorter query is the
// candidate set for any query that extends it, since substring containment
// is monotone under query extension.
package search

import (
	"strings"

	"github.com/DevooKim/jason/internal/index"
)

// maxCacheEntries bounds the query cache; the oldest entry is evicted first.
const maxCacheEntries = 40

type cacheEntry struct {
	query string
	ids   []index.NodeID
}

// Engine answers queries against one built tree. It is bound to that tree
// for its lifetime: rebuilding the document means constructing a new Engine,
// which is what clears the cache.
type Engine struct {
	tree    *index.Tree
	entries []cacheEntry // insertion order, oldest first
	byQuery map[string]int
}

// NewEngine creates an engine over t with an empty cache.
func NewEngine(t *index.Tree) *Engine {
	return &Engine{
		tree:    t,
		byQuery: make(map[string]int),
	}
}

// Normalize canonicalizes raw user input into the query form the engine
// expects: trimmed and lower-cased.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Query returns the ids of all nodes whose search text contains q, in
// document order. q must already be normalized. The empty query means "no
// filtering" and short-circuits to nil without touching the cache.
func (e *Engine) Query(q string) []index.NodeID {
	if q == "" {
		return nil
	}
	if i, ok := e.byQuery[q]; ok {
		return e.entries[i].ids
	}

	candidates := e.tree.Order()
	if prev, ok := e.longestCachedPrefix(q); ok {
		candidates = prev
	}

	var ids []index.NodeID
	for _, id := range candidates {
		n := e.tree.Node(id)
		if n == nil {
			continue
		}
		if strings.Contains(n.SearchText, q) {
			ids = append(ids, id)
		}
	}

	e.store(q, ids)
	return ids
}

// longestCachedPrefix finds the result of the longest cached query that is a
// strict prefix of q.
func (e *Engine) longestCachedPrefix(q string) ([]index.NodeID, bool) {
	best := -1
	bestLen := 0
	for i, entry := range e.entries {
		if len(entry.query) > bestLen && len(entry.query) < len(q) && strings.HasPrefix(q, entry.query) {
			best = i
			bestLen = len(entry.query)
		}
	}
	if best < 0 {
		return nil, false
	}
	return e.entries[best].ids, true
}

func (e *Engine) store(q string, ids []index.NodeID) {
	e.entries = append(e.entries, cacheEntry{query: q, ids: ids})
	e.byQuery[q] = len(e.entries) - 1
	if len(e.entries) > maxCacheEntries {
		evicted := e.entries[0]
		e.entries = e.entries[1:]
		delete(e.byQuery, evicted.query)
		// Positions shifted down by one.
		for query, i := range e.byQuery {
			e.byQuery[query] = i - 1
		}
	}
}

// CacheLen reports the number of cached queries, for introspection in tests
// and the debug overlay.
func (e *Engine) CacheLen() int {
	return len(e.entries)
}
