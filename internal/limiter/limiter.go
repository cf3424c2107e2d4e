// Package limiter trims the root container of a loaded document before it
// is indexed, so multi-megabyte arrays can be explored a window at a time
// via --limit/--offset/--tail.
package limiter

import (
	"fmt"
	"sort"
)

// Config holds the record-limiting parameters.
type Config struct {
	Limit  int // keep only this many records (0 = unlimited)
	Offset int // skip the first N records (0 = none)
	Tail   int // keep only the last N records (0 = disabled); excludes Limit
}

// Validate rejects negative values and the Limit/Tail combination.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive reports whether any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Apply trims the top level of data. Arrays keep their slice window; maps
// are windowed over sorted keys, matching the order the indexer uses.
// Scalars and nested levels pass through untouched.
func (c Config) Apply(data any) any {
	if !c.IsActive() {
		return data
	}
	switch v := data.(type) {
	case []any:
		start, end := c.window(len(v))
		return v[start:end]
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		start, end := c.window(len(keys))
		out := make(map[string]any, end-start)
		for _, k := range keys[start:end] {
			out[k] = v[k]
		}
		return out
	default:
		return data
	}
}

// window resolves the [start, end) record range for a container of length n.
func (c Config) window(n int) (int, int) {
	if c.Tail > 0 {
		start := n - c.Tail
		if start < 0 {
			start = 0
		}
		return start, n
	}
	start := c.Offset
	if start > n {
		start = n
	}
	end := n
	if c.Limit > 0 {
		end = start + c.Limit
		if end > n {
			end = n
		}
	}
	if start > end {
		start = end
	}
	return start, end
}
