// Package window maps a long list of fixed-height rows onto the small
// contiguous range that a scrollable viewport actually needs to render.
package window

// Config holds the fixed row geometry.
type Config struct {
	RowHeight int // height of every row, in cells/pixels
	Overscan  int // extra rows rendered past each viewport edge
}

// Range is the materialized slice of the row list.
type Range struct {
	Start    int // first row index to render (inclusive)
	End      int // last row index to render (exclusive)
	OffsetPx int // offset of row Start from the top of the scroll extent
	TotalPx  int // total scrollable extent: RowHeight * row count
}

// Compute resolves the render range for the current scroll position.
// Overscan rows beyond both viewport edges absorb fast scrolling without
// blank flashes.
func Compute(total, scrollOffset, viewportHeight int, cfg Config) Range {
	rh := cfg.RowHeight
	if rh <= 0 {
		rh = 1
	}
	if total <= 0 {
		return Range{TotalPx: 0}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	start := scrollOffset/rh - cfg.Overscan
	if start < 0 {
		start = 0
	}
	end := (scrollOffset+viewportHeight+rh-1)/rh + cfg.Overscan
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}

	return Range{
		Start:    start,
		End:      end,
		OffsetPx: start * rh,
		TotalPx:  total * rh,
	}
}

// ScrollToIndex returns the scroll offset that brings row idx into view.
// Rows above the viewport align to its top, rows below align to its bottom,
// and rows already fully visible leave the offset unchanged.
func ScrollToIndex(idx, total, scrollOffset, viewportHeight int, cfg Config) int {
	rh := cfg.RowHeight
	if rh <= 0 {
		rh = 1
	}
	if total <= 0 {
		return 0
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= total {
		idx = total - 1
	}

	rowTop := idx * rh
	rowBottom := rowTop + rh

	switch {
	case rowTop < scrollOffset:
		return rowTop
	case rowBottom > scrollOffset+viewportHeight:
		off := rowBottom - viewportHeight
		if off < 0 {
			off = 0
		}
		return off
	default:
		return scrollOffset
	}
}
