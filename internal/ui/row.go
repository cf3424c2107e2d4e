package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/DevooKim/jason/internal/index"
)

// indentWidth is the cells of indentation per tree depth level.
const indentWidth = 2

// Row carries everything the renderer needs for one visible line; the row
// renderer owns no tree state.
type Row struct {
	Node      *index.Node
	Collapsed bool
	Selected  bool
	Matched   bool
}

// renderRow paints one tree line: indentation, collapse glyph, key, summary,
// and kind label, truncated to width terminal cells.
func renderRow(r Row, width int, noColor bool, th Theme) string {
	n := r.Node

	icon := iconLeaf
	if n.HasChildren {
		icon = iconExpanded
		if r.Collapsed {
			icon = iconCollapsed
		}
	}

	key := n.Key
	if !n.HasKey {
		key = "$"
	}

	indent := strings.Repeat(" ", n.Depth*indentWidth)
	kindLabel := "(" + string(n.Kind) + ")"

	// Plain layout first; styling is applied per segment afterwards so
	// truncation never slices an escape sequence.
	prefix := indent + icon + " "
	used := runewidth.StringWidth(prefix)
	remaining := width - used
	if remaining < 8 {
		remaining = 8
	}

	keyPart := runewidth.Truncate(key+": ", remaining, "…")
	remaining -= runewidth.StringWidth(keyPart)

	summaryPart := ""
	if remaining > 1 {
		summaryPart = runewidth.Truncate(n.Summary, remaining-1, "…")
		remaining -= runewidth.StringWidth(summaryPart)
	}

	kindPart := ""
	if remaining > len(kindLabel)+2 {
		kindPart = " " + kindLabel
	}

	if noColor {
		line := prefix + keyPart + summaryPart + kindPart
		if r.Selected {
			line = "> " + line
		} else {
			line = "  " + line
		}
		return padLine(line, width)
	}

	keyStyled := th.Key.Render(keyPart)
	if r.Matched {
		keyStyled = th.Match.Render(keyPart)
	}
	line := prefix + keyStyled + th.ValueStyle(n.Kind).Render(summaryPart) + th.KindLabel.Render(kindPart)
	if r.Selected {
		return th.Cursor.Render(padLine("  "+prefix+keyPart+summaryPart+kindPart, width))
	}
	return padLine("  "+line, width)
}

// padLine pads with spaces so the cursor's reverse-video bar spans the full
// width.
func padLine(s string, width int) string {
	w := visibleWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// visibleWidth measures display cells, skipping ANSI escape sequences.
func visibleWidth(s string) int {
	total := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == 0x1b:
			inEscape = true
		default:
			total += runewidth.RuneWidth(r)
		}
	}
	return total
}
