package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/DevooKim/jason/internal/window"
)

// View paints the full frame: header, windowed tree rows, optional input
// line, status, and footer.
func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.renderFrame())
	v.AltScreen = true
	return v
}

// renderFrame builds the frame content; snapshot mode reuses it without a
// running program.
func (m *Model) renderFrame() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteByte('\n')
	b.WriteString(m.renderSeparator())
	b.WriteByte('\n')

	if m.mode == modeHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.renderRows())
	}

	if m.mode == modeSearch {
		b.WriteByte('\n')
		b.WriteString(m.searchInput.View())
	}
	if m.mode == modeExpr {
		b.WriteByte('\n')
		b.WriteString(m.exprInput.View())
	}

	b.WriteByte('\n')
	b.WriteString(m.renderStatus())
	b.WriteByte('\n')
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m *Model) renderHeader() string {
	path := "$"
	if id, ok := m.currentID(); ok {
		if n := m.doc.Tree.Node(id); n != nil {
			path = n.PathText
		}
	}
	header := m.appName + "  " + path
	if m.derived {
		header += "  (derived)"
	}
	if m.noColor {
		return header
	}
	return m.theme.Path.Render(header)
}

func (m *Model) renderSeparator() string {
	sep := strings.Repeat("─", maxInt(m.width, 1))
	if m.noColor {
		return sep
	}
	return m.theme.Separator.Render(sep)
}

// renderRows materializes the windowed range (viewport plus overscan, so
// fast scrolling reuses pre-rendered lines) and emits the viewport slice.
func (m *Model) renderRows() string {
	viewH := m.viewportRows()
	if len(m.visible) == 0 {
		empty := "(no rows)"
		if m.query != "" {
			empty = "(no matches)"
		}
		return empty + strings.Repeat("\n", maxInt(viewH-1, 0))
	}

	rng := window.Compute(len(m.visible), m.scroll, viewH, m.windowConfig())

	rendered := make([]string, 0, rng.End-rng.Start)
	for i := rng.Start; i < rng.End; i++ {
		id := m.visible[i]
		n := m.doc.Tree.Node(id)
		if n == nil {
			continue
		}
		_, matched := m.matchSet[id]
		rendered = append(rendered, renderRow(Row{
			Node:      n,
			Collapsed: m.doc.Collapsed.Contains(id),
			Selected:  i == m.cursor,
			Matched:   matched,
		}, m.width, m.noColor, m.theme))
	}

	// Slice the viewport out of the materialized range.
	first := m.scroll - rng.Start
	if first < 0 {
		first = 0
	}
	last := first + viewH
	if last > len(rendered) {
		last = len(rendered)
	}
	lines := rendered[first:last]

	out := strings.Join(lines, "\n")
	if pad := viewH - len(lines); pad > 0 {
		out += strings.Repeat("\n", pad)
	}
	return out
}

func (m *Model) renderStatus() string {
	switch {
	case m.errMsg != "":
		if m.noColor {
			return truncateLine("error: "+m.errMsg, m.width)
		}
		return m.theme.Error.Render(truncateLine("error: "+m.errMsg, m.width))
	case m.statusMsg != "":
		if m.noColor {
			return truncateLine(m.statusMsg, m.width)
		}
		return m.theme.Status.Render(truncateLine(m.statusMsg, m.width))
	default:
		return ""
	}
}

func (m *Model) renderFooter() string {
	pos := 0
	if len(m.visible) > 0 {
		pos = m.cursor + 1
	}
	parts := []string{fmt.Sprintf("%d/%d rows", pos, len(m.visible))}
	if m.query != "" {
		parts = append(parts, fmt.Sprintf("search %q: %d matches", m.query, len(m.matches)))
	}
	if total := window.Compute(len(m.visible), m.scroll, m.viewportRows(), m.windowConfig()).TotalPx; total > m.viewportRows() {
		pct := 0
		if total > 0 {
			pct = (m.scroll + m.viewportRows()) * 100 / total
		}
		if pct > 100 {
			pct = 100
		}
		parts = append(parts, fmt.Sprintf("%d%%", pct))
	}
	parts = append(parts, "? help")

	footer := truncateLine(strings.Join(parts, "  ·  "), m.width)
	if m.noColor {
		return footer
	}
	return m.theme.Faint.Render(footer)
}

func (m *Model) renderHelp() string {
	rows := [][2]string{
		{"j/k, ↑/↓", "move cursor"},
		{"h/l, ←/→", "collapse/expand or jump parent/child"},
		{"space, enter", "toggle expand/collapse"},
		{"E / C", "expand all / collapse all"},
		{"/", "search; enter applies, esc clears"},
		{"n / N", "next / previous match"},
		{"y / Y", "copy path / subtree JSON"},
		{"v / K", "copy value / key"},
		{"s", "copy share token"},
		{"d", "decode serialized string value"},
		{":", "expression mode (CEL, '_' is the document)"},
		{"r", "restore original document"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString("Keybindings\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", r[0], r[1]))
	}

	viewH := m.viewportRows()
	content := strings.TrimRight(b.String(), "\n")
	lines := strings.Split(content, "\n")
	if len(lines) > viewH {
		lines = lines[:viewH]
	}
	out := strings.Join(lines, "\n")
	if pad := viewH - len(lines); pad > 0 {
		out += strings.Repeat("\n", pad)
	}
	return out
}

func truncateLine(s string, width int) string {
	if width <= 0 || visibleWidth(s) <= width {
		return s
	}
	out := ""
	w := 0
	for _, r := range s {
		rw := 1
		if w+rw > width-1 {
			break
		}
		out += string(r)
		w += rw
	}
	return out + "…"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
