// Package ui is the Bubble Tea front end: a windowed tree view over the
// document index, incremental search, and copy/share actions. All tree
// semantics live in internal/index and pkg/core; this package only routes
// key events and paints rows.
package ui

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/DevooKim/jason/internal/index"
	"github.com/DevooKim/jason/internal/window"
	"github.com/DevooKim/jason/pkg/core"
	"github.com/DevooKim/jason/pkg/loader"
)

// inputMode tracks which surface owns the keyboard.
type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeExpr
	modeHelp
)

// searchDebounceMsg fires after the debounce delay. ID correlates with
// Model.debounceID so only the latest pending query is ever applied;
// superseded scans are discarded, not merged.
type searchDebounceMsg struct {
	ID    int
	Query string
}

// Model is the explorer's Bubble Tea model.
type Model struct {
	doc    *core.Document
	engine *core.Engine
	lgr    logr.Logger

	// origRoot is the document as loaded; expression results and inline
	// decodes derive new documents from it and 'r' restores it.
	origRoot any
	root     any
	derived  bool

	visible    []index.NodeID
	visibleIdx map[index.NodeID]int
	matches    []index.NodeID
	matchSet   map[index.NodeID]struct{}

	cursor int
	scroll int

	width  int
	height int

	mode        inputMode
	searchInput textinput.Model
	exprInput   textinput.Model

	// query is the applied (normalized-on-use) search text; pendingQuery
	// and debounceID implement latest-request-wins for keystrokes.
	query        string
	pendingQuery string
	debounceID   int
	debounceMs   int

	overscan int

	statusMsg string
	errMsg    string

	appName  string
	noColor  bool
	theme    Theme
	quitting bool
}

// NewModel builds the explorer for a loaded document root.
func NewModel(root any, engine *core.Engine, lgr logr.Logger) *Model {
	si := textinput.New()
	si.Placeholder = "search keys, paths, values"
	si.CharLimit = 200
	si.SetWidth(60)
	si.Prompt = "/"

	ei := textinput.New()
	ei.Placeholder = `expression, e.g. _.items.filter(x, x.active)`
	ei.CharLimit = 500
	ei.SetWidth(60)
	ei.Prompt = ":"

	m := &Model{
		engine:      engine,
		lgr:         lgr,
		origRoot:    root,
		searchInput: si,
		exprInput:   ei,
		debounceMs:  150,
		overscan:    5,
		width:       80,
		height:      24,
		appName:     "jason",
		theme:       DefaultTheme(),
	}
	m.setDocument(root, false)
	return m
}

// SetNoColor disables styling.
func (m *Model) SetNoColor(noColor bool) {
	m.noColor = noColor
}

// SetAppName overrides the header title.
func (m *Model) SetAppName(name string) {
	if name != "" {
		m.appName = name
	}
}

// setDocument atomically replaces the explorer state for a new root: tree,
// collapse defaults, and search engine swap as one unit, and any applied
// query is dropped with them.
func (m *Model) setDocument(root any, derived bool) {
	m.doc = core.NewDocument(root)
	m.root = root
	m.derived = derived
	m.query = ""
	m.pendingQuery = ""
	m.debounceID++
	m.searchInput.SetValue("")
	m.cursor = 0
	m.scroll = 0
	m.refresh()
	m.lgr.V(1).Info("document indexed", "nodes", m.doc.Tree.Len(), "derived", derived)
}

// refresh recomputes matches and the visible row sequence after any state
// change.
func (m *Model) refresh() {
	m.matches = m.doc.Search(m.query)
	m.matchSet = make(map[index.NodeID]struct{}, len(m.matches))
	for _, id := range m.matches {
		m.matchSet[id] = struct{}{}
	}
	m.visible = m.doc.Visible(m.query)
	m.visibleIdx = make(map[index.NodeID]int, len(m.visible))
	for i, id := range m.visible {
		m.visibleIdx[id] = i
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.followCursor()
}

// followCursor adjusts the scroll offset so the cursor row stays in view.
func (m *Model) followCursor() {
	m.scroll = window.ScrollToIndex(m.cursor, len(m.visible), m.scroll, m.viewportRows(), m.windowConfig())
}

func (m *Model) windowConfig() window.Config {
	return window.Config{RowHeight: 1, Overscan: m.overscan}
}

// viewportRows is the tree area height: total minus header, separator,
// footer, status line, and the input line when one is active.
func (m *Model) viewportRows() int {
	rows := m.height - 4
	if m.mode == modeSearch || m.mode == modeExpr {
		rows--
	}
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (m *Model) currentID() (index.NodeID, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return "", false
	}
	return m.visible[m.cursor], true
}

// Init starts the cursor blink for the text inputs.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update routes messages by input mode.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.SetWidth(m.width - 4)
		m.exprInput.SetWidth(m.width - 4)
		m.followCursor()
		return m, nil

	case searchDebounceMsg:
		// Only the latest pending query is applied; anything else is a
		// stale scan and is dropped.
		if msg.ID == m.debounceID && msg.Query == m.pendingQuery {
			m.applySearch(msg.Query)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeExpr:
			return m.updateExpr(msg)
		case modeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	m.errMsg = ""

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "ctrl+d", "pgdown":
		m.moveCursor(m.viewportRows())
	case "ctrl+u", "pgup":
		m.moveCursor(-m.viewportRows())
	case "g", "home":
		m.cursor = 0
		m.followCursor()
	case "G", "end":
		m.cursor = len(m.visible) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.followCursor()

	case " ", "space", "enter":
		m.toggleCurrent()
	case "l", "right":
		m.expandOrDescend()
	case "h", "left":
		m.collapseOrAscend()
	case "E":
		m.doc.Collapsed.ExpandAll()
		m.refresh()
	case "C":
		m.doc.Collapsed.CollapseAll(m.doc.Tree)
		m.refresh()

	case "/":
		m.mode = modeSearch
		m.searchInput.SetValue(m.query)
		m.searchInput.Focus()
		return m, textinput.Blink
	case "n":
		m.jumpToMatch(1)
	case "N":
		m.jumpToMatch(-1)
	case "esc":
		if m.query != "" {
			m.applySearch("")
		}

	case "y":
		m.copyExport(core.ExportPath, "path")
	case "Y":
		m.copyExport(core.ExportSubtree, "subtree")
	case "v":
		m.copyExport(core.ExportValue, "value")
	case "K":
		m.copyExport(core.ExportKey, "key")
	case "s":
		m.copyShareToken()

	case "d":
		m.decodeCurrent()
	case "r":
		if m.derived {
			m.setDocument(m.origRoot, false)
			m.statusMsg = "restored original document"
		}

	case ":":
		m.mode = modeExpr
		m.exprInput.Focus()
		return m, textinput.Blink

	case "?", "f1":
		m.mode = modeHelp
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.searchInput.Blur()
		m.applySearch("")
		return m, nil
	case "enter":
		m.mode = modeNormal
		m.searchInput.Blur()
		m.applySearch(m.searchInput.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Debounce: remember the newest value, schedule a scan, and let the
	// ID check in Update discard anything that was superseded meanwhile.
	value := m.searchInput.Value()
	if value != m.pendingQuery {
		m.debounceID++
		m.pendingQuery = value
		return m, tea.Batch(cmd, debounceSearch(m.debounceID, value, m.debounceMs))
	}
	return m, cmd
}

func debounceSearch(id int, query string, delayMs int) tea.Cmd {
	return func() tea.Msg {
		time.Sleep(time.Duration(delayMs) * time.Millisecond)
		return searchDebounceMsg{ID: id, Query: query}
	}
}

func (m *Model) updateExpr(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.exprInput.Blur()
		return m, nil
	case "enter":
		m.mode = modeNormal
		m.exprInput.Blur()
		m.runExpression(m.exprInput.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.exprInput, cmd = m.exprInput.Update(msg)
	return m, cmd
}

func (m *Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "?", "f1", "enter":
		m.mode = modeNormal
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.followCursor()
}

func (m *Model) toggleCurrent() {
	id, ok := m.currentID()
	if !ok {
		return
	}
	n := m.doc.Tree.Node(id)
	if n == nil || !n.HasChildren {
		return
	}
	m.doc.Collapsed.Toggle(id)
	m.refresh()
}

// expandOrDescend expands a collapsed container, or moves to the first
// child when already expanded.
func (m *Model) expandOrDescend() {
	id, ok := m.currentID()
	if !ok {
		return
	}
	n := m.doc.Tree.Node(id)
	if n == nil || !n.HasChildren {
		return
	}
	if m.doc.Collapsed.Contains(id) {
		m.doc.Collapsed.Expand(id)
		m.refresh()
		return
	}
	if len(n.Children) > 0 {
		if i, ok := m.visibleIdx[n.Children[0]]; ok {
			m.cursor = i
			m.followCursor()
		}
	}
}

// collapseOrAscend collapses an expanded container, or jumps to the parent
// otherwise.
func (m *Model) collapseOrAscend() {
	id, ok := m.currentID()
	if !ok {
		return
	}
	n := m.doc.Tree.Node(id)
	if n == nil {
		return
	}
	if n.HasChildren && !m.doc.Collapsed.Contains(id) {
		m.doc.Collapsed.Collapse(id)
		m.refresh()
		return
	}
	if n.Parent != "" {
		if i, ok := m.visibleIdx[n.Parent]; ok {
			m.cursor = i
			m.followCursor()
		}
	}
}

// applySearch sets the active query and moves the cursor to the first match
// when one exists.
func (m *Model) applySearch(query string) {
	// Direct application supersedes any in-flight debounce timer.
	m.debounceID++
	m.pendingQuery = query
	m.query = query
	m.refresh()
	if len(m.matches) > 0 {
		if i, ok := m.visibleIdx[m.matches[0]]; ok {
			m.cursor = i
			m.followCursor()
		}
	}
	if query != "" {
		m.lgr.V(1).Info("search applied", "query", query, "matches", len(m.matches))
	}
}

// jumpToMatch moves the cursor to the next/previous matching row relative
// to the current cursor position, wrapping around.
func (m *Model) jumpToMatch(direction int) {
	if len(m.matches) == 0 {
		m.statusMsg = "no matches"
		return
	}
	total := len(m.visible)
	for step := 1; step <= total; step++ {
		i := (m.cursor + direction*step%total + total) % total
		if _, ok := m.matchSet[m.visible[i]]; ok {
			m.cursor = i
			m.followCursor()
			return
		}
	}
}

func (m *Model) copyExport(kind core.ExportKind, label string) {
	id, ok := m.currentID()
	if !ok {
		return
	}
	text, ok := m.doc.Export(kind, id)
	if !ok {
		return
	}
	if err := copyToClipboard(text); err != nil {
		m.errMsg = fmt.Sprintf("clipboard unavailable: %v", err)
		return
	}
	m.statusMsg = fmt.Sprintf("copied %s (%d chars)", label, len(text))
}

func (m *Model) copyShareToken() {
	token, err := core.EncodeShare(m.root)
	if err != nil {
		m.errMsg = fmt.Sprintf("share encode failed: %v", err)
		return
	}
	if err := copyToClipboard(token); err != nil {
		m.errMsg = fmt.Sprintf("clipboard unavailable: %v", err)
		return
	}
	m.statusMsg = fmt.Sprintf("copied share token (%d chars)", len(token))
}

// decodeCurrent replaces the document with the decoded structure of the
// string leaf under the cursor, when it parses as serialized data.
func (m *Model) decodeCurrent() {
	id, ok := m.currentID()
	if !ok {
		return
	}
	n := m.doc.Tree.Node(id)
	if n == nil || n.Kind != index.KindString {
		m.statusMsg = "decode: not a string value"
		return
	}
	text, _ := n.Value.(string)
	decoded, ok := loader.TryDecode(text)
	if !ok {
		m.statusMsg = "decode: value is not serialized data"
		return
	}
	m.setDocument(decoded, true)
	m.statusMsg = "decoded string value ('r' to restore)"
}

func (m *Model) runExpression(expr string) {
	if expr == "" {
		return
	}
	result, err := m.engine.Evaluate(expr, m.origRoot)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.setDocument(result, true)
	m.statusMsg = "expression result ('r' to restore)"
}
