package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/DevooKim/jason/internal/index"
)

// Tree glyphs: expandable, expanded, and leaf rows.
const (
	iconCollapsed = "▸"
	iconExpanded  = "▾"
	iconLeaf      = "·"
)

// Theme holds the lipgloss styles for every rendered element. NoColor runs
// strip styling at render time rather than swapping the theme out.
type Theme struct {
	Key       lipgloss.Style
	Summary   lipgloss.Style
	KindLabel lipgloss.Style
	Cursor    lipgloss.Style
	Match     lipgloss.Style
	Path      lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Separator lipgloss.Style
	Faint     lipgloss.Style

	kindColors map[index.Kind]lipgloss.Style
}

// DefaultTheme returns the stock ANSI-256 palette.
func DefaultTheme() Theme {
	return Theme{
		Key:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Summary:   lipgloss.NewStyle().Foreground(lipgloss.Color("248")),
		KindLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Match:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Path:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		kindColors: map[index.Kind]lipgloss.Style{
			index.KindString:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			index.KindNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			index.KindBoolean: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
			index.KindNull:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			index.KindObject:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
			index.KindArray:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		},
	}
}

// ValueStyle returns the style for a node's summary based on its kind.
func (t Theme) ValueStyle(kind index.Kind) lipgloss.Style {
	if s, ok := t.kindColors[kind]; ok {
		return s
	}
	return t.Summary
}
