package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/DevooKim/jason/pkg/core"
)

// Run starts the interactive explorer. Width/height of 0 auto-detect the
// terminal size; extra ProgramOptions mirror tea.NewProgram.
func Run(root any, engine *core.Engine, lgr logr.Logger, width, height int, noColor bool, opts ...tea.ProgramOption) error {
	m := NewModel(root, engine, lgr)
	m.SetNoColor(noColor)

	if width > 0 || height > 0 {
		w, h := resolveSize(width, height)
		m.width = w
		m.height = h
		opts = append(opts, tea.WithWindowSize(w, h))
	}

	prog := tea.NewProgram(m, opts...)
	_, err := prog.Run()
	return err
}

// Snapshot renders one frame of the explorer at a fixed size without
// starting a program. Used by --snapshot and by tests.
func Snapshot(root any, engine *core.Engine, lgr logr.Logger, width, height int, noColor bool) string {
	m := NewModel(root, engine, lgr)
	m.SetNoColor(noColor)
	w, h := resolveSize(width, height)
	m.width = w
	m.height = h
	return m.renderFrame()
}

// resolveSize fills unset dimensions from the terminal, then from the
// 80x24 fallback.
func resolveSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return width, height
}
