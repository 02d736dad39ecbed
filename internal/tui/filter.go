package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type filterBar struct {
	boards       []string
	active       map[string]bool
	filterMode   bool
	filterCursor int
}

func newFilterBar(boards []string) filterBar {
	return filterBar{
		boards: boards,
		active: make(map[string]bool),
	}
}

func (f *filterBar) toggle(board string) {
	if f.active[board] {
		delete(f.active, board)
	} else {
		f.active[board] = true
	}
}

func (f *filterBar) toggleCurrent() {
	if f.filterCursor < len(f.boards) {
		f.toggle(f.boards[f.filterCursor])
	}
}

func (f *filterBar) activeBoards() []string {
	if len(f.active) == 0 {
		return nil // nil = all boards
	}
	var out []string
	for _, b := range f.boards {
		if f.active[b] {
			out = append(out, b)
		}
	}
	return out
}

func (f *filterBar) activeLabel() string {
	active := f.activeBoards()
	if active == nil {
		return "All"
	}
	return strings.Join(active, ", ")
}

func (f *filterBar) matches(board string) bool {
	if len(f.active) == 0 {
		return true
	}
	return f.active[board]
}

func (f *filterBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	// "All" tab
	if len(f.active) == 0 {
		parts = append(parts, tabActiveStyle.Render("All"))
	} else {
		parts = append(parts, tabInactiveStyle.Render("All"))
	}

	for i, b := range f.boards {
		style := tabInactiveStyle
		if f.active[b] {
			style = tabActiveStyle
		}
		label := b
		if f.filterMode && i == f.filterCursor {
			label = "[" + b + "]"
		}
		parts = append(parts, style.Render(label))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
