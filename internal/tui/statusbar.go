package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const statusHints = " f filter  r refresh  i images  ? help  q quit "

func renderStatusBar(postCount int, filterLabel string, width int, refreshing bool) string {
	segs := []string{fmt.Sprintf("%d posts", postCount)}
	if filterLabel != "All" {
		segs = append(segs, filterLabel)
	}
	if refreshing {
		segs = append(segs, "refreshing...")
	}
	left := " " + strings.Join(segs, " · ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(statusHints)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + statusHints)
}
