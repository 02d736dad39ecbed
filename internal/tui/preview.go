package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderPreview(p *post, width, height, scroll int, showImages bool) string {
	if p == nil {
		return centerText("Select a post", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(p.Title)

	meta := p.Board
	if !p.Posted.IsZero() {
		meta = fmt.Sprintf("%s · %s", p.Board, p.Posted.Format("Jan 2, 2006"))
	}
	board := previewBoardStyle.Render(meta)

	abstract := p.Abstract
	if abstract == "" {
		abstract = "(No abstract available)"
	}
	body := previewBodyStyle.Width(contentWidth).Render(wrapText(abstract, contentWidth))

	sections := []string{title, board, "", body}

	if showImages {
		sections = append(sections, "", previewImageStyle.Render(imageSummary(p)))
	}

	link := previewLinkStyle.Width(contentWidth).Render("Open: " + p.Link)
	sections = append(sections, "", link)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func imageSummary(p *post) string {
	if len(p.ImageLocators) == 0 {
		return "No images"
	}
	state := "downloading"
	if p.ImagesDownloaded {
		state = "ready"
	}
	out := fmt.Sprintf("Images (%s):", state)
	if len(p.ImagePaths) == 0 {
		return out + " none yet"
	}
	for _, path := range p.ImagePaths {
		out += "\n  " + path
	}
	return out
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
