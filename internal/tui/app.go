// Package tui is the interactive post browser: a two-pane list/preview over
// every tracked board, backed by the entry orchestrator.
package tui

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/boardfeed/boardfeed/internal/browser"
	"github.com/boardfeed/boardfeed/internal/config"
	"github.com/boardfeed/boardfeed/internal/entry"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeNormal mode = iota
	modeFilter
	modeHelp
)

type App struct {
	cfg   *config.Config
	orch  *entry.Orchestrator
	posts []post

	cursor int
	focus  focusPane
	mode   mode

	width  int
	height int

	spinner   spinner.Model
	filterBar filterBar

	refreshing    bool
	showImages    bool
	initialForce  bool
	previewScroll int
	currentDate   string
	err           error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg         *config.Config
	Orch        *entry.Orchestrator
	ForceReload bool
}

func NewApp(opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	a := &App{
		cfg:         opts.Cfg,
		orch:        opts.Orch,
		filterBar:   newFilterBar(opts.Cfg.BoardNames()),
		spinner:     sp,
		showImages:  opts.Cfg.ImagesEnabled(),
		currentDate: time.Now().Format("Jan 2"),
		refreshing:  true,
	}
	a.initialForce = opts.ForceReload
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadEntriesCmd(a.initialForce), a.spinner.Tick)
}

// loadEntriesCmd runs the orchestrator for every enabled board concurrently
// and aggregates the results newest-first.
func (a *App) loadEntriesCmd(force bool) tea.Cmd {
	orch := a.orch
	boards := a.cfg.BoardNames()
	return func() tea.Msg {
		ctx := context.Background()

		var (
			mu    sync.Mutex
			posts []post
			errs  []error
			wg    sync.WaitGroup
		)
		for _, board := range boards {
			wg.Add(1)
			go func(board string) {
				defer wg.Done()
				res := orch.GetEntry(ctx, board, force)
				mu.Lock()
				defer mu.Unlock()
				if res.Items == nil {
					errs = append(errs, fmt.Errorf("no posts available for %s", board))
					return
				}
				for _, it := range res.Items {
					posts = append(posts, post{Item: it, Board: board})
				}
			}(board)
		}
		wg.Wait()

		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Posted.After(posts[j].Posted)
		})
		return entriesLoadedMsg{posts: posts, errs: errs}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// visible applies the board filter to the loaded posts.
func (a *App) visible() []post {
	if len(a.filterBar.active) == 0 {
		return a.posts
	}
	var out []post
	for _, p := range a.posts {
		if a.filterBar.matches(p.Board) {
			out = append(out, p)
		}
	}
	return out
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case entriesLoadedMsg:
		a.refreshing = false
		a.posts = msg.posts
		if len(msg.errs) > 0 {
			a.err = msg.errs[0]
		}
		if vis := a.visible(); a.cursor >= len(vis) {
			a.cursor = max(0, len(vis)-1)
		}
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeHelp:
		if s := msg.String(); s == "?" || s == "esc" || s == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	vis := a.visible()
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(vis)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if len(vis) > 0 && a.cursor < len(vis) {
			return a, openBrowserCmd(vis[a.cursor].Link)
		}
		return a, nil
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.loadEntriesCmd(true), a.spinner.Tick)
		}
		return a, nil
	case "i":
		a.showImages = !a.showImages
		return a, nil
	case "f":
		a.mode = modeFilter
		a.filterBar.filterMode = true
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		a.mode = modeNormal
		a.filterBar.filterMode = false
		return a, nil
	case "left", "h":
		if a.filterBar.filterCursor > 0 {
			a.filterBar.filterCursor--
		}
		return a, nil
	case "right", "l":
		if a.filterBar.filterCursor < len(a.filterBar.boards)-1 {
			a.filterBar.filterCursor++
		}
		return a, nil
	case " ", "enter":
		a.filterBar.toggleCurrent()
		a.cursor = 0
		return a, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < len(a.filterBar.boards) {
			a.filterBar.toggle(a.filterBar.boards[idx])
			a.cursor = 0
		}
		return a, nil
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  boardfeed")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	// Layout calculations
	headerHeight := 1
	filterHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - filterHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.35)
	previewWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("boardfeed")
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Filter bar
	filter := a.filterBar.render(a.width)

	vis := a.visible()

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(vis, a.cursor, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Preview pane
	var selected *post
	if len(vis) > 0 && a.cursor < len(vis) {
		selected = &vis[a.cursor]
	}
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(selected, innerPreviewW, contentHeight, a.previewScroll, a.showImages)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	// Join panes
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	// Status bar
	status := renderStatusBar(len(vis), a.filterBar.activeLabel(), a.width, a.refreshing)

	if a.refreshing {
		status = a.spinner.View() + " " + status
	}

	// Error display
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, filter, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("boardfeed")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Navigate post list\n" +
		"  tab           Switch focus between list and preview\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open post in browser\n" +
		"  r             Refresh boards\n" +
		"  i             Toggle image details in preview\n" +
		"  f             Toggle board filter mode\n\n" +
		dim.Render("Filter Mode") + "\n" +
		"  ←/→, h/l     Move between boards\n" +
		"  space/enter   Toggle board\n" +
		"  1-9           Toggle board by number\n" +
		"  esc, f        Exit filter mode\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
