package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive colors for dark/light terminals.
var (
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#CDD6F4"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#DCE0E8", Dark: "#313244"}
	colorActiveBdr = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	colorTabActive = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	colorTabBg     = lipgloss.AdaptiveColor{Light: "#E6E9EF", Dark: "#1E1E2E"}
	colorSurface   = lipgloss.AdaptiveColor{Light: "#EFF1F5", Dark: "#181825"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#E6E9EF", Dark: "#11111B"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#A6ADC8"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"}
)

var paneStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).PaddingLeft(1)
	headerDateStyle = lipgloss.NewStyle().Foreground(colorDim).Align(lipgloss.Right)

	listPaneStyle          = paneStyle.BorderForeground(colorBorder)
	listPaneActiveStyle    = paneStyle.BorderForeground(colorActiveBdr)
	previewPaneStyle       = paneStyle.BorderForeground(colorBorder)
	previewPaneActiveStyle = paneStyle.BorderForeground(colorActiveBdr)

	itemTitleStyle    = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	itemSelectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	itemBoardStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	itemTimeStyle     = lipgloss.NewStyle().Foreground(colorDim)

	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1)
	previewBoardStyle = lipgloss.NewStyle().Foreground(colorGreen).MarginBottom(1)
	previewBodyStyle  = lipgloss.NewStyle().Foreground(colorSecondary)
	previewImageStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewLinkStyle  = lipgloss.NewStyle().Foreground(colorDim).Italic(true).MarginTop(1)

	tabActiveStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(colorTabActive).Padding(0, 1).Bold(true)
	tabInactiveStyle  = lipgloss.NewStyle().Foreground(colorSecondary).Background(colorTabBg).Padding(0, 1)
	tabSeparatorStyle = lipgloss.NewStyle().Foreground(colorDim)

	statusBarStyle = lipgloss.NewStyle().Background(colorStatusBg).Foreground(colorStatusFg).Padding(0, 1)
	spinnerStyle   = lipgloss.NewStyle().Foreground(colorAccent)

	helpDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	helpCardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(1, 2)
)
