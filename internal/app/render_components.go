package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the application header.
func (m *Model) renderHeader(layout layoutDims) string {
	headerStyle := lipgloss.NewStyle().
		Background(m.theme.AccentDim).
		Foreground(m.theme.TextFg).
		Bold(true).
		Width(layout.width).
		Padding(0, 2).Align(lipgloss.Center)

	content := "Lazyuntrack"
	if m.root != "" {
		content = fmt.Sprintf("%s  •  %s", content, m.root)
	}
	if total, checked := m.services.tree.Tree.Counts(); total > 0 {
		content = fmt.Sprintf("%s  •  %d/%d selected", content, checked, total)
	}

	return headerStyle.Render(content)
}

// renderFilter renders the filter input bar.
func (m *Model) renderFilter(layout layoutDims) string {
	labelStyle := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Padding(0, 1)
	filterStyle := lipgloss.NewStyle().
		Foreground(m.theme.TextFg).
		Padding(0, 1)
	line := fmt.Sprintf("%s %s", labelStyle.Render("Filter"), m.ui.filterInput.View())
	return filterStyle.Width(layout.width).Render(line)
}

// renderFooter renders the application footer with context-aware hints.
func (m *Model) renderFooter(layout layoutDims) string {
	footerStyle := lipgloss.NewStyle().
		Foreground(m.theme.TextFg).
		Background(m.theme.BorderDim).
		Padding(0, 1)

	var hints []string
	switch m.view.FocusedPane {
	case panePreview:
		hints = []string{
			m.renderKeyHint("j/k", "Scroll"),
			m.renderKeyHint("Ctrl+d/u", "Page"),
			m.renderKeyHint("Enter", "Untrack"),
			m.renderKeyHint("Tab", "Switch Pane"),
			m.renderKeyHint("q", "Quit"),
			m.renderKeyHint("?", "Help"),
		}
	default:
		hints = []string{
			m.renderKeyHint("Space", "Toggle"),
			m.renderKeyHint("Enter", "Untrack"),
			m.renderKeyHint("i", "Inspect"),
			m.renderKeyHint("R", "Repos"),
			m.renderKeyHint("r", "Rescan"),
			m.renderKeyHint("/", "Filter"),
			m.renderKeyHint("Tab", "Switch Pane"),
			m.renderKeyHint("q", "Quit"),
			m.renderKeyHint("?", "Help"),
		}
	}

	if m.data.scanResult != nil && len(m.data.scanResult.Errors) > 0 {
		warnStyle := lipgloss.NewStyle().Foreground(m.theme.WarnFg).Bold(true)
		warning := fmt.Sprintf("%s%d scan error(s)",
			iconPrefix(UIIconWarning, m.config.IconsEnabled()),
			len(m.data.scanResult.Errors))
		hints = append([]string{warnStyle.Render(warning)}, hints...)
	}

	footerContent := strings.Join(hints, "  ")
	if !m.loading {
		return footerStyle.Width(layout.width).Render(footerContent)
	}
	spinnerView := m.ui.spinner.View()
	gap := "  "
	available := maxInt(layout.width-lipgloss.Width(spinnerView)-lipgloss.Width(gap), 0)
	footer := footerStyle.Width(available).Render(footerContent)
	return lipgloss.JoinHorizontal(lipgloss.Left, footer, gap, spinnerView)
}

// renderKeyHint renders a single key hint with enhanced styling.
func (m *Model) renderKeyHint(key, label string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Accent)
	return fmt.Sprintf("%s %s", keyStyle.Render(key), labelStyle.Render(label))
}

// renderPaneTitle renders a pane title with focus indicators.
func (m *Model) renderPaneTitle(index int, title string, focused bool, width int) string {
	showIcons := m.config.IconsEnabled()
	numStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	titleStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	if focused {
		numStyle = numStyle.Foreground(m.theme.Accent).Bold(true)
		titleStyle = titleStyle.Foreground(m.theme.TextFg).Bold(true)
	}
	num := numStyle.Render(fmt.Sprintf("[%d]", index))
	if showIcons {
		num = numStyle.Render(fmt.Sprintf("(%d)", index))
	}
	name := titleStyle.Render(title)

	filterIndicator := ""
	if !m.view.ShowingFilter && index == 1 && m.services.filter.Active() {
		filteredStyle := lipgloss.NewStyle().Foreground(m.theme.WarnFg).Italic(true)
		keyStyle := lipgloss.NewStyle().
			Foreground(m.theme.AccentFg).
			Background(m.theme.Accent).
			Bold(true).
			Padding(0, 1)
		filterIndicator = fmt.Sprintf(" %s%s  %s %s",
			iconPrefix(UIIconFilter, showIcons),
			filteredStyle.Render("Filtered"),
			keyStyle.Render("Esc"),
			lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render("Clear"))
	}

	return lipgloss.NewStyle().Width(width).Render(fmt.Sprintf("%s %s%s", num, name, filterIndicator))
}

// basePaneStyle returns the base style for panes.
func (m *Model) basePaneStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderDim).
		Padding(0, 1)
}

// paneStyle returns a pane style with focus indication.
func (m *Model) paneStyle(focused bool) lipgloss.Style {
	borderColor := m.theme.BorderDim
	borderStyle := lipgloss.NormalBorder()
	if focused {
		borderColor = m.theme.Accent
		borderStyle = lipgloss.RoundedBorder()
	}
	return lipgloss.NewStyle().
		Border(borderStyle).
		BorderForeground(borderColor).
		Padding(0, 1)
}
