package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/chmouel/lazyuntrack/internal/app/services"
)

// renderBody renders the main body area with panes.
func (m *Model) renderBody(layout layoutDims) string {
	left := m.renderTreePane(layout)
	right := m.renderPreviewPane(layout)
	gap := lipgloss.NewStyle().
		Width(layout.gapX).
		Render(strings.Repeat(" ", layout.gapX))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}

// renderTreePane renders the left pane (file tree with checkboxes).
func (m *Model) renderTreePane(layout layoutDims) string {
	focused := m.view.FocusedPane == paneTree
	title := m.renderPaneTitle(1, "Ignored Files", focused, layout.treeInnerWidth)
	body := m.renderTreeRows(layout)
	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	return m.paneStyle(focused).
		Width(layout.treeWidth).
		Height(layout.bodyHeight).
		MaxHeight(layout.bodyHeight).
		Render(content)
}

// renderTreeRows renders the visible window of tree rows.
func (m *Model) renderTreeRows(layout layoutDims) string {
	mutedStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	flat := m.services.tree.Flat
	if len(flat) == 0 {
		msg := m.emptyTreeMessage()
		return mutedStyle.Width(layout.treeInnerWidth).Render(msg)
	}

	rows := layout.paneInnerHeight
	start := m.view.TreeScroll
	if start > len(flat)-rows {
		start = maxInt(len(flat)-rows, 0)
	}
	end := minInt(start+rows, len(flat))

	showIcons := m.config.IconsEnabled()
	selectedStyle := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true)
	dirStyle := lipgloss.NewStyle().Foreground(m.theme.Accent)
	fileStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg)

	var b strings.Builder
	for i := start; i < end; i++ {
		vn := flat[i]
		line := m.renderTreeRow(vn, showIcons, dirStyle, fileStyle, mutedStyle)
		if i == m.services.tree.Index {
			padded := padToWidth(line, layout.treeInnerWidth)
			line = selectedStyle.Render(padded)
		} else {
			line = truncateLine(line, layout.treeInnerWidth)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderTreeRow renders a single tree row without selection styling.
func (m *Model) renderTreeRow(vn *services.ViewNode, showIcons bool, dirStyle, fileStyle, mutedStyle lipgloss.Style) string {
	indent := strings.Repeat("  ", vn.Depth)
	check := checkboxGlyph(vn.State(), showIcons)

	name := vn.DisplayName()
	if vn.IsDir() {
		collapsed := m.services.tree.CollapsedDirs[vn.Path]
		disclosure := disclosureIndicator(collapsed, showIcons)
		total, checked := vn.Node.Counts()
		counts := mutedStyle.Render(fmt.Sprintf(" %d/%d", checked, total))
		icon := iconWithSpace(deviconForName(name, true))
		return fmt.Sprintf("%s%s %s %s%s%s", indent, disclosure, check, icon,
			dirStyle.Render(name+"/"), counts)
	}

	icon := iconWithSpace(deviconForName(name, false))
	return fmt.Sprintf("%s  %s %s%s", indent, check, icon, fileStyle.Render(name))
}

// emptyTreeMessage returns the placeholder text for an empty tree pane.
func (m *Model) emptyTreeMessage() string {
	if m.data.scanResult == nil {
		return "Scanning..."
	}
	if len(m.data.scanResult.Repos) == 0 {
		return "No git repositories found under this root."
	}
	if m.services.filter.Active() {
		return "No files match the current filter."
	}
	if len(m.data.scopeRoots) > 0 {
		return "No tracked-but-ignored files in the selected repositories."
	}
	return "No tracked-but-ignored files found.\nThe index is clean."
}

// renderPreviewPane renders the right pane (command preview viewport).
func (m *Model) renderPreviewPane(layout layoutDims) string {
	focused := m.view.FocusedPane == panePreview
	title := m.renderPaneTitle(2, "Commands", focused, layout.previewInnerWidth)
	m.ui.previewViewport.SetContent(wrap.String(m.data.previewContent, layout.previewInnerWidth))
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.ui.previewViewport.View())
	return m.paneStyle(focused).
		Width(layout.previewWidth).
		Height(layout.bodyHeight).
		MaxHeight(layout.bodyHeight).
		Render(content)
}

// padToWidth pads or truncates a rendered line to an exact display width.
func padToWidth(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return truncateLine(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// truncateLine truncates a rendered line to a display width.
func truncateLine(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
