package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// View renders the active screen for the Bubble Tea program.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Wait for window size before rendering full UI
	if m.view.WindowWidth == 0 || m.view.WindowHeight == 0 {
		return "Loading..."
	}

	// Always render base layout first to allow overlays
	layout := m.computeLayout()
	m.applyLayout(layout)

	header := m.renderHeader(layout)
	footer := m.renderFooter(layout)
	body := m.renderBody(layout)

	// Truncate body to fit, leaving room for header and footer
	maxBodyLines := m.view.WindowHeight - 2
	if layout.filterHeight > 0 {
		maxBodyLines--
	}
	body = truncateToHeight(body, maxBodyLines)

	sections := []string{header}
	if layout.filterHeight > 0 {
		sections = append(sections, m.renderFilter(layout))
	}
	sections = append(sections, body, footer)

	baseView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.ui.screenManager.IsActive() {
		scr := m.ui.screenManager.Current()
		return m.overlayPopup(baseView, scr.View(), 3)
	}

	return baseView
}

// overlayPopup overlays a popup on top of the base view, preserving
// the portions of the base that fall outside the popup bounds so that
// underlying box borders remain visible.
func (m *Model) overlayPopup(base, popup string, marginTop int) string {
	if base == "" || popup == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")

	if len(baseLines) == 0 {
		return popup
	}

	baseWidth := lipgloss.Width(baseLines[0])
	popupWidth := lipgloss.Width(popupLines[0])

	leftPad := maxInt((baseWidth-popupWidth)/2, 0)

	for i, line := range popupLines {
		row := marginTop + i
		if row >= len(baseLines) {
			break
		}

		// Preserve left and right portions of the base line using
		// ANSI-aware truncation so box borders stay intact.
		leftPart := ansi.Truncate(baseLines[row], leftPad, "")
		if w := lipgloss.Width(leftPart); w < leftPad {
			leftPart += strings.Repeat(" ", leftPad-w)
		}
		rightPart := ansi.TruncateLeft(baseLines[row], leftPad+popupWidth, "")

		newLine := leftPart + line + rightPart
		if w := lipgloss.Width(newLine); w < baseWidth {
			newLine += strings.Repeat(" ", baseWidth-w)
		}
		baseLines[row] = newLine
	}

	return strings.Join(baseLines, "\n")
}

// truncateToHeight ensures output doesn't exceed maxLines.
func truncateToHeight(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n")
}

// truncateToHeightFromEnd returns the last maxLines lines from the string.
// Useful for git errors where the actual error is at the end.
func truncateToHeightFromEnd(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return strings.Join(lines, "\n")
}
