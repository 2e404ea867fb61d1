package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg processes keyboard input when not in a modal screen.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// When filtering, only escape/enter exit; up/down still move the cursor
	if m.view.ShowingFilter {
		return m.handleFilterInput(msg)
	}
	return m.handleBuiltInKey(msg)
}

// handleFilterInput routes keys while the filter bar is open. Enter keeps the
// filter applied and closes the bar, escape clears it.
func (m *Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keyStr == keyEnter:
		m.view.ShowingFilter = false
		m.ui.filterInput.Blur()
		return m, nil
	case isEscKey(keyStr) || keyStr == keyCtrlC:
		m.view.ShowingFilter = false
		m.ui.filterInput.Blur()
		m.clearTreeFilter()
		return m, nil
	case keyStr == keyUp || keyStr == keyDown:
		return m.handleNavigationDown(keyStr == keyDown)
	}

	var cmd tea.Cmd
	m.ui.filterInput, cmd = m.ui.filterInput.Update(msg)
	m.setTreeFilter(m.ui.filterInput.Value())
	return m, cmd
}

// handleBuiltInKey processes built-in keyboard shortcuts.
func (m *Model) handleBuiltInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCtrlC, "q":
		return m.quit()

	case "1":
		m.view.FocusedPane = paneTree
		return m, nil

	case "2":
		m.view.FocusedPane = panePreview
		return m, nil

	case keyTab, keyShiftTab:
		if m.view.FocusedPane == paneTree {
			m.view.FocusedPane = panePreview
		} else {
			m.view.FocusedPane = paneTree
		}
		return m, nil

	case "j", keyDown:
		return m.handleNavigationDown(true)

	case "k", keyUp:
		return m.handleNavigationDown(false)

	case keySpace:
		return m.handleToggle()

	case "h", keyLeft:
		return m.handleCollapse()

	case "l", keyRight:
		return m.handleExpand()

	case "a":
		m.tree().SetAll(false)
		m.updatePreview()
		return m, nil

	case "A":
		m.tree().SetAll(true)
		m.updatePreview()
		return m, nil

	case "g":
		return m.handleGotoTop()

	case "G":
		return m.handleGotoBottom()

	case keyCtrlD, "pgdown":
		return m.handlePage(true)

	case keyCtrlU, "pgup":
		return m.handlePage(false)

	case keyEnter:
		return m, m.showConfirmUntrack()

	case "/":
		return m, m.startFilter()

	case "i":
		return m, m.inspectSelected()

	case "R":
		return m, m.showRepoChecklist()

	case "r":
		if m.loading {
			return m, nil
		}
		return m, m.startScan()

	case "?":
		return m, m.showHelp()

	case keyEsc, keyEscRaw:
		if m.services.filter.Active() {
			m.clearTreeFilter()
		}
		return m, nil
	}

	if msg.Type == tea.KeyHome {
		return m.handleGotoTop()
	}
	if msg.Type == tea.KeyEnd {
		return m.handleGotoBottom()
	}

	return m, nil
}

// handleNavigationDown moves the cursor or scrolls the preview, depending on
// focus. down selects the direction.
func (m *Model) handleNavigationDown(down bool) (tea.Model, tea.Cmd) {
	if m.view.FocusedPane == panePreview {
		if down {
			m.ui.previewViewport.ScrollDown(1)
		} else {
			m.ui.previewViewport.ScrollUp(1)
		}
		return m, nil
	}

	treeView := m.services.tree
	if down {
		if treeView.Index < len(treeView.Flat)-1 {
			treeView.Index++
		}
	} else if treeView.Index > 0 {
		treeView.Index--
	}
	m.ensureCursorVisible()
	return m, nil
}

// handleToggle flips the selection of the row under the cursor. Directories
// toggle their whole subtree.
func (m *Model) handleToggle() (tea.Model, tea.Cmd) {
	if m.view.FocusedPane != paneTree {
		return m, nil
	}
	node := m.services.tree.Selected()
	if node == nil || node.Node == nil {
		return m, nil
	}
	node.Node.Toggle()
	m.updatePreview()
	return m, nil
}

// handleCollapse collapses the directory under the cursor, or jumps to the
// parent row when the cursor sits on a file or an already collapsed directory.
func (m *Model) handleCollapse() (tea.Model, tea.Cmd) {
	if m.view.FocusedPane != paneTree {
		m.view.FocusedPane = paneTree
		return m, nil
	}
	treeView := m.services.tree
	node := treeView.Selected()
	if node == nil {
		return m, nil
	}
	if node.IsDir() && !treeView.CollapsedDirs[node.Path] {
		treeView.SetCollapsed(node.Path, true)
		treeView.ClampIndex()
		m.ensureCursorVisible()
		return m, nil
	}
	for i := treeView.Index - 1; i >= 0; i-- {
		if treeView.Flat[i].Depth < node.Depth {
			treeView.Index = i
			m.ensureCursorVisible()
			break
		}
	}
	return m, nil
}

// handleExpand expands the directory under the cursor, or steps into an
// already expanded one.
func (m *Model) handleExpand() (tea.Model, tea.Cmd) {
	if m.view.FocusedPane != paneTree {
		return m, nil
	}
	treeView := m.services.tree
	node := treeView.Selected()
	if node == nil || !node.IsDir() {
		return m, nil
	}
	if treeView.CollapsedDirs[node.Path] {
		treeView.SetCollapsed(node.Path, false)
		return m, nil
	}
	if treeView.Index < len(treeView.Flat)-1 {
		treeView.Index++
		m.ensureCursorVisible()
	}
	return m, nil
}

func (m *Model) handleGotoTop() (tea.Model, tea.Cmd) {
	if m.view.FocusedPane == panePreview {
		m.ui.previewViewport.GotoTop()
		return m, nil
	}
	m.services.tree.Index = 0
	m.ensureCursorVisible()
	return m, nil
}

func (m *Model) handleGotoBottom() (tea.Model, tea.Cmd) {
	if m.view.FocusedPane == panePreview {
		m.ui.previewViewport.GotoBottom()
		return m, nil
	}
	if rows := len(m.services.tree.Flat); rows > 0 {
		m.services.tree.Index = rows - 1
	}
	m.ensureCursorVisible()
	return m, nil
}

// handlePage moves by half a pane in the focused pane.
func (m *Model) handlePage(down bool) (tea.Model, tea.Cmd) {
	if m.view.FocusedPane == panePreview {
		if down {
			m.ui.previewViewport.HalfPageDown()
		} else {
			m.ui.previewViewport.HalfPageUp()
		}
		return m, nil
	}

	treeView := m.services.tree
	step := maxInt(m.visibleTreeRows()/2, 1)
	if down {
		treeView.Index = minInt(treeView.Index+step, maxInt(len(treeView.Flat)-1, 0))
	} else {
		treeView.Index = maxInt(treeView.Index-step, 0)
	}
	m.ensureCursorVisible()
	return m, nil
}

// startFilter opens the filter bar pre-filled with the current query.
func (m *Model) startFilter() tea.Cmd {
	m.view.ShowingFilter = true
	m.ui.filterInput.SetValue(m.services.filter.Query)
	m.ui.filterInput.CursorEnd()
	return m.ui.filterInput.Focus()
}

// inspectSelected asks git which ignore rule matched the file under the
// cursor.
func (m *Model) inspectSelected() tea.Cmd {
	node := m.services.tree.Selected()
	if node == nil || node.IsDir() || node.Node.File == nil {
		return nil
	}
	file := node.Node.File
	if file.Repo == nil {
		return nil
	}
	m.setLoadingScreen("Checking ignore rules...")
	return tea.Batch(m.inspectCmd(file.Repo, file.RelPath), m.loadingTick())
}
