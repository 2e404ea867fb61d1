package app

import (
	appscreen "github.com/chmouel/lazyuntrack/internal/app/screen"
	"github.com/chmouel/lazyuntrack/internal/app/services"
	log "github.com/chmouel/lazyuntrack/internal/log"
	"github.com/chmouel/lazyuntrack/internal/models"
)

func (m *Model) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

// isEscKey checks if the key string represents an escape key.
// Some terminals send ESC as "esc" (tea.KeyEsc) while others send it
// as a raw escape byte "\x1b" (ASCII 27).
func isEscKey(keyStr string) bool {
	return keyStr == keyEsc || keyStr == keyEscRaw
}

func (m *Model) newLoadingScreen(message string) *appscreen.LoadingScreen {
	return appscreen.NewLoadingScreen(message, m.theme, spinnerFrameSet(m.config.IconsEnabled()))
}

func (m *Model) setLoadingScreen(message string) {
	m.ui.screenManager.Set(m.newLoadingScreen(message))
}

func (m *Model) updateLoadingMessage(message string) {
	if loadingScreen := m.loadingScreen(); loadingScreen != nil {
		loadingScreen.Message = message
	}
}

func (m *Model) loadingScreen() *appscreen.LoadingScreen {
	if m.ui.screenManager.Type() != appscreen.TypeLoading {
		return nil
	}
	loadingScreen, _ := m.ui.screenManager.Current().(*appscreen.LoadingScreen)
	return loadingScreen
}

func (m *Model) clearLoadingScreen() {
	if m.ui.screenManager.Type() == appscreen.TypeLoading {
		m.ui.screenManager.Pop()
	}
}

// rebuildTree rebuilds the selection tree from the latest scan. Files that
// survive a rescan keep their checked state; new files arrive selected.
func (m *Model) rebuildTree() {
	prevChecked := make(map[string]bool)
	if tree := m.tree(); tree != nil {
		tree.Walk(func(n *services.PathNode) {
			if n.File != nil {
				prevChecked[n.Path] = n.Checked
			}
		})
	}

	tree := services.BuildTree(m.scopedFiles())
	tree.Walk(func(n *services.PathNode) {
		if n.File == nil {
			return
		}
		if checked, ok := prevChecked[n.Path]; ok {
			n.Checked = checked
		}
	})

	m.services.tree.SetTree(tree)
	m.ensureCursorVisible()
}

// scopedFiles returns the scan's files, narrowed to the repository scope. An
// empty scope keeps everything.
func (m *Model) scopedFiles() []*models.TrackedFile {
	if m.data.scanResult == nil {
		return nil
	}
	files := m.data.scanResult.Files
	if len(m.data.scopeRoots) == 0 {
		return files
	}
	scoped := make([]*models.TrackedFile, 0, len(files))
	for _, file := range files {
		if file.Repo != nil && m.data.scopeRoots[file.Repo.Root] {
			scoped = append(scoped, file)
		}
	}
	return scoped
}

// pruneScope drops scope entries for repositories the scan no longer sees.
func (m *Model) pruneScope(result *models.ScanResult) {
	if len(m.data.scopeRoots) == 0 || result == nil {
		return
	}
	known := make(map[string]bool, len(result.Repos))
	for _, repo := range result.Repos {
		known[repo.Root] = true
	}
	for root := range m.data.scopeRoots {
		if !known[root] {
			delete(m.data.scopeRoots, root)
		}
	}
}

// updatePreview recomputes the command preview from the current selection.
func (m *Model) updatePreview() {
	groups := services.CollectChecked(m.tree())
	content := services.RenderCommands(groups, m.config.HeaderTemplate, m.config.CommandTemplate)
	if content == "" {
		content = "Nothing selected."
	}
	m.data.previewContent = content
}

func (m *Model) setTreeFilter(query string) {
	m.services.filter.Set(query)
	if m.services.filter.Active() {
		m.services.tree.SetFilter(m.services.filter.Matches)
	} else {
		m.services.tree.SetFilter(nil)
	}
	m.ensureCursorVisible()
}

func (m *Model) clearTreeFilter() {
	m.services.filter.Clear()
	m.ui.filterInput.SetValue("")
	m.services.tree.SetFilter(nil)
	m.ensureCursorVisible()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
