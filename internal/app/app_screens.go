package app

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	appscreen "github.com/chmouel/lazyuntrack/internal/app/screen"
	"github.com/chmouel/lazyuntrack/internal/app/services"
	"github.com/chmouel/lazyuntrack/internal/models"
)

func (m *Model) showInfo(message string, action tea.Cmd) {
	infoScreen := appscreen.NewInfoScreen(message, m.theme)
	infoScreen.OnClose = func() tea.Cmd { return action }
	m.ui.screenManager.Push(infoScreen)
}

// showInfoTitled shows a titled info modal. A non-nil after runs as a command
// when the modal closes.
func (m *Model) showInfoTitled(title, message string, after func() tea.Msg) {
	infoScreen := appscreen.NewInfoScreenWithTitle(title, message, m.theme)
	if after != nil {
		infoScreen.OnClose = func() tea.Cmd { return after }
	}
	m.ui.screenManager.Push(infoScreen)
}

func (m *Model) handleScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.ui.screenManager.IsActive() {
		return m, nil
	}
	current := m.ui.screenManager.Current()
	scr, cmd := current.Update(msg)
	if scr == nil {
		// Only pop if the current screen hasn't already changed.
		if m.ui.screenManager.Current() == current {
			m.ui.screenManager.Pop()
		}
	} else {
		m.ui.screenManager.Set(scr)
	}
	return m, cmd
}

func (m *Model) showHelp() tea.Cmd {
	helpScreen := appscreen.NewHelpScreen(m.view.WindowWidth, m.view.WindowHeight, m.theme, m.config.IconsEnabled())
	m.ui.screenManager.Push(helpScreen)
	return nil
}

// showConfirmUntrack opens the confirmation modal for the current selection.
func (m *Model) showConfirmUntrack() tea.Cmd {
	groups := services.CollectChecked(m.tree())
	total := 0
	for _, group := range groups {
		total += len(group.Files)
	}
	if total == 0 {
		m.showInfo("Nothing selected.\nUse space to select files to untrack.", nil)
		return nil
	}

	message := fmt.Sprintf("Untrack %d file(s) in %d repo(s)?\nFiles stay on disk; git stops tracking them.", total, len(groups))
	confirmScreen := appscreen.NewConfirmScreen(message, m.theme)
	confirmScreen.ConfirmLabel = "Untrack"
	confirmScreen.OnConfirm = func() tea.Cmd {
		return m.beginUntrack(groups)
	}
	m.ui.screenManager.Push(confirmScreen)
	return nil
}

// showRepoChecklist opens the repository scope checklist. An empty scope set
// means every repository is in scope.
func (m *Model) showRepoChecklist() tea.Cmd {
	if m.data.scanResult == nil || len(m.data.scanResult.Repos) == 0 {
		m.showInfo("No repositories found yet.", nil)
		return nil
	}

	repos := make([]*models.Repository, len(m.data.scanResult.Repos))
	copy(repos, m.data.scanResult.Repos)
	sort.Slice(repos, func(i, j int) bool { return repos[i].RelRoot < repos[j].RelRoot })

	items := make([]appscreen.ChecklistItem, 0, len(repos))
	for _, repo := range repos {
		fileCount := 0
		for _, file := range m.data.scanResult.Files {
			if file.Repo == repo {
				fileCount++
			}
		}
		label := repo.RelRoot
		if label == "." {
			label = repo.Name
		}
		items = append(items, appscreen.ChecklistItem{
			ID:          repo.Root,
			Label:       label,
			Description: fmt.Sprintf("%d file(s)", fileCount),
			Checked:     len(m.data.scopeRoots) == 0 || m.data.scopeRoots[repo.Root],
		})
	}

	checklist := appscreen.NewChecklistScreen(
		items,
		"Repositories in scope",
		"Filter repositories...",
		"No repositories found.",
		m.view.WindowWidth,
		m.view.WindowHeight,
		m.theme,
		m.config.IconsEnabled(),
	)
	checklist.OnSubmit = func(selected []appscreen.ChecklistItem) tea.Cmd {
		scope := make(map[string]bool, len(selected))
		for _, item := range selected {
			scope[item.ID] = true
		}
		// Selecting everything, or nothing, clears the restriction.
		if len(scope) == len(items) || len(scope) == 0 {
			scope = map[string]bool{}
		}
		m.data.scopeRoots = scope
		m.rebuildTree()
		m.updatePreview()
		return nil
	}
	checklist.OnCancel = func() tea.Cmd { return nil }

	m.ui.screenManager.Push(checklist)
	return textinput.Blink
}
