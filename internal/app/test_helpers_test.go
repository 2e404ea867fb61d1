package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazyuntrack/internal/config"
	"github.com/chmouel/lazyuntrack/internal/models"
)

// testConfig returns a default config pointed at a throwaway state
// directory, with the watcher disabled so tests never touch fsnotify.
func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.StateDir = t.TempDir()
	cfg.AutoRefresh = false
	cfg.ShowIcons = false
	return cfg
}

// fixtureScan builds a two-repo scan: the project root and a nested
// service repo, three files total.
func fixtureScan() *models.ScanResult {
	rootRepo := &models.Repository{Root: "/project", Name: "project", RelRoot: "."}
	apiRepo := &models.Repository{Root: "/project/services/api", Name: "api", RelRoot: "services/api"}
	return &models.ScanResult{
		Root:  "/project",
		Repos: []*models.Repository{rootRepo, apiRepo},
		Files: []*models.TrackedFile{
			{Path: "/project/build/out.log", RelPath: "build/out.log", Repo: rootRepo},
			{Path: "/project/.idea/workspace.xml", RelPath: ".idea/workspace.xml", Repo: rootRepo},
			{Path: "/project/services/api/.env", RelPath: ".env", Repo: apiRepo},
		},
	}
}

// newTestModel builds a sized model that has not scanned yet.
func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(testConfig(t), "/project", "")
	t.Cleanup(m.Close)
	apply(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// scannedModel builds a sized model with the fixture scan applied.
func scannedModel(t *testing.T) *Model {
	t.Helper()
	m := newTestModel(t)
	apply(t, m, scanDoneMsg{result: fixtureScan()})
	return m
}

// apply routes a message through Update and checks the model type.
func apply(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	updated, cmd := m.Update(msg)
	if _, ok := updated.(*Model); !ok {
		t.Fatalf("Update returned unexpected model type %T", updated)
	}
	return cmd
}

// press sends a single key to the model.
func press(t *testing.T, m *Model, key string) tea.Cmd {
	t.Helper()
	return apply(t, m, keyMsg(key))
}

// keyMsg builds a key message from a readable name.
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// flatPaths lists the rendered tree rows by path, for assertions.
func flatPaths(m *Model) []string {
	paths := make([]string, 0, len(m.services.tree.Flat))
	for _, node := range m.services.tree.Flat {
		paths = append(paths, node.Path)
	}
	return paths
}
