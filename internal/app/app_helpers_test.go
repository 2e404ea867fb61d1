package app

import (
	"testing"

	appscreen "github.com/chmouel/lazyuntrack/internal/app/screen"
)

func TestScopedFiles(t *testing.T) {
	m := newTestModel(t)
	if files := m.scopedFiles(); files != nil {
		t.Errorf("scopedFiles before a scan = %v, want nil", files)
	}

	m = scannedModel(t)
	if files := m.scopedFiles(); len(files) != 3 {
		t.Errorf("scopedFiles without a scope = %d files, want 3", len(files))
	}

	m.data.scopeRoots = map[string]bool{"/project/services/api": true}
	files := m.scopedFiles()
	if len(files) != 1 || files[0].RelPath != ".env" {
		t.Errorf("scoped files = %+v, want just the api repo's file", files)
	}
}

func TestPruneScope(t *testing.T) {
	m := scannedModel(t)
	m.data.scopeRoots = map[string]bool{
		"/project":          true,
		"/gone/away":        true,
		"/project/services": true,
	}

	m.pruneScope(m.data.scanResult)

	if len(m.data.scopeRoots) != 1 || !m.data.scopeRoots["/project"] {
		t.Errorf("pruned scope = %v, want only known roots", m.data.scopeRoots)
	}
}

func TestPruneScopeEmptyIsNoop(t *testing.T) {
	m := scannedModel(t)
	m.data.scopeRoots = nil
	m.pruneScope(m.data.scanResult)
	if m.data.scopeRoots != nil {
		t.Errorf("empty scope changed to %v", m.data.scopeRoots)
	}
}

func TestLoadingScreenHelpers(t *testing.T) {
	m := newTestModel(t)

	m.setLoadingScreen("Working...")
	loadingScreen := m.loadingScreen()
	if loadingScreen == nil {
		t.Fatal("no loading screen after setLoadingScreen")
	}
	if loadingScreen.Message != "Working..." {
		t.Errorf("message = %q", loadingScreen.Message)
	}

	m.updateLoadingMessage("Still working...")
	if loadingScreen.Message != "Still working..." {
		t.Errorf("message = %q after update", loadingScreen.Message)
	}

	m.clearLoadingScreen()
	if m.ui.screenManager.IsActive() {
		t.Error("clearLoadingScreen left a screen active")
	}
}

func TestClearLoadingScreenLeavesOtherScreens(t *testing.T) {
	m := newTestModel(t)

	m.showInfo("message", nil)
	m.clearLoadingScreen()

	if m.ui.screenManager.Type() != appscreen.TypeInfo {
		t.Error("clearLoadingScreen must only pop loading screens")
	}
}

func TestUpdateLoadingMessageWithoutScreen(t *testing.T) {
	m := newTestModel(t)
	m.updateLoadingMessage("ignored")
	if m.ui.screenManager.IsActive() {
		t.Error("updating the message must not create a screen")
	}
}

func TestRebuildTreeKeepsCursor(t *testing.T) {
	m := scannedModel(t)

	press(t, m, "j")
	press(t, m, "j") // build/
	if got := m.services.tree.SelectedPath(); got != "build" {
		t.Fatalf("cursor on %q, want build", got)
	}

	m.rebuildTree()
	if got := m.services.tree.SelectedPath(); got != "build" {
		t.Errorf("cursor on %q after rebuilding, want build", got)
	}
}

func TestUpdatePreviewWithoutTree(t *testing.T) {
	m := newTestModel(t)
	m.updatePreview()
	if m.data.previewContent != "Nothing selected." {
		t.Errorf("preview = %q", m.data.previewContent)
	}
}

func TestIsEscKey(t *testing.T) {
	if !isEscKey("esc") || !isEscKey("\x1b") {
		t.Error("esc variants not recognized")
	}
	if isEscKey("q") {
		t.Error("q is not an escape key")
	}
}
