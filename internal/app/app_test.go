package app

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

func TestNewModelDefaults(t *testing.T) {
	cfg := testConfig(t)
	m := NewModel(cfg, "/project", "")
	t.Cleanup(m.Close)

	if m.config != cfg {
		t.Error("config not carried into the model")
	}
	if m.root != "/project" {
		t.Errorf("root = %q, want %q", m.root, "/project")
	}
	if m.loading || m.scanned || m.quitting {
		t.Errorf("fresh model has loading=%v scanned=%v quitting=%v", m.loading, m.scanned, m.quitting)
	}
	if m.view.FocusedPane != paneTree {
		t.Errorf("initial focus = %d, want tree pane", m.view.FocusedPane)
	}
	if m.view.ShowingFilter {
		t.Error("filter bar should start hidden")
	}
	if m.tree() != nil {
		t.Error("selection tree should be empty before the first scan")
	}
}

func TestNewModelSeedsInitialFilter(t *testing.T) {
	m := NewModel(testConfig(t), "/project", "build")
	t.Cleanup(m.Close)

	if !m.view.ShowingFilter {
		t.Error("expected the filter bar to be open")
	}
	if got := m.ui.filterInput.Value(); got != "build" {
		t.Errorf("filter input = %q, want %q", got, "build")
	}
	if !m.services.filter.Active() {
		t.Error("expected the tree filter to be active")
	}
}

func TestInitStartsScan(t *testing.T) {
	m := newTestModel(t)
	if m.Init() == nil {
		t.Fatal("Init returned no command")
	}
	if !m.loading {
		t.Error("Init should mark the model loading")
	}
}

func TestUpdateWindowSize(t *testing.T) {
	m := NewModel(testConfig(t), "/project", "")
	t.Cleanup(m.Close)

	apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.view.WindowWidth != 100 || m.view.WindowHeight != 30 {
		t.Errorf("window size = %dx%d, want 100x30", m.view.WindowWidth, m.view.WindowHeight)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m := scannedModel(t)
			cmd := press(t, m, key)
			if !m.quitting {
				t.Fatalf("%q did not quit", key)
			}
			if cmd == nil {
				t.Fatalf("%q returned no quit command", key)
			}
		})
	}
}

func TestLoadingScreenSwallowsKeysButNotCtrlC(t *testing.T) {
	m := scannedModel(t)
	m.loading = true
	m.setLoadingScreen("Scanning repositories...")

	press(t, m, "j")
	if m.services.tree.Index != 0 {
		t.Error("navigation should be ignored while loading")
	}

	press(t, m, "ctrl+c")
	if !m.quitting {
		t.Error("ctrl+c should quit even while loading")
	}
}

func TestSpinnerTickIgnoredWhenIdle(t *testing.T) {
	m := scannedModel(t)
	if cmd := apply(t, m, spinner.TickMsg{}); cmd != nil {
		t.Error("spinner tick should be dropped when nothing is loading")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	m := NewModel(testConfig(t), "/project", "")
	m.Close()
	m.Close()
}

func TestKeyboardNavigationEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	tm := teatest.NewTestModel(
		t,
		NewModel(cfg, t.TempDir(), ""),
		teatest.WithInitialTermSize(120, 40),
	)

	// Let the initial scan of the empty root finish.
	time.Sleep(200 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	time.Sleep(50 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	time.Sleep(50 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	fm := tm.FinalModel(t)
	m, ok := fm.(*Model)
	if !ok {
		t.Fatalf("final model has type %T", fm)
	}
	if !m.quitting {
		t.Error("model should be quitting after ctrl+c")
	}
}
