// Package app implements the interactive untrack view: a checkbox file tree
// of tracked-but-ignored files on the left, a live command preview on the
// right, and modal screens layered on top.
package app

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	appscreen "github.com/chmouel/lazyuntrack/internal/app/screen"
	"github.com/chmouel/lazyuntrack/internal/app/services"
	"github.com/chmouel/lazyuntrack/internal/app/state"
	"github.com/chmouel/lazyuntrack/internal/config"
	"github.com/chmouel/lazyuntrack/internal/git"
	log "github.com/chmouel/lazyuntrack/internal/log"
	"github.com/chmouel/lazyuntrack/internal/models"
	"github.com/chmouel/lazyuntrack/internal/scan"
	"github.com/chmouel/lazyuntrack/internal/theme"
)

const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyEscRaw   = "\x1b" // some terminals send ESC as a raw byte
	keyCtrlC    = "ctrl+c"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyUp       = "up"
	keyDown     = "down"
	keyLeft     = "left"
	keyRight    = "right"
	keySpace    = " "
	keyCtrlD    = "ctrl+d"
	keyCtrlU    = "ctrl+u"
)

const (
	minTreePaneWidth    = 32
	minPreviewPaneWidth = 30
)

// uiState groups the interactive widgets.
type uiState struct {
	screenManager   *appscreen.Manager
	previewViewport viewport.Model
	filterInput     textinput.Model
	spinner         spinner.Model
}

// serviceState groups the long-lived services behind the model.
type serviceState struct {
	git       *git.Service
	scanner   *scan.Scanner
	tree      *services.TreeView
	filter    *services.FilterService
	watch     *services.IgnoreWatchService
	untracker services.Untracker
}

// dataState holds scan output and everything derived from it.
type dataState struct {
	scanResult     *models.ScanResult
	scopeRoots     map[string]bool // repo roots kept by the scope checklist, nil keeps all
	history        []models.HistoryEntry
	previewContent string
	progressCh     chan untrackProgressMsg
}

// Model is the Bubble Tea model for the untrack view.
type Model struct {
	config *config.AppConfig
	theme  *theme.Theme
	root   string

	ui       uiState
	services serviceState
	data     dataState
	view     state.ViewState
	pending  state.PendingState

	ctx    context.Context
	cancel context.CancelFunc

	loading      bool // a scan or untrack run is in flight
	scanned      bool // the first scan has completed
	watchStarted bool
	quitting     bool
}

// NewModel creates the application model rooted at the given project
// directory. initialFilter pre-fills the tree filter.
func NewModel(cfg *config.AppConfig, root, initialFilter string) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	thm := theme.GetTheme(cfg.Theme)

	notify := func(message, severity string) {
		log.Printf("notify(%s): %s", severity, message)
	}
	var notifiedMu sync.Mutex
	notified := make(map[string]bool)
	notifyOnce := func(key, message, severity string) {
		notifiedMu.Lock()
		seen := notified[key]
		notified[key] = true
		notifiedMu.Unlock()
		if seen {
			return
		}
		log.Printf("notify(%s): %s", severity, message)
	}

	gitService := git.NewService(notify, notifyOnce)

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter files..."
	filterInput.Width = 50

	previewViewport := viewport.New(40, 10)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(thm.Accent)

	m := &Model{
		config: cfg,
		theme:  thm,
		root:   root,
		ui: uiState{
			screenManager:   appscreen.NewManager(),
			previewViewport: previewViewport,
			filterInput:     filterInput,
			spinner:         sp,
		},
		services: serviceState{
			git:       gitService,
			scanner:   scan.New(scan.Options{MaxDepth: cfg.MaxDepth, Skip: cfg.Skip}),
			tree:      services.NewTreeView(),
			filter:    services.NewFilterService(initialFilter),
			watch:     services.NewIgnoreWatchService(log.Printf),
			untracker: services.NewUntracker(gitService),
		},
		ctx:    ctx,
		cancel: cancel,
	}

	if initialFilter != "" {
		m.view.ShowingFilter = true
		m.ui.filterInput.SetValue(initialFilter)
		m.ui.filterInput.Focus()
		m.services.tree.SetFilter(m.services.filter.Matches)
	}

	return m
}

// Init kicks off the first scan.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startScan(), m.loadHistory())
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.ui.screenManager.IsActive() {
			// The loading screen swallows input, but quitting must stay
			// possible while a scan or untrack run is in flight.
			if m.ui.screenManager.Type() == appscreen.TypeLoading {
				if msg.String() == keyCtrlC {
					return m.quit()
				}
				return m, nil
			}
			return m.handleScreenKey(msg)
		}
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.ui.spinner, cmd = m.ui.spinner.Update(msg)
		return m, cmd

	case loadingTickMsg:
		return m.handleLoadingTick()

	case inspectDoneMsg:
		return m.handleInspectDone(msg)

	case scanDoneMsg, rescanRequestMsg, ignoreChangedMsg, historyLoadedMsg:
		return m.handleScanMessages(msg)

	case untrackProgressMsg, untrackDoneMsg:
		return m.handleUntrackMessages(msg)
	}

	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.stopIgnoreWatcher()
	m.cancel()
	return m, tea.Quit
}

// Close releases background resources once the program has finished.
func (m *Model) Close() {
	m.stopIgnoreWatcher()
	m.cancel()
}

// tree is a shorthand for the selection tree behind the view.
func (m *Model) tree() *services.PathTree {
	return m.services.tree.Tree
}
