package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazyuntrack/internal/app/services"
	"github.com/chmouel/lazyuntrack/internal/app/state"
	"github.com/chmouel/lazyuntrack/internal/models"
)

type (
	// scanDoneMsg carries the outcome of a repository scan.
	scanDoneMsg struct {
		result *models.ScanResult
		err    error
	}

	// rescanRequestMsg asks for a fresh scan, typically after an untrack
	// run or from a modal close action.
	rescanRequestMsg struct{}

	// ignoreChangedMsg signals watcher activity under a watched directory.
	ignoreChangedMsg struct{}

	// historyLoadedMsg carries past untrack runs read from disk.
	historyLoadedMsg struct {
		entries []models.HistoryEntry
	}

	// loadingTickMsg advances the loading screen animation.
	loadingTickMsg struct{}

	// inspectDoneMsg carries git check-ignore output for one file.
	inspectDoneMsg struct {
		relPath string
		repo    string
		output  string
	}

	// untrackProgressMsg reports per-file progress of a running untrack.
	untrackProgressMsg struct {
		done    int
		total   int
		current string
	}

	// untrackDoneMsg carries the results of a finished untrack run.
	untrackDoneMsg struct {
		results []models.UntrackResult
	}
)

const loadingFrameInterval = 120 * time.Millisecond

// handleScanMessages processes scan and watcher messages.
func (m *Model) handleScanMessages(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scanDoneMsg:
		return m.handleScanDone(msg)
	case rescanRequestMsg:
		return m, m.rescan()
	case ignoreChangedMsg:
		return m.handleIgnoreChanged()
	case historyLoadedMsg:
		m.data.history = msg.entries
		return m, nil
	default:
		return m, nil
	}
}

// handleScanDone processes a finished scan.
func (m *Model) handleScanDone(msg scanDoneMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.scanned = true
	m.clearLoadingScreen()

	if msg.err != nil {
		m.showInfo(fmt.Sprintf("Scan failed: %v", msg.err), nil)
		return m, nil
	}

	m.data.scanResult = msg.result
	m.pruneScope(msg.result)
	m.rebuildTree()
	m.updatePreview()

	for _, scanErr := range msg.result.Errors {
		m.debugf("scan error for %s: %s", scanErr.RepoRoot, scanErr.Message)
	}

	return m, m.startIgnoreWatcher()
}

// handleIgnoreChanged debounces watcher events into background rescans.
func (m *Model) handleIgnoreChanged() (tea.Model, tea.Cmd) {
	m.services.watch.ResetWaiting()
	rearm := m.waitForIgnoreEvent()
	if m.loading || !m.services.watch.ShouldRefresh(time.Now()) {
		return m, rearm
	}
	return m, tea.Batch(rearm, m.rescan())
}

// handleUntrackMessages processes untrack execution messages.
func (m *Model) handleUntrackMessages(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case untrackProgressMsg:
		return m.handleUntrackProgress(msg)
	case untrackDoneMsg:
		return m.handleUntrackDone(msg)
	default:
		return m, nil
	}
}

// handleUntrackProgress updates the loading screen and re-arms the reader.
func (m *Model) handleUntrackProgress(msg untrackProgressMsg) (tea.Model, tea.Cmd) {
	m.updateLoadingMessage(fmt.Sprintf("Untracking %d/%d: %s", msg.done, msg.total, msg.current))
	return m, m.waitForUntrackProgress()
}

// handleUntrackDone records history, reports the outcome and schedules a
// rescan for when the summary is dismissed.
func (m *Model) handleUntrackDone(msg untrackDoneMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.data.progressCh = nil
	m.pending = state.PendingState{}
	m.clearLoadingScreen()

	succeeded := services.SucceededByRepo(msg.results)
	if len(succeeded) > 0 {
		updated, err := services.AppendHistory(m.root, m.config.StateDir, succeeded)
		if err != nil {
			m.debugf("failed to write history: %v", err)
		} else {
			m.data.history = updated
		}
	}

	title, body := buildUntrackSummary(msg.results)
	m.showInfoTitled(title, body, func() tea.Msg { return rescanRequestMsg{} })
	return m, nil
}

// handleInspectDone shows the check-ignore explanation for one file.
func (m *Model) handleInspectDone(msg inspectDoneMsg) (tea.Model, tea.Cmd) {
	m.clearLoadingScreen()

	body := formatIgnoreRules(msg.output)
	title := msg.relPath
	if msg.repo != "" {
		title = fmt.Sprintf("%s (%s)", msg.relPath, msg.repo)
	}
	m.showInfoTitled(title, body, nil)
	return m, nil
}

// handleLoadingTick advances the loading animation while it is visible.
func (m *Model) handleLoadingTick() (tea.Model, tea.Cmd) {
	loadingScreen := m.loadingScreen()
	if loadingScreen == nil {
		return m, nil
	}
	loadingScreen.Tick()
	return m, m.loadingTick()
}

func (m *Model) loadingTick() tea.Cmd {
	return tea.Tick(loadingFrameInterval, func(time.Time) tea.Msg {
		return loadingTickMsg{}
	})
}

// scanCmd runs one scan pass in the background.
func (m *Model) scanCmd() tea.Cmd {
	ctx := m.ctx
	root := m.root
	scanner := m.services.scanner
	return func() tea.Msg {
		result, err := scanner.Scan(ctx, root)
		return scanDoneMsg{result: result, err: err}
	}
}

// startScan runs a scan behind a loading screen. Used for the initial scan
// and explicit rescans.
func (m *Model) startScan() tea.Cmd {
	m.loading = true
	m.setLoadingScreen("Scanning repositories...")
	return tea.Batch(m.scanCmd(), m.loadingTick(), m.ui.spinner.Tick)
}

// rescan runs a scan without a modal; only the footer spinner shows.
func (m *Model) rescan() tea.Cmd {
	m.loading = true
	return tea.Batch(m.scanCmd(), m.ui.spinner.Tick)
}

// loadHistory reads past untrack runs from the state directory.
func (m *Model) loadHistory() tea.Cmd {
	root := m.root
	stateDir := m.config.StateDir
	return func() tea.Msg {
		entries, err := services.LoadHistory(root, stateDir)
		if err != nil {
			return historyLoadedMsg{}
		}
		return historyLoadedMsg{entries: entries}
	}
}

// beginUntrack starts executing the selection. Progress flows through a
// buffered channel read by waitForUntrackProgress, one message per command.
func (m *Model) beginUntrack(groups []services.SelectionGroup) tea.Cmd {
	total := 0
	for _, group := range groups {
		total += len(group.Files)
	}
	if total == 0 {
		return nil
	}

	m.pending.Selection = groups
	m.loading = true
	m.setLoadingScreen(fmt.Sprintf("Untracking 0/%d...", total))

	progressCh := make(chan untrackProgressMsg, total)
	m.data.progressCh = progressCh

	ctx := m.ctx
	untracker := m.services.untracker
	run := func() tea.Msg {
		results := untracker.Run(ctx, groups, func(done, total int, current string) {
			select {
			case progressCh <- untrackProgressMsg{done: done, total: total, current: current}:
			default:
			}
		})
		close(progressCh)
		return untrackDoneMsg{results: results}
	}

	return tea.Batch(run, m.waitForUntrackProgress(), m.loadingTick(), m.ui.spinner.Tick)
}

// waitForUntrackProgress blocks on the progress channel. A closed channel
// ends the chain; handleUntrackProgress re-arms it otherwise.
func (m *Model) waitForUntrackProgress() tea.Cmd {
	progressCh := m.data.progressCh
	if progressCh == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-progressCh
		if !ok {
			return nil
		}
		return msg
	}
}

// inspectCmd asks git which ignore rule matches the file.
func (m *Model) inspectCmd(repo *models.Repository, relPath string) tea.Cmd {
	ctx := m.ctx
	gitService := m.services.git
	return func() tea.Msg {
		output := gitService.CheckIgnore(ctx, repo.Root, relPath)
		return inspectDoneMsg{relPath: relPath, repo: repo.Name, output: output}
	}
}

// buildUntrackSummary renders the result modal text for an untrack run.
func buildUntrackSummary(results []models.UntrackResult) (title, body string) {
	succeeded := 0
	var failures []string
	for _, result := range results {
		if result.Err == nil {
			succeeded++
			continue
		}
		detail := result.Err.Error()
		if result.Output != "" {
			detail = truncateToHeightFromEnd(result.Output, 2)
		}
		failures = append(failures, fmt.Sprintf("%s: %s", result.RelPath, detail))
	}

	if len(failures) == 0 {
		body = fmt.Sprintf("Untracked %d file(s).\nFiles stay on disk; commit the index change when ready.", succeeded)
		return "Untrack complete", body
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Untracked %d of %d file(s).\n\nFailed:\n", succeeded, len(results))
	const maxShown = 8
	for i, failure := range failures {
		if i >= maxShown {
			fmt.Fprintf(&builder, "and %d more, see the debug log\n", len(failures)-i)
			break
		}
		builder.WriteString(failure + "\n")
	}
	return "Untrack finished with errors", strings.TrimRight(builder.String(), "\n")
}

// formatIgnoreRules turns check-ignore output into modal text. Each line is
// "source:linenum:pattern<tab>path".
func formatIgnoreRules(output string) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return "No ignore rule matches this file.\nIt may have matched at scan time through a pattern that was since removed."
	}

	var lines []string
	for _, line := range strings.Split(output, "\n") {
		parts := strings.SplitN(line, "\t", 2)
		rule := parts[0]
		fields := strings.SplitN(rule, ":", 3)
		if len(fields) == 3 {
			lines = append(lines, fmt.Sprintf("pattern %q", fields[2]))
			lines = append(lines, fmt.Sprintf("  from %s, line %s", fields[0], fields[1]))
		} else {
			lines = append(lines, rule)
		}
	}
	return strings.Join(lines, "\n")
}
