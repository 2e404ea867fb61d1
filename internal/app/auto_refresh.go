package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// startIgnoreWatcher starts the filesystem watcher after the first scan. On
// later scans it only registers newly discovered repositories.
func (m *Model) startIgnoreWatcher() tea.Cmd {
	if m.services.watch == nil || m.data.scanResult == nil {
		return nil
	}
	if m.watchStarted {
		m.services.watch.WatchRepos(m.data.scanResult.Repos)
		return m.waitForIgnoreEvent()
	}

	started, err := m.services.watch.Start(m.config, m.data.scanResult.Repos)
	if err != nil {
		m.debugf("ignore watcher failed to start: %v", err)
		return nil
	}
	if !started {
		return nil
	}
	m.watchStarted = true
	return m.waitForIgnoreEvent()
}

func (m *Model) stopIgnoreWatcher() {
	if m.services.watch == nil || !m.services.watch.Started {
		return
	}
	m.services.watch.Stop()
}

func (m *Model) waitForIgnoreEvent() tea.Cmd {
	if m.services.watch == nil {
		return nil
	}
	events := m.services.watch.NextEvent()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-events
		if !ok {
			return nil
		}
		return ignoreChangedMsg{}
	}
}
