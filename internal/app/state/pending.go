package state

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazyuntrack/internal/app/services"
)

// PendingState keeps deferred work between a confirmation screen and the
// update loop that executes it.
type PendingState struct {
	Selection []services.SelectionGroup
	After     func() tea.Msg
}
