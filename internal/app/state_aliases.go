package app

import "github.com/chmouel/lazyuntrack/internal/app/state"

const (
	paneTree    = state.PaneTree
	panePreview = state.PanePreview
)
