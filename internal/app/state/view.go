package state

// Pane indices for focus handling.
const (
	PaneTree = iota
	PanePreview
)

// ViewState holds UI-related state for the model.
type ViewState struct {
	ShowingFilter bool
	FocusedPane   int
	WindowWidth   int
	WindowHeight  int
	TreeScroll    int // first visible row of the file tree
}
