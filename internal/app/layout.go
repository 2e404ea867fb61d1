package app

// layoutDims captures the computed dimensions for one render pass.
type layoutDims struct {
	width  int
	height int

	headerHeight int
	footerHeight int
	filterHeight int
	bodyHeight   int

	treeWidth         int
	previewWidth      int
	treeInnerWidth    int
	previewInnerWidth int
	paneInnerHeight   int
	gapX              int
}

// setWindowSize records the new terminal size and reflows the widgets.
func (m *Model) setWindowSize(width, height int) {
	m.view.WindowWidth = width
	m.view.WindowHeight = height
	m.applyLayout(m.computeLayout())
}

// computeLayout derives pane dimensions from the window size. The focused
// pane gets the larger share of the width.
func (m *Model) computeLayout() layoutDims {
	width := m.view.WindowWidth
	height := m.view.WindowHeight

	layout := layoutDims{
		width:        width,
		height:       height,
		headerHeight: 1,
		footerHeight: 1,
		gapX:         1,
	}
	if m.view.ShowingFilter {
		layout.filterHeight = 1
	}
	layout.bodyHeight = maxInt(height-layout.headerHeight-layout.footerHeight-layout.filterHeight, 3)

	treeRatio := 0.55
	if m.view.FocusedPane == panePreview {
		treeRatio = 0.45
	}

	treeWidth := int(float64(width-layout.gapX) * treeRatio)
	treeWidth = maxInt(treeWidth, minTreePaneWidth)
	previewWidth := width - layout.gapX - treeWidth
	if previewWidth < minPreviewPaneWidth {
		previewWidth = minPreviewPaneWidth
		treeWidth = maxInt(width-layout.gapX-previewWidth, minTreePaneWidth)
	}
	layout.treeWidth = treeWidth
	layout.previewWidth = previewWidth

	paneFrameX := m.basePaneStyle().GetHorizontalFrameSize()
	paneFrameY := m.basePaneStyle().GetVerticalFrameSize()
	layout.treeInnerWidth = maxInt(treeWidth-paneFrameX, 1)
	layout.previewInnerWidth = maxInt(previewWidth-paneFrameX, 1)
	// One line inside each box goes to the pane title.
	layout.paneInnerHeight = maxInt(layout.bodyHeight-paneFrameY-1, 1)

	return layout
}

// applyLayout pushes the computed sizes into the widgets.
func (m *Model) applyLayout(layout layoutDims) {
	m.ui.previewViewport.Width = layout.previewInnerWidth
	m.ui.previewViewport.Height = layout.paneInnerHeight
	m.ui.filterInput.Width = maxInt(layout.width-16, 10)
	m.ensureCursorVisible()
}

// visibleTreeRows reports how many tree rows fit in the tree pane.
func (m *Model) visibleTreeRows() int {
	return m.computeLayout().paneInnerHeight
}

// ensureCursorVisible scrolls the tree window so the cursor stays on screen.
func (m *Model) ensureCursorVisible() {
	visible := m.visibleTreeRows()
	if visible <= 0 {
		return
	}
	index := m.services.tree.Index
	if index < m.view.TreeScroll {
		m.view.TreeScroll = index
	}
	if index >= m.view.TreeScroll+visible {
		m.view.TreeScroll = index - visible + 1
	}
	if m.view.TreeScroll < 0 {
		m.view.TreeScroll = 0
	}
}
