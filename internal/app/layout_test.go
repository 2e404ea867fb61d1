package app

import (
	"testing"
)

func TestComputeLayoutSplitsWidth(t *testing.T) {
	m := scannedModel(t)

	layout := m.computeLayout()
	if layout.bodyHeight != 38 {
		t.Errorf("bodyHeight = %d, want 38 at 120x40", layout.bodyHeight)
	}
	if layout.treeWidth != 65 || layout.previewWidth != 54 {
		t.Errorf("pane widths = %d/%d, want 65/54 with the tree focused", layout.treeWidth, layout.previewWidth)
	}
	if layout.paneInnerHeight != 35 {
		t.Errorf("paneInnerHeight = %d, want 35", layout.paneInnerHeight)
	}

	// Focusing the preview flips the ratio.
	m.view.FocusedPane = panePreview
	layout = m.computeLayout()
	if layout.treeWidth >= layout.previewWidth {
		t.Errorf("pane widths = %d/%d, preview should get the larger share", layout.treeWidth, layout.previewWidth)
	}
}

func TestComputeLayoutEnforcesMinimumWidths(t *testing.T) {
	m := scannedModel(t)
	m.view.WindowWidth = 50

	layout := m.computeLayout()
	if layout.treeWidth < minTreePaneWidth {
		t.Errorf("treeWidth = %d, below the minimum", layout.treeWidth)
	}
	if layout.previewWidth < minPreviewPaneWidth {
		t.Errorf("previewWidth = %d, below the minimum", layout.previewWidth)
	}
}

func TestComputeLayoutReservesFilterRow(t *testing.T) {
	m := scannedModel(t)

	base := m.computeLayout()
	m.view.ShowingFilter = true
	withFilter := m.computeLayout()

	if withFilter.filterHeight != 1 {
		t.Errorf("filterHeight = %d, want 1", withFilter.filterHeight)
	}
	if withFilter.bodyHeight != base.bodyHeight-1 {
		t.Errorf("bodyHeight = %d, want one less than %d", withFilter.bodyHeight, base.bodyHeight)
	}
}

func TestComputeLayoutTinyWindow(t *testing.T) {
	m := scannedModel(t)
	m.view.WindowWidth = 20
	m.view.WindowHeight = 4

	layout := m.computeLayout()
	if layout.bodyHeight < 3 {
		t.Errorf("bodyHeight = %d, want at least 3", layout.bodyHeight)
	}
	if layout.paneInnerHeight < 1 || layout.treeInnerWidth < 1 || layout.previewInnerWidth < 1 {
		t.Errorf("inner dims collapsed: %+v", layout)
	}
}

func TestApplyLayoutSizesViewport(t *testing.T) {
	m := scannedModel(t)

	layout := m.computeLayout()
	m.applyLayout(layout)

	if m.ui.previewViewport.Width != layout.previewInnerWidth {
		t.Errorf("viewport width = %d, want %d", m.ui.previewViewport.Width, layout.previewInnerWidth)
	}
	if m.ui.previewViewport.Height != layout.paneInnerHeight {
		t.Errorf("viewport height = %d, want %d", m.ui.previewViewport.Height, layout.paneInnerHeight)
	}
}

func TestEnsureCursorVisibleScrollsWindow(t *testing.T) {
	m := scannedModel(t)
	m.setWindowSize(120, 12) // 7 visible tree rows

	visible := m.visibleTreeRows()
	if visible != 7 {
		t.Fatalf("visibleTreeRows = %d, want 7", visible)
	}

	m.services.tree.Index = 9
	m.ensureCursorVisible()
	if m.view.TreeScroll != 3 {
		t.Errorf("TreeScroll = %d after moving below the window, want 3", m.view.TreeScroll)
	}

	m.services.tree.Index = 1
	m.ensureCursorVisible()
	if m.view.TreeScroll != 1 {
		t.Errorf("TreeScroll = %d after moving above the window, want 1", m.view.TreeScroll)
	}
}
