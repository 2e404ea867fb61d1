package services

import (
	"testing"

	"github.com/chmouel/lazyuntrack/internal/models"
)

func flatPaths(v *TreeView) []string {
	paths := make([]string, 0, len(v.Flat))
	for _, row := range v.Flat {
		paths = append(paths, row.Path)
	}
	return paths
}

func newTestView(rels ...string) *TreeView {
	repo := testRepo("/work/proj", ".")
	files := make([]*models.TrackedFile, 0, len(rels))
	for _, rel := range rels {
		files = append(files, testFile(repo, rel))
	}
	view := NewTreeView()
	view.SetTree(BuildTree(files))
	return view
}

func TestTreeViewSortsDirectoriesFirst(t *testing.T) {
	view := newTestView("z.txt", "a/b.txt")

	got := flatPaths(view)
	want := []string{"a", "a/b.txt", "z.txt"}
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTreeViewCompressesSingleChildChains(t *testing.T) {
	view := newTestView("a/b/c.txt")

	if len(view.Flat) != 2 {
		t.Fatalf("rows = %v, want compressed dir + file", flatPaths(view))
	}

	dir := view.Flat[0]
	if dir.Path != "a/b" || dir.Compression != 1 {
		t.Errorf("compressed row = %q (compression %d), want a/b (1)", dir.Path, dir.Compression)
	}
	if dir.DisplayName() != "a/b" {
		t.Errorf("DisplayName() = %q, want a/b", dir.DisplayName())
	}
	if view.Flat[1].Path != "a/b/c.txt" || view.Flat[1].Depth != 1 {
		t.Errorf("file row = %q depth %d", view.Flat[1].Path, view.Flat[1].Depth)
	}
}

func TestTreeViewChainStopsAtBranch(t *testing.T) {
	view := newTestView("a/b/c.txt", "a/d.txt")

	got := flatPaths(view)
	want := []string{"a", "a/b", "a/b/c.txt", "a/d.txt"}
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTreeViewCollapse(t *testing.T) {
	view := newTestView("a/one.log", "a/two.log", "b.log")

	view.ToggleCollapse("a")
	got := flatPaths(view)
	want := []string{"a", "b.log"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("collapsed rows = %v, want %v", got, want)
	}

	view.ToggleCollapse("a")
	if len(view.Flat) != 4 {
		t.Errorf("expanded rows = %v, want 4 rows", flatPaths(view))
	}

	// Collapsing nothing is a no-op.
	view.ToggleCollapse("")
	if len(view.Flat) != 4 {
		t.Error("ToggleCollapse(\"\") changed the rows")
	}
}

func TestTreeViewSelectionSurvivesRebuild(t *testing.T) {
	view := newTestView("a/one.log", "b/two.log")

	view.Index = 3 // b/two.log
	selected := view.SelectedPath()

	repo := testRepo("/work/proj", ".")
	view.SetTree(BuildTree([]*models.TrackedFile{
		testFile(repo, "a/one.log"),
		testFile(repo, "b/two.log"),
		testFile(repo, "c/three.log"),
	}))

	if view.SelectedPath() != selected {
		t.Errorf("selection moved from %q to %q after rebuild", selected, view.SelectedPath())
	}
}

func TestTreeViewClampIndex(t *testing.T) {
	view := newTestView("a.log")

	view.Index = 10
	view.ClampIndex()
	if view.Index != 0 {
		t.Errorf("clamped index = %d, want 0", view.Index)
	}

	view.Index = -3
	view.ClampIndex()
	if view.Index != 0 {
		t.Errorf("clamped index = %d, want 0", view.Index)
	}

	empty := NewTreeView()
	empty.SetTree(NewPathTree())
	empty.Index = 5
	empty.ClampIndex()
	if empty.Index != 0 {
		t.Errorf("clamped index on empty view = %d, want 0", empty.Index)
	}
}

func TestTreeViewStateReflectsSelection(t *testing.T) {
	view := newTestView("a/one.log", "a/two.log")

	dir := view.Flat[0]
	if dir.State() != CheckAll {
		t.Errorf("fresh dir row state = %v, want CheckAll", dir.State())
	}

	view.Tree.Node("a/one.log").Toggle()
	if dir.State() != CheckSome {
		t.Errorf("partial dir row state = %v, want CheckSome", dir.State())
	}
}
