package services

import (
	"sort"
	"strings"
)

// ViewNode mirrors one PathNode for rendering. The mirror carries display
// ordering and chain compression so the underlying selection tree keeps its
// insertion order untouched.
type ViewNode struct {
	Node        *PathNode
	Path        string      // path of the deepest compressed segment
	Children    []*ViewNode // nil for files
	Compression int         // number of squashed single-child directories
	Depth       int         // cached depth for rendering
}

// TreeView manages the rendered shape of a selection tree: display sorting,
// collapsed directories and the cursor.
type TreeView struct {
	Tree          *PathTree
	ViewRoot      *ViewNode
	Flat          []*ViewNode
	CollapsedDirs map[string]bool
	Index         int

	filter func(path string) bool
}

// NewTreeView creates an empty TreeView.
func NewTreeView() *TreeView {
	return &TreeView{
		CollapsedDirs: make(map[string]bool),
	}
}

// SetTree replaces the underlying tree and rebuilds the rendered rows,
// keeping the cursor on the previously selected path when it still exists.
func (v *TreeView) SetTree(tree *PathTree) {
	selected := v.SelectedPath()
	v.Tree = tree
	v.rebuildView()
	v.RestoreSelection(selected)
	v.ClampIndex()
}

// SetFilter installs a file path predicate and rebuilds the rows. Files the
// predicate rejects disappear, as do directories emptied by that. A nil
// predicate shows everything.
func (v *TreeView) SetFilter(matches func(path string) bool) {
	selected := v.SelectedPath()
	v.filter = matches
	v.rebuildView()
	v.RestoreSelection(selected)
	v.ClampIndex()
}

func (v *TreeView) rebuildView() {
	v.ViewRoot = buildViewTree(v.Tree, v.filter)
	v.RebuildFlat()
}

// buildViewTree mirrors the selection tree, sorts directories before files
// and squashes single-child directory chains.
func buildViewTree(tree *PathTree, keep func(path string) bool) *ViewNode {
	if tree == nil || tree.Root == nil {
		return &ViewNode{}
	}
	root := mirrorNode(tree.Root, keep)
	if root == nil {
		root = &ViewNode{Node: tree.Root, Path: ""}
	}
	sortViewTree(root)
	compressViewTree(root)
	return root
}

func mirrorNode(node *PathNode, keep func(path string) bool) *ViewNode {
	if !node.IsDir() {
		if keep != nil && !keep(node.Path) {
			return nil
		}
		return &ViewNode{Node: node, Path: node.Path}
	}

	view := &ViewNode{Node: node, Path: node.Path}
	view.Children = make([]*ViewNode, 0, len(node.Children))
	for _, child := range node.Children {
		if mirrored := mirrorNode(child, keep); mirrored != nil {
			view.Children = append(view.Children, mirrored)
		}
	}
	if node.Path != "" && len(view.Children) == 0 {
		return nil
	}
	return view
}

// sortViewTree sorts tree nodes: directories first, then alphabetically.
func sortViewTree(node *ViewNode) {
	if node == nil || node.Children == nil {
		return
	}

	sort.SliceStable(node.Children, func(i, j int) bool {
		iIsDir := node.Children[i].IsDir()
		jIsDir := node.Children[j].IsDir()
		if iIsDir != jIsDir {
			return iIsDir // directories first
		}
		return node.Children[i].Path < node.Children[j].Path
	})

	for _, child := range node.Children {
		sortViewTree(child)
	}
}

// compressViewTree squashes single-child directory chains (e.g., a/b/c
// becomes one row).
func compressViewTree(node *ViewNode) {
	if node == nil {
		return
	}

	for _, child := range node.Children {
		compressViewTree(child)
	}

	for i, child := range node.Children {
		for child.IsDir() && len(child.Children) == 1 && child.Children[0].IsDir() {
			grandchild := child.Children[0]
			grandchild.Compression = child.Compression + 1
			node.Children[i] = grandchild
			child = grandchild
		}
	}
}

// flattenViewTree returns visible rows respecting collapsed state.
func flattenViewTree(node *ViewNode, collapsed map[string]bool, depth int) []*ViewNode {
	if node == nil {
		return nil
	}

	result := make([]*ViewNode, 0)

	// Skip the root row itself but process its children
	if node.Path != "" {
		nodeCopy := *node
		nodeCopy.Depth = depth
		result = append(result, &nodeCopy)

		if collapsed[node.Path] {
			return result
		}
	}

	if node.Children != nil {
		childDepth := depth
		if node.Path != "" {
			childDepth = depth + 1
		}
		for _, child := range node.Children {
			result = append(result, flattenViewTree(child, collapsed, childDepth)...)
		}
	}

	return result
}

// IsDir reports whether the row stands for a directory.
func (n *ViewNode) IsDir() bool {
	return n.Node == nil || n.Node.IsDir()
}

// DisplayName returns the row label, including every compressed segment.
func (n *ViewNode) DisplayName() string {
	parts := strings.Split(n.Path, "/")
	keep := n.Compression + 1
	if keep > len(parts) {
		keep = len(parts)
	}
	return strings.Join(parts[len(parts)-keep:], "/")
}

// State reports the tri-state selection of the underlying node.
func (n *ViewNode) State() CheckState {
	if n.Node == nil {
		return CheckNone
	}
	return n.Node.State()
}

// RebuildFlat rebuilds the flattened row list.
func (v *TreeView) RebuildFlat() {
	if v.CollapsedDirs == nil {
		v.CollapsedDirs = make(map[string]bool)
	}
	v.Flat = flattenViewTree(v.ViewRoot, v.CollapsedDirs, 0)
}

// ToggleCollapse toggles a directory collapse state and rebuilds the rows.
func (v *TreeView) ToggleCollapse(path string) {
	if path == "" {
		return
	}
	if v.CollapsedDirs == nil {
		v.CollapsedDirs = make(map[string]bool)
	}
	v.CollapsedDirs[path] = !v.CollapsedDirs[path]
	v.RebuildFlat()
}

// SetCollapsed collapses or expands one directory.
func (v *TreeView) SetCollapsed(path string, collapsed bool) {
	if path == "" {
		return
	}
	if v.CollapsedDirs == nil {
		v.CollapsedDirs = make(map[string]bool)
	}
	if collapsed {
		v.CollapsedDirs[path] = true
	} else {
		delete(v.CollapsedDirs, path)
	}
	v.RebuildFlat()
}

// Selected returns the row under the cursor, or nil.
func (v *TreeView) Selected() *ViewNode {
	if v.Index >= 0 && v.Index < len(v.Flat) {
		return v.Flat[v.Index]
	}
	return nil
}

// SelectedPath returns the path of the row under the cursor.
func (v *TreeView) SelectedPath() string {
	if node := v.Selected(); node != nil {
		return node.Path
	}
	return ""
}

// RestoreSelection moves the cursor to the given path if it still exists.
func (v *TreeView) RestoreSelection(path string) {
	if path == "" {
		return
	}
	for i, node := range v.Flat {
		if node.Path == path {
			v.Index = i
			return
		}
	}
}

// ClampIndex ensures the cursor stays within the row list.
func (v *TreeView) ClampIndex() {
	if v.Index < 0 {
		v.Index = 0
	}
	if len(v.Flat) > 0 && v.Index >= len(v.Flat) {
		v.Index = len(v.Flat) - 1
	}
	if len(v.Flat) == 0 {
		v.Index = 0
	}
}
