package services

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/chmouel/lazyuntrack/internal/models"
)

// PathNode is one node in the selection tree (directory or file).
type PathNode struct {
	Name     string              // last path segment
	Path     string              // slash-joined path from the project root
	File     *models.TrackedFile // nil for directories
	Children []*PathNode         // nil for files, insertion order preserved
	Checked  bool                // meaningful for files only
}

// CheckState summarizes the selection below a node.
type CheckState int

const (
	// CheckNone means no file under the node is selected.
	CheckNone CheckState = iota
	// CheckSome means a strict subset is selected.
	CheckSome
	// CheckAll means every file under the node is selected.
	CheckAll
)

// PathTree deduplicates file paths into a shared tree. Each distinct
// root-to-leaf path exists exactly once no matter how often or in which
// order paths are added.
type PathTree struct {
	Root *PathNode

	byPath map[string]*PathNode
}

// NewPathTree returns an empty tree.
func NewPathTree() *PathTree {
	return &PathTree{
		Root:   &PathNode{Path: ""},
		byPath: make(map[string]*PathNode),
	}
}

// TreePath is the project-root-relative slash path of a tracked file,
// combining the repository's position with the file's in-repo path.
func TreePath(file *models.TrackedFile) string {
	rel := "."
	if file.Repo != nil {
		rel = filepath.ToSlash(file.Repo.RelRoot)
	}
	return path.Join(rel, file.RelPath)
}

// Ensure walks relPath segment by segment, reusing existing nodes and
// appending missing ones at the end of their parent's child list. The node
// for the final segment is returned. When that node already exists it is
// returned untouched, so the first file registered for a path keeps it.
func (t *PathTree) Ensure(relPath string, file *models.TrackedFile) *PathNode {
	relPath = strings.Trim(relPath, "/")
	if relPath == "" || relPath == "." {
		return t.Root
	}

	parts := strings.Split(relPath, "/")
	current := t.Root
	for i, part := range parts {
		isLast := i == len(parts)-1
		pathSoFar := strings.Join(parts[:i+1], "/")

		if existing, ok := t.byPath[pathSoFar]; ok {
			current = existing
			continue
		}

		node := &PathNode{
			Name: part,
			Path: pathSoFar,
		}
		if isLast && file != nil {
			node.File = file
			node.Checked = true
		} else {
			node.Children = make([]*PathNode, 0)
		}
		current.Children = append(current.Children, node)
		t.byPath[pathSoFar] = node
		current = node
	}
	return current
}

// BuildTree constructs a selection tree from scan output. Files arrive
// repo-major in scan order; every file starts selected.
func BuildTree(files []*models.TrackedFile) *PathTree {
	tree := NewPathTree()
	for _, file := range files {
		tree.Ensure(TreePath(file), file)
	}
	return tree
}

// Node looks up a node by its project-root-relative path.
func (t *PathTree) Node(relPath string) *PathNode {
	if relPath == "" || relPath == "." {
		return t.Root
	}
	return t.byPath[strings.Trim(relPath, "/")]
}

// IsDir reports whether the node groups other nodes rather than naming a file.
func (n *PathNode) IsDir() bool {
	return n.File == nil
}

// State derives the tri-state selection for a node. Files report their own
// flag; directories aggregate their subtree.
func (n *PathNode) State() CheckState {
	if !n.IsDir() {
		if n.Checked {
			return CheckAll
		}
		return CheckNone
	}

	total, checked := n.countFiles()
	switch {
	case total == 0 || checked == 0:
		return CheckNone
	case checked == total:
		return CheckAll
	default:
		return CheckSome
	}
}

// Counts reports how many files live under the node and how many are selected.
func (n *PathNode) Counts() (total, checked int) {
	return n.countFiles()
}

func (n *PathNode) countFiles() (total, checked int) {
	if !n.IsDir() {
		if n.Checked {
			return 1, 1
		}
		return 1, 0
	}
	for _, child := range n.Children {
		ct, cc := child.countFiles()
		total += ct
		checked += cc
	}
	return total, checked
}

// SetChecked selects or deselects every file under the node.
func (n *PathNode) SetChecked(checked bool) {
	if !n.IsDir() {
		n.Checked = checked
		return
	}
	for _, child := range n.Children {
		child.SetChecked(checked)
	}
}

// Toggle flips a file, or flips a directory subtree as a whole: a fully
// selected directory is cleared, anything else becomes fully selected.
func (n *PathNode) Toggle() {
	if !n.IsDir() {
		n.Checked = !n.Checked
		return
	}
	n.SetChecked(n.State() != CheckAll)
}

// Walk visits every node below the root in depth-first insertion order.
func (t *PathTree) Walk(fn func(*PathNode)) {
	if t == nil || t.Root == nil {
		return
	}
	var visit func(*PathNode)
	visit = func(n *PathNode) {
		for _, child := range n.Children {
			fn(child)
			visit(child)
		}
	}
	visit(t.Root)
}

// Files returns every tracked file in the tree, in insertion order.
func (t *PathTree) Files() []*models.TrackedFile {
	var files []*models.TrackedFile
	t.Walk(func(n *PathNode) {
		if n.File != nil {
			files = append(files, n.File)
		}
	})
	return files
}

// SetAll selects or deselects every file in the tree.
func (t *PathTree) SetAll(checked bool) {
	if t == nil || t.Root == nil {
		return
	}
	t.Root.SetChecked(checked)
}

// Counts reports how many files exist and how many are selected.
func (t *PathTree) Counts() (total, checked int) {
	if t == nil || t.Root == nil {
		return 0, 0
	}
	return t.Root.countFiles()
}
