// Package models defines the data objects shared across lazyuntrack packages.
package models

// Repository identifies one git working copy discovered under the project root.
// Identity is the canonical root path; nothing here binds to a live git handle.
type Repository struct {
	Root    string // absolute, symlink-resolved path of the working copy root
	GitDir  string // resolved git directory (differs from Root/.git for worktrees)
	Name    string // display name, defaults to the base of Root
	RelRoot string // path relative to the scanned project root, "." for the root repo
}

// TrackedFile is a file present in a repository's index that also matches the
// repository's ignore rules.
type TrackedFile struct {
	Path    string // absolute path on disk
	RelPath string // slash-separated path relative to Repo.Root, as git stores it
	Repo    *Repository
}

// ScanError records a repository that could not be scanned.
type ScanError struct {
	RepoRoot string
	Message  string
}

// ScanResult aggregates one scan pass over a project root.
type ScanResult struct {
	Root   string
	Repos  []*Repository // discovery order
	Files  []*TrackedFile
	Errors []ScanError
}

// UntrackResult reports the outcome of removing one file from tracking.
type UntrackResult struct {
	Repo    *Repository
	RelPath string
	Output  string
	Err     error
}

// HistoryEntry records one completed untrack run for a project root.
type HistoryEntry struct {
	Timestamp int64    `json:"timestamp"`
	RepoRoot  string   `json:"repo_root"`
	Files     []string `json:"files"`
}

const (
	// HistoryFilename stores past untrack runs for a project root.
	HistoryFilename = ".untrack-history.json"
	// HistoryLimit caps how many runs the history file retains.
	HistoryLimit = 50
)
