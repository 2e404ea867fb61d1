// Package scan discovers git repositories under a project root and lists the
// files each repository still tracks even though its ignore rules match them.
// Everything here goes through go-git; no git binary is involved.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/chmouel/lazyuntrack/internal/models"
)

// Options tunes repository discovery.
type Options struct {
	// MaxDepth limits how many directory levels below the root are
	// visited. Values below 1 disable the limit.
	MaxDepth int
	// Skip lists directory names or root-relative paths that are never
	// descended into.
	Skip []string
}

// Scanner walks a project root and reports tracked-but-ignored files.
type Scanner struct {
	opts Options
}

// New returns a Scanner with the given options.
func New(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

// ProjectRoot widens path to the root of the working copy containing it.
// When path is not inside a working copy it is returned unchanged.
func ProjectRoot(path string) string {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return path
	}
	wt, err := repo.Worktree()
	if err != nil {
		return path
	}
	return wt.Filesystem.Root()
}

// Scan discovers repositories under root and collects their tracked-but-
// ignored files. Repository-level failures are recorded in the result and do
// not abort the scan; only root-level problems return an error.
func (s *Scanner) Scan(ctx context.Context, root string) (*models.ScanResult, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	abs = ProjectRoot(abs)

	roots, err := s.discoverRepos(ctx, abs)
	if err != nil {
		return nil, err
	}

	result := &models.ScanResult{Root: abs}
	for _, repoRoot := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		repo, files, err := collectRepo(abs, repoRoot)
		if err != nil {
			result.Errors = append(result.Errors, models.ScanError{
				RepoRoot: repoRoot,
				Message:  err.Error(),
			})
			continue
		}
		result.Repos = append(result.Repos, repo)
		result.Files = append(result.Files, files...)
	}
	return result, nil
}

// discoverRepos walks abs and returns every directory holding a .git entry,
// in lexical walk order so results stay stable between runs.
func (s *Scanner) discoverRepos(ctx context.Context, abs string) ([]string, error) {
	var roots []string
	sep := string(filepath.Separator)

	err := filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if walkErr != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return nil
		}
		if rel != "." && s.shouldSkip(rel, d.Name()) {
			return filepath.SkipDir
		}

		if hasDotGit(path) {
			roots = append(roots, path)
		}

		if s.opts.MaxDepth > 0 && rel != "." {
			depth := strings.Count(rel, sep) + 1
			if depth >= s.opts.MaxDepth {
				return filepath.SkipDir
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return roots, nil
}

func (s *Scanner) shouldSkip(rel, name string) bool {
	for _, skip := range s.opts.Skip {
		if skip == "" {
			continue
		}
		if name == skip || rel == skip || filepath.ToSlash(rel) == filepath.ToSlash(skip) {
			return true
		}
	}
	return false
}

// hasDotGit reports whether dir is a working copy root. A .git file (not a
// directory) marks submodules and linked worktrees; both count.
func hasDotGit(dir string) bool {
	_, err := os.Lstat(filepath.Join(dir, ".git"))
	return err == nil
}

// collectRepo opens one repository and matches its index entries against the
// ignore rules that apply to it.
func collectRepo(projectRoot, repoRoot string) (*models.Repository, []*models.TrackedFile, error) {
	repo, err := gogit.PlainOpen(repoRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("open repository: %w", err)
	}

	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, nil, fmt.Errorf("read index: %w", err)
	}

	matcher, err := buildMatcher(repoRoot)
	if err != nil {
		return nil, nil, err
	}

	rel, err := filepath.Rel(projectRoot, repoRoot)
	if err != nil {
		rel = "."
	}
	repoModel := &models.Repository{
		Root:    repoRoot,
		GitDir:  gitDirFor(repo, repoRoot),
		Name:    filepath.Base(repoRoot),
		RelRoot: rel,
	}

	var files []*models.TrackedFile
	for _, entry := range idx.Entries {
		parts := strings.Split(entry.Name, "/")
		if !matcher.Match(parts, false) {
			continue
		}
		files = append(files, &models.TrackedFile{
			Path:    filepath.Join(repoRoot, filepath.FromSlash(entry.Name)),
			RelPath: entry.Name,
			Repo:    repoModel,
		})
	}
	return repoModel, files, nil
}

// buildMatcher layers system, global and repository ignore rules the same way
// git resolves them. Missing system or global files are not errors.
func buildMatcher(repoRoot string) (gitignore.Matcher, error) {
	rootFS := osfs.New(string(filepath.Separator))

	var patterns []gitignore.Pattern
	if ps, err := gitignore.LoadSystemPatterns(rootFS); err == nil {
		patterns = append(patterns, ps...)
	}
	if ps, err := gitignore.LoadGlobalPatterns(rootFS); err == nil {
		patterns = append(patterns, ps...)
	}

	repoFS := osfs.New(repoRoot)
	ps, err := gitignore.ReadPatterns(repoFS, nil)
	if err != nil {
		return nil, fmt.Errorf("read ignore patterns: %w", err)
	}
	patterns = append(patterns, ps...)

	return gitignore.NewMatcher(patterns), nil
}

// gitDirFor resolves the on-disk git directory backing repo. Worktrees and
// submodules point outside repoRoot, which matters for file watching.
func gitDirFor(repo *gogit.Repository, repoRoot string) string {
	if st, ok := repo.Storer.(*filesystem.Storage); ok {
		return st.Filesystem().Root()
	}
	return filepath.Join(repoRoot, ".git")
}
