package services

import (
	"context"
	"sync"

	"github.com/chmouel/lazyuntrack/internal/models"
)

// ProgressFn reports execution progress. It may be called from several
// goroutines at once; callers must be safe for that.
type ProgressFn func(done, total int, current string)

// Untracker removes selected files from their repositories' indexes.
type Untracker interface {
	// Run executes the selection and returns one result per file, in the
	// order the groups listed them.
	Run(ctx context.Context, groups []SelectionGroup, progress ProgressFn) []models.UntrackResult
}

// UntrackGitService is the subset of git operations the untracker needs.
type UntrackGitService interface {
	Untrack(ctx context.Context, repoRoot, relPath string) (string, error)
	AcquireSlot()
	ReleaseSlot()
}

type untracker struct {
	git UntrackGitService
}

// NewUntracker creates a new Untracker.
func NewUntracker(git UntrackGitService) Untracker {
	return &untracker{git: git}
}

// Run fans out one worker per repository under the subprocess semaphore.
// Files inside a repository run sequentially: parallel index rewrites in the
// same working copy would fight over index.lock. A failed file does not stop
// the rest of its group.
func (u *untracker) Run(ctx context.Context, groups []SelectionGroup, progress ProgressFn) []models.UntrackResult {
	total := 0
	offsets := make([]int, len(groups))
	for i, group := range groups {
		offsets[i] = total
		total += len(group.Files)
	}
	if total == 0 {
		return nil
	}

	results := make([]models.UntrackResult, total)

	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for gi := range groups {
		wg.Add(1)
		go func(offset int, group SelectionGroup) {
			defer wg.Done()
			u.git.AcquireSlot()
			defer u.git.ReleaseSlot()

			for i, rel := range group.Files {
				result := models.UntrackResult{Repo: group.Repo, RelPath: rel}
				if err := ctx.Err(); err != nil {
					result.Err = err
				} else {
					result.Output, result.Err = u.git.Untrack(ctx, group.Repo.Root, rel)
				}
				results[offset+i] = result

				mu.Lock()
				done++
				current := done
				mu.Unlock()
				if progress != nil {
					progress(current, total, rel)
				}
			}
		}(offsets[gi], groups[gi])
	}
	wg.Wait()

	return results
}

// SucceededByRepo splits results into per-repository lists of successfully
// untracked files, keeping the result order. Used for history records.
func SucceededByRepo(results []models.UntrackResult) []models.HistoryEntry {
	var entries []models.HistoryEntry
	index := make(map[string]int)

	for _, result := range results {
		if result.Err != nil || result.Repo == nil {
			continue
		}
		i, ok := index[result.Repo.Root]
		if !ok {
			i = len(entries)
			index[result.Repo.Root] = i
			entries = append(entries, models.HistoryEntry{RepoRoot: result.Repo.Root})
		}
		entries[i].Files = append(entries[i].Files, result.RelPath)
	}
	return entries
}
