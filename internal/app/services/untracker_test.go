package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/chmouel/lazyuntrack/internal/models"
)

// fakeUntrackGit records Untrack calls per repository and can fail chosen
// paths.
type fakeUntrackGit struct {
	mu      sync.Mutex
	calls   map[string][]string
	failRel map[string]error
}

func newFakeUntrackGit() *fakeUntrackGit {
	return &fakeUntrackGit{
		calls:   make(map[string][]string),
		failRel: make(map[string]error),
	}
}

func (f *fakeUntrackGit) Untrack(_ context.Context, repoRoot, relPath string) (string, error) {
	f.mu.Lock()
	f.calls[repoRoot] = append(f.calls[repoRoot], relPath)
	f.mu.Unlock()
	if err, ok := f.failRel[relPath]; ok {
		return "", err
	}
	return fmt.Sprintf("rm '%s'", relPath), nil
}

func (f *fakeUntrackGit) AcquireSlot() {}
func (f *fakeUntrackGit) ReleaseSlot() {}

func TestUntrackerRunKeepsGroupOrder(t *testing.T) {
	outer := testRepo("/work/proj", ".")
	nested := testRepo("/work/proj/libs/widget", "libs/widget")
	groups := []SelectionGroup{
		{Repo: outer, Files: []string{"a.log", "b.log"}},
		{Repo: nested, Files: []string{"c.log"}},
	}

	git := newFakeUntrackGit()
	results := NewUntracker(git).Run(context.Background(), groups, nil)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	wantOrder := []struct {
		root string
		rel  string
	}{
		{outer.Root, "a.log"},
		{outer.Root, "b.log"},
		{nested.Root, "c.log"},
	}
	for i, want := range wantOrder {
		if results[i].Repo.Root != want.root || results[i].RelPath != want.rel {
			t.Errorf("result %d = %s %s, want %s %s", i, results[i].Repo.Root, results[i].RelPath, want.root, want.rel)
		}
		if results[i].Err != nil {
			t.Errorf("result %d unexpectedly failed: %v", i, results[i].Err)
		}
	}

	// Files inside one repository must run in selection order.
	if !reflect.DeepEqual(git.calls[outer.Root], []string{"a.log", "b.log"}) {
		t.Errorf("outer repo call order = %v", git.calls[outer.Root])
	}
}

func TestUntrackerFailureDoesNotStopGroup(t *testing.T) {
	repo := testRepo("/work/proj", ".")
	groups := []SelectionGroup{
		{Repo: repo, Files: []string{"a.log", "bad.log", "c.log"}},
	}

	git := newFakeUntrackGit()
	git.failRel["bad.log"] = errors.New("pathspec did not match")

	results := NewUntracker(git).Run(context.Background(), groups, nil)

	if results[0].Err != nil || results[2].Err != nil {
		t.Error("unrelated files should succeed")
	}
	if results[1].Err == nil {
		t.Error("bad.log should carry its error")
	}
	if got := git.calls[repo.Root]; len(got) != 3 {
		t.Errorf("expected all 3 files attempted, got %v", got)
	}
}

func TestUntrackerProgressReachesTotal(t *testing.T) {
	repo := testRepo("/work/proj", ".")
	other := testRepo("/work/other", "other")
	groups := []SelectionGroup{
		{Repo: repo, Files: []string{"a.log", "b.log"}},
		{Repo: other, Files: []string{"c.log"}},
	}

	var mu sync.Mutex
	var maxDone int
	var lastTotal int
	progress := func(done, total int, _ string) {
		mu.Lock()
		defer mu.Unlock()
		if done > maxDone {
			maxDone = done
		}
		lastTotal = total
	}

	NewUntracker(newFakeUntrackGit()).Run(context.Background(), groups, progress)

	if maxDone != 3 || lastTotal != 3 {
		t.Errorf("progress peaked at %d/%d, want 3/3", maxDone, lastTotal)
	}
}

func TestUntrackerCancelledContext(t *testing.T) {
	repo := testRepo("/work/proj", ".")
	groups := []SelectionGroup{{Repo: repo, Files: []string{"a.log"}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewUntracker(newFakeUntrackGit()).Run(ctx, groups, nil)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("result error = %v, want context.Canceled", results[0].Err)
	}
}

func TestUntrackerEmptySelection(t *testing.T) {
	if got := NewUntracker(newFakeUntrackGit()).Run(context.Background(), nil, nil); got != nil {
		t.Errorf("Run(nil) = %v, want nil", got)
	}
}

func TestSucceededByRepo(t *testing.T) {
	outer := testRepo("/work/proj", ".")
	nested := testRepo("/work/proj/libs/widget", "libs/widget")

	results := []models.UntrackResult{
		{Repo: outer, RelPath: "a.log"},
		{Repo: outer, RelPath: "bad.log", Err: errors.New("boom")},
		{Repo: nested, RelPath: "c.log"},
		{Repo: outer, RelPath: "d.log"},
	}

	entries := SucceededByRepo(results)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].RepoRoot != outer.Root || !reflect.DeepEqual(entries[0].Files, []string{"a.log", "d.log"}) {
		t.Errorf("outer entry = %+v", entries[0])
	}
	if entries[1].RepoRoot != nested.Root || !reflect.DeepEqual(entries[1].Files, []string{"c.log"}) {
		t.Errorf("nested entry = %+v", entries[1])
	}
}
