package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/chmouel/lazyuntrack/internal/app/services"
	"github.com/chmouel/lazyuntrack/internal/config"
	"github.com/chmouel/lazyuntrack/internal/models"
)

// confirmFunc is the package-level confirmation prompt, replaceable in tests
// to avoid stdin dependencies.
var confirmFunc = confirmPrompt

// Untrack removes the given paths (all findings when none are given) from
// their repositories' indexes after showing the command script and asking for
// confirmation. yes skips the prompt. Successfully untracked paths go to
// stdout, one per line; progress and errors go to stderr. A failed file does
// not stop the run, but any failure makes the final error non-nil.
func Untrack(ctx context.Context, gitSvc gitService, cfg *config.AppConfig, root string, paths []string, yes bool, stdin io.Reader, stdout, stderr io.Writer) error {
	result, err := scanProjectFunc(ctx, cfg, root)
	if err != nil {
		return err
	}
	reportScanErrors(result, stderr)

	files := result.Files
	if len(paths) > 0 {
		files, err = matchFindings(result, paths)
		if err != nil {
			return err
		}
	}

	groups := groupByRepo(files)
	total := 0
	for _, group := range groups {
		total += len(group.Files)
	}
	if total == 0 {
		fmt.Fprintln(stderr, "No tracked-but-ignored files found.")
		return nil
	}

	// Show what is about to run before asking.
	fmt.Fprint(stderr, services.RenderCommands(groups, cfg.HeaderTemplate, cfg.CommandTemplate))
	fmt.Fprintln(stderr)

	if !yes {
		question := fmt.Sprintf("Untrack %d file(s) in %d repo(s)? Files stay on disk. [y/N]: ", total, len(groups))
		confirmed, err := confirmFunc(question, stdin, stderr)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(stderr, "Aborted.")
			return nil
		}
	}

	untracker := services.NewUntracker(gitSvc)
	results := untracker.Run(ctx, groups, func(done, total int, current string) {
		fmt.Fprintf(stderr, "[%d/%d] %s\n", done, total, current)
	})

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(stderr, "Error: %v\n", res.Err)
			continue
		}
		fmt.Fprintln(stdout, rootRelPath(res.Repo, res.RelPath))
	}

	if succeeded := services.SucceededByRepo(results); len(succeeded) > 0 {
		if _, err := services.AppendHistory(root, cfg.StateDir, succeeded); err != nil {
			fmt.Fprintf(stderr, "Warning: failed to record history: %v\n", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	fmt.Fprintf(stderr, "Untracked %d file(s). Files remain on disk.\n", len(results))
	return nil
}

// UntrackFromStdio is a convenience wrapper using the process streams.
func UntrackFromStdio(ctx context.Context, gitSvc gitService, cfg *config.AppConfig, root string, paths []string, yes bool) error {
	return Untrack(ctx, gitSvc, cfg, root, paths, yes, os.Stdin, os.Stdout, os.Stderr)
}

// matchFindings resolves path arguments to findings. Each argument matches a
// file by its root-relative path, its repo-relative path or its absolute
// path; an argument naming a directory matches everything under it. Every
// argument must match at least one file.
func matchFindings(result *models.ScanResult, args []string) ([]*models.TrackedFile, error) {
	selected := make(map[*models.TrackedFile]bool)

	for _, arg := range args {
		cleaned := filepath.ToSlash(filepath.Clean(arg))
		matched := false
		for _, file := range result.Files {
			if fileMatchesArg(file, cleaned) {
				selected[file] = true
				matched = true
			}
		}
		if !matched {
			return nil, fmt.Errorf("no tracked-but-ignored file matches: %s", arg)
		}
	}

	// Keep scan order regardless of argument order.
	var files []*models.TrackedFile
	for _, file := range result.Files {
		if selected[file] {
			files = append(files, file)
		}
	}
	return files, nil
}

func fileMatchesArg(file *models.TrackedFile, arg string) bool {
	treePath := services.TreePath(file)
	if treePath == arg || file.RelPath == arg || filepath.ToSlash(file.Path) == arg {
		return true
	}
	return strings.HasPrefix(treePath, arg+"/") || strings.HasPrefix(file.RelPath, arg+"/")
}

// rootRelPath joins a repository's position under the project root with a
// repo-relative file path.
func rootRelPath(repo *models.Repository, relPath string) string {
	if repo == nil {
		return relPath
	}
	return path.Join(filepath.ToSlash(repo.RelRoot), relPath)
}

// confirmPrompt writes the question to stderr and reads one line from stdin.
// Only y or yes confirms; anything else, including EOF, declines.
func confirmPrompt(question string, stdin io.Reader, stderr io.Writer) (bool, error) {
	fmt.Fprint(stderr, question)

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, err
		}
		return false, nil
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}
