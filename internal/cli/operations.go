// Package cli implements the non-interactive lazyuntrack subcommands. The
// operations run against the same scanner and selection core as the TUI and
// write to injected streams so tests can capture them.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/chmouel/lazyuntrack/internal/app/services"
	"github.com/chmouel/lazyuntrack/internal/config"
	"github.com/chmouel/lazyuntrack/internal/git"
	"github.com/chmouel/lazyuntrack/internal/models"
	"github.com/chmouel/lazyuntrack/internal/scan"
)

// scanProjectFunc is the package-level scan entry point, replaceable in tests.
var scanProjectFunc = scanProject

// gitService is the subset of git operations the CLI needs.
type gitService interface {
	Untrack(ctx context.Context, repoRoot, relPath string) (string, error)
	AcquireSlot()
	ReleaseSlot()
}

var _ gitService = (*git.Service)(nil)

// scanProject runs one scan pass rooted at root with the configured limits.
func scanProject(ctx context.Context, cfg *config.AppConfig, root string) (*models.ScanResult, error) {
	scanner := scan.New(scan.Options{MaxDepth: cfg.MaxDepth, Skip: cfg.Skip})
	return scanner.Scan(ctx, root)
}

// reportScanErrors prints per-repository scan failures as warnings.
func reportScanErrors(result *models.ScanResult, stderr io.Writer) {
	for _, scanErr := range result.Errors {
		fmt.Fprintf(stderr, "Warning: %s: %s\n", scanErr.RepoRoot, scanErr.Message)
	}
}

// groupByRepo folds findings into per-repository groups, keeping repository
// first-seen order across groups and file order within each group.
func groupByRepo(files []*models.TrackedFile) []services.SelectionGroup {
	var groups []services.SelectionGroup
	index := make(map[string]int)

	for _, file := range files {
		if file == nil || file.Repo == nil {
			continue
		}
		i, ok := index[file.Repo.Root]
		if !ok {
			i = len(groups)
			index[file.Repo.Root] = i
			groups = append(groups, services.SelectionGroup{Repo: file.Repo})
		}
		groups[i].Files = append(groups[i].Files, file.RelPath)
	}
	return groups
}

// findRepoGroup matches a repository by its root path, its root-relative
// path, its name, or the basename of its root, in that order.
func findRepoGroup(groups []services.SelectionGroup, pathOrName string) (services.SelectionGroup, error) {
	for _, group := range groups {
		if group.Repo.Root == pathOrName {
			return group, nil
		}
	}
	for _, group := range groups {
		if group.Repo.RelRoot == pathOrName || filepath.ToSlash(group.Repo.RelRoot) == filepath.ToSlash(pathOrName) {
			return group, nil
		}
	}
	for _, group := range groups {
		if group.Repo.Name == pathOrName {
			return group, nil
		}
	}
	for _, group := range groups {
		if filepath.Base(group.Repo.Root) == pathOrName {
			return group, nil
		}
	}
	return services.SelectionGroup{}, fmt.Errorf("repository not found: %s", pathOrName)
}

// List prints the tracked-but-ignored files found under root. The default
// output is the same grouped tree the interactive view shows; flat prints one
// root-relative path per line for scripting.
func List(ctx context.Context, cfg *config.AppConfig, root string, flat, jsonOutput bool, stdout, stderr io.Writer) error {
	result, err := scanProjectFunc(ctx, cfg, root)
	if err != nil {
		return err
	}
	reportScanErrors(result, stderr)

	switch {
	case jsonOutput:
		return outputListJSON(result, stdout)
	case flat:
		for _, file := range result.Files {
			fmt.Fprintln(stdout, services.TreePath(file))
		}
		return nil
	default:
		outputListTree(result, stdout, stderr)
		return nil
	}
}

// trackedFileJSON is the JSON output format for one finding.
type trackedFileJSON struct {
	Repo    string `json:"repo"`
	RelPath string `json:"rel_path"`
	Path    string `json:"path"`
}

func outputListJSON(result *models.ScanResult, stdout io.Writer) error {
	output := make([]trackedFileJSON, 0, len(result.Files))
	for _, file := range result.Files {
		repoRoot := ""
		if file.Repo != nil {
			repoRoot = file.Repo.Root
		}
		output = append(output, trackedFileJSON{
			Repo:    repoRoot,
			RelPath: file.RelPath,
			Path:    file.Path,
		})
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// outputListTree renders the findings with the same directory grouping and
// chain compression as the interactive tree.
func outputListTree(result *models.ScanResult, stdout, stderr io.Writer) {
	if len(result.Files) == 0 {
		fmt.Fprintln(stderr, "No tracked-but-ignored files found.")
		return
	}

	view := services.NewTreeView()
	view.SetTree(services.BuildTree(result.Files))

	fmt.Fprintln(stdout, result.Root)
	for _, node := range view.Flat {
		name := node.DisplayName()
		if node.IsDir() {
			name += "/"
		}
		fmt.Fprintf(stdout, "%s%s\n", strings.Repeat("  ", node.Depth+1), name)
	}
}

// Script prints the untrack command script for the findings under root, the
// same text the interactive preview shows with everything selected. repoFilter
// narrows the output to one repository.
func Script(ctx context.Context, cfg *config.AppConfig, root, repoFilter string, stdout, stderr io.Writer) error {
	result, err := scanProjectFunc(ctx, cfg, root)
	if err != nil {
		return err
	}
	reportScanErrors(result, stderr)

	groups := groupByRepo(result.Files)
	if repoFilter != "" {
		group, err := findRepoGroup(groups, repoFilter)
		if err != nil {
			return err
		}
		groups = []services.SelectionGroup{group}
	}

	text := services.RenderCommands(groups, cfg.HeaderTemplate, cfg.CommandTemplate)
	if text == "" {
		fmt.Fprintln(stderr, "No tracked-but-ignored files found.")
		return nil
	}
	fmt.Fprint(stdout, text)
	return nil
}

// History prints past untrack runs for the project root, newest first.
func History(cfg *config.AppConfig, root string, jsonOutput bool, stdout, stderr io.Writer) error {
	entries, err := services.LoadHistory(root, cfg.StateDir)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if jsonOutput {
		if entries == nil {
			entries = []models.HistoryEntry{}
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(stderr, "No untrack history for this root.")
		return nil
	}

	for _, entry := range entries {
		when := time.Unix(entry.Timestamp, 0).Format("2006-01-02 15:04:05")
		fmt.Fprintf(stdout, "%s  %s\n", when, entry.RepoRoot)
		for _, file := range entry.Files {
			fmt.Fprintf(stdout, "    %s\n", file)
		}
	}
	return nil
}
